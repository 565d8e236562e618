// Package severity provides severity level constants and utilities for
// issues reported by the derive package and the uniplate CLI.
//
// All four severity levels are re-exported by each public package that
// uses them:
//   - SeverityInfo: Informational messages about generation choices
//   - SeverityWarning: Suspicious input that does not prevent generation
//   - SeverityError: Declarations that make generation fail closed
//   - SeverityCritical: Failures that abort generation entirely
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of an issue found during code
// generation.
type Severity int

const (
	// SeverityError indicates a declaration violation that makes generation
	// for the offending package fail closed.
	SeverityError Severity = iota

	// SeverityWarning indicates suspicious input, such as a walk-into name
	// with no known declaration, that should be addressed but does not
	// prevent generation.
	SeverityWarning

	// SeverityInfo indicates informational messages about generation choices.
	// These are non-actionable notices that may be useful for debugging.
	SeverityInfo

	// SeverityCritical indicates a failure that aborts generation entirely,
	// such as unparseable source.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// AtLeast reports whether s is at least as severe as min, using the
// Info < Warning < Error < Critical ordering.
func (s Severity) AtLeast(min Severity) bool {
	return rank(s) >= rank(min)
}

func rank(s Severity) int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}
