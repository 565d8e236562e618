package derive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/conjure-cp/uniplate/internal/issues"
	"github.com/conjure-cp/uniplate/internal/severity"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates suspicious input that does not prevent generation
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates declarations that make generation fail closed
	SeverityError = severity.SeverityError
	// SeverityCritical indicates failures that abort generation entirely
	SeverityCritical = severity.SeverityCritical
)

// Issue represents a single generation issue or limitation
type Issue = issues.Issue

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "zz_generated_uniplate.go")
	Name string
	// Content is the generated Go source code
	Content []byte
}

// Result contains the results of generating traversal code for one package
type Result struct {
	// Files contains all generated files
	Files []GeneratedFile
	// PackageName is the Go package name used in generation
	PackageName string
	// Issues contains all issues found while loading and generating
	Issues []Issue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// ErrorCount is the total number of errors
	ErrorCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// GeneratedMethods is the count of Uniplate methods generated
	GeneratedMethods int
	// GeneratedBiplates is the count of biplate functions generated
	GeneratedBiplates int
	// Success is true if generation completed without errors
	Success bool
	// LoadTime is the time taken to load and scan source declarations
	LoadTime time.Duration
	// GenerateTime is the time taken to plan and emit code
	GenerateTime time.Duration
}

// HasErrors returns true if there are any error or critical issues
func (r *Result) HasErrors() bool {
	return r.ErrorCount > 0 || r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *Result) HasWarnings() bool {
	return r.WarningCount > 0
}

// IssuesBySeverity returns all issues at least as severe as min.
func (r *Result) IssuesBySeverity(min Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity.AtLeast(min) {
			out = append(out, i)
		}
	}
	return out
}

// WriteFiles writes all generated files to the specified output directory.
// The directory is created if it doesn't exist.
func (r *Result) WriteFiles(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, file := range r.Files {
		safeName := filepath.Base(file.Name)
		if safeName != file.Name {
			return fmt.Errorf("invalid file name %q: must not contain path separators", file.Name)
		}
		filePath := filepath.Join(outputDir, safeName)
		if err := os.WriteFile(filePath, file.Content, 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", file.Name, err)
		}
	}

	return nil
}

// Generator generates traversal code from type declarations.
type Generator struct {
	fileName string
	config   *Config
}

// Option configures a Generator.
type Option func(*Generator)

// WithFileName overrides the name of the emitted file. The default is
// [GeneratedFileName].
func WithFileName(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.fileName = name
		}
	}
}

// WithConfig merges a configuration file's instance declarations over the
// declarations discovered from source directives.
func WithConfig(cfg *Config) Option {
	return func(g *Generator) {
		g.config = cfg
	}
}

// New creates a Generator with the given options.
func New(opts ...Option) *Generator {
	g := &Generator{fileName: GeneratedFileName}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate plans and emits traversal code for a set of declarations that
// belong to one package. No file is produced when any declaration fails
// validation; generation fails closed rather than emitting code that skips
// part of a tree.
func (g *Generator) Generate(packageName string, decls []TypeDecl) (*Result, error) {
	start := time.Now()
	result := &Result{PackageName: packageName}

	if g.config != nil {
		result.Issues = append(result.Issues, g.config.apply(decls)...)
	}

	p := newPlanner(decls)
	plans := p.planAll()
	result.Issues = append(result.Issues, p.issues...)
	g.finish(result, start)
	if result.HasErrors() {
		return result, nil
	}

	for _, plan := range plans {
		if plan.Self {
			result.GeneratedMethods += len(plan.Variants)
		} else {
			result.GeneratedBiplates++
		}
	}

	content, err := emitFile(packageName, plans)
	if err != nil {
		result.Issues = append(result.Issues, Issue{
			Path:     packageName,
			Message:  err.Error(),
			Severity: SeverityCritical,
		})
		g.finish(result, start)
		return result, err
	}
	result.Files = append(result.Files, GeneratedFile{Name: g.fileName, Content: content})
	g.finish(result, start)
	return result, nil
}

// GenerateDir loads declarations from the Go package in dir and generates
// traversal code for them.
func (g *Generator) GenerateDir(dir string) (*Result, error) {
	loadStart := time.Now()
	pkgName, decls, loadIssues, err := LoadWithConfig(dir, g.config)
	if err != nil {
		return nil, err
	}

	result, err := g.Generate(pkgName, decls)
	if result != nil {
		result.Issues = append(loadIssues, result.Issues...)
		result.LoadTime = time.Since(loadStart) - result.GenerateTime
		g.countIssues(result)
	}
	return result, err
}

func (g *Generator) finish(result *Result, start time.Time) {
	result.GenerateTime = time.Since(start)
	g.countIssues(result)
}

func (g *Generator) countIssues(result *Result) {
	info, warn, errs, crit := issues.Count(result.Issues)
	result.InfoCount = info
	result.WarningCount = warn
	result.ErrorCount = errs
	result.CriticalCount = crit
	result.Success = len(result.Files) > 0 && !result.HasErrors()
}
