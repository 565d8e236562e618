package derive

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/conjure-cp/uniplate/internal/issues"
	"github.com/conjure-cp/uniplate/internal/severity"
)

// Config declares traversal instances in a YAML file, as an alternative or
// supplement to //uniplate: source directives. Directives and configuration
// merge per type; where both declare the same instance the configuration
// wins.
//
//	dir: ./ast
//	types:
//	  Stmt:
//	    derive: true
//	    walkinto: [Expr]
//	    biplates:
//	      - to: string
//	        walkinto: [Expr]
type Config struct {
	// Dir is the package directory to generate for, relative to the config
	// file. Optional; flags and defaults take over when empty.
	Dir string `yaml:"dir,omitempty"`
	// Output overrides the generated file name.
	Output string `yaml:"output,omitempty"`
	// Types maps type names to their requested instances.
	Types map[string]TypeConfig `yaml:"types"`
}

// TypeConfig holds the instances requested for one type.
type TypeConfig struct {
	// Derive requests the self-traversal (Uniplate methods).
	Derive bool `yaml:"derive,omitempty"`
	// WalkInto lists additional types the self-traversal recurses into.
	// A non-empty list implies Derive.
	WalkInto []string `yaml:"walkinto,omitempty"`
	// Biplates lists cross-type traversals to generate.
	Biplates []BiplateConfig `yaml:"biplates,omitempty"`
}

// BiplateConfig is one cross-type traversal request.
type BiplateConfig struct {
	// To is the target type name.
	To string `yaml:"to"`
	// WalkInto lists additional types the traversal recurses into.
	WalkInto []string `yaml:"walkinto,omitempty"`
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Message: "failed to read file", Cause: err}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Path: path, Message: "invalid YAML", Cause: err}
	}
	for name, tc := range cfg.Types {
		for _, bp := range tc.Biplates {
			if bp.To == "" {
				return nil, &ConfigError{
					Path:    path,
					Message: fmt.Sprintf("type %s: biplate entry requires to:", name),
				}
			}
		}
	}
	return &cfg, nil
}

// apply merges the configured instances into the loaded declarations.
// Configuration entries for types absent from decls are reported by the
// loader; apply only deals with types that were found.
func (c *Config) apply(decls []TypeDecl) []issues.Issue {
	var found []issues.Issue
	for i := range decls {
		d := &decls[i]
		tc, ok := c.Types[d.Name]
		if !ok {
			continue
		}

		if tc.Derive || len(tc.WalkInto) > 0 {
			if self, exists := d.SelfInstance(); exists {
				if len(tc.WalkInto) > 0 && !sameNames(self.WalkInto, tc.WalkInto) {
					found = append(found, issues.Issue{
						Path:     d.Name,
						Message:  "configuration overrides the directive walk-into list",
						Severity: severity.SeverityInfo,
						File:     d.File,
						Line:     d.Line,
					})
					c.replaceInstance(d, Instance{To: d.Name, WalkInto: tc.WalkInto})
				}
			} else {
				d.Instances = append(d.Instances, Instance{To: d.Name, WalkInto: tc.WalkInto})
			}
		}

		for _, bp := range tc.Biplates {
			inst := Instance{To: bp.To, WalkInto: bp.WalkInto}
			if c.hasInstance(d, bp.To) {
				c.replaceInstance(d, inst)
			} else {
				d.Instances = append(d.Instances, inst)
			}
		}
	}
	return found
}

func (c *Config) hasInstance(d *TypeDecl, to string) bool {
	for _, inst := range d.Instances {
		if inst.To == to {
			return true
		}
	}
	return false
}

func (c *Config) replaceInstance(d *TypeDecl, inst Instance) {
	for i := range d.Instances {
		if d.Instances[i].To == inst.To {
			d.Instances[i] = inst
			return
		}
	}
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
