package derive

import (
	"fmt"
	"go/ast"
	"go/token"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/conjure-cp/uniplate/internal/issues"
	"github.com/conjure-cp/uniplate/internal/severity"
)

// Directive prefixes recognized on type declarations.
//
//	//uniplate:derive                    request the self-traversal
//	//uniplate:walkinto A,B              walk-into list for the self-traversal
//	//uniplate:biplate to=T walkinto=A,B request a cross-type traversal
const directivePrefix = "//uniplate:"

// Load scans the Go package in dir for //uniplate: directives and returns
// the package name and the type declarations they select. Enum variants are
// discovered through the marker-method convention: a struct S is a variant
// of interface I when S has a value-receiver method named is<I>.
//
// Loading is purely syntactic; the previously generated file is skipped so
// that stale output can never block regeneration.
func Load(dir string) (string, []TypeDecl, []issues.Issue, error) {
	return LoadWithConfig(dir, nil)
}

// LoadWithConfig is [Load] with a configuration file's type selection merged
// in: types named in cfg are selected even without a directive. Instance
// details from cfg are applied later, during generation.
func LoadWithConfig(dir string, cfg *Config) (string, []TypeDecl, []issues.Issue, error) {
	pkgCfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:  dir,
	}
	pkgs, err := packages.Load(pkgCfg, ".")
	if err != nil {
		return "", nil, nil, &LoadError{Dir: dir, Message: "failed to load package", Cause: err}
	}
	if len(pkgs) == 0 {
		return "", nil, nil, &LoadError{Dir: dir, Message: "no Go package found"}
	}
	pkg := pkgs[0]
	for _, pkgErr := range pkg.Errors {
		return "", nil, nil, &LoadError{Dir: dir, Message: pkgErr.Msg}
	}

	s := newScanner(pkg.Fset)
	for _, file := range pkg.Syntax {
		name := pkg.Fset.Position(file.Pos()).Filename
		if strings.HasSuffix(name, GeneratedFileName) {
			continue
		}
		s.scanFile(file)
	}
	decls := s.assemble(cfg)
	return pkg.Name, decls, s.issues, nil
}

// typeInfo is the raw syntax collected for one type declaration before
// assembly into a TypeDecl.
type typeInfo struct {
	name       string
	iface      *ast.InterfaceType
	structType *ast.StructType
	directives []string
	pos        token.Pos
}

type scanner struct {
	fset    *token.FileSet
	types   map[string]*typeInfo
	order   []string
	markers map[string][]string // enum name -> variant names, marker order
	issues  []issues.Issue
}

func newScanner(fset *token.FileSet) *scanner {
	return &scanner{
		fset:    fset,
		types:   make(map[string]*typeInfo),
		markers: make(map[string][]string),
	}
}

func (s *scanner) scanFile(file *ast.File) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(d.Specs) == 1 {
					doc = d.Doc
				}
				s.recordType(ts, doc)
			}
		case *ast.FuncDecl:
			s.recordMarker(d)
		}
	}
}

func (s *scanner) recordType(ts *ast.TypeSpec, doc *ast.CommentGroup) {
	info := &typeInfo{name: ts.Name.Name, pos: ts.Pos()}
	switch t := ts.Type.(type) {
	case *ast.InterfaceType:
		info.iface = t
	case *ast.StructType:
		info.structType = t
	}
	if doc != nil {
		for _, c := range doc.List {
			if strings.HasPrefix(c.Text, directivePrefix) {
				info.directives = append(info.directives, strings.TrimPrefix(c.Text, directivePrefix))
			}
		}
	}
	s.types[info.name] = info
	s.order = append(s.order, info.name)
}

// recordMarker notes variant membership from marker methods: a method
// is<Name>() with no parameters or results marks its receiver as a variant
// of the enum <Name>.
func (s *scanner) recordMarker(d *ast.FuncDecl) {
	if d.Recv == nil || len(d.Recv.List) != 1 {
		return
	}
	if !strings.HasPrefix(d.Name.Name, "is") || len(d.Name.Name) < 3 {
		return
	}
	enum := d.Name.Name[2:]
	if d.Type.Params.NumFields() != 0 || d.Type.Results.NumFields() != 0 {
		return
	}
	recv := d.Recv.List[0].Type
	if star, ok := recv.(*ast.StarExpr); ok {
		recv = star.X
	}
	ident, ok := recv.(*ast.Ident)
	if !ok {
		return
	}
	s.markers[enum] = append(s.markers[enum], ident.Name)
}

// assemble builds TypeDecls for every type selected by a directive or by
// the configuration.
func (s *scanner) assemble(cfg *Config) []TypeDecl {
	var decls []TypeDecl
	for _, name := range s.selected(cfg) {
		info := s.types[name]
		if decl, ok := s.buildDecl(info); ok {
			decls = append(decls, decl)
		}
	}
	return decls
}

// selected returns the names of types to derive, in declaration order.
func (s *scanner) selected(cfg *Config) []string {
	chosen := make(map[string]bool)
	for _, name := range s.order {
		if len(s.types[name].directives) > 0 {
			chosen[name] = true
		}
	}
	if cfg != nil {
		for name := range cfg.Types {
			if _, known := s.types[name]; !known {
				s.issues = append(s.issues, issues.Issue{
					Path:     name,
					Message:  fmt.Sprintf("configured type %s is not declared in this package", name),
					Severity: severity.SeverityWarning,
				})
				continue
			}
			chosen[name] = true
		}
	}

	var names []string
	for _, name := range s.order {
		if chosen[name] {
			names = append(names, name)
		}
	}
	return names
}

func (s *scanner) buildDecl(info *typeInfo) (TypeDecl, bool) {
	pos := s.fset.Position(info.pos)
	decl := TypeDecl{Name: info.name, File: pos.Filename, Line: pos.Line}

	switch {
	case info.iface != nil:
		decl.Kind = DeclEnum
		decl.Variants = s.enumVariants(info.name)
	case info.structType != nil:
		decl.Kind = DeclStruct
		fields, ok := s.classifyFields(info.name, info.name, info.structType)
		if !ok {
			return TypeDecl{}, false
		}
		decl.Variants = []Variant{{Name: info.name, Fields: fields}}
	default:
		s.issues = append(s.issues, issues.Issue{
			Path:     info.name,
			Message:  fmt.Sprintf("type %s is neither a struct nor an interface; cannot derive a traversal", info.name),
			Severity: severity.SeverityError,
			File:     pos.Filename,
			Line:     pos.Line,
		})
		return TypeDecl{}, false
	}

	decl.Instances = s.parseDirectives(&decl, info)
	return decl, true
}

// enumVariants resolves the marker-discovered variants of an enum, ordered
// by the variant type's declaration position.
func (s *scanner) enumVariants(enum string) []Variant {
	names := append([]string(nil), s.markers[enum]...)
	sort.SliceStable(names, func(i, j int) bool {
		a, aok := s.types[names[i]]
		b, bok := s.types[names[j]]
		if !aok || !bok {
			return aok
		}
		return a.pos < b.pos
	})

	var variants []Variant
	for _, name := range names {
		info, ok := s.types[name]
		if !ok || info.structType == nil {
			s.issues = append(s.issues, issues.Issue{
				Path:     issues.FormatPath(enum, name),
				Message:  fmt.Sprintf("variant %s of %s is not a struct type", name, enum),
				Severity: severity.SeverityError,
			})
			continue
		}
		fields, ok := s.classifyFields(enum, name, info.structType)
		if !ok {
			continue
		}
		variants = append(variants, Variant{Name: name, Fields: fields})
	}
	return variants
}

// classifyFields classifies every field of a variant struct. Any rejected
// field fails the whole variant; generation must not silently treat an
// unsupported field as opaque.
func (s *scanner) classifyFields(declName, variantName string, st *ast.StructType) ([]Field, bool) {
	var fields []Field
	ok := true
	for _, f := range st.Fields.List {
		pos := s.fset.Position(f.Pos())
		if len(f.Names) == 0 {
			s.issues = append(s.issues, issues.Issue{
				Path:     issues.FormatPath(declName, variantName),
				Message:  "embedded fields are not supported",
				Severity: severity.SeverityError,
				File:     pos.Filename,
				Line:     pos.Line,
				Column:   pos.Column,
			})
			ok = false
			continue
		}
		ref, rejectErr := classifyExpr(f.Type)
		if rejectErr != nil {
			rejectErr.Decl = declName
			rejectErr.Field = issues.FormatPath(variantName, f.Names[0].Name)
			s.issues = append(s.issues, issues.Issue{
				Path:     issues.FormatPath(declName, variantName, f.Names[0].Name),
				Message:  rejectErr.Error(),
				Severity: severity.SeverityError,
				File:     pos.Filename,
				Line:     pos.Line,
				Column:   pos.Column,
			})
			ok = false
			continue
		}
		for _, name := range f.Names {
			fields = append(fields, Field{Name: name.Name, Type: ref})
		}
	}
	return fields, ok
}

// parseDirectives turns the //uniplate: comments of a declaration into
// instances.
func (s *scanner) parseDirectives(decl *TypeDecl, info *typeInfo) []Instance {
	var (
		instances []Instance
		self      *Instance
	)
	for _, directive := range info.directives {
		verb, rest, _ := strings.Cut(directive, " ")
		switch verb {
		case "derive":
			if self == nil {
				instances = append(instances, Instance{To: decl.Name})
				self = &instances[len(instances)-1]
			}
		case "walkinto":
			if self == nil {
				instances = append(instances, Instance{To: decl.Name})
				self = &instances[len(instances)-1]
			}
			self.WalkInto = append(self.WalkInto, splitNames(rest)...)
		case "biplate":
			inst, err := parseBiplateDirective(rest)
			if err != nil {
				s.issues = append(s.issues, issues.Issue{
					Path:     decl.Name,
					Message:  err.Error(),
					Severity: severity.SeverityError,
					File:     decl.File,
					Line:     decl.Line,
				})
				continue
			}
			instances = append(instances, inst)
		default:
			s.issues = append(s.issues, issues.Issue{
				Path:     decl.Name,
				Message:  fmt.Sprintf("unknown directive %q", directivePrefix+directive),
				Severity: severity.SeverityWarning,
				File:     decl.File,
				Line:     decl.Line,
			})
		}
	}
	return instances
}

// parseBiplateDirective parses "to=T walkinto=A,B".
func parseBiplateDirective(args string) (Instance, error) {
	var inst Instance
	for _, arg := range strings.Fields(args) {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return Instance{}, fmt.Errorf("malformed biplate directive argument %q; want key=value", arg)
		}
		switch key {
		case "to":
			inst.To = value
		case "walkinto":
			inst.WalkInto = append(inst.WalkInto, splitNames(value)...)
		default:
			return Instance{}, fmt.Errorf("unknown biplate directive argument %q", key)
		}
	}
	if inst.To == "" {
		return Instance{}, fmt.Errorf("biplate directive requires to=<type>")
	}
	return inst, nil
}

func splitNames(list string) []string {
	var names []string
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
