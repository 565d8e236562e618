package derive

import "strings"

// DeclKind distinguishes the two declaration shapes the generator accepts.
type DeclKind int

const (
	// DeclStruct is a plain struct type; it traverses as a single node kind.
	DeclStruct DeclKind = iota
	// DeclEnum is a sealed interface whose implementing structs are the node
	// kinds, discovered through the marker-method convention (isFoo()).
	DeclEnum
)

// String returns the declaration kind as it appears in diagnostics.
func (k DeclKind) String() string {
	switch k {
	case DeclStruct:
		return "struct"
	case DeclEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// TypeDecl is one type the generator derives traversals for. It is the
// contract between the front ends (source directives, YAML config) and the
// planner: everything the generator needs to know about a type, with source
// syntax already stripped away.
type TypeDecl struct {
	// Name is the declared type name.
	Name string
	// Kind is the declaration shape.
	Kind DeclKind
	// Variants are the node kinds, in declaration order. Struct declarations
	// have exactly one variant carrying the struct's own fields.
	Variants []Variant
	// Instances are the traversal instances requested for this type.
	Instances []Instance
	// File and Line locate the declaration for diagnostics.
	File string
	Line int
}

// Variant is one node kind of a declaration: the struct name and its fields
// in order.
type Variant struct {
	Name   string
	Fields []Field
}

// Field is a single struct field with its classified type.
type Field struct {
	Name string
	Type TypeRef
}

// RefKind classifies a field type into the shapes the generator can traverse.
type RefKind int

const (
	// RefNamed is a named type (declared or builtin), traversed by dispatch.
	RefNamed RefKind = iota
	// RefPointer is one level of pointer indirection around a classified
	// element. Deeper indirection is rejected at classification time.
	RefPointer
	// RefSlice is a slice of a classified element.
	RefSlice
	// RefPair is a plate.Pair with two classified halves.
	RefPair
)

// TypeRef is the classified shape of a field type. Containers nest: a
// [][]Expr field classifies as Slice(Slice(Named "Expr")).
type TypeRef struct {
	Kind          RefKind
	Name          string   // RefNamed: the type name, possibly qualified
	Elem          *TypeRef // RefPointer, RefSlice
	First, Second *TypeRef // RefPair
}

// NamedRef returns a reference to the named type.
func NamedRef(name string) TypeRef {
	return TypeRef{Kind: RefNamed, Name: name}
}

// Base returns the innermost named type of the reference: the name itself for
// RefNamed, through Elem for pointers and slices. Pairs have no single base
// and return ok=false; their halves are resolved independently.
func (t TypeRef) Base() (string, bool) {
	switch t.Kind {
	case RefNamed:
		return t.Name, true
	case RefPointer, RefSlice:
		return t.Elem.Base()
	default:
		return "", false
	}
}

// String returns the Go spelling of the reference, used in diagnostics and in
// emitted code comments.
func (t TypeRef) String() string {
	switch t.Kind {
	case RefNamed:
		return t.Name
	case RefPointer:
		return "*" + t.Elem.String()
	case RefSlice:
		return "[]" + t.Elem.String()
	case RefPair:
		return "plate.Pair[" + t.First.String() + ", " + t.Second.String() + "]"
	default:
		return "<invalid>"
	}
}

// Instance is one requested traversal for a declaration. The self-instance
// (To equal to the declaring type's name) produces Uniplate methods; every
// other instance produces a biplate function.
type Instance struct {
	// To is the target type name of the traversal.
	To string
	// WalkInto lists additional type names whose fields are recursed into.
	// The source and target types are always walked and need not be listed.
	WalkInto []string
}

// IsSelf reports whether the instance is the self-traversal of decl.
func (i Instance) IsSelf(decl *TypeDecl) bool {
	return i.To == decl.Name
}

// walkSet returns the set of type names this instance walks into: the source
// type, the target type, and the explicit whitelist. Walkability does not
// extend transitively through other declared instances; only names in this
// set are recursed into.
func (i Instance) walkSet(from string) map[string]bool {
	set := make(map[string]bool, len(i.WalkInto)+2)
	set[from] = true
	set[i.To] = true
	for _, name := range i.WalkInto {
		set[name] = true
	}
	return set
}

// SelfInstance returns the self-instance of the declaration if one was
// requested.
func (d *TypeDecl) SelfInstance() (Instance, bool) {
	for _, inst := range d.Instances {
		if inst.IsSelf(d) {
			return inst, true
		}
	}
	return Instance{}, false
}

// qualifier splits a possibly package-qualified type name into its package
// qualifier and bare name.
func qualifier(name string) (pkg, bare string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
