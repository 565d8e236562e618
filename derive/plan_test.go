package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conjure-cp/uniplate/internal/severity"
)

func named(name string) TypeRef { return NamedRef(name) }

func sliceOf(elem TypeRef) TypeRef { return TypeRef{Kind: RefSlice, Elem: &elem} }

func ptrTo(elem TypeRef) TypeRef { return TypeRef{Kind: RefPointer, Elem: &elem} }

func pairOf(first, second TypeRef) TypeRef {
	return TypeRef{Kind: RefPair, First: &first, Second: &second}
}

// paperDecls is the Stmt/Expr language from the uniplate paper as a
// declaration batch: Stmt derives its self-traversal walking into Expr,
// plus a biplate to string; Expr derives its self-traversal.
func paperDecls() []TypeDecl {
	return []TypeDecl{
		{
			Name: "Stmt",
			Kind: DeclEnum,
			Variants: []Variant{
				{Name: "Assign", Fields: []Field{
					{Name: "Name", Type: named("string")},
					{Name: "Value", Type: named("Expr")},
				}},
				{Name: "Sequence", Fields: []Field{
					{Name: "Stmts", Type: sliceOf(named("Stmt"))},
				}},
				{Name: "If", Fields: []Field{
					{Name: "Cond", Type: named("Expr")},
					{Name: "Then", Type: named("Stmt")},
					{Name: "Else", Type: named("Stmt")},
				}},
				{Name: "While", Fields: []Field{
					{Name: "Cond", Type: named("Expr")},
					{Name: "Body", Type: named("Stmt")},
				}},
			},
			Instances: []Instance{
				{To: "Stmt", WalkInto: []string{"Expr"}},
				{To: "string", WalkInto: []string{"Expr"}},
			},
		},
		{
			Name: "Expr",
			Kind: DeclEnum,
			Variants: []Variant{
				{Name: "Add", Fields: []Field{
					{Name: "Lhs", Type: named("Expr")},
					{Name: "Rhs", Type: named("Expr")},
				}},
				{Name: "Val", Fields: []Field{
					{Name: "N", Type: named("int")},
				}},
				{Name: "Var", Fields: []Field{
					{Name: "Name", Type: named("string")},
				}},
				{Name: "Neg", Fields: []Field{
					{Name: "E", Type: named("Expr")},
				}},
			},
			Instances: []Instance{
				{To: "Expr"},
			},
		},
	}
}

func planPair(p []instancePlan, from, to string) (instancePlan, bool) {
	for _, plan := range p {
		if plan.From == from && plan.To == to {
			return plan, true
		}
	}
	return instancePlan{}, false
}

func TestPlannerCoversDeclaredAndDerivedInstances(t *testing.T) {
	p := newPlanner(paperDecls())
	plans := p.planAll()

	var pairs [][2]string
	for _, plan := range plans {
		pairs = append(pairs, [2]string{plan.From, plan.To})
	}
	assert.Equal(t, [][2]string{
		{"Stmt", "Stmt"},
		{"Stmt", "string"},
		{"Expr", "Expr"},
		{"Expr", "Stmt"},
		{"Expr", "string"},
	}, pairs, "walking an Expr field inside a Stmt instance requires the Expr instance toward the same target")

	assert.Empty(t, p.issues)
}

func TestPlannerWalkDecisions(t *testing.T) {
	plans := newPlanner(paperDecls()).planAll()

	self, ok := planPair(plans, "Stmt", "Stmt")
	require.True(t, ok)
	assert.True(t, self.Self)
	assert.True(t, self.Enum)

	assign := self.Variants[0]
	require.Equal(t, "Assign", assign.Name)
	assert.False(t, assign.Fields[0].Walk, "string is outside the walk set of Stmt -> Stmt")
	assert.True(t, assign.Fields[1].Walk, "Expr is whitelisted")

	toString, ok := planPair(plans, "Stmt", "string")
	require.True(t, ok)
	assert.False(t, toString.Self)
	assert.True(t, toString.Variants[0].Fields[0].Walk, "the target type is always walked")
}

func TestPlannerWalkIntoIsNotTransitive(t *testing.T) {
	// A walks into B; B's fields of type C are opaque in the A -> A
	// traversal even though B declares its own instance walking into C.
	decls := []TypeDecl{
		{
			Name: "A", Kind: DeclStruct,
			Variants: []Variant{{Name: "A", Fields: []Field{
				{Name: "B", Type: named("B")},
			}}},
			Instances: []Instance{{To: "A", WalkInto: []string{"B"}}},
		},
		{
			Name: "B", Kind: DeclStruct,
			Variants: []Variant{{Name: "B", Fields: []Field{
				{Name: "C", Type: named("C")},
				{Name: "Self", Type: ptrTo(named("A"))},
			}}},
			Instances: []Instance{{To: "B", WalkInto: []string{"C"}}},
		},
		{
			Name: "C", Kind: DeclStruct,
			Variants:  []Variant{{Name: "C", Fields: nil}},
			Instances: []Instance{{To: "C"}},
		},
	}

	plans := newPlanner(decls).planAll()

	derived, ok := planPair(plans, "B", "A")
	require.True(t, ok, "walking A.B requires B -> A")
	assert.False(t, derived.Variants[0].Fields[0].Walk,
		"C is not in the walk set of the A traversal")
	assert.True(t, derived.Variants[0].Fields[1].Walk,
		"the source type is always walked")
}

func TestPlannerDuplicateSelfInstance(t *testing.T) {
	decls := paperDecls()
	decls[0].Instances = append(decls[0].Instances, Instance{To: "Stmt"})

	p := newPlanner(decls)
	p.planAll()

	require.NotEmpty(t, p.issues)
	found := false
	for _, issue := range p.issues {
		if issue.Severity == severity.SeverityError {
			assert.Contains(t, issue.Message, "duplicate")
			found = true
		}
	}
	assert.True(t, found)
}

func TestPlannerEmptyEnum(t *testing.T) {
	decls := []TypeDecl{{
		Name:      "E",
		Kind:      DeclEnum,
		Instances: []Instance{{To: "E"}},
	}}

	p := newPlanner(decls)
	p.planAll()

	require.Len(t, p.issues, 1)
	assert.Equal(t, severity.SeverityError, p.issues[0].Severity)
	assert.Contains(t, p.issues[0].Message, "no variants")
}

func TestPlannerUnknownWalkIntoWarns(t *testing.T) {
	decls := []TypeDecl{{
		Name: "A", Kind: DeclStruct,
		Variants:  []Variant{{Name: "A", Fields: nil}},
		Instances: []Instance{{To: "A", WalkInto: []string{"Nowhere"}}},
	}}

	p := newPlanner(decls)
	p.planAll()

	require.Len(t, p.issues, 1)
	assert.Equal(t, severity.SeverityWarning, p.issues[0].Severity)
	assert.Contains(t, p.issues[0].Message, "Nowhere")
}

func TestPlannerUnknownWalkedBaseWarns(t *testing.T) {
	// Foreign is walked but has no declaration here; the traversal relies
	// on a registration from elsewhere.
	decls := []TypeDecl{{
		Name: "A", Kind: DeclStruct,
		Variants: []Variant{{Name: "A", Fields: []Field{
			{Name: "F", Type: named("Foreign")},
		}}},
		Instances: []Instance{{To: "A", WalkInto: []string{"Foreign"}}},
	}}

	p := newPlanner(decls)
	plans := p.planAll()

	require.Len(t, plans, 1)
	assert.True(t, plans[0].Variants[0].Fields[0].Walk)

	warned := false
	for _, issue := range p.issues {
		if issue.Severity == severity.SeverityWarning {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestPlannerPairComponentsResolveIndependently(t *testing.T) {
	decls := []TypeDecl{
		{
			Name: "Rec", Kind: DeclStruct,
			Variants: []Variant{{Name: "Rec", Fields: []Field{
				{Name: "Entry", Type: pairOf(named("string"), named("Rec"))},
			}}},
			Instances: []Instance{{To: "Rec"}},
		},
	}

	p := newPlanner(decls)
	plans := p.planAll()

	require.Len(t, plans, 1)
	assert.True(t, plans[0].Variants[0].Fields[0].Walk,
		"a pair is walked when either half is walkable")
	assert.Empty(t, p.issues)
}
