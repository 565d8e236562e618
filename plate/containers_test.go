package plate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceBiplateEmpty(t *testing.T) {
	tree, ctx := SliceBiplate[Expr]([]Expr{})
	assert.True(t, tree.IsLeafless())
	assert.Empty(t, ctx(Zero[Expr]()))
}

func TestSliceBiplateSameType(t *testing.T) {
	xs := []Expr{Val{N: 1}, Var{Name: "x"}, Neg{E: Val{N: 2}}}

	tree, ctx := SliceBiplate[Expr](xs)
	got, rebuild := tree.List()
	require.Equal(t, xs, got, "every element is a direct child, in order")

	replaced := ctx(rebuild([]Expr{Val{N: 9}, Val{N: 8}, Val{N: 7}}))
	assert.Equal(t, []Expr{Val{N: 9}, Val{N: 8}, Val{N: 7}}, replaced)
}

func TestSliceBiplateDelegatesPerElement(t *testing.T) {
	stmts := []Stmt{
		Assign{Name: "a", Value: Val{N: 1}},
		Assign{Name: "b", Value: Val{N: 2}},
	}

	tree, ctx := SliceBiplate[Expr](stmts)
	xs, rebuild := tree.List()
	require.Equal(t, []Expr{Val{N: 1}, Val{N: 2}}, xs)

	got := ctx(rebuild([]Expr{Val{N: 10}, Val{N: 20}}))
	want := []Stmt{
		Assign{Name: "a", Value: Val{N: 10}},
		Assign{Name: "b", Value: Val{N: 20}},
	}
	assert.Equal(t, want, got)
}

func TestSliceOfComposesForNestedSlices(t *testing.T) {
	step := SliceOf[Expr](SliceBiplate[Expr, Expr])

	xss := [][]Expr{
		{Val{N: 1}},
		{},
		{Val{N: 2}, Val{N: 3}},
	}
	tree, ctx := step(xss)
	xs, rebuild := tree.List()
	require.Equal(t, []Expr{Val{N: 1}, Val{N: 2}, Val{N: 3}}, xs)

	got := ctx(rebuild([]Expr{Val{N: 4}, Val{N: 5}, Val{N: 6}}))
	want := [][]Expr{
		{Val{N: 4}},
		{},
		{Val{N: 5}, Val{N: 6}},
	}
	assert.Equal(t, want, got)
}

func TestPtrBiplateNil(t *testing.T) {
	tree, ctx := PtrBiplate[BTree]((*BTree)(nil))
	assert.True(t, tree.IsLeafless())
	assert.Nil(t, ctx(Zero[BTree]()))
}

func TestPtrBiplateRoundTrip(t *testing.T) {
	node := &BTree{Val: 1}

	tree, ctx := PtrBiplate[BTree](node)
	xs, rebuild := tree.List()
	require.Equal(t, []BTree{{Val: 1}}, xs)

	got := ctx(rebuild([]BTree{{Val: 2}}))
	require.NotNil(t, got)
	assert.Equal(t, BTree{Val: 2}, *got)
	assert.NotSame(t, node, got, "rebuilding allocates a fresh pointer")
}

func TestPairBiplate(t *testing.T) {
	p := Pair[string, Expr]{First: "x", Second: Val{N: 1}}

	tree, ctx := PairBiplate[Expr](p)
	xs, rebuild := tree.List()
	require.Equal(t, []Expr{Val{N: 1}}, xs)

	got := ctx(rebuild([]Expr{Var{Name: "y"}}))
	assert.Equal(t, Pair[string, Expr]{First: "x", Second: Var{Name: "y"}}, got)
}

func TestPairBiplateBothSides(t *testing.T) {
	p := Pair[Expr, Expr]{First: Val{N: 1}, Second: Val{N: 2}}

	tree, ctx := PairBiplate[Expr](p)
	xs, rebuild := tree.List()
	require.Equal(t, []Expr{Val{N: 1}, Val{N: 2}}, xs)

	got := ctx(rebuild([]Expr{Val{N: 3}, Val{N: 4}}))
	assert.Equal(t, Pair[Expr, Expr]{First: Val{N: 3}, Second: Val{N: 4}}, got)
}
