package plate

// BTree is a plain struct fixture: a binary tree that traverses into itself
// through pointer fields. Its Uniplate method has the shape the derivation
// engine emits for struct declarations.
type BTree struct {
	Val   int
	Left  *BTree
	Right *BTree
}

func (n BTree) Uniplate() (Tree[BTree], func(Tree[BTree]) BTree) {
	f0 := n.Val
	t1, c1 := PtrBiplate[BTree](n.Left)
	t2, c2 := PtrBiplate[BTree](n.Right)
	children := Many(Zero[BTree](), t1, t2)
	ctx := func(tree Tree[BTree]) BTree {
		subs := tree.MustMany(3)
		return BTree{Val: f0, Left: c1(subs[1]), Right: c2(subs[2])}
	}
	return children, ctx
}
