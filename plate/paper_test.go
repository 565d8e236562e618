package plate

// The Stmt/Expr language from the uniplate paper, with traversal steps
// written out by hand in exactly the shape the derive package emits. The
// walk-into sets are: Stmt walks into Expr, Stmt biplates to Expr and (via
// Expr) to string, Expr biplates to string and Stmt.

type Stmt interface{ isStmt() }

type Assign struct {
	Name  string
	Value Expr
}

type Sequence struct {
	Stmts []Stmt
}

type If struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

type While struct {
	Cond Expr
	Body Stmt
}

func (Assign) isStmt()   {}
func (Sequence) isStmt() {}
func (If) isStmt()       {}
func (While) isStmt()    {}

type Expr interface{ isExpr() }

type Add struct{ Lhs, Rhs Expr }
type Sub struct{ Lhs, Rhs Expr }
type Mul struct{ Lhs, Rhs Expr }
type Div struct{ Lhs, Rhs Expr }
type Val struct{ N int }
type Var struct{ Name string }
type Neg struct{ E Expr }

func (Add) isExpr() {}
func (Sub) isExpr() {}
func (Mul) isExpr() {}
func (Div) isExpr() {}
func (Val) isExpr() {}
func (Var) isExpr() {}
func (Neg) isExpr() {}

func (n Assign) Uniplate() (Tree[Stmt], func(Tree[Stmt]) Stmt) {
	f0 := n.Name
	t1, c1 := BiplateFor[Stmt](n.Value)
	children := Many(Zero[Stmt](), t1)
	ctx := func(t Tree[Stmt]) Stmt {
		subs := t.MustMany(2)
		return Assign{Name: f0, Value: c1(subs[1])}
	}
	return children, ctx
}

func (n Sequence) Uniplate() (Tree[Stmt], func(Tree[Stmt]) Stmt) {
	t0, c0 := SliceBiplate[Stmt](n.Stmts)
	children := Many(t0)
	ctx := func(t Tree[Stmt]) Stmt {
		subs := t.MustMany(1)
		return Sequence{Stmts: c0(subs[0])}
	}
	return children, ctx
}

func (n If) Uniplate() (Tree[Stmt], func(Tree[Stmt]) Stmt) {
	t0, c0 := BiplateFor[Stmt](n.Cond)
	t1, c1 := BiplateFor[Stmt](n.Then)
	t2, c2 := BiplateFor[Stmt](n.Else)
	children := Many(t0, t1, t2)
	ctx := func(t Tree[Stmt]) Stmt {
		subs := t.MustMany(3)
		return If{Cond: c0(subs[0]), Then: c1(subs[1]), Else: c2(subs[2])}
	}
	return children, ctx
}

func (n While) Uniplate() (Tree[Stmt], func(Tree[Stmt]) Stmt) {
	t0, c0 := BiplateFor[Stmt](n.Cond)
	t1, c1 := BiplateFor[Stmt](n.Body)
	children := Many(t0, t1)
	ctx := func(t Tree[Stmt]) Stmt {
		subs := t.MustMany(2)
		return While{Cond: c0(subs[0]), Body: c1(subs[1])}
	}
	return children, ctx
}

func binExpr(lhs, rhs Expr, mk func(Expr, Expr) Expr) (Tree[Expr], func(Tree[Expr]) Expr) {
	t0, c0 := BiplateFor[Expr](lhs)
	t1, c1 := BiplateFor[Expr](rhs)
	children := Many(t0, t1)
	ctx := func(t Tree[Expr]) Expr {
		subs := t.MustMany(2)
		return mk(c0(subs[0]), c1(subs[1]))
	}
	return children, ctx
}

func (n Add) Uniplate() (Tree[Expr], func(Tree[Expr]) Expr) {
	return binExpr(n.Lhs, n.Rhs, func(a, b Expr) Expr { return Add{a, b} })
}

func (n Sub) Uniplate() (Tree[Expr], func(Tree[Expr]) Expr) {
	return binExpr(n.Lhs, n.Rhs, func(a, b Expr) Expr { return Sub{a, b} })
}

func (n Mul) Uniplate() (Tree[Expr], func(Tree[Expr]) Expr) {
	return binExpr(n.Lhs, n.Rhs, func(a, b Expr) Expr { return Mul{a, b} })
}

func (n Div) Uniplate() (Tree[Expr], func(Tree[Expr]) Expr) {
	return binExpr(n.Lhs, n.Rhs, func(a, b Expr) Expr { return Div{a, b} })
}

func (n Val) Uniplate() (Tree[Expr], func(Tree[Expr]) Expr) {
	f0 := n.N
	children := Many(Zero[Expr]())
	ctx := func(t Tree[Expr]) Expr {
		t.MustMany(1)
		return Val{N: f0}
	}
	return children, ctx
}

func (n Var) Uniplate() (Tree[Expr], func(Tree[Expr]) Expr) {
	f0 := n.Name
	children := Many(Zero[Expr]())
	ctx := func(t Tree[Expr]) Expr {
		t.MustMany(1)
		return Var{Name: f0}
	}
	return children, ctx
}

func (n Neg) Uniplate() (Tree[Expr], func(Tree[Expr]) Expr) {
	t0, c0 := BiplateFor[Expr](n.E)
	children := Many(t0)
	ctx := func(t Tree[Expr]) Expr {
		subs := t.MustMany(1)
		return Neg{E: c0(subs[0])}
	}
	return children, ctx
}

func biplateStmtToExpr(n Stmt) (Tree[Expr], func(Tree[Expr]) Stmt) {
	switch n := n.(type) {
	case Assign:
		f0 := n.Name
		t1, c1 := BiplateFor[Expr](n.Value)
		children := Many(Zero[Expr](), t1)
		ctx := func(t Tree[Expr]) Stmt {
			subs := t.MustMany(2)
			return Assign{Name: f0, Value: c1(subs[1])}
		}
		return children, ctx
	case Sequence:
		t0, c0 := SliceBiplate[Expr](n.Stmts)
		children := Many(t0)
		ctx := func(t Tree[Expr]) Stmt {
			subs := t.MustMany(1)
			return Sequence{Stmts: c0(subs[0])}
		}
		return children, ctx
	case If:
		t0, c0 := BiplateFor[Expr](n.Cond)
		t1, c1 := BiplateFor[Expr](n.Then)
		t2, c2 := BiplateFor[Expr](n.Else)
		children := Many(t0, t1, t2)
		ctx := func(t Tree[Expr]) Stmt {
			subs := t.MustMany(3)
			return If{Cond: c0(subs[0]), Then: c1(subs[1]), Else: c2(subs[2])}
		}
		return children, ctx
	case While:
		t0, c0 := BiplateFor[Expr](n.Cond)
		t1, c1 := BiplateFor[Expr](n.Body)
		children := Many(t0, t1)
		ctx := func(t Tree[Expr]) Stmt {
			subs := t.MustMany(2)
			return While{Cond: c0(subs[0]), Body: c1(subs[1])}
		}
		return children, ctx
	default:
		return Zero[Expr](), func(Tree[Expr]) Stmt { return n }
	}
}

func biplateStmtToString(n Stmt) (Tree[string], func(Tree[string]) Stmt) {
	switch n := n.(type) {
	case Assign:
		t0, c0 := BiplateFor[string](n.Name)
		t1, c1 := BiplateFor[string](n.Value)
		children := Many(t0, t1)
		ctx := func(t Tree[string]) Stmt {
			subs := t.MustMany(2)
			return Assign{Name: c0(subs[0]), Value: c1(subs[1])}
		}
		return children, ctx
	case Sequence:
		t0, c0 := SliceBiplate[string](n.Stmts)
		children := Many(t0)
		ctx := func(t Tree[string]) Stmt {
			subs := t.MustMany(1)
			return Sequence{Stmts: c0(subs[0])}
		}
		return children, ctx
	case If:
		t0, c0 := BiplateFor[string](n.Cond)
		t1, c1 := BiplateFor[string](n.Then)
		t2, c2 := BiplateFor[string](n.Else)
		children := Many(t0, t1, t2)
		ctx := func(t Tree[string]) Stmt {
			subs := t.MustMany(3)
			return If{Cond: c0(subs[0]), Then: c1(subs[1]), Else: c2(subs[2])}
		}
		return children, ctx
	case While:
		t0, c0 := BiplateFor[string](n.Cond)
		t1, c1 := BiplateFor[string](n.Body)
		children := Many(t0, t1)
		ctx := func(t Tree[string]) Stmt {
			subs := t.MustMany(2)
			return While{Cond: c0(subs[0]), Body: c1(subs[1])}
		}
		return children, ctx
	default:
		return Zero[string](), func(Tree[string]) Stmt { return n }
	}
}

func biplateExprToString(n Expr) (Tree[string], func(Tree[string]) Expr) {
	switch n := n.(type) {
	case Add:
		return binExprTo[string](n.Lhs, n.Rhs, func(a, b Expr) Expr { return Add{a, b} })
	case Sub:
		return binExprTo[string](n.Lhs, n.Rhs, func(a, b Expr) Expr { return Sub{a, b} })
	case Mul:
		return binExprTo[string](n.Lhs, n.Rhs, func(a, b Expr) Expr { return Mul{a, b} })
	case Div:
		return binExprTo[string](n.Lhs, n.Rhs, func(a, b Expr) Expr { return Div{a, b} })
	case Val:
		f0 := n.N
		children := Many(Zero[string]())
		ctx := func(t Tree[string]) Expr {
			t.MustMany(1)
			return Val{N: f0}
		}
		return children, ctx
	case Var:
		t0, c0 := BiplateFor[string](n.Name)
		children := Many(t0)
		ctx := func(t Tree[string]) Expr {
			subs := t.MustMany(1)
			return Var{Name: c0(subs[0])}
		}
		return children, ctx
	case Neg:
		t0, c0 := BiplateFor[string](n.E)
		children := Many(t0)
		ctx := func(t Tree[string]) Expr {
			subs := t.MustMany(1)
			return Neg{E: c0(subs[0])}
		}
		return children, ctx
	default:
		return Zero[string](), func(Tree[string]) Expr { return n }
	}
}

func biplateExprToStmt(n Expr) (Tree[Stmt], func(Tree[Stmt]) Expr) {
	switch n := n.(type) {
	case Add:
		return binExprTo[Stmt](n.Lhs, n.Rhs, func(a, b Expr) Expr { return Add{a, b} })
	case Sub:
		return binExprTo[Stmt](n.Lhs, n.Rhs, func(a, b Expr) Expr { return Sub{a, b} })
	case Mul:
		return binExprTo[Stmt](n.Lhs, n.Rhs, func(a, b Expr) Expr { return Mul{a, b} })
	case Div:
		return binExprTo[Stmt](n.Lhs, n.Rhs, func(a, b Expr) Expr { return Div{a, b} })
	case Val:
		f0 := n.N
		children := Many(Zero[Stmt]())
		ctx := func(t Tree[Stmt]) Expr {
			t.MustMany(1)
			return Val{N: f0}
		}
		return children, ctx
	case Var:
		f0 := n.Name
		children := Many(Zero[Stmt]())
		ctx := func(t Tree[Stmt]) Expr {
			t.MustMany(1)
			return Var{Name: f0}
		}
		return children, ctx
	case Neg:
		t0, c0 := BiplateFor[Stmt](n.E)
		children := Many(t0)
		ctx := func(t Tree[Stmt]) Expr {
			subs := t.MustMany(1)
			return Neg{E: c0(subs[0])}
		}
		return children, ctx
	default:
		return Zero[Stmt](), func(Tree[Stmt]) Expr { return n }
	}
}

func binExprTo[To any](lhs, rhs Expr, mk func(Expr, Expr) Expr) (Tree[To], func(Tree[To]) Expr) {
	t0, c0 := BiplateFor[To](lhs)
	t1, c1 := BiplateFor[To](rhs)
	children := Many(t0, t1)
	ctx := func(t Tree[To]) Expr {
		subs := t.MustMany(2)
		return mk(c0(subs[0]), c1(subs[1]))
	}
	return children, ctx
}

func init() {
	RegisterBiplate(biplateStmtToExpr)
	RegisterBiplate(biplateStmtToString)
	RegisterBiplate(biplateExprToString)
	RegisterBiplate(biplateExprToStmt)
}
