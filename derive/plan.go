package derive

import (
	"fmt"

	"github.com/conjure-cp/uniplate/internal/issues"
	"github.com/conjure-cp/uniplate/internal/severity"
)

// instancePlan is one fully resolved traversal instance, ready for emission:
// the walk decision has been made for every field, and every auxiliary
// instance the traversal depends on is planned alongside it.
type instancePlan struct {
	From     string
	To       string
	Self     bool
	Enum     bool
	Variants []variantPlan
	walk     map[string]bool
}

type variantPlan struct {
	Name   string
	Fields []fieldPlan
}

// fieldPlan records the walk decision for one field. Opaque fields keep a
// stable position in the emitted shape so that child indices line up across
// instances of the same type.
type fieldPlan struct {
	Name string
	Walk bool
	Type TypeRef
}

// planner resolves declared instances into emission plans through an
// explicit worklist. Traversing a field of type B inside an instance
// targeting To requires an instance B -> To; when B is declared in the same
// batch and no such instance was requested, the planner derives one rather
// than leaving a silent hole in the traversal.
type planner struct {
	decls  map[string]*TypeDecl
	order  []string
	issues []issues.Issue
}

type workItem struct {
	decl *TypeDecl
	inst Instance
}

func newPlanner(decls []TypeDecl) *planner {
	p := &planner{decls: make(map[string]*TypeDecl, len(decls))}
	for i := range decls {
		d := &decls[i]
		if _, dup := p.decls[d.Name]; dup {
			p.addIssue(d, severity.SeverityError,
				fmt.Sprintf("type %s declared more than once", d.Name))
			continue
		}
		p.decls[d.Name] = d
		p.order = append(p.order, d.Name)
	}
	return p
}

func (p *planner) addIssue(d *TypeDecl, sev severity.Severity, msg string, pathParts ...string) {
	path := d.Name
	if len(pathParts) > 0 {
		path = issues.FormatPath(append([]string{d.Name}, pathParts...)...)
	}
	p.issues = append(p.issues, issues.Issue{
		Path:     path,
		Message:  msg,
		Severity: sev,
		File:     d.File,
		Line:     d.Line,
	})
}

// planAll validates every declaration and resolves all instances, declared
// and derived, in deterministic order.
func (p *planner) planAll() []instancePlan {
	type key struct{ from, to string }
	seen := make(map[key]bool)
	var queue []workItem

	// Declared instances are seeded first so that a derived instance never
	// shadows an explicit one, whatever order the worklist reaches them in.
	for _, name := range p.order {
		d := p.decls[name]
		p.validate(d)
		selfSeen := false
		for _, inst := range d.Instances {
			k := key{from: d.Name, to: inst.To}
			if seen[k] {
				if inst.IsSelf(d) && selfSeen {
					p.addIssue(d, severity.SeverityError,
						fmt.Sprintf("duplicate self-instance for %s", d.Name))
				} else {
					p.addIssue(d, severity.SeverityError,
						fmt.Sprintf("duplicate instance %s -> %s", d.Name, inst.To))
				}
				continue
			}
			seen[k] = true
			selfSeen = selfSeen || inst.IsSelf(d)
			queue = append(queue, workItem{decl: d, inst: inst})
		}
	}

	var plans []instancePlan
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		plan, needed := p.planInstance(item.decl, item.inst)
		plans = append(plans, plan)

		for _, base := range needed {
			k := key{from: base, to: item.inst.To}
			if seen[k] {
				continue
			}
			dep, known := p.decls[base]
			if !known {
				// The instance must come from somewhere else: a hand-written
				// registration or another generated package.
				p.addIssue(item.decl, severity.SeverityWarning,
					fmt.Sprintf("walking into %s requires a biplate %s -> %s that is not generated here; it must be registered elsewhere",
						base, base, item.inst.To))
				continue
			}
			seen[k] = true
			queue = append(queue, workItem{decl: dep, inst: Instance{
				To:       item.inst.To,
				WalkInto: item.inst.WalkInto,
			}})
		}
	}
	return plans
}

func (p *planner) validate(d *TypeDecl) {
	if d.Kind == DeclEnum && len(d.Variants) == 0 {
		p.addIssue(d, severity.SeverityError,
			fmt.Sprintf("enum %s has no variants; declare structs with an is%s() marker method", d.Name, d.Name))
	}
	if len(d.Instances) == 0 {
		p.addIssue(d, severity.SeverityWarning,
			fmt.Sprintf("type %s has no instances; nothing to generate", d.Name))
	}
}

// planInstance resolves the walk decision for every field of every variant
// and returns the base type names of walked fields that need their own
// instance toward the same target.
func (p *planner) planInstance(d *TypeDecl, inst Instance) (instancePlan, []string) {
	walk := inst.walkSet(d.Name)
	plan := instancePlan{
		From: d.Name,
		To:   inst.To,
		Self: inst.IsSelf(d),
		Enum: d.Kind == DeclEnum,
		walk: walk,
	}

	var needed []string
	seenNeed := make(map[string]bool)
	for _, v := range d.Variants {
		vp := variantPlan{Name: v.Name}
		for _, f := range v.Fields {
			fp := fieldPlan{Name: f.Name, Type: f.Type, Walk: refWalkable(f.Type, walk)}
			vp.Fields = append(vp.Fields, fp)
			if !fp.Walk {
				continue
			}
			for _, base := range walkedBases(f.Type, walk) {
				// Identity resolves without an instance; the current
				// instance covers its own recursion.
				if base == inst.To || base == d.Name || seenNeed[base] {
					continue
				}
				seenNeed[base] = true
				needed = append(needed, base)
			}
		}
		plan.Variants = append(plan.Variants, vp)
	}

	for _, name := range inst.WalkInto {
		if _, known := p.decls[name]; !known {
			p.addIssue(d, severity.SeverityWarning,
				fmt.Sprintf("walk-into target %s has no declaration in this package", name))
		}
	}
	return plan, needed
}

// refWalkable reports whether any component of the reference is in the walk
// set. A container is walked when at least one of its components is; the
// remaining components are emitted as opaque steps.
func refWalkable(t TypeRef, walk map[string]bool) bool {
	switch t.Kind {
	case RefNamed:
		return walk[t.Name]
	case RefPointer, RefSlice:
		return refWalkable(*t.Elem, walk)
	case RefPair:
		return refWalkable(*t.First, walk) || refWalkable(*t.Second, walk)
	default:
		return false
	}
}

// walkedBases collects the named types actually recursed into through the
// reference, skipping components outside the walk set.
func walkedBases(t TypeRef, walk map[string]bool) []string {
	switch t.Kind {
	case RefNamed:
		if walk[t.Name] {
			return []string{t.Name}
		}
		return nil
	case RefPointer, RefSlice:
		return walkedBases(*t.Elem, walk)
	case RefPair:
		return append(walkedBases(*t.First, walk), walkedBases(*t.Second, walk)...)
	default:
		return nil
	}
}
