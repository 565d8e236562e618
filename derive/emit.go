package derive

import (
	"bytes"
	"fmt"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/conjure-cp/uniplate"
)

// GeneratedFileName is the name of the file emitted into each package.
const GeneratedFileName = "zz_generated_uniplate.go"

// plateImportPath is the import path of the runtime package generated code
// depends on.
const plateImportPath = "github.com/conjure-cp/uniplate/plate"

// bodyData is one rendered traversal body: the capture statements, the shape
// expression, and the reconstruction literal. Leaf bodies (variants with no
// fields) short-circuit to an empty shape with an identity reconstructor.
type bodyData struct {
	Receiver  string
	To        string
	Ret       string
	Leaf      bool
	Captures  []string
	Children  string
	MustMany  string
	Construct string
}

type biplateData struct {
	Name   string
	From   string
	To     string
	Enum   bool
	Single bodyData
	Cases  []bodyData
}

type fileData struct {
	Tool      string
	Package   string
	PlatePath string
	Methods   []bodyData
	Biplates  []biplateData
	Registers []string
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by {{.Tool}}. DO NOT EDIT.

package {{.Package}}

import (
	"{{.PlatePath}}"
)
{{define "body"}}
{{- if .Leaf}}
	return plate.Zero[{{.To}}](), func(plate.Tree[{{.To}}]) {{.Ret}} { return n }
{{- else}}
{{- range .Captures}}
	{{.}}
{{- end}}
	children := {{.Children}}
	ctx := func(t plate.Tree[{{.To}}]) {{.Ret}} {
		{{.MustMany}}
		return {{.Construct}}
	}
	return children, ctx
{{- end}}
{{- end}}
{{- range .Methods}}

func (n {{.Receiver}}) Uniplate() (plate.Tree[{{.To}}], func(plate.Tree[{{.To}}]) {{.Ret}}) {
{{- template "body" .}}
}
{{- end}}
{{- range .Biplates}}

func {{.Name}}(n {{.From}}) (plate.Tree[{{.To}}], func(plate.Tree[{{.To}}]) {{.From}}) {
{{- if .Enum}}
	switch n := n.(type) {
{{- range .Cases}}
	case {{.Receiver}}:
{{- template "body" .}}
{{- end}}
	default:
		return plate.Zero[{{.To}}](), func(plate.Tree[{{.To}}]) {{.From}} { return n }
	}
{{- else}}
{{- template "body" .Single}}
{{- end}}
}
{{- end}}
{{- if .Registers}}

func init() {
{{- range .Registers}}
	plate.RegisterBiplate({{.}})
{{- end}}
}
{{- end}}
`))

// emitFile renders the generated file for one package from its resolved
// instance plans and runs goimports-equivalent processing so the output is
// immediately compilable.
func emitFile(pkg string, plans []instancePlan) ([]byte, error) {
	data := fileData{
		Tool:      uniplate.GeneratedBy(),
		Package:   pkg,
		PlatePath: plateImportPath,
	}
	for _, plan := range plans {
		if plan.Self {
			for _, v := range plan.Variants {
				data.Methods = append(data.Methods, variantBody(v, plan))
			}
			continue
		}
		bp := biplateData{
			Name: biplateFuncName(plan.From, plan.To),
			From: plan.From,
			To:   plan.To,
			Enum: plan.Enum,
		}
		if plan.Enum {
			for _, v := range plan.Variants {
				bp.Cases = append(bp.Cases, variantBody(v, plan))
			}
		} else {
			bp.Single = variantBody(plan.Variants[0], plan)
		}
		data.Biplates = append(data.Biplates, bp)
		data.Registers = append(data.Registers, bp.Name)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	formatted, err := imports.Process(GeneratedFileName, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("generated code for package %s does not parse: %w", pkg, err)
	}
	return formatted, nil
}

// variantBody renders the per-variant traversal body: every field appears in
// the emitted shape in declaration order, opaque fields as Zero placeholders,
// so that child positions are stable across instances of the same type.
func variantBody(v variantPlan, plan instancePlan) bodyData {
	ret := plan.From
	body := bodyData{Receiver: v.Name, To: plan.To, Ret: ret}
	if len(v.Fields) == 0 {
		body.Leaf = true
		return body
	}

	parts := make([]string, len(v.Fields))
	assigns := make([]string, len(v.Fields))
	walked := false
	for i, f := range v.Fields {
		if !f.Walk {
			body.Captures = append(body.Captures, fmt.Sprintf("f%d := n.%s", i, f.Name))
			parts[i] = fmt.Sprintf("plate.Zero[%s]()", plan.To)
			assigns[i] = fmt.Sprintf("%s: f%d", f.Name, i)
			continue
		}
		walked = true
		body.Captures = append(body.Captures,
			fmt.Sprintf("t%d, c%d := %s", i, i, stepCall(f.Type, plan, "n."+f.Name)))
		parts[i] = fmt.Sprintf("t%d", i)
		assigns[i] = fmt.Sprintf("%s: c%d(subs[%d])", f.Name, i, i)
	}

	body.Children = "plate.Many(" + join(parts) + ")"
	if walked {
		body.MustMany = fmt.Sprintf("subs := t.MustMany(%d)", len(v.Fields))
	} else {
		body.MustMany = fmt.Sprintf("t.MustMany(%d)", len(v.Fields))
	}
	body.Construct = v.Name + "{" + join(assigns) + "}"
	return body
}

// stepCall renders the expression producing (tree, ctx) for one walked
// field. Single-level shapes use the direct dispatch helpers; nested
// containers compose the step combinators.
func stepCall(t TypeRef, plan instancePlan, arg string) string {
	switch t.Kind {
	case RefNamed:
		return fmt.Sprintf("plate.BiplateFor[%s](%s)", plan.To, arg)
	case RefSlice:
		if t.Elem.Kind == RefNamed && plan.walk[t.Elem.Name] {
			return fmt.Sprintf("plate.SliceBiplate[%s](%s)", plan.To, arg)
		}
	case RefPointer:
		if t.Elem.Kind == RefNamed && plan.walk[t.Elem.Name] {
			return fmt.Sprintf("plate.PtrBiplate[%s](%s)", plan.To, arg)
		}
	case RefPair:
		first, second := *t.First, *t.Second
		if first.Kind == RefNamed && plan.walk[first.Name] &&
			second.Kind == RefNamed && plan.walk[second.Name] {
			return fmt.Sprintf("plate.PairBiplate[%s](%s)", plan.To, arg)
		}
	}
	return stepExpr(t, plan) + "(" + arg + ")"
}

// stepExpr renders a TypeRef as a first-class traversal step. Components
// outside the walk set become opaque steps: the walk decision is burned into
// the generated code rather than left to runtime registration.
func stepExpr(t TypeRef, plan instancePlan) string {
	switch t.Kind {
	case RefNamed:
		if plan.walk[t.Name] {
			return fmt.Sprintf("plate.BiplateOf[%s, %s]()", plan.To, t.Name)
		}
		return fmt.Sprintf("plate.OpaqueOf[%s, %s]()", plan.To, t.Name)
	case RefPointer:
		return fmt.Sprintf("plate.PtrOf[%s](%s)", plan.To, stepExpr(*t.Elem, plan))
	case RefSlice:
		return fmt.Sprintf("plate.SliceOf[%s](%s)", plan.To, stepExpr(*t.Elem, plan))
	case RefPair:
		return fmt.Sprintf("plate.PairOf[%s](%s, %s)",
			plan.To, stepExpr(*t.First, plan), stepExpr(*t.Second, plan))
	default:
		return "<invalid>"
	}
}

func join(parts []string) string {
	var buf bytes.Buffer
	for i, p := range parts {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(p)
	}
	return buf.String()
}
