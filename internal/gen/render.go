package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/hmizuno/lockstep/schema"
)

// Package gen renders the three generated artifacts from a finished
// validator set: a pure type declaration file, the runtime validator table
// with the endpoint map, and an index tying both together. Rendering is the
// single serialization step of the pipeline; iteration is sorted everywhere
// so an unchanged set always renders byte-identical output.

// Artifact file names, fixed per run layout.
const (
	TypesFile  = "types.gen.go"
	ClientFile = "client.gen.go"
	IndexFile  = "index.gen.go"
)

const header = "// Code generated by lockstep. DO NOT EDIT.\n\n"

// Artifact is one rendered output file.
type Artifact struct {
	Name string
	Data []byte
}

// Result holds a complete render. Nothing is written to disk until every
// artifact rendered successfully.
type Result struct {
	Types  Artifact
	Client Artifact
	Index  Artifact
}

// Render produces all three artifacts for the target package name.
func Render(pkg string, set *schema.Set) (*Result, error) {
	types, err := renderTypes(pkg, set)
	if err != nil {
		return nil, fmt.Errorf("gen: types: %w", err)
	}
	client, err := renderClient(pkg, set)
	if err != nil {
		return nil, fmt.Errorf("gen: client: %w", err)
	}
	index, err := renderIndex(pkg, set)
	if err != nil {
		return nil, fmt.Errorf("gen: index: %w", err)
	}
	return &Result{
		Types:  Artifact{Name: TypesFile, Data: types},
		Client: Artifact{Name: ClientFile, Data: client},
		Index:  Artifact{Name: IndexFile, Data: index},
	}, nil
}

// WriteAll overwrites the artifact files under dir unconditionally
// (last-writer-wins; invocation is manual and serial by convention).
func WriteAll(dir string, res *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("gen: creating output dir: %w", err)
	}
	for _, a := range []Artifact{res.Types, res.Client, res.Index} {
		if err := os.WriteFile(filepath.Join(dir, a.Name), a.Data, 0o644); err != nil {
			return fmt.Errorf("gen: writing %s: %w", a.Name, err)
		}
	}
	return nil
}

// ---- types artifact ----

func renderTypes(pkg string, set *schema.Set) ([]byte, error) {
	b := &bytes.Buffer{}
	b.WriteString(header)
	fmt.Fprintf(b, "package %s\n\n", pkg)
	b.WriteString("// Static projections of every named contract shape. These declarations\n")
	b.WriteString("// carry no runtime behavior; the validator table enforces the same shapes.\n\n")
	for _, name := range set.Names() {
		fmt.Fprintf(b, "type %s %s\n\n", GoIdent(name), goType(set.Validators[name], false))
	}
	return format.Source(b.Bytes())
}

// goType projects a node into a Go type expression. Optional properties of
// object nodes become pointers with omitempty so absence round-trips.
func goType(n schema.Node, optional bool) string {
	base := func(t string) string {
		if optional {
			return "*" + t
		}
		return t
	}
	switch t := n.(type) {
	case nil, *schema.Any:
		return "any"
	case *schema.String:
		return base("string")
	case *schema.Number:
		return base("float64")
	case *schema.Bool:
		return base("bool")
	case *schema.Array:
		return "[]" + goType(t.Item, false)
	case *schema.Object:
		b := &strings.Builder{}
		b.WriteString("struct {\n")
		for _, prop := range t.SortedProperties() {
			tag := prop
			if !t.IsRequired(prop) {
				tag += ",omitempty"
			}
			fmt.Fprintf(b, "\t%s %s `json:%q`\n",
				GoIdent(prop), goType(t.Properties[prop], !t.IsRequired(prop)), tag)
		}
		b.WriteString("}")
		if optional {
			return "*" + b.String()
		}
		return b.String()
	default:
		return "any"
	}
}

// ---- client artifact ----

func renderClient(pkg string, set *schema.Set) ([]byte, error) {
	b := &bytes.Buffer{}
	b.WriteString(header)
	fmt.Fprintf(b, "package %s\n\n", pkg)
	b.WriteString("import (\n")
	if len(set.Operations) > 0 {
		b.WriteString("\tlockstep \"github.com/hmizuno/lockstep\"\n")
	}
	b.WriteString("\t\"github.com/hmizuno/lockstep/schema\"\n")
	b.WriteString(")\n\n")

	b.WriteString("// Validators holds one runtime validator per named contract shape.\n")
	b.WriteString("var Validators = map[string]schema.Node{\n")
	for _, name := range set.Names() {
		fmt.Fprintf(b, "\t%q: %s,\n", name, nodeLiteral(set.Validators[name], 1))
	}
	b.WriteString("}\n\n")

	b.WriteString("// Endpoints is the operation table declared by the contract.\n")
	b.WriteString("var Endpoints = []schema.Operation{\n")
	for _, op := range set.Operations {
		fmt.Fprintf(b, "\t{\n\t\tEndpoint: lockstep.Endpoint{Method: %q, Path: %q, Alias: %q},\n",
			op.Method, op.Path, op.Alias)
		if op.Request != "" {
			fmt.Fprintf(b, "\t\tRequest: %q,\n", op.Request)
		}
		if len(op.Responses) > 0 {
			fmt.Fprintf(b, "\t\tResponses: map[int]string{%s},\n", responsesLiteral(op.Responses))
		}
		b.WriteString("\t},\n")
	}
	b.WriteString("}\n\n")

	b.WriteString("func intp(i int) *int { return &i }\n")
	return format.Source(b.Bytes())
}

func responsesLiteral(rs map[int]string) string {
	statuses := make([]int, 0, len(rs))
	for s := range rs {
		statuses = append(statuses, s)
	}
	sort.Ints(statuses)
	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		parts = append(parts, fmt.Sprintf("%d: %q", s, rs[s]))
	}
	return strings.Join(parts, ", ")
}

// nodeLiteral renders a node as a Go composite literal.
func nodeLiteral(n schema.Node, depth int) string {
	ind := strings.Repeat("\t", depth)
	switch t := n.(type) {
	case nil, *schema.Any:
		return "&schema.Any{}"
	case *schema.String:
		var fields []string
		if t.MinLength != nil {
			fields = append(fields, fmt.Sprintf("MinLength: intp(%d)", *t.MinLength))
		}
		if t.MaxLength != nil {
			fields = append(fields, fmt.Sprintf("MaxLength: intp(%d)", *t.MaxLength))
		}
		if t.Format != "" {
			fields = append(fields, fmt.Sprintf("Format: %q", t.Format))
		}
		if t.MinMessage != "" {
			fields = append(fields, fmt.Sprintf("MinMessage: %q", t.MinMessage))
		}
		if t.MaxMessage != "" {
			fields = append(fields, fmt.Sprintf("MaxMessage: %q", t.MaxMessage))
		}
		if t.FormatMessage != "" {
			fields = append(fields, fmt.Sprintf("FormatMessage: %q", t.FormatMessage))
		}
		return "&schema.String{" + strings.Join(fields, ", ") + "}"
	case *schema.Number:
		return "&schema.Number{}"
	case *schema.Bool:
		return "&schema.Bool{}"
	case *schema.Array:
		return "&schema.Array{Item: " + nodeLiteral(t.Item, depth) + "}"
	case *schema.Object:
		b := &strings.Builder{}
		b.WriteString("&schema.Object{\n")
		if len(t.Properties) > 0 {
			fmt.Fprintf(b, "%s\tProperties: map[string]schema.Node{\n", ind)
			for _, prop := range t.SortedProperties() {
				fmt.Fprintf(b, "%s\t\t%q: %s,\n", ind, prop, nodeLiteral(t.Properties[prop], depth+2))
			}
			fmt.Fprintf(b, "%s\t},\n", ind)
		}
		if len(t.Required) > 0 {
			fmt.Fprintf(b, "%s\tRequired: schema.Names(%s),\n", ind, quotedList(t.SortedRequired()))
		}
		if len(t.RequiredMessage) > 0 {
			fmt.Fprintf(b, "%s\tRequiredMessage: map[string]string{%s},\n", ind, messagesLiteral(t.RequiredMessage))
		}
		fmt.Fprintf(b, "%s}", ind)
		return b.String()
	default:
		return "&schema.Any{}"
	}
}

func quotedList(names []string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, strconv.Quote(n))
	}
	return strings.Join(parts, ", ")
}

func messagesLiteral(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%q: %q", k, m[k]))
	}
	return strings.Join(parts, ", ")
}

// ---- index artifact ----

func renderIndex(pkg string, set *schema.Set) ([]byte, error) {
	b := &bytes.Buffer{}
	b.WriteString(header)
	fmt.Fprintf(b, "package %s\n\n", pkg)
	b.WriteString("import \"github.com/hmizuno/lockstep/schema\"\n\n")
	b.WriteString("// Manifest records what this generation run produced.\n")
	b.WriteString("var Manifest = struct {\n\tArtifacts  []string\n\tValidators int\n\tEndpoints  int\n}{\n")
	fmt.Fprintf(b, "\tArtifacts:  []string{%q, %q},\n", TypesFile, ClientFile)
	fmt.Fprintf(b, "\tValidators: %d,\n", len(set.Validators))
	fmt.Fprintf(b, "\tEndpoints:  %d,\n", len(set.Operations))
	b.WriteString("}\n\n")
	b.WriteString("// Validator returns the named runtime validator, or nil.\n")
	b.WriteString("func Validator(name string) schema.Node { return Validators[name] }\n\n")
	b.WriteString("// Operation returns the endpoint table entry for an alias.\n")
	b.WriteString("func Operation(alias string) (schema.Operation, bool) {\n")
	b.WriteString("\tfor _, op := range Endpoints {\n\t\tif op.Alias == alias {\n\t\t\treturn op, true\n\t\t}\n\t}\n")
	b.WriteString("\treturn schema.Operation{}, false\n}\n")
	return format.Source(b.Bytes())
}

// GoIdent converts a contract name into an exported Go identifier:
// "note_store_Body" becomes "NoteStoreBody".
func GoIdent(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	b := &strings.Builder{}
	for _, p := range parts {
		r := []rune(p)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		b.WriteString(string(r))
	}
	id := b.String()
	if id == "" {
		return "X"
	}
	if id[0] >= '0' && id[0] <= '9' {
		return "X" + id
	}
	return id
}
