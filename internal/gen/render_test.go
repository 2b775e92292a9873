package gen

import (
	"go/parser"
	"go/token"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	lockstep "github.com/hmizuno/lockstep"
	"github.com/hmizuno/lockstep/schema"
)

func intp(i int) *int { return &i }

func sampleSet() *schema.Set {
	body := schema.NewObject()
	body.Properties["title"] = &schema.String{MinLength: intp(1), MaxLength: intp(255), MinMessage: "title is required"}
	body.Properties["content"] = &schema.String{MinLength: intp(1), MinMessage: "content is required"}
	body.Require("title", "content")
	body.RequiredMessage["title"] = "title is required"
	body.RequiredMessage["content"] = "content is required"

	resource := schema.NewObject()
	resource.Properties["id"] = &schema.Number{}
	resource.Properties["title"] = &schema.String{}
	resource.Properties["done"] = &schema.Bool{}
	resource.Properties["meta"] = &schema.Any{}
	resource.Require("id", "title")

	set := schema.NewSet()
	set.Validators["note_store_Body"] = body
	set.Validators["NoteResource"] = resource
	set.Validators["note_index_Response200"] = &schema.Array{Item: resource}
	set.Operations = []schema.Operation{
		{
			Endpoint:  lockstep.Endpoint{Method: "POST", Path: "/api/notes", Alias: "note_store"},
			Request:   "note_store_Body",
			Responses: map[int]string{201: "NoteResource"},
		},
		{
			Endpoint:  lockstep.Endpoint{Method: "GET", Path: "/api/notes", Alias: "note_index"},
			Responses: map[int]string{200: "note_index_Response200"},
		},
	}
	return set
}

func parseOK(t *testing.T, name string, src []byte) {
	t.Helper()
	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, name, src, 0); err != nil {
		t.Fatalf("%s is not valid Go: %v\n%s", name, err, src)
	}
}

func TestRender_ArtifactsAreValidGo(t *testing.T) {
	res, err := Render("api", sampleSet())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	parseOK(t, res.Types.Name, res.Types.Data)
	parseOK(t, res.Client.Name, res.Client.Data)
	parseOK(t, res.Index.Name, res.Index.Data)
}

func TestRender_TypesProjectShapes(t *testing.T) {
	res, err := Render("api", sampleSet())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	src := string(res.Types.Data)
	for _, want := range []string{
		"type NoteStoreBody struct",
		"type NoteResource struct",
		"type NoteIndexResponse200 []struct",
		"// Code generated by lockstep. DO NOT EDIT.",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("types artifact missing %q:\n%s", want, src)
		}
	}
	// gofmt aligns struct fields, so match with flexible whitespace
	for _, want := range []string{
		"Title\\s+string\\s+`json:\"title\"`",
		// optional properties are pointers with omitempty
		"Done\\s+\\*bool\\s+`json:\"done,omitempty\"`",
	} {
		if !regexp.MustCompile(want).MatchString(src) {
			t.Fatalf("types artifact missing /%s/:\n%s", want, src)
		}
	}
}

func TestRender_ClientCarriesValidatorsAndEndpoints(t *testing.T) {
	res, err := Render("api", sampleSet())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	src := string(res.Client.Data)
	for _, want := range []string{
		`"note_store_Body": &schema.Object{`,
		`MinLength: intp(1)`,
		`MinMessage: "title is required"`,
		`lockstep.Endpoint{Method: "POST", Path: "/api/notes", Alias: "note_store"}`,
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("client artifact missing %q:\n%s", want, src)
		}
	}
	for _, want := range []string{
		`Required:\s+schema\.Names\("content", "title"\)`,
		`Responses:\s+map\[int\]string\{201: "NoteResource"\}`,
	} {
		if !regexp.MustCompile(want).MatchString(src) {
			t.Fatalf("client artifact missing /%s/:\n%s", want, src)
		}
	}
}

func TestRender_IndexManifest(t *testing.T) {
	res, err := Render("api", sampleSet())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	src := string(res.Index.Data)
	if !strings.Contains(src, "func Validator(name string)") {
		t.Fatalf("index artifact missing Validator accessor:\n%s", src)
	}
	for _, want := range []string{`Validators:\s+3`, `Endpoints:\s+2`} {
		if !regexp.MustCompile(want).MatchString(src) {
			t.Fatalf("index artifact missing /%s/:\n%s", want, src)
		}
	}
}

// Rendering the same set twice yields byte-identical artifacts.
func TestRender_Idempotent(t *testing.T) {
	a, err := Render("api", sampleSet())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	b, err := Render("api", sampleSet())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if diff := cmp.Diff(string(a.Types.Data), string(b.Types.Data)); diff != "" {
		t.Fatalf("types artifact drifted (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(string(a.Client.Data), string(b.Client.Data)); diff != "" {
		t.Fatalf("client artifact drifted (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(string(a.Index.Data), string(b.Index.Data)); diff != "" {
		t.Fatalf("index artifact drifted (-first +second):\n%s", diff)
	}
}

func TestGoIdent(t *testing.T) {
	cases := map[string]string{
		"note_store_Body": "NoteStoreBody",
		"auth_login":      "AuthLogin",
		"NoteResource":    "NoteResource",
		"created_at":      "CreatedAt",
		"x":               "X",
		"201_created":     "X201Created",
		"note.store":      "NoteStore",
	}
	for in, want := range cases {
		if got := GoIdent(in); got != want {
			t.Fatalf("GoIdent(%q) = %q, want %q", in, got, want)
		}
	}
}
