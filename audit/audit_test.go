package audit

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lockstep "github.com/hmizuno/lockstep"
	"github.com/hmizuno/lockstep/contract"
	"github.com/hmizuno/lockstep/internal/gen"
	"github.com/hmizuno/lockstep/openapi"
)

const contractJSON = `{
  "paths": {
    "/api/auth/login": {
      "post": {"operationId": "auth.login", "responses": {}}
    },
    "/api/notes": {
      "get": {"operationId": "note.index", "responses": {}},
      "post": {"operationId": "note.store", "responses": {}}
    },
    "/api/notes/{id}": {
      "delete": {"operationId": "note.destroy", "responses": {}}
    }
  }
}`

func renderClientFile(t *testing.T, doc *contract.Document) string {
	t.Helper()
	set, _, err := openapi.Compile(doc, openapi.Options{})
	require.NoError(t, err)
	res, err := gen.Render("api", set)
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, gen.WriteAll(dir, res))
	return filepath.Join(dir, gen.ClientFile)
}

func parseDoc(t *testing.T, raw string) *contract.Document {
	t.Helper()
	doc, _, err := contract.Parse([]byte(raw))
	require.NoError(t, err)
	return doc
}

func TestClientEndpoints_ScanIsTotal(t *testing.T) {
	doc := parseDoc(t, contractJSON)
	path := renderClientFile(t, doc)

	got, err := ClientEndpoints(path)
	require.NoError(t, err)
	want := openapi.Endpoints(doc)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("scan lost endpoints (-contract +client):\n%s", diff)
	}
}

func TestRun_InSync(t *testing.T) {
	doc := parseDoc(t, contractJSON)
	report, err := Run(doc, renderClientFile(t, doc))
	require.NoError(t, err)
	assert.True(t, report.InSync())
	assert.True(t, report.HasAlias("auth_login"))
	assert.False(t, report.HasAlias("auth_logout"))
}

func TestCompare_ReportsAsymmetries(t *testing.T) {
	contractEps := []lockstep.Endpoint{
		{Method: "POST", Path: "/api/notes", Alias: "note_store"},
		{Method: "GET", Path: "/api/notes", Alias: "note_index"},
	}
	clientEps := []lockstep.Endpoint{
		{Method: "GET", Path: "/api/notes", Alias: "note_index"},
		{Method: "GET", Path: "/api/tags", Alias: "tag_index"},
	}
	r := Compare(contractEps, clientEps)
	assert.False(t, r.InSync())
	require.Len(t, r.ContractOnly, 1)
	assert.Equal(t, "note_store", r.ContractOnly[0].Alias)
	require.Len(t, r.ClientOnly, 1)
	assert.Equal(t, "tag_index", r.ClientOnly[0].Alias)
}

func TestReport_WriteGroupsAndChecks(t *testing.T) {
	doc := parseDoc(t, contractJSON)
	report, err := Run(doc, renderClientFile(t, doc))
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	report.Write(buf, []string{"note_store", "payment_charge"})
	out := buf.String()

	assert.Contains(t, out, "contract endpoints: 4")
	assert.Contains(t, out, "[auth]")
	assert.Contains(t, out, "[note]")
	assert.Contains(t, out, "note_destroy")
	assert.Contains(t, out, "contract and client are in sync")
	assert.Contains(t, out, "alias note_store: present")
	assert.Contains(t, out, "alias payment_charge: missing")
}

func TestReport_WriteDrift(t *testing.T) {
	r := Compare(
		[]lockstep.Endpoint{{Method: "POST", Path: "/api/notes", Alias: "note_store"}},
		nil,
	)
	buf := &bytes.Buffer{}
	r.Write(buf, nil)
	assert.Contains(t, buf.String(), "missing from the client")
	assert.Contains(t, buf.String(), "re-run generation to reconcile")
}

func TestClientEndpoints_MissingFile(t *testing.T) {
	_, err := ClientEndpoints(filepath.Join(t.TempDir(), "client.gen.go"))
	require.Error(t, err)
}

func TestClientEndpoints_NoTable(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "client.gen.go")
	require.NoError(t, os.WriteFile(p, []byte("package api\n\nvar Other = 1\n"), 0o644))
	_, err := ClientEndpoints(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Endpoints")
}
