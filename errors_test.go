package lockstep_test

import (
	"fmt"
	"testing"

	lockstep "github.com/hmizuno/lockstep"
)

func TestIssues_ErrorSummarizesFirstFew(t *testing.T) {
	iss := lockstep.Issues{
		{Path: "/title", Code: lockstep.CodeRequired},
		{Path: "/content", Code: lockstep.CodeTooShort},
		{Path: "/email", Code: lockstep.CodeInvalidFormat},
		{Path: "/extra", Code: lockstep.CodeInvalidType},
	}
	got := iss.Error()
	want := "required at /title; too_short at /content; invalid_format at /email; ... (total 4)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAsIssues_UnwrapsWrappedErrors(t *testing.T) {
	var err error = lockstep.Issues{{Path: "/", Code: lockstep.CodeParseError}}
	wrapped := fmt.Errorf("generate: %w", err)
	iss, ok := lockstep.AsIssues(wrapped)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected unwrap, got %v %v", iss, ok)
	}
	if _, ok := lockstep.AsIssues(nil); ok {
		t.Fatalf("nil is not issues")
	}
}

func TestEndpoint_Grouping(t *testing.T) {
	cases := map[lockstep.Endpoint]string{
		{Method: "POST", Path: "/api/auth/login", Alias: "auth_login"}: "auth",
		{Method: "GET", Path: "/api/notes", Alias: "note_index"}:       "note",
		{Method: "GET", Path: "/health", Alias: "health"}:              "health",
	}
	for ep, want := range cases {
		if got := ep.Group(); got != want {
			t.Fatalf("%s: got %q, want %q", ep, got, want)
		}
	}
}
