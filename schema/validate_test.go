package schema

import (
	"context"
	"testing"

	lockstep "github.com/hmizuno/lockstep"
)

func intp(i int) *int { return &i }

func issuesOf(t *testing.T, err error) lockstep.Issues {
	t.Helper()
	if err == nil {
		t.Fatalf("expected issues, got nil")
	}
	iss, ok := lockstep.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %T: %v", err, err)
	}
	return iss
}

func hasIssue(iss lockstep.Issues, path, code string) bool {
	for _, it := range iss {
		if it.Path == path && it.Code == code {
			return true
		}
	}
	return false
}

func TestValidate_String(t *testing.T) {
	ctx := context.Background()
	s := &String{MinLength: intp(1), MaxLength: intp(5)}

	if err := Validate(ctx, s, "ok"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if iss := issuesOf(t, Validate(ctx, s, "")); !hasIssue(iss, "/", lockstep.CodeTooShort) {
		t.Fatalf("want too_short, got %v", iss)
	}
	if iss := issuesOf(t, Validate(ctx, s, "toolong")); !hasIssue(iss, "/", lockstep.CodeTooLong) {
		t.Fatalf("want too_long, got %v", iss)
	}
	if iss := issuesOf(t, Validate(ctx, s, 42.0)); !hasIssue(iss, "/", lockstep.CodeInvalidType) {
		t.Fatalf("want invalid_type, got %v", iss)
	}
}

func TestValidate_StringMessagesOverrideDefaults(t *testing.T) {
	ctx := context.Background()
	s := &String{MinLength: intp(1), MinMessage: "title is required"}
	iss := issuesOf(t, Validate(ctx, s, ""))
	if len(iss) != 1 || iss[0].Message != "title is required" {
		t.Fatalf("want custom message, got %v", iss)
	}
}

func TestValidate_EmailFormat(t *testing.T) {
	ctx := context.Background()
	s := &String{Format: "email"}
	if err := Validate(ctx, s, "a@b.com"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if iss := issuesOf(t, Validate(ctx, s, "not-an-email")); !hasIssue(iss, "/", lockstep.CodeInvalidFormat) {
		t.Fatalf("want invalid_format, got %v", iss)
	}
	// the empty string is not a valid email either
	if iss := issuesOf(t, Validate(ctx, s, "")); !hasIssue(iss, "/", lockstep.CodeInvalidFormat) {
		t.Fatalf("want invalid_format for empty, got %v", iss)
	}
}

func TestValidate_DateTimeFormat(t *testing.T) {
	ctx := context.Background()
	s := &String{Format: "date-time"}
	if err := Validate(ctx, s, "2026-08-30T12:00:00Z"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := Validate(ctx, s, "yesterday"); err == nil {
		t.Fatalf("expected failure")
	}
}

func TestValidate_UnknownFormatIsPermissive(t *testing.T) {
	ctx := context.Background()
	s := &String{Format: "binary"}
	if err := Validate(ctx, s, "anything at all"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if s.RejectsEmpty() {
		t.Fatalf("unknown format must not count as an empty-string check")
	}
}

func TestValidate_Object(t *testing.T) {
	ctx := context.Background()
	obj := NewObject()
	obj.Properties["title"] = &String{MinLength: intp(1), MinMessage: "title is required"}
	obj.Properties["note"] = &String{}
	obj.Require("title")
	obj.RequiredMessage["title"] = "title is required"

	if err := Validate(ctx, obj, map[string]any{"title": "x"}); err != nil {
		t.Fatalf("unexpected: %v", err)
	}

	// absence and emptiness both fail with the same message
	iss := issuesOf(t, Validate(ctx, obj, map[string]any{}))
	if !hasIssue(iss, "/title", lockstep.CodeRequired) || iss[0].Message != "title is required" {
		t.Fatalf("want required with message, got %v", iss)
	}
	iss = issuesOf(t, Validate(ctx, obj, map[string]any{"title": ""}))
	if !hasIssue(iss, "/title", lockstep.CodeTooShort) || iss[0].Message != "title is required" {
		t.Fatalf("want too_short with message, got %v", iss)
	}
}

func TestValidate_OptionalAbsentIsSkipped(t *testing.T) {
	ctx := context.Background()
	obj := NewObject()
	obj.Properties["note"] = &String{MinLength: intp(3)}
	if err := Validate(ctx, obj, map[string]any{}); err != nil {
		t.Fatalf("optional absent property must pass, got %v", err)
	}
	// but a present value is still checked
	if err := Validate(ctx, obj, map[string]any{"note": "x"}); err == nil {
		t.Fatalf("present value must be validated")
	}
}

func TestValidate_UnknownKeysTolerated(t *testing.T) {
	ctx := context.Background()
	obj := NewObject()
	obj.Properties["id"] = &Number{}
	obj.Require("id")
	in := map[string]any{"id": 1.0, "brand_new_field": true}
	if err := Validate(ctx, obj, in); err != nil {
		t.Fatalf("unknown keys must be tolerated, got %v", err)
	}
}

func TestValidate_UntypedPropertyAcceptsAnything(t *testing.T) {
	ctx := context.Background()
	obj := NewObject()
	obj.Properties["meta"] = &Any{}
	for _, v := range []any{nil, "s", 1.0, true, map[string]any{"k": "v"}, []any{1.0}} {
		if err := Validate(ctx, obj, map[string]any{"meta": v}); err != nil {
			t.Fatalf("any must accept %T, got %v", v, err)
		}
	}
}

func TestValidate_ArrayPaths(t *testing.T) {
	ctx := context.Background()
	item := NewObject()
	item.Properties["title"] = &String{MinLength: intp(1)}
	item.Require("title")
	arr := &Array{Item: item}

	in := []any{
		map[string]any{"title": "ok"},
		map[string]any{"title": ""},
	}
	iss := issuesOf(t, Validate(ctx, arr, in))
	if !hasIssue(iss, "/1/title", lockstep.CodeTooShort) {
		t.Fatalf("want issue at /1/title, got %v", iss)
	}
}

func TestValidate_NumberAndBool(t *testing.T) {
	ctx := context.Background()
	if err := Validate(ctx, &Number{}, 3.14); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := Validate(ctx, &Number{}, "3.14"); err == nil {
		t.Fatalf("string is not a number")
	}
	if err := Validate(ctx, &Bool{}, true); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := Validate(ctx, &Bool{}, 1.0); err == nil {
		t.Fatalf("number is not a bool")
	}
}
