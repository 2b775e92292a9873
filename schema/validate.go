package schema

import (
	"context"
	"encoding/json"
	"strconv"

	lockstep "github.com/hmizuno/lockstep"
	"github.com/hmizuno/lockstep/i18n"
)

// Validate evaluates v against the node and returns nil or lockstep.Issues.
// Inputs are the untyped trees produced by JSON decoding (map[string]any,
// []any, string, float64, bool, nil).
func Validate(ctx context.Context, n Node, v any) error {
	if iss := validateAt(ctx, n, v, ""); len(iss) > 0 {
		return iss
	}
	return nil
}

func validateAt(ctx context.Context, n Node, v any, path string) lockstep.Issues {
	if err := ctx.Err(); err != nil {
		return lockstep.Issues{{Path: ptr(path), Code: lockstep.CodeParseError, Message: err.Error(), Cause: err}}
	}
	switch t := n.(type) {
	case nil, *Any:
		return nil
	case *String:
		return validateString(t, v, path)
	case *Number:
		return validateNumber(v, path)
	case *Bool:
		if _, ok := v.(bool); !ok {
			return typeIssue(path, "bool")
		}
		return nil
	case *Object:
		return validateObject(ctx, t, v, path)
	case *Array:
		return validateArray(ctx, t, v, path)
	default:
		return nil
	}
}

func validateString(s *String, v any, path string) lockstep.Issues {
	sv, ok := v.(string)
	if !ok {
		return typeIssue(path, "string")
	}
	var iss lockstep.Issues
	if s.MinLength != nil && len([]rune(sv)) < *s.MinLength {
		msg := s.MinMessage
		if msg == "" {
			msg = i18n.T(lockstep.CodeTooShort, nil)
		}
		iss = lockstep.AppendIssues(iss, lockstep.Issue{
			Path: ptr(path), Code: lockstep.CodeTooShort, Message: msg,
			Params: map[string]any{"min": *s.MinLength, "got": len([]rune(sv))},
		})
	}
	if s.MaxLength != nil && len([]rune(sv)) > *s.MaxLength {
		msg := s.MaxMessage
		if msg == "" {
			msg = i18n.T(lockstep.CodeTooLong, nil)
		}
		iss = lockstep.AppendIssues(iss, lockstep.Issue{
			Path: ptr(path), Code: lockstep.CodeTooLong, Message: msg,
			Params: map[string]any{"max": *s.MaxLength, "got": len([]rune(sv))},
		})
	}
	if s.Format != "" {
		if err := checkFormat(s.Format, sv); err != nil {
			msg := s.FormatMessage
			if msg == "" {
				msg = i18n.T(lockstep.CodeInvalidFormat, nil)
			}
			iss = lockstep.AppendIssues(iss, lockstep.Issue{
				Path: ptr(path), Code: lockstep.CodeInvalidFormat, Message: msg,
				Hint: s.Format, Cause: err,
				Params: map[string]any{"format": s.Format},
			})
		}
	}
	return iss
}

func validateNumber(v any, path string) lockstep.Issues {
	switch v.(type) {
	case float64, float32, int, int32, int64, json.Number:
		return nil
	}
	return typeIssue(path, "number")
}

func validateObject(ctx context.Context, o *Object, v any, path string) lockstep.Issues {
	m, ok := v.(map[string]any)
	if !ok {
		return typeIssue(path, "object")
	}
	var iss lockstep.Issues
	// required keys in key-sorted order for stable issue ordering
	for _, k := range o.SortedRequired() {
		if _, seen := m[k]; seen {
			continue
		}
		msg := o.RequiredMessage[k]
		if msg == "" {
			msg = i18n.T(lockstep.CodeRequired, nil)
		}
		iss = lockstep.AppendIssues(iss, lockstep.Issue{
			Path: path + "/" + k, Code: lockstep.CodeRequired, Message: msg,
			Hint: "required property missing",
		})
	}
	// known properties; absent optional properties are skipped, unknown keys
	// are tolerated so responses can gain fields without breaking old clients
	for _, k := range o.SortedProperties() {
		val, seen := m[k]
		if !seen {
			continue
		}
		iss = append(iss, validateAt(ctx, o.Properties[k], val, path+"/"+k)...)
	}
	return iss
}

func validateArray(ctx context.Context, a *Array, v any, path string) lockstep.Issues {
	arr, ok := v.([]any)
	if !ok {
		return typeIssue(path, "array")
	}
	var iss lockstep.Issues
	for i, el := range arr {
		iss = append(iss, validateAt(ctx, a.Item, el, path+"/"+strconv.Itoa(i))...)
	}
	return iss
}

func typeIssue(path, want string) lockstep.Issues {
	return lockstep.Issues{{
		Path: ptr(path), Code: lockstep.CodeInvalidType,
		Message: i18n.T(lockstep.CodeInvalidType, nil),
		Hint:    "expected " + want,
		Params:  map[string]any{"expected": want},
	}}
}

// ptr renders the root path as "/" to stay a valid JSON Pointer.
func ptr(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
