package openapi

import (
	"strconv"
	"strings"

	"github.com/hmizuno/lockstep/contract"
)

// Alias derives the operation alias used for validator names and endpoint
// grouping. The contract's operationId wins when declared ("auth.login"
// normalizes to "auth_login"); otherwise the alias is synthesized from the
// method and path ("GET /api/notes/{id}" becomes "get_api_notes_id").
func Alias(op contract.OperationSpec) string {
	if id := op.OperationID(); id != "" {
		return normalizeAlias(id)
	}
	segs := []string{strings.ToLower(op.Method)}
	for _, s := range strings.Split(op.Path, "/") {
		s = strings.Trim(s, "{}")
		if s == "" {
			continue
		}
		segs = append(segs, normalizeAlias(s))
	}
	return strings.Join(segs, "_")
}

// BodyName is the synthetic validator name for an operation's request body.
func BodyName(alias string) string { return alias + "_Body" }

// ResponseName is the synthetic validator name for one response status.
func ResponseName(alias string, status int) string {
	return alias + "_Response" + strconv.Itoa(status)
}

func normalizeAlias(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
