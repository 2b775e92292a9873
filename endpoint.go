package lockstep

import "strings"

// Endpoint identifies one operation declared by the contract or implemented
// by the generated client.
type Endpoint struct {
	Method string // upper-case HTTP method, e.g. "POST"
	Path   string // path template as written in the contract, e.g. "/api/notes/{id}"
	Alias  string // synthesized operation alias, e.g. "note_store"
}

// Group returns the alias segment before the first underscore ("auth" for
// "auth_login"). Aliases without an underscore form their own group.
func (e Endpoint) Group() string {
	if i := strings.IndexByte(e.Alias, '_'); i > 0 {
		return e.Alias[:i]
	}
	return e.Alias
}

func (e Endpoint) String() string {
	return e.Method + " " + e.Path + " (" + e.Alias + ")"
}
