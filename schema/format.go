package schema

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// formatValidator is shared; validator.Validate is safe for concurrent use
// and caches compiled tags.
var formatValidator = validator.New()

// formatTags maps contract format names onto validator tags.
var formatTags = map[string]string{
	"email": "email",
	"uri":   "uri",
	"url":   "url",
	"uuid":  "uuid",
	"ipv4":  "ipv4",
	"ipv6":  "ipv6",
}

// checkFormat verifies a string against a contract format name. Unknown
// formats are accepted; the contract is authoritative and a format this
// package cannot check must not reject otherwise valid input.
func checkFormat(format, v string) error {
	if tag, ok := formatTags[format]; ok {
		return formatValidator.Var(v, tag)
	}
	if format == "date-time" {
		if _, err := time.Parse(time.RFC3339, v); err != nil {
			return fmt.Errorf("schema: not an RFC 3339 timestamp: %w", err)
		}
		return nil
	}
	return nil
}

// KnownFormat reports whether the format name carries a runtime check.
func KnownFormat(format string) bool {
	if _, ok := formatTags[format]; ok {
		return true
	}
	return format == "date-time"
}
