package validators

import (
	"sort"
	"strings"
)

// FieldErrors maps a field path (dot separated) to its messages, in the order
// the failing rules ran.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(path, msg string) {
	fe[path] = append(fe[path], msg)
}

func (fe FieldErrors) Has(path string) bool {
	return len(fe[path]) > 0
}

func (fe FieldErrors) Fields() map[string][]string {
	return fe
}

// Path splits a key back into its segments, e.g. "hasAgreedToPolicy".
func Path(key string) []string {
	return strings.Split(key, ".")
}

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(fe[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
