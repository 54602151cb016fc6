package shell

import (
	"strings"
)

// keyValues parses key=value fields. It returns the first field that is
// not of that form.
func keyValues(fields []string) (map[string]string, string) {
	kv := make(map[string]string, len(fields))
	for _, f := range fields {
		k, v, ok := strings.Cut(f, "=")
		if !ok || k == "" {
			return nil, f
		}
		kv[k] = v
	}
	return kv, ""
}

// splitList turns "a, b,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
