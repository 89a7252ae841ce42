// Package platform handles the comma-separated platform list used by the
// game form. Parse and Join are a round-tripping pair: joining a parsed
// list and parsing it again yields the same list, order preserved and
// duplicates kept.
package platform

import "strings"

// Parse splits a comma-separated platform list, trimming whitespace and
// dropping empty entries.
func Parse(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Join renders a platform list back into the form's text representation.
func Join(platforms []string) string {
	return strings.Join(platforms, ", ")
}
