package parser

import "strings"

// ParseList splits a comma-separated flag value into trimmed, non-empty,
// de-duplicated items in input order.
func ParseList(input string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}

// ParseLists flattens repeated list flags such as --radio a,b --radio c.
func ParseLists(inputs []string) []string {
	return ParseList(strings.Join(inputs, ","))
}
