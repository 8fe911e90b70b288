package utils

import "strings"

// SplitNonEmpty splits s on sep, trims each part and drops empty ones.
func SplitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
