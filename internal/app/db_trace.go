package app

import "strings"

const maxTracedQueryLength = 256

// formatDBQueryForTrace collapses whitespace so multi-line SQL reads as a single
// span attribute, and truncates long statements on a rune boundary.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	cut := maxTracedQueryLength
	for cut > 0 && !isRuneStart(normalized[cut]) {
		cut--
	}
	return normalized[:cut] + "..."
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
