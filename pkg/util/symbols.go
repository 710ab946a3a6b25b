package util

import "strings"

const maxSymbolLen = 10

// NormalizeSymbol trims whitespace and upper-cases a ticker symbol.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidSymbol reports whether s is a normalized ticker: 1-10 alphanumeric chars.
func ValidSymbol(s string) bool {
	if len(s) == 0 || len(s) > maxSymbolLen {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// SplitSymbols splits a comma-separated ticker list, normalizing each entry
// and dropping empties. Order is preserved.
func SplitSymbols(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		sym := NormalizeSymbol(p)
		if sym != "" {
			out = append(out, sym)
		}
	}
	return out
}
