package stringutils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Clean drops NUL, C0/C1 control characters (tab, newline and carriage return
// survive) and invalid UTF-8 from text scraped or generated outside the process.
func Clean(s string) string {
	if utf8.ValidString(s) && !hasControlChars(s) {
		return s
	}

	var builder strings.Builder
	builder.Grow(len(s))
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size <= 1 {
				continue
			}
		}
		if isControl(r) {
			continue
		}
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// Truncate cuts s to at most n runes, appending "..." when something was cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

// CollapseSpace joins all whitespace runs into single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isControl(r rune) bool {
	if r < 32 {
		return r != '\t' && r != '\n' && r != '\r'
	}
	return r == 127 || (r >= 128 && r <= 159)
}

func hasControlChars(s string) bool {
	for _, r := range s {
		if isControl(r) {
			return true
		}
	}
	return false
}
