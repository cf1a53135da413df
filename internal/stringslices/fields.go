package stringslices

import "strings"

// FieldsReplacing replaces every rune of seps with a space and splits the
// result on whitespace.
func FieldsReplacing(s string, seps string) []string {
	if seps != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(seps, r) {
				return ' '
			}
			return r
		}, s)
	}
	return strings.Fields(s)
}
