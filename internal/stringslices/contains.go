package stringslices

import "strings"

// AnyContains reports whether sub is a substring of at least one element of a.
func AnyContains(a []string, sub string) bool {
	for _, v := range a {
		if strings.Contains(v, sub) {
			return true
		}
	}
	return false
}

// ContainsAny reports whether s contains at least one element of subs.
func ContainsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
