package stringsx

import "unicode/utf8"

// TruncateByLength cuts s to at most length bytes without splitting a rune.
func TruncateByLength(s string, length int) string {
	if length > 0 && len(s) > length {
		res := s[:length]
		for !utf8.ValidString(res) {
			res = res[:len(res)-1]
		}
		return res
	}
	return s
}

// Excerpt is like TruncateByLength but marks truncated values with "...".
func Excerpt(s string, length int) string {
	if t := TruncateByLength(s, length); t != s {
		return t + "..."
	}
	return s
}
