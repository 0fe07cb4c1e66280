package util

import (
	"math"
	"strings"
)

// StringListContains returns true if the list of strings contains item.
func StringListContains(list []string, item string) bool {
	if list != nil {
		for i := range list {
			if list[i] == item {
				return true
			}
		}
	}
	return false
}

// HasAnyPrefix returns true if s starts with any of the prefixes.
func HasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// FileExtension returns the last dot-delimited segment of filename,
// without the dot. For example, "photo.final.jpeg" returns "jpeg".
// It returns an empty string when the name has no dot, or when the
// only dot is the trailing character.
func FileExtension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return filename[i+1:]
}

// CeilDiv returns ceil(n/d) for positive d. It returns zero when d < 1.
func CeilDiv(n, d int64) int64 {
	if d < 1 {
		return 0
	}
	return int64(math.Ceil(float64(n) / float64(d)))
}
