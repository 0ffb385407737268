package utils

// ContainsString returns true iff the provided string slice hay contains string
// needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// RemoveString returns hay with every occurrence of needle removed, preserving
// the order of the remaining elements.
func RemoveString(hay []string, needle string) []string {
	out := make([]string, 0, len(hay))
	for _, str := range hay {
		if str != needle {
			out = append(out, str)
		}
	}
	return out
}
