package bus

import "strings"

// Match reports whether topic matches filter. Both are slash separated;
// "+" in the filter matches exactly one level and a trailing "#" matches
// the remaining levels, including none.
func Match(filter, topic string) bool {
	if filter == topic {
		return true
	}
	fl := strings.Split(filter, "/")
	tl := strings.Split(topic, "/")
	for i, f := range fl {
		if f == "#" {
			return i == len(fl)-1
		}
		if i >= len(tl) {
			return false
		}
		if f != "+" && f != tl[i] {
			return false
		}
	}
	return len(fl) == len(tl)
}

// IsFilter reports whether s contains a wildcard level.
func IsFilter(s string) bool {
	for _, level := range strings.Split(s, "/") {
		if level == "+" || level == "#" {
			return true
		}
	}
	return false
}
