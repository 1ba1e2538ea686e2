package projectdata

// appended returns a new slice holding list followed by e. list is not touched.
func appended[E any](list []E, e E) []E {
	out := make([]E, len(list), len(list)+1)
	copy(out, list)
	return append(out, e)
}

// without returns a new slice with every element matching drop removed.
// The result is never nil.
func without[E any](list []E, drop func(E) bool) []E {
	out := make([]E, 0, len(list))
	for _, e := range list {
		if !drop(e) {
			out = append(out, e)
		}
	}
	return out
}

// updated returns a copy of list where apply has been run on every element
// matching match.
func updated[E any](list []E, match func(E) bool, apply func(*E)) []E {
	out := make([]E, len(list))
	copy(out, list)
	for i := range out {
		if match(out[i]) {
			apply(&out[i])
		}
	}
	return out
}

func find[E any](list []E, match func(E) bool) (E, bool) {
	for _, e := range list {
		if match(e) {
			return e, true
		}
	}
	var zero E
	return zero, false
}
