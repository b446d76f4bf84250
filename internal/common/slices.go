package common

// UnknownStr is the String() result for out-of-range enum values.
const UnknownStr = "unknown"

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// Set is a minimal string set used by configuration layers.
type Set map[string]struct{}

// NewSet builds a set from the given names, skipping empty strings.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	s.Add(names...)

	return s
}

// Add inserts names into the set.
func (s Set) Add(names ...string) {
	for _, n := range names {
		if n != "" {
			s[n] = struct{}{}
		}
	}
}

// Has reports whether name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Union returns a new set holding the members of every given set.
func Union(sets ...Set) Set {
	out := Set{}
	for _, s := range sets {
		for k := range s {
			out[k] = struct{}{}
		}
	}

	return out
}
