// Package typeset implements a small hashable set of type-variable names,
// used to represent free-variable sets and Forall quantifier sets.
//
// Adapted from util/hset/hashableSet.go (a generic HSet[A any] backed by
// github.com/benbjohnson/immutable), specialised to strings since the
// engine only ever needs to track type-variable *names*.
package typeset

import "github.com/benbjohnson/immutable"

type stringHasher struct{}

func (stringHasher) Hash(s string) uint32 {
	// FNV-1a, 32-bit.
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

func (stringHasher) Equal(a, b string) bool { return a == b }

var hasher = stringHasher{}

// Set is an immutable set of type-variable names. The zero Set is safe to
// use and behaves as empty — underlying is a pointer precisely so that
// can be detected and guarded against, since immutable.Set itself has no
// usable zero value (it must come from immutable.NewSet).
type Set struct {
	underlying *immutable.Set[string]
}

// Empty is the empty Set.
var Empty = wrap(immutable.NewSet[string](hasher))

// Of builds a Set from the given names.
func Of(names ...string) Set {
	s := immutable.NewSet[string](hasher)
	for _, n := range names {
		s = s.Add(n)
	}
	return wrap(s)
}

func wrap(s immutable.Set[string]) Set { return Set{underlying: &s} }

// get returns s's underlying immutable set, treating an unset (zero-value)
// Set the same as Empty.
func (s Set) get() immutable.Set[string] {
	if s.underlying == nil {
		return Empty.get()
	}
	return *s.underlying
}

func (s Set) Len() int { return s.get().Len() }

func (s Set) Contains(name string) bool { return s.get().Has(name) }

// Add returns a new Set with name added.
func (s Set) Add(name string) Set {
	return wrap(s.get().Add(name))
}

// Union returns the union of s and other.
func (s Set) Union(other Set) Set {
	result := s.get()
	itr := other.get().Iterator()
	for !itr.Done() {
		v, _ := itr.Next()
		result = result.Add(v)
	}
	return wrap(result)
}

// Difference returns the elements of s not present in other.
func (s Set) Difference(other Set) Set {
	result := s.get()
	itr := s.get().Iterator()
	for !itr.Done() {
		v, _ := itr.Next()
		if other.Contains(v) {
			result = result.Delete(v)
		}
	}
	return wrap(result)
}

// Slice returns the elements of s in no particular order.
func (s Set) Slice() []string {
	out := make([]string, 0, s.Len())
	itr := s.get().Iterator()
	for !itr.Done() {
		v, _ := itr.Next()
		out = append(out, v)
	}
	return out
}
