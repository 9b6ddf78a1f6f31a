package orderedset

import "golang.org/x/exp/constraints"

// UnionWith mutates s to additionally contain every value in other.
func (s *Set[V]) UnionWith(other *Set[V]) {
	for _, v := range other.ToList() {
		s.Insert(v)
	}
}

// IntersectWith mutates s to retain only values also present in other.
func (s *Set[V]) IntersectWith(other *Set[V]) {
	for _, v := range s.ToList() {
		if !other.Contains(v) {
			s.Remove(v)
		}
	}
}

// Subtract mutates s to remove every value present in other.
func (s *Set[V]) Subtract(other *Set[V]) {
	for _, v := range other.ToList() {
		s.Remove(v)
	}
}

// Union returns a new set containing every value in s or other.
func (s *Set[V]) Union(other *Set[V]) *Set[V] {
	result := NewSet[V](WithSeed[V](s.seed))
	result.UnionWith(s)
	result.UnionWith(other)
	return result
}

// Intersection returns a new set containing values present in both s
// and other.
func (s *Set[V]) Intersection(other *Set[V]) *Set[V] {
	result := NewSet[V](WithSeed[V](s.seed))
	for _, v := range s.ToList() {
		if other.Contains(v) {
			result.Insert(v)
		}
	}
	return result
}

// Difference returns a new set containing values present in s but not
// in other.
func (s *Set[V]) Difference(other *Set[V]) *Set[V] {
	result := NewSet[V](WithSeed[V](s.seed))
	for _, v := range s.ToList() {
		if !other.Contains(v) {
			result.Insert(v)
		}
	}
	return result
}

// Pair is an ordered pair produced by CartesianProduct.
type Pair[A, B constraints.Ordered] struct {
	First  A
	Second B
}

// CartesianProduct returns {(a, b) | a in s, b in other} as a slice of
// pairs, ordered first by a then by b (the set's own ascending
// ordering discipline applied to each axis in turn).
func CartesianProduct[A, B constraints.Ordered](s *Set[A], other *Set[B]) []Pair[A, B] {
	as := s.ToList()
	bs := other.ToList()

	out := make([]Pair[A, B], 0, len(as)*len(bs))
	for _, a := range as {
		for _, b := range bs {
			out = append(out, Pair[A, B]{First: a, Second: b})
		}
	}
	return out
}
