package orderedset

import "golang.org/x/exp/constraints"

// Iterator walks a Set's values in ascending order. Because values are
// addressed by a stable id rather than a hash-probe position, an
// Iterator survives a hash-index resize without any snapshot/restore
// step; it is invalidated by the owning Set's Clear (tracked via a
// generation counter) or by removal of its value, matching the spec's
// "no dangling reference" guarantee.
type Iterator[V constraints.Ordered] struct {
	set        *Set[V]
	id         int
	generation int
}

// newIterator returns an iterator positioned at id (invalidIndex for a
// not-found Find result, or the minimum for Begin).
func (s *Set[V]) newIterator(id int) *Iterator[V] {
	return &Iterator[V]{set: s, id: id, generation: s.generation}
}

// Begin returns an iterator positioned at the smallest value, or a
// done iterator if the set is empty.
func (s *Set[V]) Begin() *Iterator[V] {
	if s.root == invalidIndex {
		return s.newIterator(invalidIndex)
	}
	return s.newIterator(s.treeMinimum(s.root))
}

// Done reports whether the iterator has been exhausted, its value
// removed, or its Set cleared since it was created.
func (it *Iterator[V]) Done() bool {
	return it.id == invalidIndex || it.generation != it.set.generation || !it.set.live[it.id]
}

// Value returns the value the iterator currently points to. Calling
// Value on a done iterator returns the zero value.
func (it *Iterator[V]) Value() V {
	if it.Done() {
		var zero V
		return zero
	}
	return it.set.values[it.id]
}

// Next advances the iterator to the next value in ascending order,
// returning false once exhausted.
func (it *Iterator[V]) Next() bool {
	if it.Done() {
		return false
	}

	s := it.set
	id := it.id

	if s.nodes[id].right != invalidIndex {
		it.id = s.treeMinimum(s.nodes[id].right)
		return true
	}

	cursor := id
	parent := s.nodes[cursor].parent
	for parent != invalidIndex && cursor == s.nodes[parent].right {
		cursor = parent
		parent = s.nodes[parent].parent
	}
	it.id = parent
	return it.id != invalidIndex
}
