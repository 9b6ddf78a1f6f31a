package orderedset

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/joeycumines/go-inem/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_InsertContainsRemove(t *testing.T) {
	s := NewSet[int]()
	require.True(t, s.IsEmpty())

	require.True(t, s.Insert(5))
	require.False(t, s.Insert(5))
	require.True(t, s.Contains(5))
	require.Equal(t, 1, s.Size())

	require.True(t, s.Remove(5))
	require.False(t, s.Remove(5))
	require.False(t, s.Contains(5))
	require.True(t, s.IsEmpty())
}

func TestSet_ToListIsAscending(t *testing.T) {
	s := NewSet[int]()
	values := []int{42, 7, -3, 19, 0, 100, -50, 8}
	for _, v := range values {
		s.Insert(v)
	}

	got := s.ToList()
	want := append([]int(nil), values...)
	sort.Ints(want)
	assert.Equal(t, want, got)
}

func TestSet_RandomInsertRemoveStaysConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewSet[int]()
	reference := make(map[int]bool)

	for i := 0; i < 2000; i++ {
		v := rng.Intn(200)
		if rng.Intn(2) == 0 {
			before := reference[v]
			got := s.Insert(v)
			require.Equal(t, !before, got)
			reference[v] = true
		} else {
			before := reference[v]
			got := s.Remove(v)
			require.Equal(t, before, got)
			delete(reference, v)
		}
	}

	var want []int
	for v, present := range reference {
		if present {
			want = append(want, v)
		}
	}
	sort.Ints(want)

	got := s.ToList()
	require.Equal(t, want, got)
	require.Equal(t, len(want), s.Size())
}

func TestSet_Find(t *testing.T) {
	s := NewSet[string]()
	s.Insert("a")
	s.Insert("b")

	it, ok := s.Find("a")
	require.True(t, ok)
	require.False(t, it.Done())
	require.Equal(t, "a", it.Value())

	it, ok = s.Find("missing")
	require.False(t, ok)
	require.True(t, it.Done())
}

func TestSet_IteratorWalksAscending(t *testing.T) {
	s := NewSet[int]()
	values := []int{5, 1, 9, 3, 7}
	for _, v := range values {
		s.Insert(v)
	}

	var got []int
	for it := s.Begin(); !it.Done(); it.Next() {
		got = append(got, it.Value())
	}

	want := append([]int(nil), values...)
	sort.Ints(want)
	assert.Equal(t, want, got)
}

func TestSet_IteratorSurvivesResize(t *testing.T) {
	s := NewSet[int]()
	s.Insert(1)
	it, ok := s.Find(1)
	require.True(t, ok)

	for i := 2; i < 500; i++ {
		s.Insert(i)
	}

	require.False(t, it.Done())
	require.Equal(t, 1, it.Value())
}

func TestSet_ClearInvalidatesIterators(t *testing.T) {
	s := NewSet[int]()
	s.Insert(1)
	s.Insert(2)

	it := s.Begin()
	require.False(t, it.Done())

	s.Clear()
	require.True(t, it.Done())
	require.True(t, s.IsEmpty())

	require.True(t, s.Insert(1))
}

func TestSet_Reserve(t *testing.T) {
	s := NewSet[int]()
	s.Reserve(1000)
	require.True(t, len(s.hashSlots) >= 1000)

	for i := 0; i < 1000; i++ {
		s.Insert(i)
	}
	require.Equal(t, 1000, s.Size())
}

func TestSet_UnionIntersectionDifference(t *testing.T) {
	a := NewSet[int]()
	for _, v := range []int{1, 2, 3, 4} {
		a.Insert(v)
	}
	b := NewSet[int]()
	for _, v := range []int{3, 4, 5, 6} {
		b.Insert(v)
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, a.Union(b).ToList())
	assert.Equal(t, []int{3, 4}, a.Intersection(b).ToList())
	assert.Equal(t, []int{1, 2}, a.Difference(b).ToList())
}

func TestSet_UnionWithIntersectWithSubtractMutateInPlace(t *testing.T) {
	a := NewSet[int]()
	for _, v := range []int{1, 2, 3} {
		a.Insert(v)
	}
	b := NewSet[int]()
	for _, v := range []int{2, 3, 4} {
		b.Insert(v)
	}

	union := NewSet[int]()
	for _, v := range []int{1, 2, 3} {
		union.Insert(v)
	}
	union.UnionWith(b)
	assert.Equal(t, []int{1, 2, 3, 4}, union.ToList())

	intersect := NewSet[int]()
	for _, v := range []int{1, 2, 3} {
		intersect.Insert(v)
	}
	intersect.IntersectWith(b)
	assert.Equal(t, []int{2, 3}, intersect.ToList())

	subtract := NewSet[int]()
	for _, v := range []int{1, 2, 3} {
		subtract.Insert(v)
	}
	subtract.Subtract(b)
	assert.Equal(t, []int{1}, subtract.ToList())
}

func TestCartesianProduct(t *testing.T) {
	a := NewSet[int]()
	a.Insert(1)
	a.Insert(2)
	b := NewSet[string]()
	b.Insert("x")
	b.Insert("y")

	got := CartesianProduct[int, string](a, b)
	want := []Pair[int, string]{
		{1, "x"}, {1, "y"},
		{2, "x"}, {2, "y"},
	}
	assert.Equal(t, want, got)
}

func TestSet_WithSeedIsDeterministic(t *testing.T) {
	a := NewSet[int](WithSeed[int](99))
	b := NewSet[int](WithSeed[int](99))
	for i := 0; i < 50; i++ {
		a.Insert(i)
		b.Insert(i)
	}
	assert.Equal(t, a.ToList(), b.ToList())
}

// treeDepths walks the red-black tree and returns its minimum and
// maximum root-to-leaf depths (a leaf being a node with no children; a
// node with one child counts that side's depth only).
func (s *Set[V]) treeDepths() (min, max int) {
	if s.root == invalidIndex {
		return 0, 0
	}
	min = math.MaxInt
	var walk func(id, depth int)
	walk = func(id, depth int) {
		if id == invalidIndex {
			return
		}
		n := s.nodes[id]
		if n.left == invalidIndex && n.right == invalidIndex {
			if depth < min {
				min = depth
			}
			if depth > max {
				max = depth
			}
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	walk(s.root, 1)
	return min, max
}

func ceilLog2(n int) int {
	return int(math.Ceil(math.Log2(float64(n))))
}

// TestSet_RBInvariantsUnderAdversarialResize inserts 10,000 integers in
// pseudo-random order drawn from a Xoshiro256+ stream, checking at each
// power of two in the running size that the tree stays sorted and that
// its min/max leaf depths never diverge by more than
// 2*ceil(log2(size+1)), the red-black balance bound.
func TestSet_RBInvariantsUnderAdversarialResize(t *testing.T) {
	source := rng.NewXoshiro256Plus(rng.Seed{7, 7, 7, 7}, 0)
	s := NewSet[int]()

	const total = 10000
	next := 1
	for i := 0; i < total; i++ {
		v := int(source.Next64() % (total * 4))
		s.Insert(v)

		size := s.Size()
		if size == next {
			list := s.ToList()
			require.True(t, sort.IntsAreSorted(list))

			minDepth, maxDepth := s.treeDepths()
			bound := 2 * ceilLog2(size+1)
			assert.LessOrEqualf(t, maxDepth-minDepth, bound,
				"size=%d min=%d max=%d bound=%d", size, minDepth, maxDepth, bound)

			next *= 2
		}
	}
}
