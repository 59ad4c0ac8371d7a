package intmap_test

import (
	"errors"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/embervm/ember/intmap"
)

func TestIntersectWithEmptyIsEmpty(t *testing.T) {
	a := buildFrom(t, map[int]int{1: 1, 2: 2})
	empty := intmap.Empty[int]()

	i, err := intmap.Intersect(a, empty, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(i, empty))

	i, err = intmap.Intersect(empty, a, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(i, empty))
}

func TestIntersectDisjointIsEmpty(t *testing.T) {
	a := buildFrom(t, map[int]int{1: 1, 2: 2})
	b := buildFrom(t, map[int]int{1000000: 1, 2000000: 2})

	i, err := intmap.Intersect(a, b, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(i, intmap.Empty[int]()))
}

func TestIntersectOverlap(t *testing.T) {
	a := buildFrom(t, map[int]int{1: 1, 2: 2, 3: 3})
	b := buildFrom(t, map[int]int{2: 2, 3: 3, 4: 4})

	i, err := intmap.Intersect(a, b, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(i.Len(), 2))
	for _, k := range []int{2, 3} {
		_, ok := i.Ref(k)
		qt.Assert(t, qt.Equals(ok, true))
	}
	for _, k := range []int{1, 4} {
		_, ok := i.Ref(k)
		qt.Assert(t, qt.Equals(ok, false))
	}
}

func TestIntersectConflictWithoutMeetFails(t *testing.T) {
	a := buildFrom(t, map[int]int{1: 1})
	b := buildFrom(t, map[int]int{1: 2})

	_, err := intmap.Intersect(a, b, nil)
	qt.Assert(t, qt.Equals(errors.Is(err, intmap.ErrConflictingValues), true))
}

func TestIntersectSelfIsIdentity(t *testing.T) {
	a := buildFrom(t, map[int]int{1: 1, 500: 500, 999999: 1})
	i, err := intmap.Intersect(a, a, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(i, a))
}

func TestIntersectSupersetReturnsSubset(t *testing.T) {
	a := buildFrom(t, map[int]int{1: 1, 2: 2, 3: 3})
	b, err := intmap.Empty[int]().Add(2, 2, nil)
	qt.Assert(t, qt.IsNil(err))

	i, err := intmap.Intersect(a, b, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(i, b))

	i, err = intmap.Intersect(b, a, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(i, b))
}

func TestIntersectFarApartSingletons(t *testing.T) {
	a, err := intmap.Empty[int]().Add(0, 0, nil)
	qt.Assert(t, qt.IsNil(err))
	b, err := intmap.Empty[int]().Add(1<<40, 1, nil)
	qt.Assert(t, qt.IsNil(err))

	i, err := intmap.Intersect(a, b, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(i, intmap.Empty[int]()))
}
