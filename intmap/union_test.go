package intmap_test

import (
	"errors"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/embervm/ember/intmap"
)

func buildFrom(t *testing.T, pairs map[int]int) intmap.Map[int] {
	t.Helper()
	m := intmap.Empty[int]()
	for k, v := range pairs {
		var err error
		m, err = m.Add(k, v, nil)
		qt.Assert(t, qt.IsNil(err))
	}
	return m
}

func TestUnionWithEmptyReturnsOtherByIdentity(t *testing.T) {
	a := buildFrom(t, map[int]int{1: 1, 2: 2})
	empty := intmap.Empty[int]()

	u, err := intmap.Union(a, empty, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(u, a))

	u, err = intmap.Union(empty, a, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(u, a))
}

func TestUnionDisjoint(t *testing.T) {
	a := buildFrom(t, map[int]int{1: 1, 5: 5, 100: 100})
	b := buildFrom(t, map[int]int{2: 2, 6: 6, 99: 99})

	u, err := intmap.Union(a, b, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(u.Len(), 6))
	for k, want := range map[int]int{1: 1, 2: 2, 5: 5, 6: 6, 99: 99, 100: 100} {
		v, ok := u.Ref(k)
		qt.Assert(t, qt.Equals(ok, true))
		qt.Assert(t, qt.Equals(v, want))
	}
}

func TestUnionOverlappingWithoutMeetFails(t *testing.T) {
	a := buildFrom(t, map[int]int{1: 1})
	b := buildFrom(t, map[int]int{1: 2})

	_, err := intmap.Union(a, b, nil)
	qt.Assert(t, qt.Equals(errors.Is(err, intmap.ErrConflictingValues), true))
}

func TestUnionOverlappingWithMeet(t *testing.T) {
	a := buildFrom(t, map[int]int{1: 10, 2: 20})
	b := buildFrom(t, map[int]int{2: 200, 3: 30})

	u, err := intmap.Union(a, b, func(old, new int) (int, error) {
		return old + new, nil
	})
	qt.Assert(t, qt.IsNil(err))
	v, _ := u.Ref(2)
	qt.Assert(t, qt.Equals(v, 220))
}

func TestUnionSelfIsIdentity(t *testing.T) {
	a := buildFrom(t, map[int]int{1: 1, 500: 500})
	u, err := intmap.Union(a, a, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(u, a))
}

func TestUnionSubsetReturnsSuperset(t *testing.T) {
	a := buildFrom(t, map[int]int{1: 1, 2: 2, 3: 3})
	b, err := intmap.Empty[int]().Add(2, 2, nil)
	qt.Assert(t, qt.IsNil(err))

	u, err := intmap.Union(a, b, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(u, a))

	u, err = intmap.Union(b, a, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(u, a))
}
