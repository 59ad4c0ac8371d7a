package intmap_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-quicktest/qt"

	"github.com/embervm/ember/internal/ordseq"
	"github.com/embervm/ember/internal/seqmerge"
	"github.com/embervm/ember/intmap"
)

// randomMap builds a map from n distinct random keys in [0, keySpace], each
// bound to a random word, using a seeded faker for reproducibility.
func randomMap(t *testing.T, fake *gofakeit.Faker, n, keySpace int) (intmap.Map[string], map[int]string) {
	t.Helper()
	m := intmap.Empty[string]()
	want := make(map[int]string)
	for len(want) < n {
		k := fake.Number(0, keySpace)
		v := fake.HipsterWord()
		want[k] = v
	}
	for k, v := range want {
		var err error
		m, err = m.Add(k, v, func(old, new string) (string, error) { return new, nil })
		qt.Assert(t, qt.IsNil(err))
	}
	return m, want
}

func TestFakeDataRefAndFold(t *testing.T) {
	fake := gofakeit.New(12345)
	m, want := randomMap(t, fake, 400, 1<<20)

	qt.Assert(t, qt.Equals(m.Len(), len(want)))
	for k, v := range want {
		got, ok := m.Ref(k)
		qt.Assert(t, qt.Equals(ok, true))
		qt.Assert(t, qt.Equals(got, v))
	}

	keys := intmap.Fold(m, func(k int, _ string, acc []int) []int {
		return append(acc, k)
	}, nil)
	qt.Assert(t, qt.Equals(len(keys), len(want)))
	qt.Assert(t, qt.Equals(ordseq.StrictlyIncreasing(keys), true))

	minKey, ok := m.Min()
	qt.Assert(t, qt.Equals(ok, true))
	for k := range want {
		if k == minKey {
			continue
		}
		p, ok := m.Prev(k)
		qt.Assert(t, qt.Equals(ok, true))
		n, ok := m.Next(p)
		qt.Assert(t, qt.Equals(ok, true))
		qt.Assert(t, qt.Equals(n, k))
	}
}

func TestFakeDataUnionAgreesWithOracle(t *testing.T) {
	fake := gofakeit.New(54321)
	ma, wantA := randomMap(t, fake, 150, 1<<16)
	mb, wantB := randomMap(t, fake, 150, 1<<16)

	takeNew := func(old, new string) (string, error) { return new, nil }
	u, err := intmap.Union(ma, mb, takeNew)
	qt.Assert(t, qt.IsNil(err))

	wantMerged := make(map[int]string, len(wantA)+len(wantB))
	for k, v := range wantA {
		wantMerged[k] = v
	}
	for k, v := range wantB {
		wantMerged[k] = v
	}

	got := seqmerge.Collect(u.All())
	qt.Assert(t, qt.Equals(len(got), len(wantMerged)))
	for _, p := range got {
		qt.Assert(t, qt.Equals(p.Val, wantMerged[p.Key]))
	}

	oracle, err := seqmerge.Union(seqmerge.Collect(ma.All()), seqmerge.Collect(mb.All()), takeNew)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, oracle))
}

func TestFakeDataIntersectAgreesWithOracle(t *testing.T) {
	fake := gofakeit.New(98765)
	ma, _ := randomMap(t, fake, 150, 1<<14)
	mb, _ := randomMap(t, fake, 150, 1<<14)

	takeNew := func(old, new string) (string, error) { return new, nil }
	i, err := intmap.Intersect(ma, mb, takeNew)
	qt.Assert(t, qt.IsNil(err))

	got := seqmerge.Collect(i.All())
	oracle, err := seqmerge.Intersect(seqmerge.Collect(ma.All()), seqmerge.Collect(mb.All()), takeNew)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, oracle))
}

func TestFakeDataAddRemoveRoundTrip(t *testing.T) {
	fake := gofakeit.New(2026)
	m := intmap.Empty[int]()
	var inserted []int
	for i := 0; i < 300; i++ {
		k := fake.Number(0, 1<<24)
		var err error
		m, err = m.Add(k, k, func(old, new int) (int, error) { return new, nil })
		qt.Assert(t, qt.IsNil(err))
		inserted = append(inserted, k)
	}
	for _, k := range inserted {
		m = m.Remove(k)
	}
	qt.Assert(t, qt.Equals(m, intmap.Empty[int]()))
}
