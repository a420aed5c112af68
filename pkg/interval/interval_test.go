package interval

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func iv(h1, m1, h2, m2 int) Interval {
	return Interval{Start: at(h1, m1), End: at(h2, m2)}
}

// randomSet генерирует набор интервалов внутри суток с фиксированным seed
func randomSet(r *rand.Rand, n int) []Interval {
	set := make([]Interval, 0, n)
	for i := 0; i < n; i++ {
		start := r.Intn(24*60 - 15)
		length := 5 + r.Intn(180)
		end := start + length
		if end > 24*60 {
			end = 24 * 60
		}
		set = append(set, Interval{
			Start: day.Add(time.Duration(start) * time.Minute),
			End:   day.Add(time.Duration(end) * time.Minute),
		})
	}
	return set
}

func TestNew(t *testing.T) {
	_, err := New(at(10, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = New(at(11, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	i, err := New(at(9, 0), at(10, 0))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, i.Duration())
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Interval
		want   Interval
		wantOK bool
	}{
		{name: "overlap", a: iv(9, 0, 12, 0), b: iv(11, 0, 13, 0), want: iv(11, 0, 12, 0), wantOK: true},
		{name: "contained", a: iv(9, 0, 17, 0), b: iv(12, 0, 13, 0), want: iv(12, 0, 13, 0), wantOK: true},
		{name: "touching endpoints", a: iv(9, 0, 12, 0), b: iv(12, 0, 13, 0), wantOK: false},
		{name: "disjoint", a: iv(9, 0, 10, 0), b: iv(11, 0, 12, 0), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Intersect(tt.a, tt.b)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}

func TestIntersect_PanicsOnInvertedInterval(t *testing.T) {
	assert.Panics(t, func() {
		Intersect(iv(12, 0, 9, 0), iv(9, 0, 10, 0))
	})
}

func TestMerge(t *testing.T) {
	input := []Interval{iv(13, 0, 14, 0), iv(9, 0, 10, 0), iv(9, 30, 11, 0), iv(11, 0, 12, 0), iv(15, 0, 16, 0)}
	snapshot := append([]Interval(nil), input...)

	got := Merge(input)

	assert.Equal(t, []Interval{iv(9, 0, 12, 0), iv(13, 0, 14, 0), iv(15, 0, 16, 0)}, got)
	assert.Equal(t, snapshot, input, "input must not be mutated")
	assert.Empty(t, Merge(nil))
}

func TestSubtract(t *testing.T) {
	got := Subtract(iv(9, 0, 17, 0), []Interval{iv(12, 0, 13, 0), iv(12, 30, 13, 30), iv(16, 0, 18, 0), iv(7, 0, 8, 0)})
	assert.Equal(t, []Interval{iv(9, 0, 12, 0), iv(13, 30, 16, 0)}, got)

	assert.Equal(t, []Interval{iv(9, 0, 17, 0)}, Subtract(iv(9, 0, 17, 0), nil))
	assert.Empty(t, Subtract(iv(9, 0, 17, 0), []Interval{iv(8, 0, 18, 0)}))
}

func TestUnionAndIsContained(t *testing.T) {
	u := Union([]Interval{iv(9, 0, 10, 0)}, []Interval{iv(10, 0, 11, 0), iv(14, 0, 15, 0)})
	assert.Equal(t, []Interval{iv(9, 0, 11, 0), iv(14, 0, 15, 0)}, u)

	assert.True(t, IsContained(iv(9, 30, 10, 30), []Interval{iv(9, 0, 10, 0), iv(10, 0, 11, 0)}))
	assert.False(t, IsContained(iv(10, 30, 14, 30), u))
}

func TestShrink(t *testing.T) {
	got, ok := Shrink(iv(9, 0, 12, 0), 15*time.Minute, 30*time.Minute)
	require.True(t, ok)
	assert.Equal(t, iv(9, 15, 11, 30), got)

	_, ok = Shrink(iv(9, 0, 9, 40), 20*time.Minute, 20*time.Minute)
	assert.False(t, ok)
}

func TestSplit(t *testing.T) {
	windows := Split(iv(9, 0, 11, 45), time.Hour)
	assert.Equal(t, []Interval{iv(9, 0, 10, 0), iv(10, 0, 11, 0)}, windows)
}

func TestProperty_MergeIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for n := 0; n < 200; n++ {
		set := randomSet(r, r.Intn(20))
		once := Merge(set)
		assert.Equal(t, once, Merge(once))
	}
}

func TestProperty_ComplementCoversRange(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	rng := iv(6, 0, 20, 0)

	for n := 0; n < 200; n++ {
		busy := Clip(randomSet(r, r.Intn(15)), rng)
		free := Subtract(rng, busy)

		for _, f := range free {
			for _, b := range busy {
				assert.False(t, f.Overlaps(b), "free %s overlaps busy %s", f, b)
			}
		}

		assert.Equal(t, []Interval{rng}, Union(free, busy))
		assert.Equal(t, rng.Duration(), TotalDuration(free)+TotalDuration(busy))
	}
}

func TestProperty_IntersectSetsCommutative(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	for n := 0; n < 200; n++ {
		a := Merge(randomSet(r, r.Intn(10)))
		b := Merge(randomSet(r, r.Intn(10)))
		assert.Equal(t, IntersectSets(a, b), IntersectSets(b, a))
	}
}

func TestProperty_SubtractMonotonic(t *testing.T) {
	r := rand.New(rand.NewSource(2024))
	rng := iv(0, 0, 23, 0)

	for n := 0; n < 200; n++ {
		busy := randomSet(r, r.Intn(10))
		before := Subtract(rng, busy)
		after := Subtract(rng, append(busy, randomSet(r, 1)...))

		assert.LessOrEqual(t, TotalDuration(after), TotalDuration(before))
		for _, f := range after {
			assert.True(t, IsContained(f, before), "%s appeared after adding busy time", f)
		}
	}
}
