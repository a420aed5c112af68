package interval

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidInterval возвращается, когда начало интервала не раньше его конца
var ErrInvalidInterval = errors.New("interval: start must be before end")

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// New создает интервал с проверкой Start < End
// Используется на границах системы, где некорректный ввод - ошибка пользователя, а не программы
func New(start, end time.Time) (Interval, error) {
	i := Interval{Start: start, End: end}
	if err := i.Validate(); err != nil {
		return Interval{}, err
	}
	return i, nil
}

// Validate проверяет инвариант Start < End
func (i Interval) Validate() error {
	if !i.Start.Before(i.End) {
		return fmt.Errorf("%w: [%s, %s)", ErrInvalidInterval,
			i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
	}
	return nil
}

// Duration длительность интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// UTC возвращает интервал с границами в UTC
func (i Interval) UTC() Interval {
	return Interval{Start: i.Start.UTC(), End: i.End.UTC()}
}

// In возвращает интервал с границами в указанной локации
func (i Interval) In(loc *time.Location) Interval {
	return Interval{Start: i.Start.In(loc), End: i.End.In(loc)}
}

// Overlaps сообщает, пересекаются ли интервалы. Касание концами не считается пересечением
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Equal сравнивает интервалы как моменты времени, без учета локации
func (i Interval) Equal(o Interval) bool {
	return i.Start.Equal(o.Start) && i.End.Equal(o.End)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}

// mustValid паникует на перевернутом интервале.
// До алгебры такие интервалы доходить не должны: границы проверяют их через New/Validate.
func mustValid(i Interval) {
	if err := i.Validate(); err != nil {
		panic(err)
	}
}

// Intersect возвращает пересечение двух интервалов.
// ok == false, если интервалы не пересекаются (в том числе касаются концами)
func Intersect(a, b Interval) (Interval, bool) {
	mustValid(a)
	mustValid(b)

	start := maxTime(a.Start, b.Start)
	end := minTime(a.End, b.End)
	if !start.Before(end) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Merge сортирует интервалы по началу и склеивает пересекающиеся и смежные.
// Входной слайс не изменяется.
func Merge(intervals []Interval) []Interval {
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	for _, i := range sorted {
		mustValid(i)
	}

	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].Start.Equal(sorted[b].Start) {
			return sorted[a].End.Before(sorted[b].End)
		}
		return sorted[a].Start.Before(sorted[b].Start)
	})

	merged := make([]Interval, 0, len(sorted))
	for _, next := range sorted {
		if n := len(merged); n > 0 && !next.Start.After(merged[n-1].End) {
			if next.End.After(merged[n-1].End) {
				merged[n-1].End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}

	return merged
}

// Subtract возвращает упорядоченные части a, не покрытые ни одним интервалом из busy
func Subtract(a Interval, busy []Interval) []Interval {
	mustValid(a)

	free := make([]Interval, 0)
	cursor := a.Start

	for _, b := range Merge(busy) {
		if !b.End.After(cursor) {
			continue
		}
		if !b.Start.Before(a.End) {
			break
		}
		if b.Start.After(cursor) {
			free = append(free, Interval{Start: cursor, End: b.Start})
		}
		cursor = maxTime(cursor, b.End)
		if !cursor.Before(a.End) {
			return free
		}
	}

	if cursor.Before(a.End) {
		free = append(free, Interval{Start: cursor, End: a.End})
	}

	return free
}

// Union объединяет два набора интервалов в минимальный упорядоченный набор
func Union(a, b []Interval) []Interval {
	all := make([]Interval, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	return Merge(all)
}

// IsContained сообщает, покрыт ли inner набором set целиком
func IsContained(inner Interval, set []Interval) bool {
	mustValid(inner)

	for _, s := range Merge(set) {
		if !s.Start.After(inner.Start) && !s.End.Before(inner.End) {
			return true
		}
	}
	return false
}

// IntersectSets пересекает два набора интервалов (полное декартово произведение) и склеивает результат
func IntersectSets(a, b []Interval) []Interval {
	out := make([]Interval, 0)
	for _, x := range a {
		for _, y := range b {
			if overlap, ok := Intersect(x, y); ok {
				out = append(out, overlap)
			}
		}
	}
	return Merge(out)
}

// Clip обрезает каждый интервал по bound, отбрасывая не пересекающиеся
func Clip(intervals []Interval, bound Interval) []Interval {
	out := make([]Interval, 0, len(intervals))
	for _, i := range intervals {
		if clipped, ok := Intersect(i, bound); ok {
			out = append(out, clipped)
		}
	}
	return out
}

// Shrink сужает интервал на before в начале и after в конце.
// ok == false, если после сужения от интервала ничего не остается
func Shrink(i Interval, before, after time.Duration) (Interval, bool) {
	mustValid(i)

	shrunk := Interval{Start: i.Start.Add(before), End: i.End.Add(-after)}
	if !shrunk.Start.Before(shrunk.End) {
		return Interval{}, false
	}
	return shrunk, true
}

// FilterMinDuration оставляет только интервалы не короче min
func FilterMinDuration(intervals []Interval, min time.Duration) []Interval {
	out := make([]Interval, 0, len(intervals))
	for _, i := range intervals {
		if i.Duration() >= min {
			out = append(out, i)
		}
	}
	return out
}

// Split нарезает интервал на последовательные окна длиной step.
// Хвост короче step отбрасывается
func Split(i Interval, step time.Duration) []Interval {
	mustValid(i)
	if step <= 0 {
		panic(fmt.Errorf("interval: split step must be positive, got %s", step))
	}

	windows := make([]Interval, 0)
	for start := i.Start; !start.Add(step).After(i.End); start = start.Add(step) {
		windows = append(windows, Interval{Start: start, End: start.Add(step)})
	}
	return windows
}

// TotalDuration суммарная длительность набора после склейки
func TotalDuration(intervals []Interval) time.Duration {
	var total time.Duration
	for _, i := range Merge(intervals) {
		total += i.Duration()
	}
	return total
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
