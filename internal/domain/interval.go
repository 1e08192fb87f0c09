package domain

import (
	"sort"
	"time"
)

// IntervalKind is the priority class of an open-hours interval
type IntervalKind string

const (
	// IntervalNormal regular open hours
	IntervalNormal IntervalKind = "normal"
	// IntervalOnCall on-call hours: the arena opens on demand, lower priority than normal hours
	IntervalOnCall IntervalKind = "on_call"
)

// TimeInterval is a half-open time range [Start, End)
// A zero-value interval (no bounds set) represents "no hours"
type TimeInterval struct {
	Start time.Time    `json:"start"`
	End   time.Time    `json:"end"`
	Kind  IntervalKind `json:"kind"`
}

// NewInterval creates a normal interval
func NewInterval(start, end time.Time) TimeInterval {
	return TimeInterval{Start: start, End: end, Kind: IntervalNormal}
}

// NewOnCallInterval creates an on-call interval
func NewOnCallInterval(start, end time.Time) TimeInterval {
	return TimeInterval{Start: start, End: end, Kind: IntervalOnCall}
}

// IsEmpty returns true if the interval has no bounds or covers no time
func (i TimeInterval) IsEmpty() bool {
	return i.Start.IsZero() || i.End.IsZero() || !i.Start.Before(i.End)
}

// IsOnCall returns true for on-call intervals
func (i TimeInterval) IsOnCall() bool {
	return i.Kind == IntervalOnCall
}

// Contains returns true if t falls within [Start, End)
func (i TimeInterval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Overlaps returns true if the two ranges intersect or touch
// Touching endpoints count as overlapping so that back-to-back hours merge into one block
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return !i.Start.After(other.End) && !other.Start.After(i.End)
}

// Combine merges two overlapping (or touching) intervals into the minimal covering set.
//
// Одинаковый вид: один интервал от min(Start) до max(End).
// Normal + OnCall: в зоне пересечения приоритет у normal-интервала, от on-call
// остаются только куски за пределами normal (слева и/или справа).
func (i TimeInterval) Combine(other TimeInterval) []TimeInterval {
	if i.Kind == other.Kind {
		merged := TimeInterval{Start: minTime(i.Start, other.Start), End: maxTime(i.End, other.End), Kind: i.Kind}
		return []TimeInterval{merged}
	}

	normal, onCall := i, other
	if i.IsOnCall() {
		normal, onCall = other, i
	}

	result := make([]TimeInterval, 0, 3)

	// остаток on-call слева от normal
	if onCall.Start.Before(normal.Start) {
		left := TimeInterval{Start: onCall.Start, End: minTime(onCall.End, normal.Start), Kind: IntervalOnCall}
		if !left.IsEmpty() {
			result = append(result, left)
		}
	}

	result = append(result, normal)

	// остаток on-call справа от normal
	if onCall.End.After(normal.End) {
		right := TimeInterval{Start: maxTime(onCall.Start, normal.End), End: onCall.End, Kind: IntervalOnCall}
		if !right.IsEmpty() {
			result = append(result, right)
		}
	}

	sortIntervals(result)
	return result
}

// MergeTimes сводит набор интервалов к минимальному неперекрывающемуся покрытию.
//
// Пустые интервалы отбрасываются. Каждый вид сливается отдельно обычным
// interval-merge sweep, затем из on-call покрытия вычитается normal-покрытие:
// в зоне пересечения приоритет у normal, от on-call остаются куски за его
// пределами. Результат не содержит пересекающихся интервалов по построению
// и отсортирован по началу.
func MergeTimes(intervals []TimeInterval) []TimeInterval {
	normals := make([]TimeInterval, 0, len(intervals))
	onCalls := make([]TimeInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.IsEmpty() {
			continue
		}
		if iv.IsOnCall() {
			onCalls = append(onCalls, iv)
		} else {
			normals = append(normals, iv)
		}
	}

	normals = mergeSameKind(normals)
	onCalls = mergeSameKind(onCalls)

	out := make([]TimeInterval, 0, len(normals)+2*len(onCalls))
	out = append(out, normals...)
	for _, oc := range onCalls {
		out = append(out, subtractCover(oc, normals)...)
	}

	sortIntervals(out)
	return out
}

// mergeSameKind сливает интервалы одного вида в неперекрывающееся покрытие
// Соприкасающиеся интервалы склеиваются в один блок
func mergeSameKind(intervals []TimeInterval) []TimeInterval {
	if len(intervals) == 0 {
		return []TimeInterval{}
	}

	sortIntervals(intervals)

	out := []TimeInterval{intervals[0]}
	for _, next := range intervals[1:] {
		last := &out[len(out)-1]
		if last.Overlaps(next) {
			last.End = maxTime(last.End, next.End)
			continue
		}
		out = append(out, next)
	}
	return out
}

// subtractCover возвращает куски on-call интервала, не накрытые normal-покрытием
// cover отсортирован и не содержит пересечений
func subtractCover(oc TimeInterval, cover []TimeInterval) []TimeInterval {
	pieces := make([]TimeInterval, 0, len(cover)+1)
	cursor := oc.Start

	for _, n := range cover {
		if !n.Start.Before(oc.End) {
			break
		}
		if !n.End.After(cursor) {
			continue
		}
		if n.Start.After(cursor) {
			pieces = append(pieces, TimeInterval{Start: cursor, End: n.Start, Kind: IntervalOnCall})
		}
		cursor = maxTime(cursor, n.End)
	}

	if cursor.Before(oc.End) {
		pieces = append(pieces, TimeInterval{Start: cursor, End: oc.End, Kind: IntervalOnCall})
	}
	return pieces
}

// sortIntervals сортирует интервалы по началу, при равенстве normal раньше on-call
func sortIntervals(intervals []TimeInterval) {
	sort.SliceStable(intervals, func(a, b int) bool {
		if !intervals[a].Start.Equal(intervals[b].Start) {
			return intervals[a].Start.Before(intervals[b].Start)
		}
		if intervals[a].Kind != intervals[b].Kind {
			return intervals[a].Kind == IntervalNormal
		}
		return intervals[a].End.Before(intervals[b].End)
	})
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
