package availability

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Допуски временных окон. Источник данных пишет слоты либо как одиночную
// метку времени RFC3339, либо как диапазон "start|end".
const (
	ReconcileTolerance = 2 * time.Minute  // допуск сопоставления слота при бронировании
	DefaultBlock       = 30 * time.Minute // длительность одиночного слота без конца
	PastGrace          = time.Minute      // насколько окно может уходить в прошлое
)

const rangeSep = "|"

var (
	ErrMissingBound     = errors.New("start and end are required")
	ErrBadTimestamp     = errors.New("invalid timestamp")
	ErrEndNotAfterStart = errors.New("end must be after start")
	ErrWindowInPast     = errors.New("window is entirely in the past")
	ErrDuplicateWindow  = errors.New("identical window already exists")
	ErrOverlap          = errors.New("window overlaps an existing one")
)

type SlotKind int

const (
	KindInstant SlotKind = iota
	KindRange
)

// Slot — распакованный элемент массива availability
type Slot struct {
	Kind  SlotKind
	Start time.Time
	End   time.Time
	Raw   string
}

// ParseSlot декодирует строку слота в явный вариант (момент или диапазон)
func ParseSlot(raw string) (Slot, error) {
	s := Slot{Raw: raw}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return s, ErrBadTimestamp
	}

	parts := strings.SplitN(trimmed, rangeSep, 2)

	start, err := time.Parse(time.RFC3339, strings.TrimSpace(parts[0]))
	if err != nil {
		return s, ErrBadTimestamp
	}
	s.Start = start

	if len(parts) == 1 {
		s.Kind = KindInstant
		s.End = start.Add(DefaultBlock)
		return s, nil
	}

	end, err := time.Parse(time.RFC3339, strings.TrimSpace(parts[1]))
	if err != nil {
		return s, ErrBadTimestamp
	}
	s.Kind = KindRange
	s.End = end
	return s, nil
}

// Encode возвращает каноническую строковую форму слота
func (s Slot) Encode() string {
	if s.Kind == KindInstant {
		return s.Start.UTC().Format(time.RFC3339)
	}
	return s.Start.UTC().Format(time.RFC3339) + rangeSep + s.End.UTC().Format(time.RFC3339)
}

// Overlaps — пересечение полуоткрытых интервалов [aStart,aEnd) и [bStart,bEnd).
// Соприкасающиеся границы пересечением не считаются.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ReconcileResult — итог сверки слотов после бронирования
type ReconcileResult struct {
	Before  int
	After   int
	Removed []string
	Kept    []string
}

// Reconcile удаляет из списка слоты, чье начало отстоит от target не более
// чем на ReconcileTolerance. Нечитаемые записи консервативно сохраняются.
func Reconcile(entries []string, target time.Time) ReconcileResult {
	res := ReconcileResult{Before: len(entries)}

	for _, raw := range entries {
		slot, err := ParseSlot(raw)
		if err != nil {
			// мусор в данных — не трогаем
			res.Kept = append(res.Kept, raw)
			continue
		}

		diff := slot.Start.Sub(target)
		if diff < 0 {
			diff = -diff
		}
		if diff <= ReconcileTolerance {
			res.Removed = append(res.Removed, raw)
		} else {
			res.Kept = append(res.Kept, raw)
		}
	}

	res.After = len(res.Kept)
	return res
}

// ValidateWindow проверяет новое окно (start,end) против существующих записей.
// Порядок проверок: границы заданы → end позже start → окно не в прошлом →
// не дубликат → не пересекается. Нечитаемые существующие записи пропускаются.
func ValidateWindow(now, start, end time.Time, existing []string) error {
	if start.IsZero() || end.IsZero() {
		return ErrMissingBound
	}
	if !end.After(start) {
		return ErrEndNotAfterStart
	}
	if end.Before(now.Add(-PastGrace)) {
		return ErrWindowInPast
	}

	proposed := Slot{Kind: KindRange, Start: start, End: end}
	encoded := proposed.Encode()

	for _, raw := range existing {
		slot, err := ParseSlot(raw)
		if err != nil {
			continue
		}
		if slot.Encode() == encoded {
			return ErrDuplicateWindow
		}
		if Overlaps(start, end, slot.Start, slot.End) {
			return ErrOverlap
		}
	}
	return nil
}

// NormalizeWindows приводит список к каноническому виду: дедупликация и
// сортировка по возрастанию начала. Нечитаемые записи сохраняются в хвосте.
func NormalizeWindows(entries []string) []string {
	var slots []Slot
	var unparsable []string
	seen := make(map[string]bool)

	for _, raw := range entries {
		slot, err := ParseSlot(raw)
		if err != nil {
			if !seen[raw] {
				seen[raw] = true
				unparsable = append(unparsable, raw)
			}
			continue
		}
		enc := slot.Encode()
		if seen[enc] {
			continue
		}
		seen[enc] = true
		slots = append(slots, slot)
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Start.Equal(slots[j].Start) {
			return slots[i].End.Before(slots[j].End)
		}
		return slots[i].Start.Before(slots[j].Start)
	})

	out := make([]string, 0, len(slots)+len(unparsable))
	for _, s := range slots {
		out = append(out, s.Encode())
	}
	out = append(out, unparsable...)
	return out
}
