package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func TestParseSlot(t *testing.T) {
	t.Run("bare instant", func(t *testing.T) {
		slot, err := ParseSlot("2025-01-01T10:00:00Z")
		require.NoError(t, err)
		require.Equal(t, KindInstant, slot.Kind)
		require.Equal(t, mustTime(t, "2025-01-01T10:00:00Z"), slot.Start)
		require.Equal(t, mustTime(t, "2025-01-01T10:30:00Z"), slot.End)
	})

	t.Run("range", func(t *testing.T) {
		slot, err := ParseSlot("2025-01-01T10:00:00Z|2025-01-01T11:00:00Z")
		require.NoError(t, err)
		require.Equal(t, KindRange, slot.Kind)
		require.Equal(t, mustTime(t, "2025-01-01T11:00:00Z"), slot.End)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseSlot("next tuesday")
		require.ErrorIs(t, err, ErrBadTimestamp)

		_, err = ParseSlot("2025-01-01T10:00:00Z|whenever")
		require.ErrorIs(t, err, ErrBadTimestamp)

		_, err = ParseSlot("   ")
		require.ErrorIs(t, err, ErrBadTimestamp)
	})
}

func TestReconcile(t *testing.T) {
	t.Run("removes entry within tolerance", func(t *testing.T) {
		// 90 секунд от цели — внутри двухминутного допуска
		entries := []string{"2025-01-01T10:00:00Z", "2025-01-01T14:00:00Z"}
		target := mustTime(t, "2025-01-01T10:01:30Z")

		res := Reconcile(entries, target)
		require.Equal(t, 2, res.Before)
		require.Equal(t, 1, res.After)
		require.Equal(t, []string{"2025-01-01T10:00:00Z"}, res.Removed)
		require.Equal(t, []string{"2025-01-01T14:00:00Z"}, res.Kept)
	})

	t.Run("exactly 120s is still a match", func(t *testing.T) {
		entries := []string{"2025-01-01T10:00:00Z"}
		res := Reconcile(entries, mustTime(t, "2025-01-01T10:02:00Z"))
		require.Len(t, res.Removed, 1)
	})

	t.Run("121s is not a match", func(t *testing.T) {
		entries := []string{"2025-01-01T10:00:00Z"}
		res := Reconcile(entries, mustTime(t, "2025-01-01T10:02:01Z"))
		require.Empty(t, res.Removed)
		require.Equal(t, entries, res.Kept)
	})

	t.Run("matches the start of a range entry", func(t *testing.T) {
		entries := []string{"2025-01-01T10:00:00Z|2025-01-01T11:00:00Z"}
		res := Reconcile(entries, mustTime(t, "2025-01-01T09:59:00Z"))
		require.Len(t, res.Removed, 1)
	})

	t.Run("unparsable entries are kept", func(t *testing.T) {
		entries := []string{"not-a-time", "2025-01-01T10:00:00Z"}
		res := Reconcile(entries, mustTime(t, "2025-01-01T10:00:00Z"))
		require.Equal(t, []string{"2025-01-01T10:00:00Z"}, res.Removed)
		require.Equal(t, []string{"not-a-time"}, res.Kept)
		require.Equal(t, 1, res.After)
	})
}

func TestValidateWindow(t *testing.T) {
	now := mustTime(t, "2025-02-01T08:00:00Z")

	t.Run("missing bounds", func(t *testing.T) {
		err := ValidateWindow(now, time.Time{}, now.Add(time.Hour), nil)
		require.ErrorIs(t, err, ErrMissingBound)
	})

	t.Run("end must be after start", func(t *testing.T) {
		start := mustTime(t, "2025-02-01T10:00:00Z")
		err := ValidateWindow(now, start, start, nil)
		require.ErrorIs(t, err, ErrEndNotAfterStart)
	})

	t.Run("entirely past window rejected with one minute grace", func(t *testing.T) {
		err := ValidateWindow(now, now.Add(-2*time.Hour), now.Add(-61*time.Second), nil)
		require.ErrorIs(t, err, ErrWindowInPast)

		// внутри минутного допуска — принимается
		err = ValidateWindow(now, now.Add(-2*time.Hour), now.Add(-59*time.Second), nil)
		require.NoError(t, err)
	})

	t.Run("duplicate encoded range rejected", func(t *testing.T) {
		existing := []string{"2025-02-01T09:00:00Z|2025-02-01T10:00:00Z"}
		err := ValidateWindow(now,
			mustTime(t, "2025-02-01T09:00:00Z"),
			mustTime(t, "2025-02-01T10:00:00Z"),
			existing)
		require.ErrorIs(t, err, ErrDuplicateWindow)
	})

	t.Run("overlapping window rejected", func(t *testing.T) {
		existing := []string{"2025-02-01T09:00:00Z|2025-02-01T10:00:00Z"}
		err := ValidateWindow(now,
			mustTime(t, "2025-02-01T09:30:00Z"),
			mustTime(t, "2025-02-01T10:30:00Z"),
			existing)
		require.ErrorIs(t, err, ErrOverlap)
	})

	t.Run("touching boundaries accepted", func(t *testing.T) {
		existing := []string{"2025-02-01T09:00:00Z|2025-02-01T10:00:00Z"}
		err := ValidateWindow(now,
			mustTime(t, "2025-02-01T10:00:00Z"),
			mustTime(t, "2025-02-01T11:00:00Z"),
			existing)
		require.NoError(t, err)

		err = ValidateWindow(now,
			mustTime(t, "2025-02-01T08:30:00Z"),
			mustTime(t, "2025-02-01T09:00:00Z"),
			existing)
		require.NoError(t, err)
	})

	t.Run("bare entry occupies a 30 minute block", func(t *testing.T) {
		existing := []string{"2025-02-01T09:00:00Z"}

		// пересекает блок 09:00–09:30
		err := ValidateWindow(now,
			mustTime(t, "2025-02-01T09:15:00Z"),
			mustTime(t, "2025-02-01T09:45:00Z"),
			existing)
		require.ErrorIs(t, err, ErrOverlap)

		// начинается ровно на границе блока
		err = ValidateWindow(now,
			mustTime(t, "2025-02-01T09:30:00Z"),
			mustTime(t, "2025-02-01T10:00:00Z"),
			existing)
		require.NoError(t, err)
	})

	t.Run("unparsable existing entries are ignored", func(t *testing.T) {
		existing := []string{"corrupt|data|here", "???"}
		err := ValidateWindow(now,
			mustTime(t, "2025-02-01T09:00:00Z"),
			mustTime(t, "2025-02-01T10:00:00Z"),
			existing)
		require.NoError(t, err)
	})
}

func TestNormalizeWindows(t *testing.T) {
	t.Run("sorts and dedupes", func(t *testing.T) {
		in := []string{
			"2025-02-01T14:00:00Z|2025-02-01T15:00:00Z",
			"2025-02-01T09:00:00Z",
			"2025-02-01T14:00:00Z|2025-02-01T15:00:00Z",
			"2025-02-01T10:00:00Z|2025-02-01T11:00:00Z",
		}
		out := NormalizeWindows(in)
		require.Equal(t, []string{
			"2025-02-01T09:00:00Z",
			"2025-02-01T10:00:00Z|2025-02-01T11:00:00Z",
			"2025-02-01T14:00:00Z|2025-02-01T15:00:00Z",
		}, out)
	})

	t.Run("idempotent", func(t *testing.T) {
		in := []string{
			"2025-02-01T14:00:00Z|2025-02-01T15:00:00Z",
			"broken-entry",
			"2025-02-01T09:00:00Z",
		}
		once := NormalizeWindows(in)
		twice := NormalizeWindows(once)
		require.Equal(t, once, twice)
	})
}
