package discussions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 4, 10, 18, 0, 0, 0, time.UTC)

func TestJoinAllowed(t *testing.T) {
	t.Run("well before start", func(t *testing.T) {
		require.True(t, JoinAllowed(start.Add(-2*time.Hour), start))
	})

	t.Run("one second before cutoff", func(t *testing.T) {
		// за 10:01 до старта — еще можно
		require.True(t, JoinAllowed(start.Add(-10*time.Minute-time.Second), start))
	})

	t.Run("exactly at cutoff is denied", func(t *testing.T) {
		// ровно за 10:00 — уже нельзя, требуется строго раньше
		require.False(t, JoinAllowed(start.Add(-10*time.Minute), start))
	})

	t.Run("after start", func(t *testing.T) {
		require.False(t, JoinAllowed(start.Add(time.Minute), start))
	})
}

func TestAccessAllowed(t *testing.T) {
	t.Run("one second before opening is denied", func(t *testing.T) {
		// за 5:01 до старта — рано
		require.False(t, AccessAllowed(start.Add(-5*time.Minute-time.Second), start))
	})

	t.Run("exactly at opening is allowed", func(t *testing.T) {
		// ровно за 5:00 — уже можно
		require.True(t, AccessAllowed(start.Add(-5*time.Minute), start))
	})

	t.Run("after start", func(t *testing.T) {
		require.True(t, AccessAllowed(start.Add(time.Hour), start))
	})
}

func TestJoinDecision(t *testing.T) {
	now := start.Add(-time.Hour)

	t.Run("capacity two admits two then rejects", func(t *testing.T) {
		ok, reason := JoinDecision(now, start, 0, 2, false)
		require.True(t, ok)
		require.Empty(t, reason)

		ok, _ = JoinDecision(now, start, 1, 2, false)
		require.True(t, ok)

		// комната заполнена — третий получает full
		ok, reason = JoinDecision(now, start, 2, 2, false)
		require.False(t, ok)
		require.Equal(t, ReasonFull, reason)
	})

	t.Run("duplicate attendee", func(t *testing.T) {
		ok, reason := JoinDecision(now, start, 1, 2, true)
		require.False(t, ok)
		require.Equal(t, ReasonAlreadyJoined, reason)
	})

	t.Run("closed window wins over capacity", func(t *testing.T) {
		ok, reason := JoinDecision(start.Add(-9*time.Minute), start, 5, 2, false)
		require.False(t, ok)
		require.Equal(t, ReasonClosed, reason)
	})
}

func TestPhaseAt(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"long before start", start.Add(-time.Hour), PhaseJoinable},
		{"between cutoff and opening", start.Add(-7 * time.Minute), PhaseJoinClosed},
		{"at cutoff boundary", start.Add(-10 * time.Minute), PhaseJoinClosed},
		{"at opening boundary", start.Add(-5 * time.Minute), PhaseAccessible},
		{"after start", start.Add(30 * time.Minute), PhaseAccessible},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, PhaseAt(tc.now, start))
		})
	}
}
