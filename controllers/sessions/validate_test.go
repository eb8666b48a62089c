package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	model "ssb-connect-backend/models/sessions"
)

func validInput(now time.Time) BookingInput {
	return BookingInput{
		Title:           "Mock PIQ interview",
		Description:     "Full personal interview run with feedback",
		MentorID:        7,
		SessionType:     model.TypeMockInterview,
		DurationMinutes: 60,
		ScheduledAt:     now.Add(48 * time.Hour),
	}
}

func TestValidateBookingInput(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid input passes", func(t *testing.T) {
		require.NoError(t, ValidateBookingInput(now, validInput(now)))
	})

	t.Run("short title", func(t *testing.T) {
		in := validInput(now)
		in.Title = "Hi"
		err := ValidateBookingInput(now, in)
		require.ErrorIs(t, err, ErrTitleTooShort)
		require.Contains(t, err.Error(), "title")
	})

	t.Run("short description", func(t *testing.T) {
		in := validInput(now)
		in.Description = "too short"
		require.ErrorIs(t, ValidateBookingInput(now, in), ErrDescriptionTooShort)
	})

	t.Run("missing mentor", func(t *testing.T) {
		in := validInput(now)
		in.MentorID = 0
		require.ErrorIs(t, ValidateBookingInput(now, in), ErrMentorRequired)
	})

	t.Run("unknown session type", func(t *testing.T) {
		in := validInput(now)
		in.SessionType = "speed_chess"
		require.ErrorIs(t, ValidateBookingInput(now, in), ErrBadSessionType)
	})

	t.Run("duration bounds", func(t *testing.T) {
		in := validInput(now)

		in.DurationMinutes = 14
		require.ErrorIs(t, ValidateBookingInput(now, in), ErrBadDuration)

		in.DurationMinutes = 181
		require.ErrorIs(t, ValidateBookingInput(now, in), ErrBadDuration)

		in.DurationMinutes = 15
		require.NoError(t, ValidateBookingInput(now, in))

		in.DurationMinutes = 180
		require.NoError(t, ValidateBookingInput(now, in))
	})

	t.Run("scheduled time", func(t *testing.T) {
		in := validInput(now)

		in.ScheduledAt = now.Add(-time.Second)
		require.ErrorIs(t, ValidateBookingInput(now, in), ErrScheduledInPast)

		// ровно "сейчас" — допустимо
		in.ScheduledAt = now
		require.NoError(t, ValidateBookingInput(now, in))
	})
}

func TestStatusTransitions(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		require.True(t, model.CanTransition(model.StatusScheduled, model.StatusInProgress))
		require.True(t, model.CanTransition(model.StatusScheduled, model.StatusCancelled))
		require.True(t, model.CanTransition(model.StatusScheduled, model.StatusNoShow))
		require.True(t, model.CanTransition(model.StatusInProgress, model.StatusCompleted))
		require.True(t, model.CanTransition(model.StatusInProgress, model.StatusCancelled))
	})

	t.Run("terminal states are frozen", func(t *testing.T) {
		for _, terminal := range []string{model.StatusCompleted, model.StatusCancelled, model.StatusNoShow} {
			for _, to := range []string{model.StatusScheduled, model.StatusInProgress, model.StatusCompleted} {
				require.False(t, model.CanTransition(terminal, to), "%s -> %s", terminal, to)
			}
		}
	})

	t.Run("no skipping backwards", func(t *testing.T) {
		require.False(t, model.CanTransition(model.StatusScheduled, model.StatusCompleted))
		require.False(t, model.CanTransition(model.StatusInProgress, model.StatusScheduled))
	})
}
