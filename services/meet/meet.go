package meet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"ssb-connect-backend/config"
)

// CreateLink создает событие в Google Calendar с комнатой Meet и возвращает
// ссылку. Без настроенных учетных данных (или при ошибке API) возвращается
// внутренняя ссылка-заглушка, чтобы создание обсуждения не блокировалось.
func CreateLink(ctx context.Context, topic string, start time.Time, durationMinutes int) string {
	if config.App.GoogleCredsFile == "" {
		return fallbackLink()
	}

	srv, err := calendar.NewService(ctx, option.WithCredentialsFile(config.App.GoogleCredsFile))
	if err != nil {
		config.Logger.Error("failed to build calendar service", zap.Error(err))
		return fallbackLink()
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	event := &calendar.Event{
		Summary: topic,
		Start:   &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}

	created, err := srv.Events.Insert("primary", event).ConferenceDataVersion(1).Context(ctx).Do()
	if err != nil {
		config.Logger.Error("failed to create meet event", zap.String("topic", topic), zap.Error(err))
		return fallbackLink()
	}

	if created.HangoutLink != "" {
		return created.HangoutLink
	}
	return fallbackLink()
}

func fallbackLink() string {
	return "https://meet.ssbconnect.in/room/" + uuid.NewString()
}
