package discussions

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ssb-connect-backend/config"
	"ssb-connect-backend/controllers/authentication"
	"ssb-connect-backend/controllers/respond"
	"ssb-connect-backend/metrics"
	model "ssb-connect-backend/models/discussions"
	"ssb-connect-backend/models/users"
	"ssb-connect-backend/services/meet"
)

const maxCapacity = 200

// discussionView — комната в ответе API с производной фазой
type discussionView struct {
	model.LiveDiscussion
	AttendeeCount int    `json:"attendeeCount"`
	Phase         string `json:"phase"`
}

func toView(d model.LiveDiscussion, now time.Time) discussionView {
	return discussionView{
		LiveDiscussion: d,
		AttendeeCount:  len(d.Attendees),
		Phase:          PhaseAt(now, d.StartTime),
	}
}

// CreateDiscussion: наставник или админ создает комнату группового обсуждения
func CreateDiscussion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}
	if claims.Role != users.RoleMentor && claims.Role != users.RoleAdmin {
		respond.Error(w, http.StatusForbidden, "Only mentors can host discussions")
		return
	}

	var input struct {
		Topic           string    `json:"topic"`
		Description     string    `json:"description"`
		StartTime       time.Time `json:"startTime"`
		DurationMinutes int       `json:"durationMinutes"`
		Capacity        int       `json:"capacity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if len(input.Topic) < 3 {
		respond.Error(w, http.StatusBadRequest, "topic must be at least 3 characters")
		return
	}
	if input.StartTime.IsZero() || input.StartTime.Before(time.Now()) {
		respond.Error(w, http.StatusBadRequest, "startTime must be in the future")
		return
	}
	if input.Capacity < 1 || input.Capacity > maxCapacity {
		respond.Error(w, http.StatusBadRequest, "capacity must be between 1 and 200")
		return
	}
	if input.DurationMinutes <= 0 {
		input.DurationMinutes = 60
	}

	discussion := model.LiveDiscussion{
		Topic:           input.Topic,
		Description:     input.Description,
		HostID:          claims.UserID,
		StartTime:       input.StartTime,
		DurationMinutes: input.DurationMinutes,
		Capacity:        input.Capacity,
		RoomCode:        uuid.NewString(),
		MeetLink:        meet.CreateLink(r.Context(), input.Topic, input.StartTime, input.DurationMinutes),
	}

	if err := config.DB.Create(&discussion).Error; err != nil {
		config.Logger.Error("failed to create discussion", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Error creating discussion")
		return
	}

	respond.JSON(w, http.StatusCreated, toView(discussion, time.Now()))
}

// ListDiscussions: предстоящие обсуждения
func ListDiscussions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var list []model.LiveDiscussion
	if err := config.DB.Preload("Host").Preload("Attendees").
		Where("start_time > ?", time.Now().Add(-time.Hour)).
		Order("start_time ASC").Find(&list).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error fetching discussions")
		return
	}

	now := time.Now()
	views := make([]discussionView, 0, len(list))
	for _, d := range list {
		views = append(views, toView(d, now))
	}
	respond.JSON(w, http.StatusOK, views)
}

// JoinDiscussion: запись в комнату. Проверка вместимости и добавление
// участника выполняются под блокировкой строки обсуждения, чтобы
// параллельные запросы не переполнили комнату.
func JoinDiscussion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	var input struct {
		DiscussionID uint `json:"discussionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.DiscussionID == 0 {
		respond.Error(w, http.StatusBadRequest, "discussionId is required")
		return
	}

	var joinErr string
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var discussion model.LiveDiscussion
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&discussion, input.DiscussionID).Error; err != nil {
			return err
		}

		if err := tx.Model(&discussion).Association("Attendees").Find(&discussion.Attendees); err != nil {
			return err
		}

		ok, reason := JoinDecision(time.Now(), discussion.StartTime,
			len(discussion.Attendees), discussion.Capacity,
			discussion.IsAttendee(claims.UserID))
		if !ok {
			joinErr = reason
			return nil
		}

		return tx.Model(&discussion).Association("Attendees").Append(&users.User{ID: claims.UserID})
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(w, http.StatusNotFound, "Discussion not found")
			return
		}
		config.Logger.Error("failed to join discussion", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Error joining discussion")
		return
	}

	if joinErr != "" {
		metrics.IncDiscussionJoin(joinErr)
		respond.Error(w, http.StatusConflict, joinErr)
		return
	}

	metrics.IncDiscussionJoin("joined")
	respond.JSON(w, http.StatusOK, map[string]bool{"joined": true})
}

// AccessDiscussion: выдача ссылки на встречу участникам (и админам)
// не раньше, чем за пять минут до старта
func AccessDiscussion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		respond.Error(w, http.StatusBadRequest, "id query parameter is required")
		return
	}

	var discussion model.LiveDiscussion
	if err := config.DB.Preload("Attendees").First(&discussion, id).Error; err != nil {
		respond.Error(w, http.StatusNotFound, "Discussion not found")
		return
	}

	isAdmin := claims.Role == users.RoleAdmin
	isHost := discussion.HostID == claims.UserID
	if !discussion.IsAttendee(claims.UserID) && !isAdmin && !isHost {
		respond.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	if !AccessAllowed(time.Now(), discussion.StartTime) {
		respond.Error(w, http.StatusConflict, "not_yet_open")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"meetLink": discussion.MeetLink})
}
