package sessions

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ssb-connect-backend/config"
	"ssb-connect-backend/controllers/authentication"
	"ssb-connect-backend/controllers/respond"
	"ssb-connect-backend/metrics"
	model "ssb-connect-backend/models/sessions"
	"ssb-connect-backend/models/users"
	"ssb-connect-backend/services/mailer"
)

// CreateSession: бронирование сессии с наставником.
// Авторизованный пользователь всегда становится менти этой сессии.
func CreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	var input BookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := ValidateBookingInput(time.Now(), input); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if input.MentorID == claims.UserID {
		respond.Error(w, http.StatusBadRequest, "You cannot book a session with yourself")
		return
	}

	// Наставник должен существовать и иметь роль mentor
	var mentor users.User
	if err := config.DB.First(&mentor, input.MentorID).Error; err != nil {
		respond.Error(w, http.StatusNotFound, "Mentor not found")
		return
	}
	if !mentor.IsMentor() {
		respond.Error(w, http.StatusNotFound, "Mentor not found")
		return
	}

	mentee, err := users.GetUserByID(claims.UserID)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "User not found")
		return
	}

	session := model.Session{
		MentorID:        mentor.ID,
		MenteeID:        mentee.ID,
		Title:           input.Title,
		Description:     input.Description,
		SessionType:     input.SessionType,
		ScheduledAt:     input.ScheduledAt,
		DurationMinutes: input.DurationMinutes,
		Status:          model.StatusScheduled,
	}

	if err := config.DB.Create(&session).Error; err != nil {
		config.Logger.Error("failed to create session", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Error creating session")
		return
	}

	metrics.IncBookingCreated(session.SessionType)

	// Сверка слотов — best-effort: бронирование уже состоялось,
	// неудача здесь логируется и не откатывает сессию
	if _, err := ReconcileMentorAvailability(mentor.ID, session.ScheduledAt); err != nil {
		config.Logger.Error("availability reconciliation failed",
			zap.Uint("mentor_id", mentor.ID),
			zap.Uint("session_id", session.ID),
			zap.Error(err))
	}

	// Уведомления обеим сторонам, тоже best-effort
	when := session.ScheduledAt.Format("02 Jan 2006 15:04 MST")
	go mailer.Send(mentor.Email, "New session booked: "+session.Title,
		fmt.Sprintf("%s booked a %s session with you on %s.", mentee.Name, session.SessionType, when))
	go mailer.Send(mentee.Email, "Session confirmed: "+session.Title,
		fmt.Sprintf("Your %s session with %s is confirmed for %s.", session.SessionType, mentor.Name, when))

	respond.JSON(w, http.StatusCreated, session)
}

// ListSessions: сессии текущего пользователя (как наставника или менти)
func ListSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	var list []model.Session
	query := config.DB.Preload("Mentor").Preload("Mentee").
		Where("mentor_id = ? OR mentee_id = ?", claims.UserID, claims.UserID)

	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("scheduled_at ASC").Find(&list).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error fetching sessions")
		return
	}

	respond.JSON(w, http.StatusOK, list)
}

// UpdateSessionStatus: перевод сессии по карте допустимых переходов.
// Отмена доступна обеим сторонам, остальные переходы ведет наставник.
func UpdateSessionStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	var input struct {
		SessionID uint   `json:"sessionId"`
		Status    string `json:"status"`
		MeetNotes string `json:"meetNotes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var session model.Session
	if err := config.DB.First(&session, input.SessionID).Error; err != nil {
		respond.Error(w, http.StatusNotFound, "Session not found")
		return
	}

	isMentor := session.MentorID == claims.UserID
	isMentee := session.MenteeID == claims.UserID
	if !isMentor && !isMentee {
		respond.Error(w, http.StatusForbidden, "You are not a participant of this session")
		return
	}

	if input.Status != model.StatusCancelled && !isMentor {
		respond.Error(w, http.StatusForbidden, "Only the mentor can set this status")
		return
	}

	if !model.CanTransition(session.Status, input.Status) {
		respond.Error(w, http.StatusConflict,
			fmt.Sprintf("cannot transition session from %s to %s", session.Status, input.Status))
		return
	}

	session.Status = input.Status
	if input.MeetNotes != "" {
		session.MeetNotes = input.MeetNotes
	}

	if err := config.DB.Save(&session).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error updating session")
		return
	}

	respond.JSON(w, http.StatusOK, session)
}
