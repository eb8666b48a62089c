package mentors

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ssb-connect-backend/config"
	"ssb-connect-backend/controllers/respond"
	"ssb-connect-backend/models/users"
	"ssb-connect-backend/services/availability"
)

// windowView — окно доступности в ответе API
type windowView struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Encoded string    `json:"encoded"`
}

func decodeWindows(entries []string) []windowView {
	views := make([]windowView, 0, len(entries))
	for _, raw := range entries {
		slot, err := availability.ParseSlot(raw)
		if err != nil {
			continue
		}
		views = append(views, windowView{Start: slot.Start, End: slot.End, Encoded: slot.Encode()})
	}
	return views
}

// GetAvailability: окна доступности наставника (mentor_id в query)
func GetAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	mentorID := r.URL.Query().Get("mentor_id")
	if mentorID == "" {
		respond.Error(w, http.StatusBadRequest, "mentor_id query parameter is required")
		return
	}

	var mentor users.User
	if err := config.DB.Where("role = ?", users.RoleMentor).First(&mentor, mentorID).Error; err != nil {
		respond.Error(w, http.StatusNotFound, "Mentor not found")
		return
	}

	respond.JSON(w, http.StatusOK, decodeWindows(mentor.Availability))
}

// AddAvailabilityWindow: наставник добавляет окно (start, end)
func AddAvailabilityWindow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	mentor, status, msg := currentMentor(r)
	if mentor == nil {
		respond.Error(w, status, msg)
		return
	}

	var input struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Start == "" || input.End == "" {
		respond.Error(w, http.StatusBadRequest, availability.ErrMissingBound.Error())
		return
	}

	start, err := time.Parse(time.RFC3339, input.Start)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid start timestamp")
		return
	}
	end, err := time.Parse(time.RFC3339, input.End)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid end timestamp")
		return
	}

	if err := availability.ValidateWindow(time.Now(), start, end, mentor.Availability); err != nil {
		// Пересечения и дубликаты — конфликт, остальное — ошибка ввода
		if errors.Is(err, availability.ErrOverlap) || errors.Is(err, availability.ErrDuplicateWindow) {
			respond.Error(w, http.StatusConflict, err.Error())
			return
		}
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	newSlot := availability.Slot{Kind: availability.KindRange, Start: start, End: end}
	updated := availability.NormalizeWindows(append(mentor.Availability, newSlot.Encode()))

	// Полная замена массива, не инкрементальный патч
	mentor.Availability = updated
	if err := config.DB.Model(mentor).Update("availability", mentor.Availability).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error saving availability")
		return
	}

	respond.JSON(w, http.StatusCreated, decodeWindows(updated))
}

// RemoveAvailabilityWindow: наставник удаляет окно по его кодировке
func RemoveAvailabilityWindow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	mentor, status, msg := currentMentor(r)
	if mentor == nil {
		respond.Error(w, status, msg)
		return
	}

	var input struct {
		Encoded string `json:"encoded"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Encoded == "" {
		respond.Error(w, http.StatusBadRequest, "encoded window value is required")
		return
	}

	kept := make([]string, 0, len(mentor.Availability))
	removed := 0
	for _, raw := range mentor.Availability {
		slot, err := availability.ParseSlot(raw)
		if err == nil && slot.Encode() == input.Encoded {
			removed++
			continue
		}
		kept = append(kept, raw)
	}

	if removed == 0 {
		respond.Error(w, http.StatusNotFound, "Window not found")
		return
	}

	mentor.Availability = availability.NormalizeWindows(kept)
	if err := config.DB.Model(mentor).Update("availability", mentor.Availability).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error saving availability")
		return
	}

	config.Logger.Info("availability window removed",
		zap.Uint("mentor_id", mentor.ID),
		zap.String("window", input.Encoded))

	respond.JSON(w, http.StatusOK, decodeWindows(mentor.Availability))
}
