package admin

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"ssb-connect-backend/config"
	"ssb-connect-backend/controllers/authentication"
	"ssb-connect-backend/controllers/respond"
	model "ssb-connect-backend/models/sessions"
	"ssb-connect-backend/models/users"
)

// requireAdmin проверяет, что запрос сделан администратором
func requireAdmin(r *http.Request) (*authentication.Claims, error) {
	claims, err := authentication.ValidateToken(r)
	if err != nil {
		return nil, err
	}
	if claims.Role != users.RoleAdmin {
		return nil, fmt.Errorf("admin role required")
	}
	return claims, nil
}

// AssignMentorRole: назначение роли "mentor" пользователю
func AssignMentorRole(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if _, err := requireAdmin(r); err != nil {
		respond.Error(w, http.StatusForbidden, err.Error())
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respond.Error(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}

	// Поиск пользователя по ID
	var user users.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}

	user.Role = users.RoleMentor
	if err := config.DB.Save(&user).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error updating user")
		return
	}

	respond.JSON(w, http.StatusOK, user)
}

// DeleteSession: явное административное удаление сессии.
// Единственный путь, которым сессия может быть удалена.
func DeleteSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, err := requireAdmin(r)
	if err != nil {
		respond.Error(w, http.StatusForbidden, err.Error())
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		respond.Error(w, http.StatusBadRequest, "id query parameter is required")
		return
	}

	var session model.Session
	if err := config.DB.First(&session, id).Error; err != nil {
		respond.Error(w, http.StatusNotFound, "Session not found")
		return
	}

	if err := config.DB.Delete(&session).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error deleting session")
		return
	}

	config.Logger.Info("session deleted by admin",
		zap.Uint("session_id", session.ID),
		zap.Uint("admin_id", claims.UserID))

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Session deleted"})
}

// ExportSessions: выгрузка сессий за период в Excel
func ExportSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if _, err := requireAdmin(r); err != nil {
		respond.Error(w, http.StatusForbidden, err.Error())
		return
	}

	// Период: /admin/sessions/export?from=2025-01-01&to=2025-01-31
	from, err1 := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	to, err2 := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err1 != nil || err2 != nil || to.Before(from) {
		respond.Error(w, http.StatusBadRequest, "from and to must be valid dates (YYYY-MM-DD)")
		return
	}

	var sessions []model.Session
	if err := config.DB.Preload("Mentor").Preload("Mentee").
		Where("scheduled_at >= ? AND scheduled_at < ?", from, to.AddDate(0, 0, 1)).
		Order("scheduled_at ASC").Find(&sessions).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error fetching sessions")
		return
	}

	const sheet = "Sessions"
	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error creating sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Mentor", "Mentee", "Title", "Type", "Scheduled At", "Duration (min)", "Status"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, s := range sessions {
		row := i + 2
		values := []interface{}{
			s.ID,
			s.Mentor.Name,
			s.Mentee.Name,
			s.Title,
			s.SessionType,
			s.ScheduledAt.Format("2006-01-02 15:04"),
			s.DurationMinutes,
			s.Status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("sessions_%s_%s.xlsx",
		from.Format("2006-01-02"), to.Format("2006-01-02"))

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		config.Logger.Error("failed to write export", zap.Error(err))
	}
}
