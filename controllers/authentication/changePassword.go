package authentication

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"ssb-connect-backend/config"
	"ssb-connect-backend/controllers/respond"
	"ssb-connect-backend/models/users"
)

// ChangePassword: смена пароля пользователя
func ChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// Шаг 1: получение текущего пользователя через токен
	claims, err := ValidateToken(r)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	var user users.User
	if err := config.DB.Where("email = ? AND provider = ?", claims.Email, "local").First(&user).Error; err != nil {
		respond.Error(w, http.StatusUnauthorized, "User not found")
		return
	}

	// Шаг 2: получение старого и нового пароля из запроса
	var passwordChangeRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&passwordChangeRequest); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(passwordChangeRequest.NewPassword) < 8 {
		respond.Error(w, http.StatusBadRequest, "New password must be at least 8 characters")
		return
	}

	// Шаг 3: проверка текущего пароля
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(passwordChangeRequest.CurrentPassword)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	// Шаг 4: хэширование нового пароля
	hashedNewPassword, err := bcrypt.GenerateFromPassword([]byte(passwordChangeRequest.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error hashing new password")
		return
	}

	// Шаг 5: обновление пароля в базе данных
	user.Password = string(hashedNewPassword)
	if err := config.DB.Save(&user).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error updating password")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
