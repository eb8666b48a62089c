package authentication

import (
	"encoding/json"
	"net/http"

	"ssb-connect-backend/config"
	"ssb-connect-backend/controllers/respond"
	"ssb-connect-backend/models/users"
)

// GetProfile: получение профиля по токену
func GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := ValidateToken(r)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	var user users.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}

	respond.JSON(w, http.StatusOK, user)
}

// UpdateProfile: обновление собственного профиля
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, err := ValidateToken(r)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	var user users.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}

	// Обновляются только профильные поля; email, роль и пароль не трогаем
	var input struct {
		Name           string  `json:"name"`
		Bio            string  `json:"bio"`
		City           string  `json:"city"`
		ExamTarget     string  `json:"examTarget"`
		Specialization string  `json:"specialization"`
		Experience     string  `json:"experience"`
		PricePerHour   float64 `json:"pricePerHour"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	user.Bio = input.Bio
	user.City = input.City
	user.ExamTarget = input.ExamTarget
	if user.IsMentor() {
		user.Specialization = input.Specialization
		user.Experience = input.Experience
		if input.PricePerHour > 0 {
			user.PricePerHour = input.PricePerHour
		}
	}

	if err := config.DB.Save(&user).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error updating profile")
		return
	}

	respond.JSON(w, http.StatusOK, user)
}
