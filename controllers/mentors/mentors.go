package mentors

import (
	"fmt"
	"net/http"
	"strconv"

	"ssb-connect-backend/config"
	"ssb-connect-backend/controllers/authentication"
	"ssb-connect-backend/controllers/respond"
	"ssb-connect-backend/models/users"
)

// ListMentors: каталог наставников с фильтрами по специализации, городу и цене
func ListMentors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var mentors []users.User
	query := config.DB.Where("role = ?", users.RoleMentor)

	if spec := r.URL.Query().Get("specialization"); spec != "" {
		query = query.Where("specialization ILIKE ?", fmt.Sprintf("%%%s%%", spec))
	}
	if city := r.URL.Query().Get("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if priceRange := r.URL.Query().Get("max_price"); priceRange != "" {
		price, err := strconv.ParseFloat(priceRange, 64)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid max_price")
			return
		}
		query = query.Where("price_per_hour <= ?", price)
	}

	if err := query.Order("rating DESC").Find(&mentors).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error fetching mentors")
		return
	}

	respond.JSON(w, http.StatusOK, mentors)
}

// GetMentor: публичный профиль наставника по id
func GetMentor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		respond.Error(w, http.StatusBadRequest, "id query parameter is required")
		return
	}

	var mentor users.User
	if err := config.DB.Where("role = ?", users.RoleMentor).First(&mentor, id).Error; err != nil {
		respond.Error(w, http.StatusNotFound, "Mentor not found")
		return
	}

	respond.JSON(w, http.StatusOK, mentor)
}

// currentMentor достает авторизованного наставника из запроса
func currentMentor(r *http.Request) (*users.User, int, string) {
	claims, err := authentication.ValidateToken(r)
	if err != nil {
		return nil, http.StatusUnauthorized, err.Error()
	}

	user, err := users.GetUserByID(claims.UserID)
	if err != nil {
		return nil, http.StatusUnauthorized, "User not found"
	}

	if !user.IsMentor() {
		return nil, http.StatusForbidden, "Only mentors can manage availability"
	}
	return user, 0, ""
}
