package authentication

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"ssb-connect-backend/config"
	"ssb-connect-backend/controllers/respond"
	"ssb-connect-backend/models/users"
)

func googleOauthConfig() *oauth2.Config {
	return &oauth2.Config{
		RedirectURL:  config.App.GoogleRedirectURL,
		ClientID:     config.App.GoogleClientID,
		ClientSecret: config.App.GoogleClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}
}

// HandleGoogleLogin начинает OAuth-вход через Google
func HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if config.App.GoogleClientID == "" {
		respond.Error(w, http.StatusServiceUnavailable, "Google login is not configured")
		return
	}

	// state хранится в cookie-сессии и сверяется в callback
	state := uuid.NewString()
	session, _ := config.Store.Get(r, "oauth-session")
	session.Values["state"] = state
	if err := session.Save(r, w); err != nil {
		respond.Error(w, http.StatusInternalServerError, "Failed to save session")
		return
	}

	url := googleOauthConfig().AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// HandleGoogleCallback обрабатывает callback и получает данные пользователя
func HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	session, _ := config.Store.Get(r, "oauth-session")
	expectedState, _ := session.Values["state"].(string)
	if expectedState == "" || r.FormValue("state") != expectedState {
		config.Logger.Warn("invalid oauth state")
		respond.Error(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	token, err := googleOauthConfig().Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		config.Logger.Error("oauth code exchange failed", zap.Error(err))
		respond.Error(w, http.StatusUnauthorized, "Failed to exchange code for token")
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		config.Logger.Error("failed to fetch user info", zap.Error(err))
		respond.Error(w, http.StatusBadGateway, "Failed to fetch user info")
		return
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		respond.Error(w, http.StatusBadGateway, "Failed to read user info")
		return
	}

	var userInfo struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := json.Unmarshal(content, &userInfo); err != nil || userInfo.ID == "" || userInfo.Email == "" {
		respond.Error(w, http.StatusBadGateway, "Failed to parse user info")
		return
	}

	// Ищем пользователя по email, при отсутствии создаем
	var user users.User
	if err := config.DB.Where("email = ?", userInfo.Email).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			respond.Error(w, http.StatusInternalServerError, "Error looking up user")
			return
		}
		user = users.User{
			Email:    userInfo.Email,
			Name:     userInfo.GivenName + " " + userInfo.FamilyName,
			Password: uuid.NewString(), // локальный вход для OAuth-аккаунта не используется
			Role:     users.RoleMentee,
			Provider: "google",
		}
		if err := config.DB.Create(&user).Error; err != nil {
			config.Logger.Error("failed to create user from google profile", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "Error creating user")
			return
		}
	}

	// Запись в таблице GoogleUser: создаем или обновляем токен
	var googleUser users.GoogleUser
	if err := config.DB.Where("google_id = ?", userInfo.ID).First(&googleUser).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			respond.Error(w, http.StatusInternalServerError, "Error looking up google user")
			return
		}
		googleUser = users.GoogleUser{
			UserID:      user.ID,
			GoogleID:    userInfo.ID,
			Email:       userInfo.Email,
			FirstName:   userInfo.GivenName,
			LastName:    userInfo.FamilyName,
			AccessToken: token.AccessToken,
		}
		if err := config.DB.Create(&googleUser).Error; err != nil {
			respond.Error(w, http.StatusInternalServerError, "Error creating google user")
			return
		}
	} else {
		googleUser.Email = userInfo.Email
		googleUser.FirstName = userInfo.GivenName
		googleUser.LastName = userInfo.FamilyName
		googleUser.AccessToken = token.AccessToken
		if err := config.DB.Save(&googleUser).Error; err != nil {
			respond.Error(w, http.StatusInternalServerError, "Error updating google user")
			return
		}
	}

	// Выдаем обычный bearer-токен приложения
	tokenString, err := issueToken(&user)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": tokenString,
	})
}
