package authentication

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"ssb-connect-backend/config"
	"ssb-connect-backend/controllers/respond"
	"ssb-connect-backend/models/users"
)

type Claims struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	UserID uint   `json:"userId"`
	jwt.StandardClaims
}

func jwtKey() []byte {
	return []byte(config.App.JWTSecret)
}

// issueToken выпускает JWT на 24 часа
func issueToken(user *users.User) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// ValidateToken достает и проверяет bearer-токен из запроса
func ValidateToken(r *http.Request) (*Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("authorization header required")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

// Register: регистрация с паролем и выбором роли
func Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var input struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		Role       string `json:"role"`
		City       string `json:"city"`
		ExamTarget string `json:"examTarget"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Email == "" || len(input.Password) < 8 {
		respond.Error(w, http.StatusBadRequest, "Email and a password of at least 8 characters are required")
		return
	}

	// Валидация роли
	if input.Role == "" {
		input.Role = users.RoleMentee
	}
	if input.Role != users.RoleMentee && input.Role != users.RoleMentor {
		respond.Error(w, http.StatusBadRequest, "Invalid role. Allowed roles: mentee, mentor")
		return
	}

	// Проверка на существование пользователя с таким email
	var existingUser users.User
	if err := config.DB.Where("email = ? AND provider = ?", input.Email, "local").First(&existingUser).Error; err == nil {
		respond.Error(w, http.StatusConflict, "Email already registered")
		return
	}

	// Хэшируем пароль
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := users.User{
		Name:       input.Name,
		Email:      input.Email,
		Password:   string(hashedPassword),
		Role:       input.Role,
		City:       input.City,
		ExamTarget: input.ExamTarget,
		Provider:   "local",
	}

	if err := config.DB.Create(&user).Error; err != nil {
		config.Logger.Error("failed to create user", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	tokenString, err := issueToken(&user)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]interface{}{
		"user":  user,
		"token": tokenString,
	})
}

// Login: вход с паролем и генерация JWT
func Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var user users.User
	if err := config.DB.Where("email = ? AND provider = ?", input.Email, "local").First(&user).Error; err != nil {
		respond.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

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

// Logout: завершение сеанса (токен просто истекает на клиенте)
func Logout(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
