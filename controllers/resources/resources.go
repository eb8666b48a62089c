package resources

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ssb-connect-backend/config"
	"ssb-connect-backend/controllers/authentication"
	"ssb-connect-backend/controllers/respond"
	"ssb-connect-backend/models/content"
	"ssb-connect-backend/models/users"
	"ssb-connect-backend/services/storage"
)

const maxUploadSize = 32 << 20 // 32 MB

// UploadResource: наставник загружает учебный материал (multipart)
func UploadResource(w http.ResponseWriter, r *http.Request) {
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
		respond.Error(w, http.StatusForbidden, "Only mentors can publish resources")
		return
	}

	if storage.Store == nil {
		respond.Error(w, http.StatusServiceUnavailable, "File storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Failed to read file: "+err.Error())
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	if len(title) < 3 {
		respond.Error(w, http.StatusBadRequest, "title must be at least 3 characters")
		return
	}
	category := r.FormValue("category")

	// Ключ в хранилище не зависит от пользовательского имени файла
	objectKey := fmt.Sprintf("resources/%s%s", uuid.NewString(), filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")

	if err := storage.Store.Put(r.Context(), objectKey, file, header.Size, contentType); err != nil {
		config.Logger.Error("failed to upload resource file", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	resource := content.Resource{
		Title:       title,
		Description: r.FormValue("description"),
		Category:    category,
		ObjectKey:   objectKey,
		FileName:    header.Filename,
		Size:        header.Size,
		AuthorID:    claims.UserID,
	}

	if err := config.DB.Create(&resource).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error saving resource")
		return
	}

	respond.JSON(w, http.StatusCreated, resource)
}

// ListResources: каталог материалов, опционально по категории
func ListResources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var list []content.Resource
	query := config.DB.Preload("Author")
	if category := r.URL.Query().Get("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Order("created_at DESC").Find(&list).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error fetching resources")
		return
	}

	respond.JSON(w, http.StatusOK, list)
}

// DownloadResource: временная ссылка на скачивание файла
func DownloadResource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if _, err := authentication.ValidateToken(r); err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		respond.Error(w, http.StatusBadRequest, "id query parameter is required")
		return
	}

	var resource content.Resource
	if err := config.DB.First(&resource, id).Error; err != nil {
		respond.Error(w, http.StatusNotFound, "Resource not found")
		return
	}

	if storage.Store == nil {
		respond.Error(w, http.StatusServiceUnavailable, "File storage is not configured")
		return
	}

	link, err := storage.Store.PresignedURL(r.Context(), resource.ObjectKey, resource.FileName, 15*time.Minute)
	if err != nil {
		config.Logger.Error("failed to presign resource", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to generate download link")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"url": link})
}

// DeleteResource: автор или админ удаляет материал
func DeleteResource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
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

	var resource content.Resource
	if err := config.DB.First(&resource, id).Error; err != nil {
		respond.Error(w, http.StatusNotFound, "Resource not found")
		return
	}

	if resource.AuthorID != claims.UserID && claims.Role != users.RoleAdmin {
		respond.Error(w, http.StatusForbidden, "You cannot delete someone else's resource")
		return
	}

	if err := config.DB.Delete(&resource).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error deleting resource")
		return
	}

	// Файл в хранилище чистим по возможности
	if storage.Store != nil {
		if err := storage.Store.Remove(r.Context(), resource.ObjectKey); err != nil {
			config.Logger.Warn("failed to remove object", zap.String("key", resource.ObjectKey), zap.Error(err))
		}
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Resource deleted"})
}
