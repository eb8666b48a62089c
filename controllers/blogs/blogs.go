package blogs

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ssb-connect-backend/config"
	"ssb-connect-backend/controllers/authentication"
	"ssb-connect-backend/controllers/respond"
	"ssb-connect-backend/models/content"
	"ssb-connect-backend/models/users"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// makeSlug строит URL-слаг из заголовка, добиваясь уникальности суффиксом
func makeSlug(title string) string {
	slug := strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "post"
	}

	var existing content.BlogPost
	if err := config.DB.Where("slug = ?", slug).First(&existing).Error; err == gorm.ErrRecordNotFound {
		return slug
	}
	return slug + "-" + uuid.NewString()[:8]
}

// CreateBlogPost: наставник публикует статью
func CreateBlogPost(w http.ResponseWriter, r *http.Request) {
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
		respond.Error(w, http.StatusForbidden, "Only mentors can publish posts")
		return
	}

	var input struct {
		Title     string `json:"title"`
		Body      string `json:"body"`
		Tags      string `json:"tags"`
		Published bool   `json:"published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if len(input.Title) < 3 || len(input.Body) < 10 {
		respond.Error(w, http.StatusBadRequest, "title and body are too short")
		return
	}

	post := content.BlogPost{
		Title:     input.Title,
		Slug:      makeSlug(input.Title),
		Body:      input.Body,
		Tags:      input.Tags,
		AuthorID:  claims.UserID,
		Published: input.Published,
	}

	if err := config.DB.Create(&post).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error creating post")
		return
	}

	respond.JSON(w, http.StatusCreated, post)
}

// ListBlogPosts: опубликованные статьи; с mine=1 — свои, включая черновики
func ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	query := config.DB.Preload("Author")

	if r.URL.Query().Get("mine") == "1" {
		claims, err := authentication.ValidateToken(r)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		query = query.Where("author_id = ?", claims.UserID)
	} else {
		query = query.Where("published = ?", true)
		if tag := r.URL.Query().Get("tag"); tag != "" {
			query = query.Where("tags LIKE ?", "%"+tag+"%")
		}
	}

	var posts []content.BlogPost
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error fetching posts")
		return
	}

	respond.JSON(w, http.StatusOK, posts)
}

// GetBlogPost: статья по слагу
func GetBlogPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	slug := r.URL.Query().Get("slug")
	if slug == "" {
		respond.Error(w, http.StatusBadRequest, "slug query parameter is required")
		return
	}

	var post content.BlogPost
	if err := config.DB.Preload("Author").Where("slug = ? AND published = ?", slug, true).First(&post).Error; err != nil {
		respond.Error(w, http.StatusNotFound, "Post not found")
		return
	}

	respond.JSON(w, http.StatusOK, post)
}

// UpdateBlogPost: автор редактирует свою статью
func UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	var input struct {
		ID        uint   `json:"id"`
		Title     string `json:"title"`
		Body      string `json:"body"`
		Tags      string `json:"tags"`
		Published *bool  `json:"published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ID == 0 {
		respond.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var post content.BlogPost
	if err := config.DB.First(&post, input.ID).Error; err != nil {
		respond.Error(w, http.StatusNotFound, "Post not found")
		return
	}

	if post.AuthorID != claims.UserID && claims.Role != users.RoleAdmin {
		respond.Error(w, http.StatusForbidden, "You cannot edit someone else's post")
		return
	}

	if input.Title != "" {
		post.Title = input.Title
	}
	if input.Body != "" {
		post.Body = input.Body
	}
	post.Tags = input.Tags
	if input.Published != nil {
		post.Published = *input.Published
	}

	if err := config.DB.Save(&post).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error updating post")
		return
	}

	respond.JSON(w, http.StatusOK, post)
}

// DeleteBlogPost: автор или админ удаляет статью
func DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
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

	var post content.BlogPost
	if err := config.DB.First(&post, id).Error; err != nil {
		respond.Error(w, http.StatusNotFound, "Post not found")
		return
	}

	if post.AuthorID != claims.UserID && claims.Role != users.RoleAdmin {
		respond.Error(w, http.StatusForbidden, "You cannot delete someone else's post")
		return
	}

	if err := config.DB.Delete(&post).Error; err != nil {
		respond.Error(w, http.StatusInternalServerError, "Error deleting post")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}
