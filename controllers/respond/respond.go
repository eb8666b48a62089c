package respond

import (
	"encoding/json"
	"net/http"
)

// JSON пишет ответ в формате JSON
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error пишет ошибку в стандартном конверте {"error": "..."}
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}
