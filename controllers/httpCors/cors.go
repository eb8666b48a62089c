package httpCors

import (
	"github.com/rs/cors"

	"ssb-connect-backend/config"
)

func CorsSettings() *cors.Cors {
	c := cors.New(cors.Options{
		AllowedMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedOrigins:     []string{"*"}, // Установите конкретные домены, если нужно ограничить доступ
		AllowCredentials:   true,
		AllowedHeaders:     []string{"Content-Type", "Authorization", "X-CSRF-Token"},
		OptionsPassthrough: true,
		ExposedHeaders:     []string{"Authorization"},
		Debug:              config.App.Environment != "production",
	})
	return c
}
