package config

import (
	"fmt"

	"github.com/gorilla/sessions"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB    *gorm.DB
	Store *sessions.CookieStore
)

// InitDB открывает подключение к базе данных
func InitDB(cfg *AppConfig) error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	DB = db
	Store = sessions.NewCookieStore([]byte(cfg.SessionSecret))
	return nil
}
