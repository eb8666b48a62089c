package main

import (
	"context"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ssb-connect-backend/config"
	"ssb-connect-backend/controllers/admin"
	"ssb-connect-backend/controllers/authentication"
	"ssb-connect-backend/controllers/blogs"
	"ssb-connect-backend/controllers/discussions"
	"ssb-connect-backend/controllers/httpCors"
	"ssb-connect-backend/controllers/httpmw"
	"ssb-connect-backend/controllers/mentors"
	"ssb-connect-backend/controllers/resources"
	"ssb-connect-backend/controllers/respond"
	"ssb-connect-backend/controllers/sessions"
	"ssb-connect-backend/jobs"
	"ssb-connect-backend/metrics"
	"ssb-connect-backend/models/content"
	discussionmodels "ssb-connect-backend/models/discussions"
	sessionmodels "ssb-connect-backend/models/sessions"
	"ssb-connect-backend/models/users"
	"ssb-connect-backend/services/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := config.NewLogger(cfg.Environment)
	defer logger.Sync()

	// Инициализируем базу данных
	if err := config.InitDB(cfg); err != nil {
		logger.Fatal("ошибка инициализации базы данных", zap.Error(err))
	}

	// Выполняем миграцию базы данных
	err = config.DB.AutoMigrate(
		&users.User{},
		&users.GoogleUser{},
		&sessionmodels.Session{},
		&discussionmodels.LiveDiscussion{},
		&content.BlogPost{},
		&content.Resource{},
	)
	if err != nil {
		logger.Fatal("ошибка миграции базы данных", zap.Error(err))
	}

	// Проверка подключения к базе данных
	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Fatal("ошибка получения подключения к базе данных", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("ошибка подключения к базе данных", zap.Error(err))
	}
	logger.Info("подключение к базе данных успешно")

	// Redis нужен только троттлингу — без него продолжаем работать
	if err := config.InitRedis(cfg); err != nil {
		logger.Warn("redis недоступен, rate limiting отключен", zap.Error(err))
	}

	// Объектное хранилище для учебных материалов
	if err := storage.Init(context.Background(), cfg); err != nil {
		logger.Warn("объектное хранилище недоступно, загрузка файлов отключена", zap.Error(err))
	}

	metrics.Register()

	scheduler := jobs.NewScheduler()
	if err := scheduler.Start(); err != nil {
		logger.Fatal("ошибка запуска фоновых задач", zap.Error(err))
	}
	defer scheduler.Stop()

	mux := http.NewServeMux()

	// Аутентификация
	mux.HandleFunc("/register", httpmw.AuthRateLimit(authentication.Register))
	mux.HandleFunc("/login", httpmw.AuthRateLimit(authentication.Login))
	mux.HandleFunc("/logout", authentication.Logout)
	mux.HandleFunc("/login/google", authentication.HandleGoogleLogin)
	mux.HandleFunc("/callback/google", authentication.HandleGoogleCallback)

	// Профиль
	mux.HandleFunc("/profile", authentication.GetProfile)
	mux.HandleFunc("/profile/update", authentication.UpdateProfile)
	mux.HandleFunc("/profile/password", authentication.ChangePassword)

	// Наставники и их доступность
	mux.HandleFunc("/mentors", mentors.ListMentors)
	mux.HandleFunc("/mentors/profile", mentors.GetMentor)
	mux.HandleFunc("/mentors/availability", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			mentors.GetAvailability(w, r)
		case http.MethodPost:
			mentors.AddAvailabilityWindow(w, r)
		case http.MethodDelete:
			mentors.RemoveAvailabilityWindow(w, r)
		default:
			respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Бронирование сессий
	mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sessions.ListSessions(w, r)
		case http.MethodPost:
			sessions.CreateSession(w, r)
		default:
			respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/sessions/status", sessions.UpdateSessionStatus)

	// Живые обсуждения
	mux.HandleFunc("/discussions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			discussions.ListDiscussions(w, r)
		case http.MethodPost:
			discussions.CreateDiscussion(w, r)
		default:
			respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/discussions/join", discussions.JoinDiscussion)
	mux.HandleFunc("/discussions/access", discussions.AccessDiscussion)

	// Блог
	mux.HandleFunc("/blogs", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			blogs.ListBlogPosts(w, r)
		case http.MethodPost:
			blogs.CreateBlogPost(w, r)
		case http.MethodPut:
			blogs.UpdateBlogPost(w, r)
		case http.MethodDelete:
			blogs.DeleteBlogPost(w, r)
		default:
			respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/blogs/post", blogs.GetBlogPost)

	// Учебные материалы
	mux.HandleFunc("/resources", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			resources.ListResources(w, r)
		case http.MethodDelete:
			resources.DeleteResource(w, r)
		default:
			respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/resources/upload", resources.UploadResource)
	mux.HandleFunc("/resources/download", resources.DownloadResource)

	// Админка
	mux.HandleFunc("/admin/assign-mentor", admin.AssignMentorRole)
	mux.HandleFunc("/admin/sessions", admin.DeleteSession)
	mux.HandleFunc("/admin/sessions/export", admin.ExportSessions)

	mux.Handle("/metrics", promhttp.Handler())

	handler := httpCors.CorsSettings().Handler(
		httpmw.RequestLogger(
			httpmw.CSRFDoubleSubmit(mux)))

	// Запускаем сервер
	logger.Info("сервер запущен", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Fatal("ошибка запуска сервера", zap.Error(err))
	}
}
