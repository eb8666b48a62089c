package httpmw

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ssb-connect-backend/config"
	"ssb-connect-backend/controllers/respond"
)

// Грубый лимит на аутентификационные эндпоинты: 10 запросов в минуту с IP
const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// AuthRateLimit считает запросы в Redis с фиксированным окном.
// Если Redis недоступен, запрос пропускается: троттлинг не должен
// ронять вход в систему.
func AuthRateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if config.Redis == nil {
			next(w, r)
			return
		}

		key := fmt.Sprintf("ratelimit:auth:%s", clientIP(r))

		count, err := config.Redis.Incr(r.Context(), key).Result()
		if err != nil {
			config.Logger.Warn("rate limiter unavailable", zap.Error(err))
			next(w, r)
			return
		}
		if count == 1 {
			config.Redis.Expire(r.Context(), key, authRateWindow)
		}

		if count > authRateLimit {
			respond.Error(w, http.StatusTooManyRequests, "Too many requests, try again later")
			return
		}

		next(w, r)
	}
}
