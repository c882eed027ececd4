package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"mural/internal/httputil"
	"mural/internal/logger"
	"mural/internal/redis"
)

// RateLimit enforces `limit` requests per `window` per client, counted in
// Redis with INCR plus EXPIRE on the first hit. Keys by authenticated user
// when present, otherwise by remote IP. Fails open: a nil client or a
// Redis error never blocks a request.
func RateLimit(rdb *redis.Client, name string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			var id string
			if identity, ok := GetIdentityFromContext(r.Context()); ok {
				id = fmt.Sprintf("user:%d", identity.UserID)
			} else {
				id = "ip:" + clientIP(r)
			}

			key := fmt.Sprintf("rl:%s:%s", name, id)
			cnt, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				logger.S.Warnw("rate limit check failed", "key", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if cnt == 1 {
				rdb.Expire(r.Context(), key, window)
			}
			if cnt > int64(limit) {
				httputil.WriteError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
