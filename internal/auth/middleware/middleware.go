package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tienda/internal/auth/token"
	"tienda/internal/commons"
)

const SessionCookie = "session"

type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

// Authenticate reads the session token from the Authorization header or the
// session cookie and attaches the caller identity to the request context.
func Authenticate(parser TokenParser, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				commons.WriteError(w, r, http.StatusBadRequest, "NO_TOKEN", "you must sign in first", logger)
				return
			}

			claims, err := parser.Parse(raw)
			if err != nil {
				logger.Debug("rejected session token",
					zap.String("traceId", commons.TraceIDFromContext(r.Context())),
					zap.Error(err),
				)
				commons.WriteError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired session", logger)
				return
			}

			ctx := commons.WithIdentity(r.Context(), commons.Identity{UserID: claims.UserID, RoleID: claims.RoleID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireRole lets the request through only when the authenticated caller
// has one of roles.
func RequireRole(logger *zap.Logger, roles ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := commons.IdentityFromContext(r.Context())
			if !ok {
				commons.WriteError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", logger)
				return
			}

			for _, role := range roles {
				if identity.RoleID == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			commons.WriteError(w, r, http.StatusForbidden, "FORBIDDEN", "you are not allowed to perform this action", logger)
		})
	}
}

// RateLimiter counts requests per client IP in fixed windows stored in
// Redis. A nil client or a Redis failure lets the request through.
func RateLimiter(client goredis.Cmdable, limit int, window time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := "rate_limit:" + clientIP(r)

			count, err := client.Incr(r.Context(), key).Result()
			if err != nil {
				logger.Warn("rate limiter unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if count == 1 {
				if err := client.Expire(r.Context(), key, window).Err(); err != nil {
					logger.Warn("failed to set rate limit window", zap.Error(err))
				}
			}

			if count > int64(limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				commons.WriteError(w, r, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "too many requests, try again later", logger)
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
