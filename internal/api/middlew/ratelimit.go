package middlew

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/metrics"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/models"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/ratelimit"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/pkg/response"
)

// RateLimit keys requests on the authenticated actor when present, the client
// IP otherwise. Denials answer 429 with the standard X-RateLimit headers.
func RateLimit(limiter *ratelimit.Limiter, operation string, window time.Duration, maxRequests int, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := GetLogger(r.Context())

			subject := ClientIP(r)
			if actor, ok := r.Context().Value(actorKey).(models.Actor); ok {
				subject = actor.UserID.String()
			}

			res, err := limiter.Allow(r.Context(), ratelimit.Key(operation, subject), window, maxRequests)
			if err != nil {
				// El limitador nunca tumba la petición por fallas del backend.
				log.Error("rate limiter unavailable, allowing request",
					slog.String("operation", operation),
					slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				m.RateLimitDenials.WithLabelValues(operation).Inc()
				log.Warn("petición rechazada por límite de tasa",
					slog.String("operation", operation),
					slog.String("subject", subject))
				response.WriteJSONError(w, log, http.StatusTooManyRequests, "rate_limited", "Too many requests, try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP trusts X-Forwarded-For only for the leftmost hop; the service runs
// behind a single reverse proxy.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		for i := 0; i < len(fwd); i++ {
			if fwd[i] == ',' {
				return fwd[:i]
			}
		}
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
