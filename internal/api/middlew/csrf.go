package middlew

import (
	"crypto/subtle"
	"net/http"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/pkg/response"
)

const (
	csrfHeader = "X-CSRF-Token"
	csrfCookie = "csrf_token"
)

// CSRFProtect enforces the double-submit pattern on mutating requests: the
// X-CSRF-Token header must match the csrf_token cookie minted by the frontend.
func CSRFProtect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		log := GetLogger(r.Context())

		header := r.Header.Get(csrfHeader)
		cookie, err := r.Cookie(csrfCookie)
		if header == "" || err != nil || cookie.Value == "" {
			response.WriteJSONError(w, log, http.StatusForbidden, "csrf_required", "CSRF token is required")
			return
		}

		if subtle.ConstantTimeCompare([]byte(header), []byte(cookie.Value)) != 1 {
			log.Warn("CSRF token mismatch")
			response.WriteJSONError(w, log, http.StatusForbidden, "csrf_mismatch", "CSRF token mismatch")
			return
		}

		next.ServeHTTP(w, r)
	})
}
