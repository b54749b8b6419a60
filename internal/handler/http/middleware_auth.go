package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/internal/utils"
)

// auth is an HTTP middleware that enforces bearer session tokens.
//
// It extracts the token from the "Authorization" header, verifies it with
// [service.TokenService.VerifySessionToken] and loads the account with
// [service.AuthService.CurrentUser]. On success the sanitized user and its
// id are stored in the request context via [utils.WithUser] and the request
// logger gains a user_id field.
//
// The middleware rejects requests with HTTP 401 Unauthorized when:
//   - the header is absent ("No token provided");
//   - the header is malformed, or the token is expired, invalid or belongs
//     to an account that no longer exists ("Invalid token").
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, err)
			return
		}

		userID, err := h.services.TokenService.VerifySessionToken(tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.CurrentUser(ctx, userID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		l := logger.FromRequest(r).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", user.ID)
		})
		ctx = l.WithContext(utils.WithUser(ctx, user))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
