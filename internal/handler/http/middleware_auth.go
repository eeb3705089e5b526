package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/studynexus/studynexus/internal/logger"
	"github.com/studynexus/studynexus/internal/service"
	"github.com/studynexus/studynexus/internal/store"
	"github.com/studynexus/studynexus/internal/utils"
)

// auth is the token guard: an HTTP middleware that enforces JWT-based
// authentication on every protected request.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken], resolves the subject to
// a current user record, and — on success — stores both the user id and the
// resolved user in the request context before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value cannot be parsed as a bearer token
//     ([utils.ParseBearerToken] rejects it).
//   - The token has expired ([service.ErrTokenIsExpired]).
//   - The token is otherwise invalid or cannot be parsed.
//   - The subject no longer resolves to a user ([store.ErrNoUserWasFound]).
//
// A failed verification is terminal for the request; nothing is retried.
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteError(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenIsExpired):
				log.Err(err).Msg("token expired")
				utils.WriteError(w, msgTokenExpired, http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("error occurred during parsing token")
				utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
		}

		user, err := h.services.AuthService.UserByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				log.Err(err).Int64("id", token.UserID).Msg("token subject no longer exists")
				utils.WriteError(w, msgUserGone, http.StatusUnauthorized)
				return
			}
			log.Err(err).Int64("id", token.UserID).Msg("error resolving token subject")
			utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		// Store the authenticated identity in the context so that downstream
		// handlers can use it without re-parsing the token or re-querying.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)
		ctx = context.WithValue(ctx, utils.UserCtxKey, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
