package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/studynexus/studynexus/internal/identity"
	"github.com/studynexus/studynexus/internal/logger"
	"github.com/studynexus/studynexus/internal/service"
	"github.com/studynexus/studynexus/internal/store"
	"github.com/studynexus/studynexus/internal/utils"
	"github.com/studynexus/studynexus/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterLocal(ctx, req.FullName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteError(w, "fullName, email and password are required", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrPolicyViolation):
			log.Err(err).Msg("registration policy violation")
			utils.WriteError(w, err.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already registered")
			utils.WriteError(w, "an account with this email already exists", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	h.respondWithToken(w, r, registeredUser)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.AuthenticateLocal(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteError(w, "email and password are required", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrNoUserWasFound),
			errors.Is(err, service.ErrWrongPassword),
			errors.Is(err, service.ErrFederatedOnlyAccount):
			// one message for all three: login must not reveal which
			// emails have accounts or how they authenticate
			log.Err(err).Msg("login rejected")
			utils.WriteError(w, msgInvalidCredentials, http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	h.respondWithToken(w, r, foundUser)
}

func (h *Handler) googleAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.GoogleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	assertion, err := h.verifier.Verify(ctx, req)
	if err != nil {
		log.Err(err).Msg("identity assertion rejected")
		utils.WriteError(w, "identity assertion could not be verified", http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.AuthenticateFederated(ctx, assertion)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			log.Err(err).Msg("invalid assertion data")
			utils.WriteError(w, "email and uid are required", http.StatusBadRequest)
			return
		}
		log.Err(err).Msg("unexpected error occurred during federated sign-in")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Debug().Int64("id", user.UserID).Str("provider", identity.ProviderGoogle).Msg("federated sign-in completed")

	h.respondWithToken(w, r, user)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		// the auth middleware guarantees a user; reaching here is a wiring bug
		log.Error().Msg("no user in context for protected route")
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	public := user.Public()
	_, _ = utils.WriteJSON(w, models.AuthResponse{Success: true, User: &public}, http.StatusOK)
}

// respondWithToken mints a session token for user and writes the standard
// success envelope. The token rides both the JSON body and the
// Authorization response header.
func (h *Handler) respondWithToken(w http.ResponseWriter, r *http.Request, user models.User) {
	log := logger.FromRequest(r)

	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	public := user.Public()
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	_, _ = utils.WriteJSON(w, models.AuthResponse{
		Success: true,
		User:    &public,
		Token:   token.SignedString,
	}, http.StatusOK)
}
