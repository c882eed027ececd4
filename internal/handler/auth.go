package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"mural/internal/httputil"
	"mural/internal/logger"
	"mural/internal/model"
	"mural/internal/service"
	"mural/internal/transport/http/middleware"
)

type AuthHandler struct {
	userService *service.UserService
	sessions    *service.SessionService
}

func NewAuthHandler(userService *service.UserService, sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
	}
}

// Register handles POST /register
// Creates an account and signs the new user in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	identity, err := h.userService.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameRequired):
			httputil.WriteBadRequest(w, "Username is required")
		case errors.Is(err, service.ErrEmailRequired):
			httputil.WriteBadRequest(w, "Email is required")
		case errors.Is(err, service.ErrPasswordTooShort):
			httputil.WriteBadRequest(w, "Password must be at least 8 characters")
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, "Username already exists")
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteConflict(w, "Email already exists")
		default:
			logger.S.Errorw("register handler", "error", err)
			httputil.WriteInternalError(w, "Failed to register")
		}
		return
	}

	if err := h.setSession(w, identity); err != nil {
		logger.S.Errorw("register handler: mint session", "user", identity.UserID, "error", err)
		httputil.WriteInternalError(w, "Failed to register")
		return
	}

	httputil.WriteCreated(w, "Registered successfully", identity)
}

// Login handles POST /login
// Checks credentials and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	identity, err := h.userService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			httputil.WriteUnauthorized(w, "Incorrect credentials")
			return
		}
		logger.S.Errorw("login handler", "error", err)
		httputil.WriteInternalError(w, "Failed to log in")
		return
	}

	if err := h.setSession(w, identity); err != nil {
		logger.S.Errorw("login handler: mint session", "user", identity.UserID, "error", err)
		httputil.WriteInternalError(w, "Failed to log in")
		return
	}

	httputil.WriteSuccess(w, "Logged in successfully", identity)
}

// Logout handles POST /logout
// Clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	httputil.WriteSuccess(w, "Logged out successfully", nil)
}

func (h *AuthHandler) setSession(w http.ResponseWriter, identity *model.Identity) error {
	token, err := h.sessions.Mint(identity)
	if err != nil {
		return err
	}
	setSessionCookie(w, token, h.sessions.MaxAge())
	return nil
}

func setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
