package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"thewall/internal/config"
	"thewall/internal/httputil"
	"thewall/internal/model"
	"thewall/internal/service"
	"thewall/internal/transport/http/middleware"
)

// AuthHandler groups auth-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
	config      config.AuthConfig
	log         zerolog.Logger
}

// NewAuthHandler wires dependencies for authentication endpoints.
func NewAuthHandler(userService *service.UserService, authService *service.AuthService, cfg config.AuthConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
		config:      cfg,
		log:         log,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		httputil.WriteServiceError(w, h.log, err)
		return
	}

	h.log.Info().Int64("user_id", user.ID).Msg("user registered")
	httputil.WriteSuccess(w, http.StatusCreated, user)
}

// Login handles POST /auth/login
// The access token is returned in the body and set as an HttpOnly cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		httputil.WriteServiceError(w, h.log, err)
		return
	}

	token, err := h.authService.IssueAccessToken(user)
	if err != nil {
		httputil.WriteServiceError(w, h.log.With().Int64("user_id", user.ID).Logger(), err)
		return
	}

	h.setAccessTokenCookie(w, token, h.authService.MaxAge())
	httputil.WriteSuccess(w, http.StatusOK, model.LoginResponse{
		User:        user,
		AccessToken: token,
		ExpiresIn:   h.authService.MaxAge(),
	})
}

// Logout handles POST /auth/logout
// Access tokens are stateless, so logging out only clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setAccessTokenCookie(w, "", -1)
	httputil.WriteSuccess(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

// Me handles GET /me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		httputil.WriteServiceError(w, h.log.With().Int64("user_id", userID).Logger(), err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, user)
}

func (h *AuthHandler) setAccessTokenCookie(w http.ResponseWriter, token string, maxAge int) {
	cookie := &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		cookie.Expires = time.Unix(0, 0)
	}
	http.SetCookie(w, cookie)
}
