package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/flypacademy/podcast-academy/internal/models"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Method Register will register user using configured user repository.
	//
	// "req" parameter carries the email, username and password of the new user.
	//
	// If some error will occur during registration, the error will be returned
	// together with empty token values.
	Register(ctx context.Context, req *models.RegisterRequest) (string, string, error)
	// Method Login will authenticate user by email or username.
	//
	// "req" parameter carries the login (email or username) and password.
	//
	// If some error will occur during login, the error will be returned
	// together with empty token values.
	Login(ctx context.Context, req *models.LoginRequest) (string, string, error)
	// Method Refresh will rotate the refresh token and issue a new token pair.
	//
	// "refreshToken" parameter is the refresh token presented by the client.
	//
	// If some error will occur during refresh, the error will be returned
	// together with empty token values.
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	// Method Logout will invalidate the refresh token.
	//
	// "refreshToken" parameter is the refresh token to invalidate.
	//
	// If some error will occur during logout, the error will be returned.
	Logout(ctx context.Context, refreshToken string) error
}

// OIDCService defines the interface for external provider login operations
type OIDCService interface {
	// Method AuthURL builds the provider authorization URL for the given state.
	AuthURL(state string) string
	// Method CompleteLogin exchanges the authorization code for a token pair.
	//
	// "code" parameter is the authorization code returned by the provider.
	//
	// If some error will occur during the exchange, the error will be returned
	// together with empty token values.
	CompleteLogin(ctx context.Context, code string) (string, string, error)
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
	oidcService OIDCService
}

// NewAuthHandler creates a new auth handler. oidcService may be nil when no
// external provider is configured.
func NewAuthHandler(authService AuthService, oidcService OIDCService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
		oidcService: oidcService,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)
		r.Post("/logout", h.Logout)
		r.Get("/oidc/login", h.OIDCLogin)
		r.Get("/oidc/callback", h.OIDCCallback)
	})
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Register a new user with email, username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} map[string]string "Tokens set as cookies"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accessToken, refreshToken, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "already exists") ||
			strings.Contains(err.Error(), "invalid") ||
			strings.Contains(err.Error(), "password must") ||
			strings.Contains(err.Error(), "cannot be empty") {
			status = http.StatusBadRequest
		}
		h.Logger.Error("registration failed", zap.Error(err))
		h.RespondError(w, status, err.Error())
		return
	}

	h.setTokenCookies(w, accessToken, refreshToken)
	h.RespondJSON(w, http.StatusCreated, map[string]string{
		"message": "registration successful",
	})
}

// Login handles POST /auth/login
// @Summary Login a user
// @Description Authenticate a user by email or username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} map[string]string "Tokens set as cookies"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accessToken, refreshToken, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if strings.Contains(err.Error(), "cannot be empty") {
			h.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Info("login failed", zap.Error(err))
		h.RespondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.setTokenCookies(w, accessToken, refreshToken)
	h.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "login successful",
	})
}

// Refresh handles POST /auth/refresh
// @Summary Refresh tokens
// @Description Exchange a valid refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "New tokens set as cookies"
// @Failure 401 {object} map[string]string "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := h.extractRefreshToken(r)
	if refreshToken == "" {
		h.RespondError(w, http.StatusUnauthorized, "refresh token required")
		return
	}

	accessToken, newRefreshToken, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		h.Logger.Info("token refresh failed", zap.Error(err))
		h.RespondError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	h.setTokenCookies(w, accessToken, newRefreshToken)
	h.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "tokens refreshed",
	})
}

// Logout handles POST /auth/logout
// @Summary Logout a user
// @Description Invalidate the refresh token and clear auth cookies
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Logged out"
// @Failure 401 {object} map[string]string "Invalid refresh token"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken := h.extractRefreshToken(r)
	if refreshToken == "" {
		h.RespondError(w, http.StatusUnauthorized, "refresh token required")
		return
	}

	if err := h.authService.Logout(r.Context(), refreshToken); err != nil {
		h.Logger.Info("logout failed", zap.Error(err))
		h.RespondError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	h.clearTokenCookies(w)
	h.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "logged out",
	})
}

// OIDCLogin handles GET /auth/oidc/login
// @Summary Begin OIDC login
// @Description Redirect the client to the configured identity provider
// @Tags auth
// @Success 302 "Redirect to provider"
// @Failure 503 {object} map[string]string "OIDC login not configured"
// @Router /auth/oidc/login [get]
func (h *AuthHandler) OIDCLogin(w http.ResponseWriter, r *http.Request) {
	if h.oidcService == nil {
		h.RespondError(w, http.StatusServiceUnavailable, "OIDC login is not configured")
		return
	}

	state, err := generateState()
	if err != nil {
		h.Logger.Error("failed to generate OIDC state", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to start login")
		return
	}

	// State round-trips through a short-lived cookie and is checked on callback
	http.SetCookie(w, &http.Cookie{
		Name:     "oidc_state",
		Value:    state,
		Path:     "/api/v1/auth/oidc",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oidcService.AuthURL(state), http.StatusFound)
}

// OIDCCallback handles GET /auth/oidc/callback
// @Summary Complete OIDC login
// @Description Exchange the provider authorization code for local tokens
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "State from the login redirect"
// @Success 200 {object} map[string]string "Tokens set as cookies"
// @Failure 400 {object} map[string]string "Invalid state or code"
// @Failure 503 {object} map[string]string "OIDC login not configured"
// @Router /auth/oidc/callback [get]
func (h *AuthHandler) OIDCCallback(w http.ResponseWriter, r *http.Request) {
	if h.oidcService == nil {
		h.RespondError(w, http.StatusServiceUnavailable, "OIDC login is not configured")
		return
	}

	stateCookie, err := r.Cookie("oidc_state")
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		h.RespondError(w, http.StatusBadRequest, "invalid state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.RespondError(w, http.StatusBadRequest, "authorization code required")
		return
	}

	accessToken, refreshToken, err := h.oidcService.CompleteLogin(r.Context(), code)
	if err != nil {
		h.Logger.Error("OIDC login failed", zap.Error(err))
		h.RespondError(w, http.StatusUnauthorized, "login failed")
		return
	}

	// Expire the state cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "oidc_state",
		Value:    "",
		Path:     "/api/v1/auth/oidc",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	h.setTokenCookies(w, accessToken, refreshToken)
	h.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "login successful",
	})
}

// extractRefreshToken reads the refresh token from the JSON body or the cookie
func (h *AuthHandler) extractRefreshToken(r *http.Request) string {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.RefreshToken != "" {
		return body.RefreshToken
	}

	cookie, err := r.Cookie("refresh_token")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// setTokenCookies sets the access and refresh tokens as HTTP-only cookies
func (h *AuthHandler) setTokenCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   3600, // 1 hour
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   604800, // 7 days
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearTokenCookies expires both auth cookies
func (h *AuthHandler) clearTokenCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// generateState produces a random state value for the OIDC login flow
func generateState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
