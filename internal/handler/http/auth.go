package http

import (
	"GoLinks-Backend/internal/auth"
	"GoLinks-Backend/internal/repository"
	"GoLinks-Backend/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// AuthHandler serves registration and login. Both endpoints are public.
type AuthHandler struct {
	accounts   *service.AccountService
	jwtService *auth.JWTService
	log        *zap.Logger
}

// NewAuthHandler creates the authentication handler.
func NewAuthHandler(accounts *service.AccountService, jwtService *auth.JWTService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		accounts:   accounts,
		jwtService: jwtService,
		log:        log,
	}
}

// AuthRequest is the request body for register and login.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token plus the identity it represents.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Register creates a new account and returns a token for it.
//
//	@Summary	Register a new user
//	@Tags		Authentication
//	@Accept		json
//	@Produce	json
//	@Param		request	body		AuthRequest	true	"Registration request"
//	@Success	200		{object}	AuthResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse	"Username already taken"
//	@Router		/api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid registration request", zap.Error(err))
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if len(req.Username) < 3 || len(req.Username) > 50 {
		writeError(w, "Username must be 3-50 characters", http.StatusBadRequest)
		return
	}
	if err := auth.IsValidPassword(req.Password); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			writeError(w, "Username '"+req.Username+"' is already taken", http.StatusConflict)
			return
		}
		h.log.Error("failed to register user", zap.String("username", req.Username), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	token, err := h.jwtService.Issue(user.Username, user.Role)
	if err != nil {
		h.log.Error("failed to issue token", zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, AuthResponse{
		Token:    token,
		Username: user.Username,
		Role:     string(user.Role),
	}, http.StatusOK)
}

// Login verifies credentials and returns a token.
//
//	@Summary	Log in
//	@Tags		Authentication
//	@Accept		json
//	@Produce	json
//	@Param		request	body		AuthRequest	true	"Login request"
//	@Success	200		{object}	AuthResponse
//	@Failure	401		{object}	ErrorResponse	"Invalid credentials"
//	@Router		/api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid login request", zap.Error(err))
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.log.Error("failed to authenticate user", zap.String("username", req.Username), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		// Same message for unknown username and wrong password.
		writeError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	token, err := h.jwtService.Issue(user.Username, user.Role)
	if err != nil {
		h.log.Error("failed to issue token", zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.log.Info("user logged in", zap.String("username", user.Username))
	writeJSON(w, AuthResponse{
		Token:    token,
		Username: user.Username,
		Role:     string(user.Role),
	}, http.StatusOK)
}
