package http

import (
	"GoLinks-Backend/internal/domain"
	"GoLinks-Backend/internal/repository"
	"GoLinks-Backend/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// AdminHandler serves admin-only user and link management. Routing wraps
// every method here in RequireAdmin, so ownership checks are bypassed by
// construction.
type AdminHandler struct {
	accounts *service.AccountService
	links    *service.LinkService
	log      *zap.Logger
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(accounts *service.AccountService, links *service.LinkService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		accounts: accounts,
		links:    links,
		log:      log,
	}
}

// AdminUserInfo is a user record without the password hash.
type AdminUserInfo struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// RoleRequest is the body of the role-change endpoint.
type RoleRequest struct {
	Role string `json:"role"`
}

// ListUsers returns every user, without password hashes.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.List(r.Context())
	if err != nil {
		h.log.Error("failed to list users", zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	infos := make([]AdminUserInfo, 0, len(users))
	for _, user := range users {
		infos = append(infos, AdminUserInfo{
			Username:  user.Username,
			Role:      string(user.Role),
			CreatedAt: user.CreatedAt,
		})
	}

	writeJSON(w, infos, http.StatusOK)
}

// UpdateUserRole overwrites a user's role.
func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request, username string) {
	var req RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	user, err := h.accounts.UpdateRole(r.Context(), username, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			writeError(w, "Role must be USER or ADMIN", http.StatusBadRequest)
		case errors.Is(err, repository.ErrUserNotFound):
			writeError(w, "User '"+username+"' not found", http.StatusNotFound)
		default:
			h.log.Error("failed to update role", zap.String("username", username), zap.Error(err))
			writeError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, AdminUserInfo{
		Username:  user.Username,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}, http.StatusOK)
}

// DeleteUser removes a user. Idempotent; the user's links stay.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request, username string) {
	if err := h.accounts.Delete(r.Context(), username); err != nil {
		h.log.Error("failed to delete user", zap.String("username", username), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "Deleted user '" + username + "'"}, http.StatusOK)
}

// ListLinks returns every go link.
func (h *AdminHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.links.FindAll(r.Context())
	if err != nil {
		h.log.Error("failed to list links", zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, links, http.StatusOK)
}

// DeleteLink removes any go link, bypassing the ownership check.
func (h *AdminHandler) DeleteLink(w http.ResponseWriter, r *http.Request, keyword string) {
	err := h.links.Delete(r.Context(), keyword, "admin", true)
	if err != nil {
		if errors.Is(err, repository.ErrKeywordNotFound) {
			writeError(w, "Go link '"+keyword+"' not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to delete link", zap.String("keyword", keyword), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "Deleted go/" + keyword}, http.StatusOK)
}
