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

// LinksHandler serves go link CRUD for authenticated users.
type LinksHandler struct {
	links *service.LinkService
	log   *zap.Logger
}

// NewLinksHandler creates the links handler.
func NewLinksHandler(links *service.LinkService, log *zap.Logger) *LinksHandler {
	return &LinksHandler{
		links: links,
		log:   log,
	}
}

// LinkRequest is the request body for creating and updating links.
type LinkRequest struct {
	Keyword     string `json:"keyword"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// ListMine returns the links owned by the requesting user.
//
//	@Summary	List my go links
//	@Tags		Links
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	domain.Link
//	@Router		/api/links [get]
func (h *LinksHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	links, err := h.links.FindByOwner(r.Context(), principal.Username)
	if err != nil {
		h.log.Error("failed to list links", zap.String("owner", principal.Username), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, links, http.StatusOK)
}

// ListAll returns every go link (public directory for logged-in users).
//
//	@Summary	List all go links
//	@Tags		Links
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	domain.Link
//	@Router		/api/links/all [get]
func (h *LinksHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	links, err := h.links.FindAll(r.Context())
	if err != nil {
		h.log.Error("failed to list all links", zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, links, http.StatusOK)
}

// Create creates a new go link owned by the requesting user.
//
//	@Summary	Create a go link
//	@Tags		Links
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		LinkRequest	true	"Link to create"
//	@Success	200		{object}	domain.Link
//	@Failure	400		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse	"Keyword already taken"
//	@Router		/api/links [post]
func (h *LinksHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	var req LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		writeError(w, "URL is required", http.StatusBadRequest)
		return
	}

	link, err := h.links.Create(r.Context(), req.Keyword, req.URL, req.Description, principal.Username)
	if err != nil {
		h.writeLinkError(w, req.Keyword, err)
		return
	}

	writeJSON(w, link, http.StatusOK)
}

// Update overwrites the URL and description of an existing link.
//
//	@Summary	Update a go link
//	@Tags		Links
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		keyword	path		string		true	"Keyword"
//	@Param		request	body		LinkRequest	true	"New URL and description"
//	@Success	200		{object}	domain.Link
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/api/links/{keyword} [put]
func (h *LinksHandler) Update(w http.ResponseWriter, r *http.Request, keyword string) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	var req LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		writeError(w, "URL is required", http.StatusBadRequest)
		return
	}

	link, err := h.links.Update(r.Context(), keyword, req.URL, req.Description,
		principal.Username, principal.IsAdmin())
	if err != nil {
		h.writeLinkError(w, keyword, err)
		return
	}

	writeJSON(w, link, http.StatusOK)
}

// Delete removes a link.
//
//	@Summary	Delete a go link
//	@Tags		Links
//	@Produce	json
//	@Security	BearerAuth
//	@Param		keyword	path		string	true	"Keyword"
//	@Success	200		{object}	map[string]string
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/api/links/{keyword} [delete]
func (h *LinksHandler) Delete(w http.ResponseWriter, r *http.Request, keyword string) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	err := h.links.Delete(r.Context(), keyword, principal.Username, principal.IsAdmin())
	if err != nil {
		h.writeLinkError(w, keyword, err)
		return
	}

	writeJSON(w, map[string]string{"message": "Deleted go/" + keyword}, http.StatusOK)
}

// writeLinkError maps link service errors onto the HTTP error taxonomy.
func (h *LinksHandler) writeLinkError(w http.ResponseWriter, keyword string, err error) {
	switch {
	case errors.Is(err, service.ErrReservedKeyword):
		writeError(w, "'"+strings.ToLower(strings.TrimSpace(keyword))+"' is a reserved keyword", http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidKeyword), errors.Is(err, service.ErrDescriptionTooLong):
		writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrKeywordExists):
		writeError(w, "Keyword '"+strings.ToLower(strings.TrimSpace(keyword))+"' is already taken", http.StatusConflict)
	case errors.Is(err, repository.ErrKeywordNotFound):
		writeError(w, "Go link '"+keyword+"' not found", http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		writeError(w, err.Error(), http.StatusForbidden)
	default:
		h.log.Error("link operation failed", zap.String("keyword", keyword), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}
