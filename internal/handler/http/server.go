package http

import (
	"GoLinks-Backend/internal/auth"
	"GoLinks-Backend/internal/repository"
	"GoLinks-Backend/internal/service"
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Server wires handlers and middleware into a single HTTP surface.
type Server struct {
	authHandler     *AuthHandler
	linksHandler    *LinksHandler
	adminHandler    *AdminHandler
	redirectHandler *RedirectHandler
	healthHandler   *HealthHandler
	authMiddleware  *auth.Middleware
	log             *zap.Logger
}

// NewServer creates the HTTP server.
func NewServer(
	accounts *service.AccountService,
	links *service.LinkService,
	linkStore repository.LinkStore,
	jwtService *auth.JWTService,
	log *zap.Logger,
) *Server {
	return &Server{
		authHandler:     NewAuthHandler(accounts, jwtService, log),
		linksHandler:    NewLinksHandler(links, log),
		adminHandler:    NewAdminHandler(accounts, links, log),
		redirectHandler: NewRedirectHandler(links, log),
		healthHandler:   NewHealthHandler(linkStore, log),
		authMiddleware:  auth.NewMiddleware(jwtService, log),
		log:             log,
	}
}

// SetupRoutes builds the route table.
//
// Public: auth endpoints, health, swagger, and the redirect catch-all.
// Authenticated: everything under /api/links. Admin: /api/admin.
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.healthHandler.Health)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Auth endpoints (public)
	mux.HandleFunc("/api/auth/register", s.withCORS(s.authHandler.Register))
	mux.HandleFunc("/api/auth/login", s.withCORS(s.authHandler.Login))

	// Link endpoints (authenticated)
	mux.HandleFunc("/api/links", s.withCORS(s.authMiddleware.RequireAuth(s.handleLinks)))
	mux.HandleFunc("/api/links/", s.withCORS(s.authMiddleware.RequireAuth(s.handleLinkByKeyword)))

	// Admin endpoints (admin only)
	mux.HandleFunc("/api/admin/users", s.withCORS(s.authMiddleware.RequireAdmin(s.adminHandler.ListUsers)))
	mux.HandleFunc("/api/admin/users/", s.withCORS(s.authMiddleware.RequireAdmin(s.handleAdminUser)))
	mux.HandleFunc("/api/admin/links", s.withCORS(s.authMiddleware.RequireAdmin(s.adminHandler.ListLinks)))
	mux.HandleFunc("/api/admin/links/", s.withCORS(s.authMiddleware.RequireAdmin(s.handleAdminLink)))

	// Redirect catch-all - must be last
	mux.HandleFunc("/", s.redirectHandler.HandleRedirect)

	return mux
}

// handleLinks dispatches /api/links by method.
func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.linksHandler.ListMine(w, r)
	case http.MethodPost:
		s.linksHandler.Create(w, r)
	default:
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleLinkByKeyword dispatches /api/links/{keyword} (and /api/links/all).
func (s *Server) handleLinkByKeyword(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimPrefix(r.URL.Path, "/api/links/")
	if keyword == "" || strings.Contains(keyword, "/") {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}

	if keyword == "all" {
		if r.Method != http.MethodGet {
			writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.linksHandler.ListAll(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.linksHandler.Update(w, r, keyword)
	case http.MethodDelete:
		s.linksHandler.Delete(w, r, keyword)
	default:
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleAdminUser dispatches /api/admin/users/{username} and
// /api/admin/users/{username}/role.
func (s *Server) handleAdminUser(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/users/")

	if username, found := strings.CutSuffix(rest, "/role"); found {
		if username == "" || strings.Contains(username, "/") {
			writeError(w, "Not found", http.StatusNotFound)
			return
		}
		if r.Method != http.MethodPut {
			writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.adminHandler.UpdateUserRole(w, r, username)
		return
	}

	if rest == "" || strings.Contains(rest, "/") {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodDelete {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.adminHandler.DeleteUser(w, r, rest)
}

// handleAdminLink dispatches /api/admin/links/{keyword}.
func (s *Server) handleAdminLink(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimPrefix(r.URL.Path, "/api/admin/links/")
	if keyword == "" || strings.Contains(keyword, "/") {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodDelete {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.adminHandler.DeleteLink(w, r, keyword)
}

// withCORS adds CORS headers to a handler.
func (s *Server) withCORS(handler http.HandlerFunc) http.HandlerFunc {
	return s.authMiddleware.CORS(handler)
}
