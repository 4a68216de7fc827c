package http

import (
	"GoLinks-Backend/internal/service"
	"GoLinks-Backend/pkg/useragent"
	"net"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// RedirectHandler is the heart of the app: it turns "go/keyword" into a 302
// to the stored URL.
type RedirectHandler struct {
	links *service.LinkService
	log   *zap.Logger
}

// NewRedirectHandler creates the redirect handler.
func NewRedirectHandler(links *service.LinkService, log *zap.Logger) *RedirectHandler {
	return &RedirectHandler{
		links: links,
		log:   log,
	}
}

// HandleRedirect resolves the keyword in the path and redirects. 302 (not
// 301) so the browser keeps coming back: that is what makes click counting
// and URL updates work. An unresolved keyword degrades to a redirect into
// the app with the keyword as a search hint, never an error page.
func (h *RedirectHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimPrefix(r.URL.Path, "/")

	// Root goes to the management UI.
	if keyword == "" {
		http.Redirect(w, r, "/app/", http.StatusFound)
		return
	}

	// System paths are not go links.
	if strings.HasPrefix(keyword, "api/") || strings.HasPrefix(keyword, "app/") ||
		strings.HasPrefix(keyword, "static/") || strings.HasPrefix(keyword, "swagger/") ||
		keyword == "health" || keyword == "favicon.ico" {
		http.NotFound(w, r)
		return
	}

	link, err := h.links.Resolve(r.Context(), keyword)
	if err != nil {
		h.log.Error("failed to resolve keyword", zap.String("keyword", keyword), zap.Error(err))
		// Degrade like a miss rather than surfacing an error page.
		http.Redirect(w, r, "/app/?notfound="+url.QueryEscape(keyword), http.StatusFound)
		return
	}

	if link == nil {
		h.log.Debug("go link not found", zap.String("keyword", keyword))
		http.Redirect(w, r, "/app/?notfound="+url.QueryEscape(keyword), http.StatusFound)
		return
	}

	h.log.Info("redirect",
		zap.String("keyword", link.Keyword),
		zap.String("url", link.URL),
		zap.String("ip", extractIPAddress(r)),
		zap.String("device_type", deviceType(r.UserAgent())))

	http.Redirect(w, r, link.URL, http.StatusFound)
}

// extractIPAddress returns the client IP, preferring proxy headers.
func extractIPAddress(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		ips := strings.Split(ip, ",")
		return strings.TrimSpace(ips[0])
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// deviceType classifies the User-Agent for the log line, using the parser
// when it was initialized and keyword matching otherwise.
func deviceType(ua string) string {
	if p := useragent.GetGlobalParser(); p != nil {
		return p.ParseUserAgent(ua).DeviceType
	}
	return useragent.DetectDeviceType(ua)
}
