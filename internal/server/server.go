package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"printerstore/internal/app"
	"printerstore/internal/ratelimit"
	"printerstore/internal/storage"
	"printerstore/internal/util"
	"printerstore/pkg/domain"
)

const presignExpiry = 15 * time.Minute

// Config wires required dependencies for the HTTP server.
type Config struct {
	App                        *app.App
	RedisAddr                  string
	RedisPassword              string
	LoginRateLimitPerMinute    int
	RegisterRateLimitPerMinute int
	ContactRateLimitPerMinute  int
	MaxUploadBytes             int64
	MaxUploadFiles             int
	AllowedExtensions          []string
	TrustedProxies             *util.TrustedProxies
}

// Server exposes the HTTP API.
type Server struct {
	app               *app.App
	mux               *http.ServeMux
	maxUploadBytes    int64
	maxUploadFiles    int
	allowedExtensions map[string]struct{}
	registerLimiter   *ratelimit.FixedWindowLimiter
	loginLimiter      *ratelimit.FixedWindowLimiter
	contactLimiter    *ratelimit.FixedWindowLimiter
	trustedProxies    *util.TrustedProxies
}

// New constructs the server with routes configured.
func New(cfg Config) (*Server, error) {
	if cfg.App == nil {
		return nil, fmt.Errorf("app is required")
	}
	registerLimit := cfg.RegisterRateLimitPerMinute
	if registerLimit <= 0 {
		registerLimit = 5
	}
	loginLimit := cfg.LoginRateLimitPerMinute
	if loginLimit <= 0 {
		loginLimit = 10
	}
	contactLimit := cfg.ContactRateLimitPerMinute
	if contactLimit <= 0 {
		contactLimit = 5
	}
	// Without redis the limiters stay nil and rate limiting is disabled.
	rateWindow := time.Minute
	newLimiter := func(name string, limit int) (*ratelimit.FixedWindowLimiter, error) {
		if cfg.RedisAddr == "" {
			return nil, nil
		}
		prefix := "printerstore:ratelimit:" + name
		limiter, err := ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, prefix, limit, rateWindow)
		if err != nil {
			return nil, fmt.Errorf("init %s limiter: %w", name, err)
		}
		return limiter, nil
	}
	registerLimiter, err := newLimiter("register", registerLimit)
	if err != nil {
		return nil, err
	}
	loginLimiter, err := newLimiter("login", loginLimit)
	if err != nil {
		return nil, err
	}
	contactLimiter, err := newLimiter("contact", contactLimit)
	if err != nil {
		return nil, err
	}

	s := &Server{
		app:               cfg.App,
		mux:               http.NewServeMux(),
		maxUploadBytes:    normalizeMaxBytes(cfg.MaxUploadBytes),
		maxUploadFiles:    normalizeMaxFiles(cfg.MaxUploadFiles),
		allowedExtensions: normalizeExtensions(cfg.AllowedExtensions),
		registerLimiter:   registerLimiter,
		loginLimiter:      loginLimiter,
		contactLimiter:    contactLimiter,
		trustedProxies:    cfg.TrustedProxies,
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler with middleware applied.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(
		util.WithRequestLog("printerstore",
			util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	// identity
	s.mux.HandleFunc("/api/register", s.handleRegister)
	s.mux.HandleFunc("/api/login", s.handleLogin)

	// catalog
	s.mux.HandleFunc("/api/products", s.handleProducts)
	s.mux.HandleFunc("/api/products/", s.handleProductByID)
	s.mux.HandleFunc("/api/categories", s.handleCategories)
	s.mux.HandleFunc(storage.PublicPrefix, s.handleUploads)

	// wish list (auth required)
	s.mux.Handle("/api/mylist", s.authenticated(s.handleMyList))
	s.mux.Handle("/api/mylist/send", s.authenticated(s.handleSendList))
	s.mux.Handle("/api/mylist/", s.authenticated(s.handleMyListItem))

	// contact
	s.mux.HandleFunc("/api/contact/booking", s.handleBooking)
	s.mux.HandleFunc("/api/contact/inquiry", s.handleInquiry)

	// admin
	s.mux.Handle("/api/bookings", s.adminOnly(s.handleBookings))
	s.mux.Handle("/api/bookings/", s.adminOnly(s.handleBookingByID))
	s.mux.Handle("/api/sent-lists", s.adminOnly(s.handleSentLists))
	s.mux.Handle("/api/sent-lists/", s.adminOnly(s.handleSentListByID))
	s.mux.Handle("/api/registered-customers", s.adminOnly(s.handleCustomers))
	s.mux.Handle("/api/registered-customers/", s.adminOnly(s.handleCustomerByID))
	s.mux.Handle("/api/unregistered-customers", s.adminOnly(s.handleLeads))
	s.mux.Handle("/api/unregistered-customers/", s.adminOnly(s.handleLeadByID))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUploads serves stored product images. Disk-backed stores are
// served directly; object stores redirect to a presigned URL.
func (s *Server) handleUploads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	key := storage.RefKey(r.URL.Path)
	if key == "" || strings.Contains(key, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch images := s.app.Images().(type) {
	case *storage.FileStore:
		http.ServeFile(w, r, filepath.Join(images.BasePath(), filepath.Base(key)))
	case storage.Presigner:
		url, err := images.PresignGet(r.Context(), key, presignExpiry)
		if err != nil {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		http.Redirect(w, r, url, http.StatusFound)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// auth wrappers
type authHandler func(http.ResponseWriter, *http.Request, domain.User)

func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.authorize(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Access token required")
			return
		}
		next(w, r, user)
	})
}

func (s *Server) adminOnly(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.authorize(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Access token required")
			return
		}
		if user.Role != domain.RoleAdmin {
			s.audit(r, "admin.authorize", "fail", "user_id", user.ID, "reason", "forbidden")
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r, user)
	})
}

// authorize verifies the bearer token and loads the authoritative user
// row, so role changes and deleted accounts take effect immediately.
func (s *Server) authorize(r *http.Request) (domain.User, bool) {
	token, ok := bearerToken(r)
	if !ok {
		s.audit(r, "token.verify", "fail", "reason", "missing_token")
		return domain.User{}, false
	}
	user, ok := s.app.UserFromToken(token)
	if !ok {
		s.audit(r, "token.verify", "fail", "reason", "invalid_or_stale_token")
		return domain.User{}, false
	}
	return user, true
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *Server) audit(r *http.Request, event, outcome string, attrs ...any) {
	logAttrs := []any{
		"event", event,
		"outcome", outcome,
		"path", r.URL.Path,
		"method", r.Method,
		"ip", util.ClientIP(r, s.trustedProxies),
		"request_id", util.RequestIDFromRequest(r),
	}
	logAttrs = append(logAttrs, attrs...)
	if outcome == "success" {
		slog.Info("security_event", logAttrs...)
		return
	}
	slog.Warn("security_event", logAttrs...)
}

func (s *Server) allowRate(w http.ResponseWriter, r *http.Request, limiter *ratelimit.FixedWindowLimiter, msg string) bool {
	if limiter == nil {
		return true
	}
	key := r.URL.Path + "|" + util.ClientIP(r, s.trustedProxies)
	if limiter.Allow(key) {
		return true
	}
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, msg)
	return false
}

func (s *Server) isExtensionAllowed(filename string) bool {
	if len(s.allowedExtensions) == 0 {
		return true
	}
	_, ok := s.allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// pathID extracts the numeric id that follows prefix in the URL path.
func pathID(r *http.Request, prefix string) (uint, bool) {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	id, err := strconv.ParseUint(rest, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// normalizeMaxBytes returns the per-file upload cap.
func normalizeMaxBytes(value int64) int64 {
	if value <= 0 {
		return 5 * 1024 * 1024
	}
	return value
}

func normalizeMaxFiles(value int) int {
	if value <= 0 {
		return 10
	}
	return value
}

func normalizeExtensions(exts []string) map[string]struct{} {
	if len(exts) == 0 {
		exts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	}
	out := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out[ext] = struct{}{}
	}
	return out
}
