package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/insurehub/insurehub/internal/api/handlers"
	"github.com/insurehub/insurehub/internal/api/middleware"
)

// Router wraps the HTTP multiplexer with middleware and handlers
type Router struct {
	mux      *http.ServeMux
	app      *App
	auth     *handlers.AuthHandler
	catalog  *handlers.CatalogHandler
	purchase *handlers.PurchaseHandler
	advisor  *handlers.AdvisorHandler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(app *App) http.Handler {
	r := &Router{
		mux: http.NewServeMux(),
		app: app,
	}

	// Initialize handlers
	r.auth = handlers.NewAuthHandler(app.Auth)
	r.catalog = handlers.NewCatalogHandler(app.Catalog)
	r.purchase = handlers.NewPurchaseHandler(app.Purchases)
	r.advisor = handlers.NewAdvisorHandler(app.Advisor)

	// Register routes
	registry := prometheus.NewRegistry()
	r.registerRoutes(registry)

	// Build middleware chain
	return r.buildMiddlewareChain(r.mux, registry)
}

func (r *Router) registerRoutes(registry *prometheus.Registry) {
	// Operational endpoints
	r.mux.HandleFunc("GET /health", r.handleHealth)
	r.mux.HandleFunc("GET /ready", r.handleReady)
	r.mux.Handle("GET /metrics", middleware.Handler(registry))

	// Auth (no auth required)
	r.mux.HandleFunc("POST /api/register", r.auth.Register)
	r.mux.HandleFunc("POST /api/login", r.auth.Login)

	// Catalog (public read)
	r.mux.HandleFunc("GET /api/insurance", r.catalog.List)
	r.mux.HandleFunc("GET /api/insurance/{id}", r.catalog.Get)
	r.mux.HandleFunc("POST /api/insurance/ask", r.advisor.Ask)

	// Purchases and contextual Q&A (requires auth)
	r.mux.HandleFunc("POST /buy-plan", r.requireAuth(r.purchase.Buy))
	r.mux.HandleFunc("POST /query", r.requireAuth(r.advisor.Query))
}

func (r *Router) buildMiddlewareChain(handler http.Handler, registry *prometheus.Registry) http.Handler {
	metrics := middleware.NewMetrics(registry)

	// Apply middleware in reverse order (last applied = first executed)
	handler = metrics.Middleware(handler)
	handler = middleware.Recovery(handler)
	handler = middleware.Logger(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.CORS(handler)

	return handler
}

// requireAuth wraps a handler with bearer-token authentication. Any token
// that fails verification is rejected the same way: one 401, no detail.
func (r *Router) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		raw, ok := bearerToken(req)
		if !ok {
			Unauthorized(w, req, "authentication required")
			return
		}

		userID, err := r.app.Tokens.Verify(raw)
		if err != nil {
			Unauthorized(w, req, "invalid or expired token")
			return
		}

		// Add user to context
		ctx := context.WithValue(req.Context(), handlers.ContextKeyUserID, userID)
		next(w, req.WithContext(ctx))
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(req *http.Request) (string, bool) {
	header := req.Header.Get("Authorization")
	scheme, raw, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || raw == "" {
		return "", false
	}
	return raw, true
}

// Health check handlers
func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (r *Router) handleReady(w http.ResponseWriter, req *http.Request) {
	// Check store connectivity
	if err := r.app.Store.Ping(req.Context()); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not ready",
			"checks": map[string]string{
				"store": "unhealthy",
			},
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"checks": map[string]string{
			"store": "healthy",
		},
	})
}
