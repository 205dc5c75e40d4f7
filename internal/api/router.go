package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ghostduel/server/internal/api/apierr"
	"github.com/ghostduel/server/internal/api/handler"
	"github.com/ghostduel/server/internal/middleware"
	"github.com/ghostduel/server/internal/services/identity"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger

	// IdentityService backs the guest profile endpoint. Nil in jwt mode,
	// where profiles are minted by an external issuer.
	IdentityService *identity.Service

	// WSHandler serves the websocket endpoint
	WSHandler http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, apiPanicHandler)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	if cfg.IdentityService != nil {
		profileHandler := handler.NewProfileHandler(cfg.IdentityService)
		api.HandleFunc("/profiles/guest", profileHandler.CreateGuest).Methods(http.MethodPost)
	}

	// Websocket endpoint sits behind the same middleware; the logging
	// wrapper passes http.Hijacker through so the upgrade still works
	r.Handle("/ws", recoveryMiddleware(loggingMiddleware(cfg.WSHandler))).Methods(http.MethodGet)

	return r
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
