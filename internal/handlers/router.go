package handlers

import (
	"net/http"

	"places-api/internal/middleware"
	"places-api/internal/repository"
	"places-api/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// RouterDeps holds what the router wires into handlers
type RouterDeps struct {
	Store          repository.Store
	PlaceService   *services.PlaceService
	UserService    *services.UserService
	Hub            *services.WSHub
	Logger         zerolog.Logger
	AllowedOrigins []string
}

// NewRouter builds the HTTP routes
func NewRouter(deps RouterDeps) http.Handler {
	placeHandler := NewPlaceHandler(deps.PlaceService)
	userHandler := NewUserHandler(deps.UserService)
	wsHandler := NewWebSocketHandler(deps.Hub, deps.UserService, deps.AllowedOrigins)

	allowedOrigins := deps.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.AccessLog)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/health", HealthHandler(deps.Store))

	// Routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/places", func(r chi.Router) {
			r.Post("/", placeHandler.CreatePlace)
			r.Get("/{pid}", placeHandler.GetPlaceByID)
			r.Patch("/{pid}", placeHandler.UpdatePlace)
			r.Delete("/{pid}", placeHandler.DeletePlace)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.CreateUser)
			r.Get("/{uid}", userHandler.GetUser)
			r.Get("/{uid}/places", placeHandler.GetPlacesByUserID)
			r.Get("/{uid}/places/events", wsHandler.PlaceEvents)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, MessageResponse{Message: "Could not find this route."})
	})

	return r
}
