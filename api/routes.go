package api

import (
	"net/http"

	"github.com/garnizeh/mentormatch/internal/config"
	"github.com/garnizeh/mentormatch/internal/db"
	"github.com/garnizeh/mentormatch/internal/images"
	"github.com/garnizeh/mentormatch/internal/repository/sqlite"
	"github.com/garnizeh/mentormatch/internal/schema"
	"github.com/gorilla/mux"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB) (*mux.Router, error) {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository and supporting stores
	repo := sqlite.New(db)
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	store, err := images.NewStore(cfg.UploadDir, cfg.MaxImageBytes)
	if err != nil {
		return nil, err
	}

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, validator, cfg.JWTSecret, cfg.TokenDuration)
	profileHandler := NewProfileHandler(repo)
	mentorsHandler := NewMentorsHandler(repo)
	matchesHandler := NewMatchesHandler(repo, repo, validator)
	imagesHandler := NewImagesHandler(repo, store, cfg.MaxImageBytes)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/api/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	protected.HandleFunc("/me", profileHandler.Me).Methods("GET")
	protected.HandleFunc("/me", profileHandler.UpdateMe).Methods("PATCH")
	protected.HandleFunc("/profile", profileHandler.ReplaceProfile).Methods("PUT")
	protected.HandleFunc("/mentors", mentorsHandler.List).Methods("GET")

	protected.HandleFunc("/match-requests", matchesHandler.Create).Methods("POST")
	protected.HandleFunc("/match-requests/incoming", matchesHandler.Incoming).Methods("GET")
	protected.HandleFunc("/match-requests/outgoing", matchesHandler.Outgoing).Methods("GET")
	protected.HandleFunc("/match-requests/{id:[0-9]+}/accept", matchesHandler.Accept).Methods("PUT")
	protected.HandleFunc("/match-requests/{id:[0-9]+}/reject", matchesHandler.Reject).Methods("PUT")
	protected.HandleFunc("/match-requests/{id:[0-9]+}", matchesHandler.Cancel).Methods("DELETE")

	protected.HandleFunc("/me/image", imagesHandler.Upload).Methods("POST")
	protected.HandleFunc("/images/{role}/{id:[0-9]+}", imagesHandler.Serve).Methods("GET")

	// unmatched routes get the same JSON error shape as everything else
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "Not found", http.StatusNotFound)
	})

	return r, nil
}
