package api

import (
	"github.com/gorilla/mux"

	"github.com/jpereira/homecheck/internal/config"
	"github.com/jpereira/homecheck/internal/db"
	"github.com/jpereira/homecheck/internal/repository/sqlite"
	"github.com/jpereira/homecheck/internal/storage"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB, store storage.ObjectStore) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(db, nil)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	housesHandler := NewHousesHandler(repo)
	roomsHandler := NewRoomsHandler(repo, repo)
	inspectionsHandler := NewInspectionsHandler(repo, repo, repo, store)
	treeHandler := NewTreeHandler(repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")
	authV1.HandleFunc("/me", authHandler.Me).Methods("GET")

	// Houses
	apiV1.HandleFunc("/houses", housesHandler.CreateHouse).Methods("POST")
	apiV1.HandleFunc("/houses", housesHandler.ListHouses).Methods("GET")
	apiV1.HandleFunc("/houses/{id}", housesHandler.GetHouse).Methods("GET")
	apiV1.HandleFunc("/houses/{id}", housesHandler.UpdateHouse).Methods("PUT")
	apiV1.HandleFunc("/houses/{id}", housesHandler.DeleteHouse).Methods("DELETE")

	// Rooms
	apiV1.HandleFunc("/rooms", roomsHandler.CreateRoom).Methods("POST")
	apiV1.HandleFunc("/rooms", roomsHandler.ListRooms).Methods("GET")
	apiV1.HandleFunc("/rooms/{id}", roomsHandler.UpdateRoom).Methods("PUT")
	apiV1.HandleFunc("/rooms/{id}", roomsHandler.DeleteRoom).Methods("DELETE")

	// Inspections and their photos
	apiV1.HandleFunc("/inspections", inspectionsHandler.CreateInspection).Methods("POST")
	apiV1.HandleFunc("/inspections", inspectionsHandler.ListInspections).Methods("GET")
	apiV1.HandleFunc("/inspections/{id}", inspectionsHandler.UpdateInspection).Methods("PUT")
	apiV1.HandleFunc("/inspections/{id}", inspectionsHandler.DeleteInspection).Methods("DELETE")
	apiV1.HandleFunc("/inspections/{id}/images", inspectionsHandler.ListImages).Methods("GET")
	apiV1.HandleFunc("/images/{id}", inspectionsHandler.DeleteImage).Methods("DELETE")

	// Full hierarchy in one round trip
	apiV1.HandleFunc("/tree", treeHandler.GetTree).Methods("GET")

	return r
}
