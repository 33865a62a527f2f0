package routes

import (
	"net/http"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"inkwell/app/auth"
	"inkwell/app/cache"
	"inkwell/app/config"
	"inkwell/app/controllers"
	"inkwell/app/middleware"
	"inkwell/app/repositories"
	"inkwell/app/services"
	"inkwell/app/storage"
)

// SetupRoutes wires the repositories, services, and controllers onto a
// router, using the provided Badger DB.
func SetupRoutes(db *badger.DB, cfg config.Config) (*mux.Router, error) {
	postRepo := repositories.NewBadgerPostRepository(db)
	userRepo := repositories.NewBadgerUserRepository(db)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	verifier := auth.NewVerifier(tokens, userRepo)

	var listingCache services.ListingCache
	if cfg.RedisAddr != "" {
		listingCache = cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
	}

	images, err := storage.NewImageStore(cfg.UploadsDir)
	if err != nil {
		return nil, err
	}

	postService := services.NewPostService(postRepo, userRepo, listingCache)
	userService := services.NewUserService(userRepo, tokens)

	postController := controllers.NewPostController(postService, images, cfg.Production())
	userController := controllers.NewUserController(userService, cfg.Production())

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CorsAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	router.Use(middleware.Authenticate(verifier))

	// Serve stored images
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(images.Dir()))))

	api := router.PathPrefix("/api").Subrouter()

	// Blog endpoints
	blogs := api.PathPrefix("/blogs").Subrouter()
	blogs.HandleFunc("", postController.Index).Methods("GET")
	blogs.Handle("", middleware.RequireUser(http.HandlerFunc(postController.Create))).Methods("POST")
	blogs.Handle("/admin/blogs", middleware.RequireAdmin(http.HandlerFunc(postController.AdminIndex))).Methods("GET")
	blogs.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	blogs.Handle("/{id:[0-9]+}", middleware.RequireUser(http.HandlerFunc(postController.Update))).Methods("PUT")
	blogs.Handle("/{id:[0-9]+}", middleware.RequireAdmin(http.HandlerFunc(postController.Delete))).Methods("DELETE")
	blogs.Handle("/{id:[0-9]+}/approve", middleware.RequireAdmin(http.HandlerFunc(postController.Approve))).Methods("PUT")
	blogs.Handle("/{id:[0-9]+}/reject", middleware.RequireAdmin(http.HandlerFunc(postController.Reject))).Methods("PUT")

	// User endpoints
	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("/register", userController.Register).Methods("POST")
	users.HandleFunc("/login", userController.Login).Methods("POST")

	return router, nil
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
