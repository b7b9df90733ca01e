package routes

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Mohamed-Galdi/myFreelanceV2/controllers"
	"github.com/Mohamed-Galdi/myFreelanceV2/middleware"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func InitRouter() *mux.Router {
	r := mux.NewRouter()

	// Health check endpoint for Docker health checks (root level)
	r.Handle("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "freelance-api",
		})
	})).Methods(http.MethodGet)

	// CORS - origins from CORS_ALLOWED_ORIGINS (comma-separated) or local defaults
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	origins := []string{
		"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:3000", "http://127.0.0.1:5173",
	}
	if originsEnv != "" {
		for _, p := range strings.Split(originsEnv, ",") {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID"}),
			handlers.AllowCredentials(),
		)(next)
	})

	api := r.PathPrefix("/v1").Subrouter()

	// Catch-all OPTIONS handler for CORS preflight
	api.PathPrefix("/").HandlerFunc(optionsHandler).Methods(http.MethodOptions)

	// Login rate limit: 5 attempts per minute per IP
	loginLimiter := middleware.NewIPRateLimiter(5, time.Minute)
	api.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(controllers.Login))).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware)

	protected.HandleFunc("/logout", controllers.Logout).Methods(http.MethodPost)

	protected.HandleFunc("/dashboard", controllers.GetDashboard).Methods(http.MethodGet)

	protected.HandleFunc("/clients", controllers.GetClients).Methods(http.MethodGet)
	protected.HandleFunc("/clients", controllers.CreateClient).Methods(http.MethodPost)
	protected.HandleFunc("/clients/{id:[0-9]+}", controllers.GetClient).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{id:[0-9]+}", controllers.UpdateClient).Methods(http.MethodPost)
	protected.HandleFunc("/clients/{id:[0-9]+}/delete", controllers.DeleteClient).Methods(http.MethodPost)

	protected.HandleFunc("/projects", controllers.GetProjects).Methods(http.MethodGet)
	protected.Handle("/projects", middleware.MaxBodyMiddleware(http.HandlerFunc(controllers.CreateProject))).Methods(http.MethodPost)
	protected.HandleFunc("/projects/{id:[0-9]+}", controllers.GetProject).Methods(http.MethodGet)
	protected.Handle("/projects/{id:[0-9]+}", middleware.MaxBodyMiddleware(http.HandlerFunc(controllers.UpdateProject))).Methods(http.MethodPost)
	protected.HandleFunc("/projects/{id:[0-9]+}/delete", controllers.DeleteProject).Methods(http.MethodPost)

	protected.HandleFunc("/works", controllers.GetWorks).Methods(http.MethodGet)
	protected.HandleFunc("/works", controllers.CreateWork).Methods(http.MethodPost)
	protected.HandleFunc("/works/{id:[0-9]+}", controllers.GetWork).Methods(http.MethodGet)
	protected.HandleFunc("/works/{id:[0-9]+}", controllers.UpdateWork).Methods(http.MethodPost)
	protected.HandleFunc("/works/{id:[0-9]+}/delete", controllers.DeleteWork).Methods(http.MethodPost)

	protected.HandleFunc("/payments", controllers.GetPayments).Methods(http.MethodGet)
	protected.HandleFunc("/payments", controllers.CreatePayment).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{id:[0-9]+}", controllers.GetPayment).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{id:[0-9]+}", controllers.UpdatePayment).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{id:[0-9]+}/delete", controllers.DeletePayment).Methods(http.MethodPost)

	protected.Handle("/files/upload", middleware.MaxBodyMiddleware(http.HandlerFunc(controllers.UploadTempFile))).Methods(http.MethodPost)
	protected.HandleFunc("/files/revert/{token}", controllers.RevertTempFile).Methods(http.MethodPost)

	return r
}
