package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"advisor-api/internal/service"
	"advisor-api/internal/transport/rest/handler"
	"advisor-api/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	CatalogService    *service.CatalogService
	SubmissionService *service.SubmissionService
	RoadmapService    *service.RoadmapService
	ExportService     *service.ExportService
	AdminToken        string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	catalogHandler := handler.NewCatalogHandler(c.CatalogService)
	submissionHandler := handler.NewSubmissionHandler(c.SubmissionService)
	roadmapHandler := handler.NewRoadmapHandler(c.RoadmapService, c.ExportService)

	authMW := middleware.NewAuthMiddleware(c.AdminToken)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Respondent routes (public)
	v1.HandleFunc("/questionnaires/{questionnaireId}", catalogHandler.GetQuestionnaire).Methods("GET", "OPTIONS")
	v1.HandleFunc("/submissions", submissionHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/submissions/{submissionId}/current", submissionHandler.Current).Methods("GET", "OPTIONS")
	v1.HandleFunc("/submissions/{submissionId}/answers/{questionKey}", submissionHandler.SubmitAnswer).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/submissions/{submissionId}/advance", submissionHandler.Advance).Methods("POST", "OPTIONS")
	v1.HandleFunc("/submissions/{submissionId}/roadmap", roadmapHandler.Get).Methods("GET", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes (require shared token)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/questionnaires", catalogHandler.CreateQuestionnaire).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires", catalogHandler.ListQuestionnaires).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{questionnaireId}", catalogHandler.UpdateQuestionnaire).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{questionnaireId}", catalogHandler.DeleteQuestionnaire).Methods("DELETE", "OPTIONS")

	adminRoutes.HandleFunc("/offerings", catalogHandler.CreateOffering).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/offerings", catalogHandler.ListOfferings).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/offerings/{key}", catalogHandler.UpdateOffering).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/offerings/{key}", catalogHandler.DeleteOffering).Methods("DELETE", "OPTIONS")

	adminRoutes.HandleFunc("/rules", catalogHandler.CreateRule).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/rules", catalogHandler.ListRules).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/rules/{ruleId}", catalogHandler.DeleteRule).Methods("DELETE", "OPTIONS")

	adminRoutes.HandleFunc("/submissions", submissionHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/submissions/{submissionId}", submissionHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/submissions/{submissionId}/roadmap/export", roadmapHandler.Export).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
