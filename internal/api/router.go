package api

import (
	"edu_platform/internal/api/handler"
	"edu_platform/internal/api/middleware"
	"edu_platform/internal/app/service"
	"edu_platform/internal/common/security"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	tokens *security.TokenIssuer,
	authService *service.AuthService,
	catalogService *service.CatalogService,
	quizService *service.QuizService,
	progressService *service.ProgressService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		// Tokens are optional on every route; handlers that need a user sit
		// behind middleware.Authenticator.
		api.Use(jwtauth.Verifier(tokens.JWTAuth()))
		api.Use(middleware.Identify)

		authHandler := handler.NewAuthHandler(authService)
		api.Route("/auth", authHandler.RegisterRoutes)

		catalogHandler := handler.NewCatalogHandler(catalogService)
		catalogHandler.RegisterRoutes(api)

		progressHandler := handler.NewProgressHandler(progressService)
		progressHandler.RegisterRoutes(api)

		quizHandler := handler.NewQuizHandler(quizService)
		api.Route("/quizzes", quizHandler.RegisterRoutes)
	})

	return r
}
