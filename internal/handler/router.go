package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-api/pkg/respond"
)

// NewRouter собирает таблицу маршрутов API
func NewRouter(authHandler *AuthHandler, taskHandler *TaskHandler, verifier TokenVerifier, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	r.Route("/todos", func(r chi.Router) {
		r.Use(RequireAuth(verifier, logger))

		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Delete("/", taskHandler.DeleteAll)
		r.Get("/{id}", taskHandler.Get)
		r.Patch("/{id}", taskHandler.Update)
		r.Delete("/{id}", taskHandler.Delete)
	})

	return r
}
