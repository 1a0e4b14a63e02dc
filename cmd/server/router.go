package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apiMiddleware "github.com/creatorlab/taskgate/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	r.Post("/push/{topic}", app.dispatchHandler.Push)
	r.Get("/status/{uid}", app.dispatchHandler.Status)
	r.Get("/server_status", app.dispatchHandler.ServerStatus)
	r.Get("/health", app.dispatchHandler.Health)

	r.Post("/get_prompt", app.promptHandler.GetPrompt)
	r.Post("/translate", app.promptHandler.GetPrompt)

	return r
}
