package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/farxc/listagem-empenhos/internal/auth"
	"github.com/farxc/listagem-empenhos/internal/logger"
	"github.com/farxc/listagem-empenhos/internal/organizer"
)

type application struct {
	config    config
	auth      *auth.Service
	organizer *organizer.Service
	logger    *logger.Logger
}

type config struct {
	addr           string
	sheetName      string
	csvWindows1252 bool
	db             dbConfig
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Post("/auth/login", app.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(app.withUser)

			r.Route("/empenhos", func(r chi.Router) {
				r.Get("/", app.handleListEmpenhos)
				r.Get("/departments", app.handleListDepartments)
				r.Get("/export", app.handleExportEmpenhos)
				r.Patch("/{empenho}/annotation", app.handleSaveAnnotation)
			})

			r.Group(func(r chi.Router) {
				r.Use(app.requireAdmin)

				r.Post("/auth/register", app.handleRegister)
				r.Post("/uploads", app.handleUpload)
				r.Get("/uploads/history", app.handleUploadHistory)
			})
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.logger.Info("API", "Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
