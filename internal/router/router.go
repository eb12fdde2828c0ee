package router

import (
	"net/http"

	_ "shelter-dashboard/docs"
	"shelter-dashboard/internal/dashboard"
	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/middleware"
	"shelter-dashboard/internal/platform/logger"
	"shelter-dashboard/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Service *animals.Service
	App     *dashboard.App

	// Opcionales.
	Metrics     *metrics.Collector
	Logger      logger.Logger
	OperatorKey string // vacío => escrituras abiertas (modo dev)
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	if opts.Service != nil {
		animals.RegisterRoutes(r, opts.Service, middleware.RequireOperator(opts.OperatorKey))
	}
	if opts.App != nil {
		dashboard.RegisterRoutes(r, opts.App)
	}

	return r
}
