// @title           F1 DNF Analytics API
// @version         1.0
// @description     REST API аналитики сходов Формулы 1: агрегаты по трассам, причинам схода, командам и пилотам на основе CSV выгрузки результатов гонок.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  akozadaev@inbox.ru
// @contact.url    https://github.com/akozadaev/go_f1_dnf_analytics

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @schemes   http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/akozadaev/go_f1_dnf_analytics/docs" // swagger docs
	"github.com/akozadaev/go_f1_dnf_analytics/internal/analytics"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/config"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/dataset"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/handlers"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/logger"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/metrics"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging)
	defer func() { _ = log.Sync() }()

	// Данные загружаются до старта сервера; при ошибке сервер работает с пустым снимком
	snap := dataset.NewLoader(cfg.Data, log).LoadOrEmpty(context.Background())
	log.Infow("Dataset ready",
		"records", snap.Len(),
		"grand_prix", snap.GrandPrixCount(),
	)

	m := metrics.New(prometheus.DefaultRegisterer)
	m.SetDataset(snap.Len(), snap.GrandPrixCount(), snap.LoadedAt())

	// Инициализация handlers
	h := handlers.NewHandlers(snap, analytics.CircuitOptions{
		StartersPerRace: cfg.Analytics.StartersPerRace,
		DNFPositionText: cfg.Analytics.DNFPositionText,
	}, log)

	// Настройка роутера
	router := mux.NewRouter()
	router.Use(
		handlers.Recover(log),
		middleware.RequestLogger(log.WithComponent("http")),
		middleware.Instrument(m),
	)
	h.Register(router)
	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	// CORS и лимит запросов оборачивают весь роутер, чтобы preflight не доходил до mux
	handler := middleware.CORS()(middleware.RateLimit(cfg.RateLimit)(router))

	// Настройка сервера
	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Infow("Server starting", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("Server failed to start", "error", err)
		}
	}()

	// Ожидание сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("Server forced to shutdown", "error", err)
	}

	log.Info("Server exited")
}
