package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/auth"
	"tradejournal/src/connectors"
	"tradejournal/src/handler"
	"tradejournal/src/repository"
)

// NewRouter wires repositories, the AI connector and the route table.
func NewRouter() *chi.Mux {
	tradeRepo := repository.NewTradeRepository()
	journalRepo := repository.NewJournalRepository()
	settingsRepo := repository.NewSettingsRepository()
	userRepo := repository.NewUserRepository()
	aiClient := connectors.NewXAIClient(connectors.GetConfig())

	authenticated := auth.Authenticated(userRepo)

	r := chi.NewRouter()

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("/healthcheck error")
		}
	})
	r.Post("/auth/register", handler.RegisterHandler(userRepo))
	r.Post("/auth/login", handler.LoginHandler(userRepo))

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authenticated)

		r.Get("/auth/me", handler.MeHandler())
		r.Put("/auth/me", handler.UpdateUserHandler(userRepo))

		r.Route("/trades", func(r chi.Router) {
			r.Get("/", handler.ListTradesHandler(tradeRepo))
			r.Post("/", handler.CreateTradeHandler(tradeRepo))
			r.Get("/{id}", handler.GetTradeHandler(tradeRepo))
			r.Put("/{id}", handler.UpdateTradeHandler(tradeRepo))
			r.Delete("/{id}", handler.DeleteTradeHandler(tradeRepo))
			r.Post("/{id}/feedback", handler.TradeFeedbackHandler(tradeRepo, aiClient))
		})

		r.Route("/journal", func(r chi.Router) {
			r.Get("/", handler.ListJournalEntriesHandler(journalRepo))
			r.Post("/", handler.CreateJournalEntryHandler(journalRepo))
			r.Get("/{id}", handler.GetJournalEntryHandler(journalRepo))
			r.Put("/{id}", handler.UpdateJournalEntryHandler(journalRepo))
			r.Delete("/{id}", handler.DeleteJournalEntryHandler(journalRepo))
		})

		r.Get("/settings", handler.GetSettingsHandler(settingsRepo))
		r.Put("/settings", handler.UpdateSettingsHandler(settingsRepo))

		r.Get("/stats", handler.StatsHandler(tradeRepo))
		r.Get("/stats/dashboard", handler.DashboardHandler(tradeRepo, settingsRepo))

		r.Post("/insights", handler.InsightsHandler(tradeRepo, journalRepo, aiClient))

		r.Post("/risk/position-size", handler.PositionSizeHandler())
	})

	return r
}

// StartServer serves the API until SIGINT or SIGTERM.
func StartServer(port string) {
	r := NewRouter()

	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
