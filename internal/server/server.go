package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/manotham-cc/RAG-Orchestrator/internal/adapter/utils"
	"github.com/manotham-cc/RAG-Orchestrator/internal/config"
	"github.com/manotham-cc/RAG-Orchestrator/internal/handlers"
	"github.com/manotham-cc/RAG-Orchestrator/internal/middleware"
	"github.com/manotham-cc/RAG-Orchestrator/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string, handler *handlers.Handler) {
	_logger = logger_i.NewLogger("Server")

	r := utils.GetRouter()

	r.Router.Get("/", middleware.Wrap(handler.Root))
	r.Router.Get("/health", middleware.Wrap(handler.Health))
	r.Router.Get("/collections", middleware.Wrap(handler.ListCollections))
	r.Router.Post("/collections", middleware.Wrap(handler.CreateCollection))
	r.Router.Get("/collections/{name}/count", middleware.Wrap(handler.CollectionCount))
	r.Router.Get("/collections/{name}/filters", middleware.Wrap(handler.ListFilters))
	r.Router.Post("/documents/process", middleware.Wrap(handler.ProcessDocument))
	r.Router.Get("/documents/history", middleware.Wrap(handler.IngestionHistory))
	r.Router.Post("/search", middleware.Wrap(handler.Search))
	r.Router.Post("/search/filter", middleware.Wrap(handler.SearchFilter))

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error :", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	println("\nServer is shutting down", state)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err)
		}

		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully is shutting down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
