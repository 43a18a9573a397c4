// @title           RAG Orchestrator API
// @version         1.0
// @description     Document ingestion and retrieval over a vector store, with optional AI generated answers.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/manotham-cc/RAG-Orchestrator/internal/config"
	"github.com/manotham-cc/RAG-Orchestrator/internal/data/store"
	"github.com/manotham-cc/RAG-Orchestrator/internal/handlers"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/embedding/googleEmbedding"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/ingest"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/llm/typhoon"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/parser"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/search"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/vectorDB/qdrantDB"
	"github.com/manotham-cc/RAG-Orchestrator/internal/server"
	"github.com/manotham-cc/RAG-Orchestrator/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	vectorStore, err := qdrantDB.New(serviceContext)
	if err != nil {
		logger.Error("Vector store failed to initialize. Shutting down.", "error", err)
		return
	}

	embeddingService, err := googleEmbedding.New(serviceContext)
	if err != nil {
		logger.Error("Embedding service failed to initialize. Shutting down.", "error", err)
		return
	}

	llmProvider := typhoon.New()
	docParser := parser.NewDocParser()

	//history degrades to nil when redis is offline
	historyStore := store.GetHistoryStore(serviceContext)
	if historyStore == nil {
		logger.Warn("Redis is offline, ingestion history disabled")
	}

	ingestionService := ingest.NewService(docParser, embeddingService, vectorStore)
	searchService := search.NewService(embeddingService, llmProvider, vectorStore)

	handler := handlers.NewHandler(ingestionService, searchService, vectorStore, historyStore)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, handler)

	<-stopExecution
	logger.Info("Server stopped")
}
