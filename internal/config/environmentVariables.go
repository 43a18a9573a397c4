package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	ServiceName = "rag-orchestrator-api"

	//chunking - collections were built with these numbers,
	//changing them breaks overlap assumptions of already ingested data
	ChunkSize    = 800
	ChunkOverlap = 150

	//vector collections
	DefaultVectorSize   uint64 = 1024
	DefaultDistanceMode        = "cosine"
	FacetKey                   = "type"
	FacetLimit          uint64 = 100

	EmbeddingOutputDimensionality int32 = 1024
	DefaultEmbeddingModel               = "gemini-embedding-001"

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 120 * time.Second //streamed ingestion outlives a normal response window
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":8000"

	MaxUploadSize = 32 << 20 //32mb

	//vectorDB
	QdrantHost     = "localhost"
	QdrantGrpcPort = 6334
	QdrantUseTLS   = false
	QdrantPoolSize = 1 //2-5 is preferred for prod according to documentation

	//llm
	LLMBaseURL              = "https://api.opentyphoon.ai/v1"
	LLMModelName            = "typhoon-v2.5-30b-a3b-instruct"
	LLMMaxTokens    int64   = 1024
	LLMTemperature  float64 = 0.4 //lower temperature for more factual answers
	LLMSystemPrompt         = "You are a helpful assistant. Use the provided context to answer the user's question accurately using language same as the query. " +
		"If the answer is not in the context, say that you don't know based on the documents provided. " +
		"Cite the source of your information if available."
	NoAnswerMessage  = "Sorry, no relevant information found in the database to answer your question."
	ContextSeparator = "\n\n---\n\n"

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword = ""

	//redis has 16 DB we can use
	RedisHistoryStore = 0

	RedisHistoryTTL  = 24 * time.Hour
	HistoryListKey   = "ingestions"
	HistoryMaxLength = 50
)
