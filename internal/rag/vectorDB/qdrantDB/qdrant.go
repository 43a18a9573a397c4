package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/manotham-cc/RAG-Orchestrator/internal/adapter/utils"
	"github.com/manotham-cc/RAG-Orchestrator/internal/config"
	"github.com/manotham-cc/RAG-Orchestrator/internal/domain/commonModels"
	"github.com/manotham-cc/RAG-Orchestrator/internal/domain/ragerr"
	"github.com/manotham-cc/RAG-Orchestrator/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
)

var distanceModes = map[string]qdrant.Distance{
	"cosine": qdrant.Distance_Cosine,
	"euclid": qdrant.Distance_Euclid,
	"dot":    qdrant.Distance_Dot,
}

// keyword indexes provisioned on every new collection so filtered search and
// faceting stay fast
var indexedFields = []string{"source", "type"}

type Gateway struct {
	client *qdrant.Client
	logger *logger_i.Logger
}

// New connects to Qdrant over gRPC. The client is a process-wide singleton
// owned by main and closed when ctx is cancelled at shutdown.
func New(ctx context.Context) (*Gateway, error) {
	logger := logger_i.NewLogger("Qdrant")

	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))
	if host == "" || er != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		APIKey:   os.Getenv("QDRANT_API_KEY"),
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate qdrant client", "host", host, "port", port, "error", err)
		return nil, err
	}

	logger.Info("Connected to Qdrant", "host", host, "port", port)
	go closeOnShutdown(ctx, client, logger)

	return &Gateway{client: client, logger: logger}, nil
}

func closeOnShutdown(ctx context.Context, client *qdrant.Client, logger *logger_i.Logger) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	if err := client.Close(); err != nil {
		logger.Error("could not close Qdrant", "error", err)
	}
}

// ListCollections enumerates collections with live point counts. Returns an
// empty slice on failure, never an error - browsing must not break when the
// store hiccups.
func (db *Gateway) ListCollections(ctx context.Context) []commonModels.CollectionInfo {
	names, err := db.client.ListCollections(ctx)
	if err != nil {
		db.logger.Error("Failed to list collections", "error", err)
		return []commonModels.CollectionInfo{}
	}

	infos := make([]commonModels.CollectionInfo, 0, len(names))
	for _, name := range names {
		info, err := db.client.GetCollectionInfo(ctx, name)
		if err != nil {
			db.logger.Error("Failed to describe collection", "collection", name, "error", err)
			continue
		}
		infos = append(infos, commonModels.CollectionInfo{
			Name:        name,
			PointsCount: info.GetPointsCount(),
			Status:      info.GetStatus().String(),
		})
	}
	return infos
}

// CreateCollection is idempotent: creating an existing collection logs a
// warning and returns nil. A fresh collection immediately gets keyword
// indexes on source and type.
func (db *Gateway) CreateCollection(ctx context.Context, name string, vectorSize uint64, distanceMode string) error {
	if name == "" {
		return &ragerr.ValidationError{Message: "empty collection name"}
	}
	if vectorSize == 0 {
		vectorSize = config.DefaultVectorSize
	}
	distance, ok := distanceModes[distanceMode]
	if !ok {
		distance = qdrant.Distance_Cosine
	}

	exists, err := db.client.CollectionExists(ctx, name)
	if err != nil {
		return &ragerr.StoreError{Op: "exists", Collection: name, Err: err}
	}
	if exists {
		db.logger.Warn("Collection already exists", "collection", name)
		return nil
	}

	err = db.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: distance,
		}),
	})
	if err != nil {
		return &ragerr.StoreError{Op: "create", Collection: name, Err: err}
	}
	db.logger.Info("Collection created", "collection", name, "size", vectorSize, "distance", distance)

	db.createIndexes(ctx, name)
	return nil
}

// createIndexes provisions keyword payload indexes. An index that already
// exists is not worth failing collection creation over, so errors only warn.
func (db *Gateway) createIndexes(ctx context.Context, collection string) {
	for _, field := range indexedFields {
		_, err := db.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: collection,
			FieldName:      field,
			FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
			Wait:           qdrant.PtrOf(true),
		})
		if err != nil {
			db.logger.Warn("Creating payload index failed", "collection", collection, "field", field, "error", err)
		}
	}
	db.logger.Info("Payload indexes ready", "collection", collection)
}

// Upsert writes one point per (vector, payload) pair and blocks until the
// store acknowledges durability. Point ids are deterministic per payload
// shape, so re-ingesting the same document overwrites instead of duplicating.
// Vectors and payloads must stay index aligned with chunk order.
func (db *Gateway) Upsert(ctx context.Context, collection string, vectors [][]float32, payloads []map[string]any) error {
	if len(vectors) != len(payloads) {
		return &ragerr.StoreError{
			Op:         "upsert",
			Collection: collection,
			Err:        fmt.Errorf("mismatch: got %d vectors but %d payloads", len(vectors), len(payloads)),
		}
	}
	if len(vectors) == 0 {
		return &ragerr.StoreError{Op: "upsert", Collection: collection, Err: errors.New("empty batch")}
	}

	points := make([]*qdrant.PointStruct, len(vectors))
	for i, vector := range vectors {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(utils.DeterministicPointID(payloads[i])),
			Vectors: qdrant.NewVectors(vector...),
			Payload: qdrant.NewValueMap(payloads[i]),
		}
	}

	result, err := db.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return &ragerr.StoreError{Op: "upsert", Collection: collection, Err: err}
	}
	db.logger.Info("Upserted points", "collection", collection, "count", len(points), "status", result.GetStatus())
	return nil
}

func (db *Gateway) SearchSimilarity(ctx context.Context, collection string, queryVector []float32, limit uint64, scoreThreshold float32) []commonModels.SearchHit {
	return db.query(ctx, collection, queryVector, nil, limit, scoreThreshold)
}

// SearchWithFilter restricts hits to payloads whose filterKey exactly equals
// filterValue. Equality match, not substring.
func (db *Gateway) SearchWithFilter(ctx context.Context, collection string, queryVector []float32, filterKey, filterValue string, limit uint64, scoreThreshold float32) []commonModels.SearchHit {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch(filterKey, filterValue),
		},
	}
	return db.query(ctx, collection, queryVector, filter, limit, scoreThreshold)
}

func (db *Gateway) query(ctx context.Context, collection string, queryVector []float32, filter *qdrant.Filter, limit uint64, scoreThreshold float32) []commonModels.SearchHit {
	loggr := db.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "collection", collection)

	result, err := db.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(queryVector...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(limit),
		ScoreThreshold: qdrant.PtrOf(scoreThreshold),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		loggr.Error("Search failed", "error", err)
		return []commonModels.SearchHit{}
	}

	hits := make([]commonModels.SearchHit, 0, len(result))
	for _, point := range result {
		hits = append(hits, commonModels.SearchHit{
			ID:      pointIDString(point.GetId()),
			Score:   point.GetScore(),
			Payload: payloadToMap(point.GetPayload()),
		})
	}
	loggr.Debug("Search done", "hits", len(hits))
	return hits
}

// ListAvailableFilters facets over the type payload field, capped at 100
// distinct values.
func (db *Gateway) ListAvailableFilters(ctx context.Context, collection string) []commonModels.FacetValue {
	hits, err := db.client.Facet(ctx, &qdrant.FacetCounts{
		CollectionName: collection,
		Key:            config.FacetKey,
		Limit:          qdrant.PtrOf(config.FacetLimit),
	})
	if err != nil {
		db.logger.Error("Facet query failed", "collection", collection, "error", err)
		return []commonModels.FacetValue{}
	}

	values := make([]commonModels.FacetValue, 0, len(hits))
	for _, hit := range hits {
		values = append(values, commonModels.FacetValue{
			Name:  hit.GetValue().GetStringValue(),
			Count: hit.GetCount(),
		})
	}
	return values
}

func pointIDString(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if uuid := id.GetUuid(); uuid != "" {
		return uuid
	}
	return strconv.FormatUint(id.GetNum(), 10)
}
