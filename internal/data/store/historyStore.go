package store

import (
	"context"
	"encoding/json"

	"github.com/manotham-cc/RAG-Orchestrator/internal/config"
	"github.com/manotham-cc/RAG-Orchestrator/internal/data/redisStore"
	"github.com/manotham-cc/RAG-Orchestrator/internal/domain/commonModels"
	"github.com/manotham-cc/RAG-Orchestrator/pkg/logger_i"
)

// HistoryStore keeps a rolling log of completed ingestions in redis. The log
// is bounded to the newest HistoryMaxLength entries and expires whole after
// RedisHistoryTTL of inactivity.
type HistoryStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetHistoryStore(ctx context.Context) *HistoryStore {
	backing := redisStore.GetRedisStore(ctx, config.RedisHistoryStore)
	if backing == nil {
		return nil
	}
	return &HistoryStore{
		store:  backing,
		logger: logger_i.NewLogger("HistoryStore"),
	}
}

func NewTestHistoryStore(store *redisStore.Store) *HistoryStore {
	return &HistoryStore{
		store:  store,
		logger: logger_i.NewLogger("HistoryStore"),
	}
}

func (s *HistoryStore) Record(ctx context.Context, record commonModels.IngestionRecord) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "filename", record.Filename)

	data, err := json.Marshal(record)
	if err != nil {
		log.Error("Error marshalling ingestion record", "error", err)
		return err
	}

	if err := s.store.ListPush(ctx, config.HistoryListKey, data); err != nil {
		log.Error("Error saving ingestion record", "error", err)
		return err
	}
	if err := s.store.ListTrim(ctx, config.HistoryListKey, config.HistoryMaxLength); err != nil {
		log.Error("Error trimming ingestion history", "error", err)
	}
	if err := s.store.Expire(ctx, config.HistoryListKey, config.RedisHistoryTTL); err != nil {
		log.Error("Error refreshing history expiry", "error", err)
	}
	log.Debug("Recorded ingestion")
	return nil
}

// Recent returns the stored ingestions, newest first. Entries that fail to
// decode are skipped rather than failing the whole read.
func (s *HistoryStore) Recent(ctx context.Context) ([]commonModels.IngestionRecord, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	raw, err := s.store.ListGetAll(ctx, config.HistoryListKey)
	if err != nil && !s.store.IsNil(err) {
		log.Error("Error reading ingestion history", "error", err)
		return nil, err
	}

	records := make([]commonModels.IngestionRecord, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var record commonModels.IngestionRecord
		if err := json.Unmarshal([]byte(raw[i]), &record); err != nil {
			log.Error("Skipping undecodable history entry", "error", err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
