package session

import (
	"context"
	"fmt"
	"time"

	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/internal/repository/specification"
	"knowledge-assistant-be/internal/repository/unitofwork"

	"github.com/redis/go-redis/v9"
)

const keyTTL = 24 * time.Hour

// Sequencer hands out the next message index of a session.
// Redis INCR keeps concurrent turns of one session distinct; without redis
// the index is the number of records already persisted.
type Sequencer struct {
	rdb    redis.Cmdable
	logger logger.ILogger
}

// NewSequencer accepts a nil client, in which case only the count fallback is used
func NewSequencer(rdb redis.Cmdable, log logger.ILogger) *Sequencer {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Sequencer{rdb: rdb, logger: log}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("rag:session:%s:idx", sessionID)
}

// Next returns the zero-based index for the next record of sessionID
func (s *Sequencer) Next(ctx context.Context, uow unitofwork.UnitOfWork, sessionID string) (int, error) {
	if s.rdb != nil {
		idx, err := s.nextFromRedis(ctx, uow, sessionID)
		if err == nil {
			return idx, nil
		}
		s.logger.Warn("SESSION", "Redis sequencer unavailable, counting persisted records", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	return s.countPersisted(ctx, uow, sessionID)
}

// The key holds how many indices were handed out. A missing key is seeded with
// the persisted count through SETNX, so concurrent first turns agree on one seed.
func (s *Sequencer) nextFromRedis(ctx context.Context, uow unitofwork.UnitOfWork, sessionID string) (int, error) {
	key := sessionKey(sessionID)

	exists, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		persisted, err := s.countPersisted(ctx, uow, sessionID)
		if err != nil {
			return 0, err
		}
		if err := s.rdb.SetNX(ctx, key, persisted, keyTTL).Err(); err != nil {
			return 0, err
		}
	}

	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if err := s.rdb.Expire(ctx, key, keyTTL).Err(); err != nil {
		s.logger.Warn("SESSION", "Failed to refresh sequence TTL", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	return int(n - 1), nil
}

func (s *Sequencer) countPersisted(ctx context.Context, uow unitofwork.UnitOfWork, sessionID string) (int, error) {
	count, err := uow.RagConversationRepository().Count(ctx, specification.BySessionID{SessionID: sessionID})
	if err != nil {
		return 0, fmt.Errorf("failed to count session records: %w", err)
	}
	return int(count), nil
}
