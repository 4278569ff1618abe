package session

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const mirrorTTL = 24 * time.Hour

// RedisMirror дублирует живые сессии в redis для внешнего наблюдения.
// Это учет, а не источник истины: любая ошибка логируется и игнорируется.
type RedisMirror struct {
	rdb *redis.Client
}

func NewRedisMirror(rdb *redis.Client) *RedisMirror {
	return &RedisMirror{rdb: rdb}
}

func (m *RedisMirror) Save(ctx context.Context, s Session) {
	if m == nil || m.rdb == nil {
		return
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Failed to marshal session %s: %v", s.ConnID, err)
		return
	}

	if err := m.rdb.Set(ctx, mirrorKey(s.ConnID), data, mirrorTTL).Err(); err != nil {
		log.Printf("Failed to mirror session %s: %v", s.ConnID, err)
	}
}

func (m *RedisMirror) Delete(ctx context.Context, connID uuid.UUID) {
	if m == nil || m.rdb == nil {
		return
	}

	if err := m.rdb.Del(ctx, mirrorKey(connID)).Err(); err != nil {
		log.Printf("Failed to delete session mirror %s: %v", connID, err)
	}
}

func mirrorKey(connID uuid.UUID) string {
	return "session:" + connID.String()
}
