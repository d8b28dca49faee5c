package dedupe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ticket-triage:signature:"

// RedisRegistry stores signature entries in Redis, extending dedup scope
// across restarts and instances sharing the same Redis. SETNX provides the
// atomic check-and-insert.
type RedisRegistry struct {
	client *redis.Client
	ids    *IDGenerator
	now    func() time.Time
}

// NewRedisRegistry constructs a registry backed by the given client.
func NewRedisRegistry(client *redis.Client) *RedisRegistry {
	return &RedisRegistry{
		client: client,
		ids:    NewIDGenerator(),
		now:    time.Now,
	}
}

// FindPossibleDuplicate implements Registry.
func (r *RedisRegistry) FindPossibleDuplicate(ctx context.Context, signature string) (string, error) {
	if signature == "" {
		return "", nil
	}
	raw, err := r.client.Get(ctx, redisKeyPrefix+signature).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("registry lookup: %w", err)
	}
	stored, err := decodeStored(raw)
	if err != nil {
		return "", err
	}
	return stored.TicketID, nil
}

// RecordTicket implements Registry. A lost SETNX race reads back the winner's
// entry so both callers observe the same id.
func (r *RedisRegistry) RecordTicket(ctx context.Context, signature string) (string, error) {
	stored := StoredTicket{TicketID: r.ids.Next(), CreatedAt: r.now()}
	raw, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("registry encode: %w", err)
	}

	set, err := r.client.SetNX(ctx, redisKeyPrefix+signature, raw, 0).Result()
	if err != nil {
		return "", fmt.Errorf("registry record: %w", err)
	}
	if set {
		return stored.TicketID, nil
	}

	existing, err := r.client.Get(ctx, redisKeyPrefix+signature).Result()
	if err != nil {
		return "", fmt.Errorf("registry readback: %w", err)
	}
	prior, err := decodeStored(existing)
	if err != nil {
		return "", err
	}
	return prior.TicketID, nil
}

func decodeStored(raw string) (StoredTicket, error) {
	var stored StoredTicket
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return StoredTicket{}, fmt.Errorf("registry decode: %w", err)
	}
	return stored, nil
}
