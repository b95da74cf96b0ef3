package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wordly-app/backend/internal/domain"
)

// pendingKeyPrefix matches the key format consumed by the rest of the
// deployment's tooling; do not change without migrating live keys.
const pendingKeyPrefix = "user:register:"

// pendingRecordVersion is bumped whenever the stored shape changes so stale
// entries fail decoding loudly instead of misparsing.
const pendingRecordVersion = 1

// pendingRecord is the on-the-wire envelope for a pending registration.
type pendingRecord struct {
	Version int                        `json:"v"`
	Pending domain.PendingRegistration `json:"pending"`
}

// PendingStore holds not-yet-verified registrations in Redis, keyed by email,
// with a TTL. Every Save overwrites the previous entry for that email and
// resets the TTL, which is exactly the resend semantics the flow needs.
type PendingStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPendingStore(client *redis.Client, ttl time.Duration) *PendingStore {
	return &PendingStore{client: client, ttl: ttl}
}

func key(email string) string {
	return pendingKeyPrefix + email
}

func (s *PendingStore) Save(ctx context.Context, email string, p *domain.PendingRegistration) error {
	data, err := json.Marshal(pendingRecord{Version: pendingRecordVersion, Pending: *p})
	if err != nil {
		return fmt.Errorf("encode pending registration: %w", err)
	}
	if err := s.client.Set(ctx, key(email), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store pending registration: %w", err)
	}
	return nil
}

// Get returns the live pending registration for email, or ErrNotFound when
// none exists or the entry has expired.
func (s *PendingStore) Get(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	data, err := s.client.Get(ctx, key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("pending registration for %s: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("load pending registration: %w", err)
	}
	var rec pendingRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode pending registration: %w", err)
	}
	if rec.Version != pendingRecordVersion {
		return nil, fmt.Errorf("pending registration record version %d, want %d", rec.Version, pendingRecordVersion)
	}
	return &rec.Pending, nil
}

func (s *PendingStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, key(email)).Err()
}
