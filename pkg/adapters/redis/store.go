// Package redis implements ports.SnapshotStore on Redis, with an optional
// TTL on stored snapshots and a ZSET index for listing groups.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/driftkit/sway/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store persists snapshots in Redis, one key per group.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored snapshots.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for snapshots.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store connected to the given address.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "sway:snapshot:",
		ttl:    0, // no expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(groupID string) string {
	return s.prefix + groupID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the snapshot, replacing any previous one for the group.
func (s *Store) Save(ctx context.Context, groupID string, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := s.client.Pipeline()

	pipe.Set(ctx, s.key(groupID), data, s.ttl)

	// Index score is the key's expiry, so List can prune lazily.
	// TTL 0 means no expiration; park those entries far in the future.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: groupID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	return nil
}

// Load retrieves the latest snapshot for the group.
func (s *Store) Load(ctx context.Context, groupID string) (*domain.Snapshot, error) {
	val, err := s.client.Get(ctx, s.key(groupID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snap, nil
}

// Delete removes the group's snapshot and its index entry.
func (s *Store) Delete(ctx context.Context, groupID string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(groupID))
	pipe.ZRem(ctx, s.indexKey(), groupID)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns the IDs of groups with a stored snapshot, pruning index
// entries whose keys have expired.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired snapshots: %w", err)
	}

	groups, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	return groups, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
