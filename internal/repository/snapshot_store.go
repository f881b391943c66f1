package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"checkels_casino/internal/domain"

	redis "github.com/redis/go-redis/v9"
)

// SnapshotStore caches the per-user tree session snapshot. It is a
// best-effort cache, never authoritative: a failed save is tolerable and a
// missing or unreadable snapshot reconciles from the last claim instead.
type SnapshotStore interface {
	Save(ctx context.Context, userID int64, snap domain.TreeSessionSnapshot) error
	Load(ctx context.Context, userID int64) (*domain.TreeSessionSnapshot, error)
	Clear(ctx context.Context, userID int64) error
}

// snapshotTTL keeps abandoned snapshots from accumulating. Reconciliation
// caps accrual by session age anyway, so expiry loses nothing.
const snapshotTTL = 30 * 24 * time.Hour

// RedisSnapshotStore keeps snapshots in Redis under tree:snap:<userID>.
type RedisSnapshotStore struct {
	client *redis.Client
}

func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client}
}

func snapshotKey(userID int64) string {
	return "tree:snap:" + strconv.FormatInt(userID, 10)
}

func (s *RedisSnapshotStore) Save(ctx context.Context, userID int64, snap domain.TreeSessionSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, snapshotKey(userID), data, snapshotTTL).Err()
}

func (s *RedisSnapshotStore) Load(ctx context.Context, userID int64) (*domain.TreeSessionSnapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return decodeSnapshot(data), nil
}

func (s *RedisSnapshotStore) Clear(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, snapshotKey(userID)).Err()
}

// decodeSnapshot treats an unparseable payload as no snapshot at all, so a
// corrupted cache entry degrades to a fresh session instead of an error.
func decodeSnapshot(data []byte) *domain.TreeSessionSnapshot {
	var snap domain.TreeSessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil
	}
	if snap.SessionStart.IsZero() {
		return nil
	}
	return &snap
}

// MemorySnapshotStore is the in-process fallback used when Redis is not
// configured, and in tests.
type MemorySnapshotStore struct {
	mu    sync.RWMutex
	snaps map[int64]domain.TreeSessionSnapshot
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{snaps: make(map[int64]domain.TreeSessionSnapshot)}
}

func (s *MemorySnapshotStore) Save(ctx context.Context, userID int64, snap domain.TreeSessionSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[userID] = snap
	return nil
}

func (s *MemorySnapshotStore) Load(ctx context.Context, userID int64) (*domain.TreeSessionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[userID]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (s *MemorySnapshotStore) Clear(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, userID)
	return nil
}
