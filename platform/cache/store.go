package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/gomodule/redigo/redis"
)

// ErrMiss is returned when a session has nothing cached.
var ErrMiss = errors.New("cache: miss")

// Store keeps the latest snapshot of each session in redis under
// <id>.snapshot.
type Store struct {
	pool Pool
}

func NewStore(pool Pool) *Store {
	return &Store{pool: pool}
}

func snapshotKey(id string) string { return fmt.Sprintf("%s.snapshot", id) }

// Save writes snap under id, replacing what was there.
func (s *Store) Save(id string, snap engine.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cache: encode snapshot %s: %w", id, err)
	}
	conn := s.pool.Get()
	defer conn.Close()
	if err := Set(conn, snapshotKey(id), data); err != nil {
		return fmt.Errorf("cache: save snapshot %s: %w", id, err)
	}
	return nil
}

// Snapshot returns the JSON snapshot cached for id.
func (s *Store) Snapshot(id string) ([]byte, error) {
	conn := s.pool.Get()
	defer conn.Close()
	data, err := GetBytes(conn, snapshotKey(id))
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrMiss
	}
	return data, err
}

// Retire keeps the final snapshot of a finished session for keep, then lets
// redis drop it. A zero keep deletes it now.
func (s *Store) Retire(id string, keep time.Duration) error {
	conn := s.pool.Get()
	defer conn.Close()
	if keep <= 0 {
		return Del(conn, snapshotKey(id))
	}
	return Expire(conn, snapshotKey(id), int(keep/time.Second))
}
