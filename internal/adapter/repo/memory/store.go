package memory

import (
	"sync"

	"tilepuzzle/internal/app/ports"
)

type Store struct {
	mu      sync.Mutex
	pickups map[string][]ports.PickupRecord
	scores  map[string]ports.Score
}

func NewStore() *Store {
	return &Store{
		pickups: make(map[string][]ports.PickupRecord),
		scores:  make(map[string]ports.Score),
	}
}

type storeSnapshot struct {
	pickups map[string][]ports.PickupRecord
	scores  map[string]ports.Score
}

func (s *Store) snapshot() storeSnapshot {
	out := storeSnapshot{
		pickups: make(map[string][]ports.PickupRecord, len(s.pickups)),
		scores:  make(map[string]ports.Score, len(s.scores)),
	}
	for k, v := range s.pickups {
		out.pickups[k] = append([]ports.PickupRecord(nil), v...)
	}
	for k, v := range s.scores {
		out.scores[k] = v
	}
	return out
}

func (s *Store) restore(snap storeSnapshot) {
	s.pickups = snap.pickups
	s.scores = snap.scores
}
