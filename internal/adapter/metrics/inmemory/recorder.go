package inmemory

import (
	"sync"

	"tilepuzzle/internal/domain/world"
)

type Snapshot struct {
	TileFlips      uint64            `json:"tile_flips"`
	Placements     map[string]uint64 `json:"placements"`
	Deletions      map[string]uint64 `json:"deletions"`
	Selections     uint64            `json:"selections"`
	Relocations    uint64            `json:"relocations"`
	MovesStarted   uint64            `json:"moves_started"`
	MovesRejected  uint64            `json:"moves_rejected"`
	MovesCompleted uint64            `json:"moves_completed"`
	Pickups        map[string]uint64 `json:"pickups"`
	PickupTotal    uint64            `json:"pickup_total"`
}

type Recorder struct {
	mu             sync.Mutex
	tileFlips      uint64
	placements     map[string]uint64
	deletions      map[string]uint64
	selections     uint64
	relocations    uint64
	movesStarted   uint64
	movesRejected  uint64
	movesCompleted uint64
	pickups        map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		placements: map[string]uint64{},
		deletions:  map[string]uint64{},
		pickups:    map[string]uint64{},
	}
}

func (r *Recorder) RecordTileFlip() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tileFlips++
}

func (r *Recorder) RecordPlacement(kind world.EntityKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placements[string(kind)]++
}

func (r *Recorder) RecordDeletion(kind world.EntityKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletions[string(kind)]++
}

func (r *Recorder) RecordSelection() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selections++
}

func (r *Recorder) RecordRelocation() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.relocations++
}

func (r *Recorder) RecordMoveStarted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movesStarted++
}

func (r *Recorder) RecordMoveRejected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movesRejected++
}

func (r *Recorder) RecordMoveCompleted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movesCompleted++
}

func (r *Recorder) RecordPickup(kind world.EntityKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pickups[string(kind)]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TileFlips:      r.tileFlips,
		Selections:     r.selections,
		Relocations:    r.relocations,
		MovesStarted:   r.movesStarted,
		MovesRejected:  r.movesRejected,
		MovesCompleted: r.movesCompleted,
		Placements:     copyCounts(r.placements),
		Deletions:      copyCounts(r.deletions),
		Pickups:        copyCounts(r.pickups),
	}
	for _, v := range r.pickups {
		out.PickupTotal += v
	}
	return out
}

func copyCounts(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
