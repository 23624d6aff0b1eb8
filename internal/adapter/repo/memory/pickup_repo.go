package memory

import (
	"context"

	"tilepuzzle/internal/app/ports"
)

type PickupRepo struct {
	store *Store
}

func NewPickupRepo(store *Store) PickupRepo {
	return PickupRepo{store: store}
}

func (r PickupRepo) Append(_ context.Context, record ports.PickupRecord) error {
	for _, existing := range r.store.pickups[record.SessionID] {
		if existing.CollectableID == record.CollectableID {
			return ports.ErrConflict
		}
	}
	r.store.pickups[record.SessionID] = append(r.store.pickups[record.SessionID], record)
	return nil
}

// ListBySession returns the newest pickups first.
func (r PickupRepo) ListBySession(_ context.Context, sessionID string, limit int) ([]ports.PickupRecord, error) {
	rows := r.store.pickups[sessionID]
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}
	n := len(rows)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]ports.PickupRecord, 0, n)
	for i := len(rows) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, rows[i])
	}
	return out, nil
}
