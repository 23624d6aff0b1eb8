package ports

import (
	"context"
	"time"

	"tilepuzzle/internal/domain/world"
)

type PickupRecord struct {
	SessionID     string
	CollectableID string
	Kind          world.EntityKind
	X             int
	Y             int
	PickedAt      time.Time
}

type Score struct {
	SessionID string
	Stars     int
	Items     int
	UpdatedAt time.Time
}

type PickupRepository interface {
	Append(ctx context.Context, record PickupRecord) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]PickupRecord, error)
}

type ScoreRepository interface {
	GetBySession(ctx context.Context, sessionID string) (Score, error)
	Add(ctx context.Context, sessionID string, kind world.EntityKind, at time.Time) error
}
