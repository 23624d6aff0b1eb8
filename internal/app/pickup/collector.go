package pickup

import (
	"context"
	"time"

	"tilepuzzle/internal/app/ports"
	"tilepuzzle/internal/domain/world"
	"tilepuzzle/internal/logger"
)

// Collector is the scoring listener for pickup events: the collectable
// leaves the grid and the pickup lands in the session ledger.
type Collector struct {
	SessionID string
	Grid      ports.Grid
	TxManager ports.TxManager
	Pickups   ports.PickupRepository
	Scores    ports.ScoreRepository
	Logger    logger.Logger
	Now       func() time.Time
}

func (c Collector) OnPickupCollectable(ctx context.Context, e *world.Entity) {
	if e == nil || e.Removed() || !e.IsCollectable() {
		return
	}
	if occupant, ok := c.Grid.EntityAt(e.Position); ok && occupant == e {
		c.Grid.SetEntityAt(e.Position, nil)
	}
	e.Remove()

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	record := ports.PickupRecord{
		SessionID:     c.SessionID,
		CollectableID: e.ID.String(),
		Kind:          e.Kind,
		X:             e.Position.X,
		Y:             e.Position.Y,
		PickedAt:      now(),
	}
	err := c.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := c.Pickups.Append(ctx, record); err != nil {
			return err
		}
		return c.Scores.Add(ctx, c.SessionID, record.Kind, record.PickedAt)
	})

	l := c.Logger
	if l == nil {
		l = logger.NewNop()
	}
	if err != nil {
		l.Error("record pickup", logger.F("collectable_id", record.CollectableID), logger.F("err", err))
		return
	}
	l.Info("collectable picked up",
		logger.F("session_id", c.SessionID),
		logger.F("kind", string(record.Kind)),
		logger.F("at", e.Position),
	)
}
