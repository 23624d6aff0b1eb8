package ports

import "tilepuzzle/internal/domain/world"

type InteractionMetrics interface {
	RecordTileFlip()
	RecordPlacement(kind world.EntityKind)
	RecordDeletion(kind world.EntityKind)
	RecordSelection()
	RecordRelocation()
}

type MotionMetrics interface {
	RecordMoveStarted()
	RecordMoveRejected()
	RecordMoveCompleted()
	RecordPickup(kind world.EntityKind)
}
