package ports

import (
	"context"

	"tilepuzzle/internal/domain/world"
)

// Hit is what lies under the pointer. At most one of Tile and Entity is set;
// entities sit above tiles.
type Hit struct {
	Tile   *world.Tile
	Entity *world.Entity
}

type PointerResolver interface {
	OverUI(screen world.Vec2) bool
	Resolve(screen world.Vec2) Hit
}

type ToolDisplay interface {
	ShowTool(tool world.Tool)
	EnableTool(tool world.Tool, enabled bool)
}

type Game interface {
	Reset()
	Paused() bool
}

type PlayerListener interface {
	PlayerPlaced(player *world.Entity)
}

type PickupListener interface {
	OnPickupCollectable(ctx context.Context, collectable *world.Entity)
}
