package ports

import "tilepuzzle/internal/domain/world"

// Grid is the tile store and occupancy index both controllers share.
type Grid interface {
	TileAt(c world.Coord) (*world.Tile, bool)
	EntityAt(c world.Coord) (*world.Entity, bool)
	SetEntityAt(c world.Coord, e *world.Entity)
	ChangeTileKind(t *world.Tile, kind world.TileKind)
	Width() int
	Height() int
	TileWidth() int
	TileHeight() int
}

var _ Grid = (*world.Grid)(nil)
