package world

type TileKind string

const (
	TileGround TileKind = "GROUND"
	TileWater  TileKind = "WATER"
	TileWall   TileKind = "WALL"
)

// Inverted is the kind a paint gesture applies when it starts on a tile of
// kind k. Water flips to ground; every other kind paints water.
func (k TileKind) Inverted() TileKind {
	if k == TileWater {
		return TileGround
	}
	return TileWater
}

type Tile struct {
	Coord        Coord
	Kind         TileKind
	Wear         int
	Broken       bool
	CrumbleAfter int
}

func (t *Tile) IsWalkable() bool {
	return t.Kind == TileGround && !t.Broken
}

func (t *Tile) IsGround() bool {
	return t.Kind == TileGround
}

// RefreshSupportState records one traversal of a ground tile. Once wear
// reaches CrumbleAfter the tile breaks and stops being walkable.
func (t *Tile) RefreshSupportState() {
	if !t.IsGround() {
		return
	}
	t.Wear++
	if t.CrumbleAfter > 0 && t.Wear >= t.CrumbleAfter {
		t.Broken = true
	}
}

func (t *Tile) setKind(kind TileKind) {
	t.Kind = kind
	t.Wear = 0
	t.Broken = false
}
