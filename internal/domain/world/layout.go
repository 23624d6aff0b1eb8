package world

import "math"

// DefaultOriginY lifts entities slightly above their tile's baseline.
const DefaultOriginY = 0.4

// Layout maps grid coordinates to the continuous plane entities move in.
// The vertical axis is scaled by tileHeight/tileWidth so diagonal motion
// keeps a consistent visual speed on non-square tiles.
type Layout struct {
	Aspect  float64
	OriginY float64
}

func NewLayout(tileWidth, tileHeight int, originY float64) Layout {
	aspect := 1.0
	if tileWidth > 0 && tileHeight > 0 {
		aspect = float64(tileHeight) / float64(tileWidth)
	}
	return Layout{Aspect: aspect, OriginY: originY}
}

func (l Layout) CellCenter(c Coord) Vec2 {
	return Vec2{X: float64(c.X), Y: l.OriginY + float64(c.Y)*l.Aspect}
}

// GridPos converts a continuous point to fractional grid units, so cell
// (x,y) sits exactly at {x, y}.
func (l Layout) GridPos(p Vec2) Vec2 {
	aspect := l.Aspect
	if aspect == 0 {
		aspect = 1
	}
	return Vec2{X: p.X, Y: (p.Y - l.OriginY) / aspect}
}

// CoordAt resolves a continuous point to the nearest cell. The result may
// lie outside any grid; callers check bounds.
func (l Layout) CoordAt(p Vec2) Coord {
	g := l.GridPos(p)
	return Coord{
		X: int(math.Floor(g.X + 0.5)),
		Y: int(math.Floor(g.Y + 0.5)),
	}
}
