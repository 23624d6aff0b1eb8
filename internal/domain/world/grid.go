package world

import (
	"errors"
	"fmt"
)

var ErrInvalidGrid = errors.New("invalid grid")

type GridConfig struct {
	Width        int
	Height       int
	TileWidth    int
	TileHeight   int
	Fill         TileKind
	CrumbleAfter int
}

// Grid is the in-memory tile store plus the occupancy index mapping each
// cell to at most one entity.
type Grid struct {
	cfg       GridConfig
	tiles     []Tile
	occupants []*Entity
}

func NewGrid(cfg GridConfig) (*Grid, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidGrid, cfg.Width, cfg.Height)
	}
	if cfg.TileWidth <= 0 || cfg.TileHeight <= 0 {
		return nil, fmt.Errorf("%w: tile size %dx%d", ErrInvalidGrid, cfg.TileWidth, cfg.TileHeight)
	}
	if cfg.Fill == "" {
		cfg.Fill = TileGround
	}
	g := &Grid{
		cfg:       cfg,
		tiles:     make([]Tile, cfg.Width*cfg.Height),
		occupants: make([]*Entity, cfg.Width*cfg.Height),
	}
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			g.tiles[g.index(Coord{X: x, Y: y})] = Tile{
				Coord:        Coord{X: x, Y: y},
				Kind:         cfg.Fill,
				CrumbleAfter: cfg.CrumbleAfter,
			}
		}
	}
	return g, nil
}

func (g *Grid) Width() int      { return g.cfg.Width }
func (g *Grid) Height() int     { return g.cfg.Height }
func (g *Grid) TileWidth() int  { return g.cfg.TileWidth }
func (g *Grid) TileHeight() int { return g.cfg.TileHeight }

func (g *Grid) Contains(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.cfg.Width && c.Y < g.cfg.Height
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.cfg.Width + c.X
}

func (g *Grid) TileAt(c Coord) (*Tile, bool) {
	if !g.Contains(c) {
		return nil, false
	}
	return &g.tiles[g.index(c)], true
}

func (g *Grid) EntityAt(c Coord) (*Entity, bool) {
	if !g.Contains(c) {
		return nil, false
	}
	e := g.occupants[g.index(c)]
	return e, e != nil
}

// SetEntityAt writes the occupancy index. A nil entity clears the cell;
// out-of-range coordinates are ignored.
func (g *Grid) SetEntityAt(c Coord, e *Entity) {
	if !g.Contains(c) {
		return
	}
	g.occupants[g.index(c)] = e
}

func (g *Grid) ChangeTileKind(t *Tile, kind TileKind) {
	if t == nil {
		return
	}
	tile, ok := g.TileAt(t.Coord)
	if !ok {
		return
	}
	tile.setKind(kind)
}

// Entities lists indexed entities in row-major order.
func (g *Grid) Entities() []*Entity {
	out := make([]*Entity, 0)
	for _, e := range g.occupants {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}
