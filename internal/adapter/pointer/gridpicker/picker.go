package gridpicker

import (
	"tilepuzzle/internal/app/ports"
	"tilepuzzle/internal/domain/world"
)

type Rect struct {
	Min world.Vec2 `yaml:"min"`
	Max world.Vec2 `yaml:"max"`
}

func (r Rect) Contains(p world.Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Picker resolves screen points against the grid through a fixed camera:
// world = (screen - Offset) / PixelsPerUnit.
type Picker struct {
	Grid          ports.Grid
	Layout        world.Layout
	Offset        world.Vec2
	PixelsPerUnit float64
	UI            []Rect
}

func New(grid ports.Grid, layout world.Layout) *Picker {
	return &Picker{
		Grid:          grid,
		Layout:        layout,
		PixelsPerUnit: float64(grid.TileWidth()),
	}
}

func (p *Picker) ScreenToWorld(screen world.Vec2) world.Vec2 {
	ppu := p.PixelsPerUnit
	if ppu <= 0 {
		ppu = 1
	}
	return screen.Sub(p.Offset).Scale(1 / ppu)
}

// ScreenOf is the screen point at the centre of cell c.
func (p *Picker) ScreenOf(c world.Coord) world.Vec2 {
	ppu := p.PixelsPerUnit
	if ppu <= 0 {
		ppu = 1
	}
	return p.Layout.CellCenter(c).Scale(ppu).Add(p.Offset)
}

func (p *Picker) OverUI(screen world.Vec2) bool {
	for _, r := range p.UI {
		if r.Contains(screen) {
			return true
		}
	}
	return false
}

func (p *Picker) Resolve(screen world.Vec2) ports.Hit {
	coord := p.Layout.CoordAt(p.ScreenToWorld(screen))
	if e, ok := p.Grid.EntityAt(coord); ok {
		return ports.Hit{Entity: e}
	}
	if t, ok := p.Grid.TileAt(coord); ok {
		return ports.Hit{Tile: t}
	}
	return ports.Hit{}
}
