package motion

import (
	"context"
	"math"
	"testing"
	"time"

	"tilepuzzle/internal/adapter/metrics/inmemory"
	"tilepuzzle/internal/domain/world"
)

type recordingPickups struct {
	grid    *world.Grid
	collect bool
	got     []*world.Entity
}

func (r *recordingPickups) OnPickupCollectable(_ context.Context, e *world.Entity) {
	r.got = append(r.got, e)
	if r.collect {
		r.grid.SetEntityAt(e.Position, nil)
		e.Remove()
	}
}

func newGrid(t *testing.T, cfg world.GridConfig) *world.Grid {
	t.Helper()
	if cfg.TileWidth == 0 {
		cfg.TileWidth, cfg.TileHeight = 32, 32
	}
	g, err := world.NewGrid(cfg)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	return g
}

func place(t *testing.T, g *world.Grid, kind world.EntityKind, at world.Coord) *world.Entity {
	t.Helper()
	e, err := world.NewEntity(kind, at)
	if err != nil {
		t.Fatalf("new entity: %v", err)
	}
	g.SetEntityAt(at, e)
	return e
}

func newPlayer(t *testing.T, g *world.Grid, at world.Coord, pickups *recordingPickups, metrics *inmemory.Recorder) (*world.Entity, *Controller) {
	t.Helper()
	p := place(t, g, world.EntityPlayer, at)
	cfg := Config{
		Grid:   g,
		Layout: world.NewLayout(g.TileWidth(), g.TileHeight(), world.DefaultOriginY),
	}
	if pickups != nil {
		cfg.Pickups = pickups
	}
	if metrics != nil {
		cfg.Metrics = metrics
	}
	return p, NewController(p, cfg)
}

func runFrames(c *Controller, n int, dt time.Duration) Status {
	status := StatusIdle
	for i := 0; i < n; i++ {
		status = c.Advance(context.Background(), dt)
	}
	return status
}

func TestMoveTo_CompletesAfterFullDuration(t *testing.T) {
	g := newGrid(t, world.GridConfig{Width: 4, Height: 1})
	p, c := newPlayer(t, g, world.Coord{X: 0, Y: 0}, nil, nil)

	if !c.MoveTo(world.Coord{X: 3, Y: 0}, time.Second) {
		t.Fatalf("expected move to start")
	}
	if status := runFrames(c, 9, 100*time.Millisecond); status != StatusInProgress {
		t.Fatalf("expected in progress after 0.9s, got %s", status)
	}
	if _, ok := g.EntityAt(world.Coord{X: 0, Y: 0}); ok {
		t.Fatalf("expected start cell vacated during flight")
	}
	if _, ok := g.EntityAt(world.Coord{X: 3, Y: 0}); ok {
		t.Fatalf("expected target cell empty during flight")
	}

	if status := runFrames(c, 1, 100*time.Millisecond); status != StatusDone {
		t.Fatalf("expected done after 1.0s, got %s", status)
	}
	if p.Position != (world.Coord{X: 3, Y: 0}) {
		t.Fatalf("expected logical position (3,0), got %v", p.Position)
	}
	if got, ok := g.EntityAt(world.Coord{X: 3, Y: 0}); !ok || got != p {
		t.Fatalf("expected player indexed at (3,0)")
	}
	if _, ok := g.EntityAt(world.Coord{X: 0, Y: 0}); ok {
		t.Fatalf("expected (0,0) empty after move")
	}
	if c.Moving() {
		t.Fatalf("expected motion flag cleared")
	}
	if status := c.Advance(context.Background(), time.Second); status != StatusIdle {
		t.Fatalf("expected idle after completion, got %s", status)
	}
}

func TestMoveTo_RejectsWhileMoving(t *testing.T) {
	g := newGrid(t, world.GridConfig{Width: 5, Height: 5})
	metrics := inmemory.NewRecorder()
	_, c := newPlayer(t, g, world.Coord{X: 0, Y: 0}, nil, metrics)

	c.MoveTo(world.Coord{X: 3, Y: 0}, time.Second)
	runFrames(c, 3, 100*time.Millisecond)
	before, _ := c.Task()

	if c.MoveTo(world.Coord{X: 0, Y: 4}, 5*time.Second) {
		t.Fatalf("expected second move rejected")
	}
	after, ok := c.Task()
	if !ok {
		t.Fatalf("expected first task still active")
	}
	if after != before {
		t.Fatalf("expected task untouched, before=%+v after=%+v", before, after)
	}
	if after.To != (world.Coord{X: 3, Y: 0}) {
		t.Fatalf("expected target (3,0), got %v", after.To)
	}
	if s := metrics.Snapshot(); s.MovesStarted != 1 || s.MovesRejected != 1 {
		t.Fatalf("unexpected move counters: %+v", s)
	}
}

func TestMoveTo_SameCellIsNoOp(t *testing.T) {
	g := newGrid(t, world.GridConfig{Width: 2, Height: 2})
	p, c := newPlayer(t, g, world.Coord{X: 1, Y: 1}, nil, nil)

	if c.MoveTo(world.Coord{X: 1, Y: 1}, time.Second) {
		t.Fatalf("expected same-cell move ignored")
	}
	if c.Moving() {
		t.Fatalf("expected no task")
	}
	if got, ok := g.EntityAt(p.Position); !ok || got != p {
		t.Fatalf("expected player still indexed")
	}
}

func TestMoveTo_RejectsTargetOffGrid(t *testing.T) {
	g := newGrid(t, world.GridConfig{Width: 2, Height: 2})
	_, c := newPlayer(t, g, world.Coord{X: 0, Y: 0}, nil, nil)
	if c.MoveTo(world.Coord{X: 5, Y: 0}, time.Second) {
		t.Fatalf("expected off-grid move rejected")
	}
	if _, ok := g.EntityAt(world.Coord{X: 0, Y: 0}); !ok {
		t.Fatalf("expected player still indexed after rejected move")
	}
}

func TestMoveTo_RejectsTargetHeldByObstacle(t *testing.T) {
	g := newGrid(t, world.GridConfig{Width: 3, Height: 1})
	metrics := inmemory.NewRecorder()
	_, c := newPlayer(t, g, world.Coord{X: 0, Y: 0}, nil, metrics)
	rock := place(t, g, world.EntityObstacle, world.Coord{X: 2, Y: 0})
	place(t, g, world.EntityStar, world.Coord{X: 1, Y: 0})

	if c.MoveTo(world.Coord{X: 2, Y: 0}, time.Second) {
		t.Fatalf("expected move onto an obstacle rejected")
	}
	if got, _ := g.EntityAt(rock.Position); got != rock {
		t.Fatalf("expected obstacle kept in the index")
	}
	if !c.MoveTo(world.Coord{X: 1, Y: 0}, time.Second) {
		t.Fatalf("expected move onto a collectable accepted")
	}
	if snap := metrics.Snapshot(); snap.MovesRejected != 1 || snap.MovesStarted != 1 {
		t.Fatalf("unexpected metrics: %+v", snap)
	}
}

func TestAdvance_ProbeBehindFirstTileDoesNotHighlightIt(t *testing.T) {
	g := newGrid(t, world.GridConfig{Width: 2, Height: 1})
	_, c := newPlayer(t, g, world.Coord{X: 0, Y: 0}, nil, nil)

	c.MoveTo(world.Coord{X: 1, Y: 0}, time.Second)
	runFrames(c, 1, 800*time.Millisecond)
	tile, _ := g.TileAt(world.Coord{X: 0, Y: 0})
	if tile.Wear != 0 {
		t.Fatalf("expected probe at x<0 ignored, got wear %d", tile.Wear)
	}
}

func TestAdvance_HighlightsEachCrossedTileOnce(t *testing.T) {
	g := newGrid(t, world.GridConfig{Width: 4, Height: 1})
	_, c := newPlayer(t, g, world.Coord{X: 0, Y: 0}, nil, nil)

	c.MoveTo(world.Coord{X: 3, Y: 0}, time.Second)
	runFrames(c, 200, 16*time.Millisecond)

	want := []int{1, 1, 1, 0}
	for x, w := range want {
		tile, _ := g.TileAt(world.Coord{X: x, Y: 0})
		if tile.Wear != w {
			t.Fatalf("tile %d: expected wear %d, got %d", x, w, tile.Wear)
		}
	}
}

func TestAdvance_CrumblesTraversedGround(t *testing.T) {
	g := newGrid(t, world.GridConfig{Width: 4, Height: 1, CrumbleAfter: 1})
	_, c := newPlayer(t, g, world.Coord{X: 0, Y: 0}, nil, nil)

	c.MoveTo(world.Coord{X: 3, Y: 0}, time.Second)
	runFrames(c, 100, 16*time.Millisecond)

	for x := 0; x < 3; x++ {
		tile, _ := g.TileAt(world.Coord{X: x, Y: 0})
		if tile.IsWalkable() {
			t.Fatalf("tile %d: expected crumbled after traversal", x)
		}
	}
	tile, _ := g.TileAt(world.Coord{X: 3, Y: 0})
	if !tile.IsWalkable() {
		t.Fatalf("expected destination tile intact")
	}
}

func TestAdvance_SkipsNonGroundHighlight(t *testing.T) {
	g := newGrid(t, world.GridConfig{Width: 3, Height: 1})
	water, _ := g.TileAt(world.Coord{X: 1, Y: 0})
	g.ChangeTileKind(water, world.TileWater)
	p, c := newPlayer(t, g, world.Coord{X: 0, Y: 0}, nil, nil)

	c.MoveTo(world.Coord{X: 2, Y: 0}, time.Second)
	for i := 0; i < 100 && c.Moving(); i++ {
		c.Advance(context.Background(), 16*time.Millisecond)
		if p.Position == (world.Coord{X: 1, Y: 0}) {
			break
		}
	}
	if p.Position != (world.Coord{X: 1, Y: 0}) {
		t.Fatalf("expected logical position to pass the water tile, got %v", p.Position)
	}
	if water.Wear != 0 {
		t.Fatalf("expected water tile untouched, got wear %d", water.Wear)
	}
}

func TestAdvance_PicksUpCollectableOnPath(t *testing.T) {
	g := newGrid(t, world.GridConfig{Width: 5, Height: 1})
	pickups := &recordingPickups{grid: g, collect: true}
	_, c := newPlayer(t, g, world.Coord{X: 0, Y: 0}, pickups, nil)
	star := place(t, g, world.EntityStar, world.Coord{X: 2, Y: 0})

	c.MoveTo(world.Coord{X: 4, Y: 0}, time.Second)
	picked := false
	for i := 0; i < 100 && c.Moving(); i++ {
		c.Advance(context.Background(), 16*time.Millisecond)
		if !picked && len(pickups.got) > 0 {
			picked = true
			if _, ok := g.EntityAt(star.Position); ok {
				t.Fatalf("expected star absent from grid right after pickup")
			}
		}
	}
	if len(pickups.got) != 1 || pickups.got[0] != star {
		t.Fatalf("expected exactly one star pickup, got %d", len(pickups.got))
	}
}

func TestAdvance_PickupRaisedEveryFrameWhileCollectableRemains(t *testing.T) {
	g := newGrid(t, world.GridConfig{Width: 3, Height: 1})
	pickups := &recordingPickups{grid: g}
	_, c := newPlayer(t, g, world.Coord{X: 0, Y: 0}, pickups, nil)
	place(t, g, world.EntityItem, world.Coord{X: 1, Y: 0})

	c.MoveTo(world.Coord{X: 2, Y: 0}, time.Second)
	runFrames(c, 100, 16*time.Millisecond)
	if len(pickups.got) < 2 {
		t.Fatalf("expected repeated pickups without collector removal, got %d", len(pickups.got))
	}
}

func TestAdvance_ScalesVerticalAxisByTileAspect(t *testing.T) {
	g := newGrid(t, world.GridConfig{Width: 1, Height: 3, TileWidth: 64, TileHeight: 32})
	p, c := newPlayer(t, g, world.Coord{X: 0, Y: 0}, nil, nil)

	c.MoveTo(world.Coord{X: 0, Y: 2}, 500*time.Millisecond)
	runFrames(c, 1, 250*time.Millisecond)
	if got := p.RenderPos.Y; math.Abs(got-(world.DefaultOriginY+0.5)) > 1e-9 {
		t.Fatalf("expected eased midpoint y=0.9, got %v", got)
	}
	runFrames(c, 1, 250*time.Millisecond)
	if got := p.RenderPos.Y; math.Abs(got-(world.DefaultOriginY+1.0)) > 1e-9 {
		t.Fatalf("expected final y=1.4, got %v", got)
	}
}

func TestAdvance_EasesWithSmoothStep(t *testing.T) {
	g := newGrid(t, world.GridConfig{Width: 5, Height: 1})
	p, c := newPlayer(t, g, world.Coord{X: 0, Y: 0}, nil, nil)

	c.MoveTo(world.Coord{X: 4, Y: 0}, time.Second)
	runFrames(c, 1, 250*time.Millisecond)
	if got, want := p.RenderPos.X, 4*world.SmoothStep(0.25); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected x=%v, got %v", want, got)
	}
}

func TestAdvance_ZeroDurationCompletesImmediately(t *testing.T) {
	g := newGrid(t, world.GridConfig{Width: 3, Height: 1})
	p, c := newPlayer(t, g, world.Coord{X: 0, Y: 0}, nil, nil)
	c.MoveTo(world.Coord{X: 2, Y: 0}, 0)
	if status := c.Advance(context.Background(), 16*time.Millisecond); status != StatusDone {
		t.Fatalf("expected done, got %s", status)
	}
	if p.Position != (world.Coord{X: 2, Y: 0}) {
		t.Fatalf("expected (2,0), got %v", p.Position)
	}
}

func TestFinish_SnapsToTarget(t *testing.T) {
	g := newGrid(t, world.GridConfig{Width: 4, Height: 4})
	p, c := newPlayer(t, g, world.Coord{X: 0, Y: 0}, nil, nil)
	c.MoveTo(world.Coord{X: 3, Y: 3}, time.Second)
	runFrames(c, 2, 100*time.Millisecond)

	c.Finish()
	if c.Moving() {
		t.Fatalf("expected task finished")
	}
	if got, ok := g.EntityAt(world.Coord{X: 3, Y: 3}); !ok || got != p {
		t.Fatalf("expected player indexed at target")
	}
}
