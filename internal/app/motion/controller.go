package motion

import (
	"context"
	"time"

	"tilepuzzle/internal/app/ports"
	"tilepuzzle/internal/domain/world"
	"tilepuzzle/internal/logger"
)

type Status int

const (
	StatusIdle Status = iota
	StatusInProgress
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusDone:
		return "done"
	default:
		return "idle"
	}
}

const (
	// probeDistance is how far behind the entity, along the travel
	// direction, the highlight step samples the grid.
	probeDistance = 1.0
	// ratios within this distance of 1 complete the task; summed frame
	// deltas rarely land on exactly 1.
	completionEpsilon = 1e-9
)

type Config struct {
	Grid    ports.Grid
	Layout  world.Layout
	Pickups ports.PickupListener
	Metrics ports.MotionMetrics
	Logger  logger.Logger
}

// TaskState is a snapshot of an in-flight motion task.
type TaskState struct {
	From     world.Coord
	To       world.Coord
	Ratio    float64
	Duration time.Duration
}

type task struct {
	TaskState
	start         world.Vec2
	end           world.Vec2
	dir           world.Vec2
	lastHighlight world.Coord
}

// Controller moves a single entity between two cells, one Advance per frame.
type Controller struct {
	entity  *world.Entity
	grid    ports.Grid
	layout  world.Layout
	pickups ports.PickupListener
	metrics ports.MotionMetrics
	log     logger.Logger
	task    *task
}

func NewController(entity *world.Entity, cfg Config) *Controller {
	l := cfg.Logger
	if l == nil {
		l = logger.NewNop()
	}
	c := &Controller{
		entity:  entity,
		grid:    cfg.Grid,
		layout:  cfg.Layout,
		pickups: cfg.Pickups,
		metrics: cfg.Metrics,
		log:     l.With(logger.F("entity_id", entity.ID)),
	}
	entity.RenderPos = c.layout.CellCenter(entity.Position)
	return c
}

func (c *Controller) Entity() *world.Entity { return c.entity }

func (c *Controller) Moving() bool { return c.task != nil }

func (c *Controller) Task() (TaskState, bool) {
	if c.task == nil {
		return TaskState{}, false
	}
	return c.task.TaskState, true
}

// MoveTo starts a motion task towards target. It reports false without any
// side effect when a task is already running, the target is the current
// cell, off the grid or held by a non-collectable entity. Rejected requests
// are not queued.
func (c *Controller) MoveTo(target world.Coord, duration time.Duration) bool {
	if c.task != nil {
		c.log.Debug("move rejected: already moving", logger.F("target", target))
		if c.metrics != nil {
			c.metrics.RecordMoveRejected()
		}
		return false
	}
	from := c.entity.Position
	if target == from {
		return false
	}
	if _, ok := c.grid.TileAt(target); !ok {
		c.log.Debug("move rejected: target off grid", logger.F("target", target))
		if c.metrics != nil {
			c.metrics.RecordMoveRejected()
		}
		return false
	}
	if occupant, ok := c.grid.EntityAt(target); ok && occupant != c.entity && !occupant.IsCollectable() {
		c.log.Debug("move rejected: target occupied", logger.F("target", target), logger.F("occupant", string(occupant.Kind)))
		if c.metrics != nil {
			c.metrics.RecordMoveRejected()
		}
		return false
	}

	if occupant, ok := c.grid.EntityAt(from); ok && occupant == c.entity {
		c.grid.SetEntityAt(from, nil)
	}
	start := c.layout.CellCenter(from)
	end := c.layout.CellCenter(target)
	c.task = &task{
		TaskState: TaskState{
			From:     from,
			To:       target,
			Duration: duration,
		},
		start:         start,
		end:           end,
		dir:           end.Sub(start).Normalized(),
		lastHighlight: world.InvalidCoord,
	}
	if c.metrics != nil {
		c.metrics.RecordMoveStarted()
	}
	c.log.Debug("move started", logger.F("from", from), logger.F("to", target), logger.F("duration", duration))
	return true
}

// Advance runs exactly one step of the active task.
func (c *Controller) Advance(ctx context.Context, dt time.Duration) Status {
	t := c.task
	if t == nil {
		return StatusIdle
	}
	if t.Duration <= 0 {
		t.Ratio = 1
	} else {
		t.Ratio += dt.Seconds() / t.Duration.Seconds()
	}

	pos := t.start.Lerp(t.end, world.SmoothStep(t.Ratio))
	c.entity.RenderPos = pos

	c.highlightAt(pos.Sub(t.dir.Scale(probeDistance)))
	c.pickupAt(ctx, pos)

	if t.Ratio >= 1-completionEpsilon {
		c.complete()
		return StatusDone
	}
	return StatusInProgress
}

// Finish snaps an in-flight task to its target without sampling the
// remaining path. Hosts call it before destroying a moving entity.
func (c *Controller) Finish() {
	if c.task == nil {
		return
	}
	c.complete()
}

// highlightAt ignores probes outside the span of cell centres before
// rounding, so a probe half a cell behind the first tile does not reach it.
func (c *Controller) highlightAt(probe world.Vec2) {
	g := c.layout.GridPos(probe)
	if g.X < 0 || g.Y < 0 || g.X > float64(c.grid.Width()-1) || g.Y > float64(c.grid.Height()-1) {
		return
	}
	coord := c.layout.CoordAt(probe)
	tile, ok := c.grid.TileAt(coord)
	if !ok {
		return
	}
	if coord == c.task.lastHighlight {
		return
	}
	c.task.lastHighlight = coord
	c.entity.LocateAt(coord)
	if tile.IsGround() {
		tile.RefreshSupportState()
	}
}

func (c *Controller) pickupAt(ctx context.Context, pos world.Vec2) {
	e, ok := c.grid.EntityAt(c.layout.CoordAt(pos))
	if !ok || e == c.entity || !e.IsCollectable() || e.Removed() {
		return
	}
	if c.metrics != nil {
		c.metrics.RecordPickup(e.Kind)
	}
	c.log.Debug("collectable reached", logger.F("collectable_id", e.ID), logger.F("at", e.Position))
	if c.pickups != nil {
		c.pickups.OnPickupCollectable(ctx, e)
	}
}

func (c *Controller) complete() {
	t := c.task
	c.task = nil
	c.entity.LocateAt(t.To)
	c.entity.RenderPos = t.end
	c.grid.SetEntityAt(t.To, c.entity)
	if c.metrics != nil {
		c.metrics.RecordMoveCompleted()
	}
	c.log.Debug("move completed", logger.F("at", t.To))
}
