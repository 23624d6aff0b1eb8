package interaction

import (
	"strings"
	"time"

	"tilepuzzle/internal/app/motion"
	"tilepuzzle/internal/app/ports"
	"tilepuzzle/internal/domain/world"
	"tilepuzzle/internal/logger"
)

const DefaultMoveDuration = 300 * time.Millisecond

type Config struct {
	Grid         ports.Grid
	Layout       world.Layout
	Pointer      ports.PointerResolver
	HUD          ports.ToolDisplay
	Game         ports.Game
	Players      ports.PlayerListener
	Motion       *motion.Scheduler
	Metrics      ports.InteractionMetrics
	Logger       logger.Logger
	MoveDuration time.Duration
	InitialTool  world.Tool
}

// PointerState is the pointer as sampled for one frame.
type PointerState struct {
	Screen   world.Vec2
	Pressed  bool
	Released bool
	Modifier bool
}

// Controller turns pointer gestures into tool actions on the grid. It is the
// only owner of the current selection.
type Controller struct {
	grid         ports.Grid
	layout       world.Layout
	pointer      ports.PointerResolver
	hud          ports.ToolDisplay
	game         ports.Game
	players      ports.PlayerListener
	motion       *motion.Scheduler
	metrics      ports.InteractionMetrics
	log          logger.Logger
	moveDuration time.Duration

	tool        world.Tool
	selected    *world.Entity
	player      *world.Entity
	dragging    bool
	lastPainted world.Coord
	paintKind   world.TileKind
}

func NewController(cfg Config) *Controller {
	l := cfg.Logger
	if l == nil {
		l = logger.NewNop()
	}
	if cfg.MoveDuration <= 0 {
		cfg.MoveDuration = DefaultMoveDuration
	}
	if cfg.InitialTool == "" {
		cfg.InitialTool = world.ToolTile
	}
	c := &Controller{
		grid:         cfg.Grid,
		layout:       cfg.Layout,
		pointer:      cfg.Pointer,
		hud:          cfg.HUD,
		game:         cfg.Game,
		players:      cfg.Players,
		motion:       cfg.Motion,
		metrics:      cfg.Metrics,
		log:          l,
		moveDuration: cfg.MoveDuration,
		lastPainted:  world.InvalidCoord,
		paintKind:    world.TileWater,
	}
	c.SetTool(cfg.InitialTool)
	return c
}

func (c *Controller) Tool() world.Tool          { return c.tool }
func (c *Controller) Selected() *world.Entity   { return c.selected }
func (c *Controller) Player() *world.Entity     { return c.player }
func (c *Controller) Dragging() bool            { return c.dragging }
func (c *Controller) PaintKind() world.TileKind { return c.paintKind }

func (c *Controller) SetTool(tool world.Tool) {
	c.tool = tool
	if tool == world.ToolNone {
		return
	}
	c.Deselect()
	if c.hud != nil {
		c.hud.ShowTool(tool)
	}
	if tool == world.ToolPlay && c.game != nil {
		c.game.Reset()
	}
}

// SelectToolByName binds a tool identifier coming from UI configuration.
// Empty names are logged and ignored; unknown names are reported.
func (c *Controller) SelectToolByName(name string) error {
	if strings.TrimSpace(name) == "" {
		c.log.Error("tool name is empty")
		return nil
	}
	tool, err := world.ParseTool(name)
	if err != nil {
		c.log.Error("tool binding failed", logger.F("name", name), logger.F("err", err))
		return err
	}
	c.SetTool(tool)
	return nil
}

// Update processes one frame of pointer input. Editing is suspended in play
// mode and while the game is paused.
func (c *Controller) Update(p PointerState) {
	if c.tool == world.ToolPlay {
		return
	}
	if c.game != nil && c.game.Paused() {
		return
	}
	// UI controls swallow presses and held input but never a release, so a
	// gesture always ends.
	overUI := c.pointer.OverUI(p.Screen)
	if p.Pressed && !overUI {
		c.PointerDown(p.Screen)
	}
	if p.Released {
		c.PointerUp()
	}
	if c.dragging && !overUI {
		c.PointerHeld(p.Screen, p.Modifier)
	}
}

func (c *Controller) PointerDown(screen world.Vec2) {
	if c.pointer.OverUI(screen) {
		return
	}
	c.dragging = true
	if c.tool != world.ToolTile {
		return
	}
	kind := world.TileGround
	if hit := c.pointer.Resolve(screen); hit.Tile != nil {
		kind = hit.Tile.Kind
	}
	c.paintKind = kind.Inverted()
}

func (c *Controller) PointerUp() {
	c.dragging = false
	c.lastPainted = world.InvalidCoord
	c.Deselect()
}

func (c *Controller) PointerHeld(screen world.Vec2, modifier bool) {
	if !c.dragging {
		return
	}
	hit := c.pointer.Resolve(screen)
	switch {
	case hit.Tile != nil:
		c.onTile(hit.Tile)
	case hit.Entity != nil:
		c.onEntity(hit.Entity, modifier)
	}
}

// Select makes e the single selected entity.
func (c *Controller) Select(e *world.Entity) {
	if e == nil || e.Removed() {
		return
	}
	if c.selected != nil && c.selected != e {
		c.selected.Deselect()
	}
	e.Select()
	c.selected = e
	if c.metrics != nil {
		c.metrics.RecordSelection()
	}
}

func (c *Controller) Deselect() {
	if c.selected == nil {
		return
	}
	c.selected.Deselect()
	c.selected = nil
}

func (c *Controller) onTile(tile *world.Tile) {
	if tile.Coord == c.lastPainted {
		return
	}
	c.lastPainted = tile.Coord

	if c.selected != nil && tile.IsWalkable() {
		c.relocate(c.selected, tile.Coord)
		return
	}

	switch c.tool {
	case world.ToolTile:
		// Repainting a tile with its own kind still repairs wear.
		flipped := tile.Kind != c.paintKind
		c.grid.ChangeTileKind(tile, c.paintKind)
		if flipped && c.metrics != nil {
			c.metrics.RecordTileFlip()
		}
	case world.ToolObstacle, world.ToolItem, world.ToolStar, world.ToolPlayer:
		c.place(tile)
	}
}

func (c *Controller) onEntity(e *world.Entity, modifier bool) {
	if c.selected != nil {
		return
	}
	if modifier {
		c.Delete(e)
		return
	}
	c.Select(e)
}

func (c *Controller) place(tile *world.Tile) {
	kind, ok := c.tool.PlacedKind()
	if !ok {
		return
	}
	if !tile.IsWalkable() {
		c.log.Debug("placement skipped: tile not walkable", logger.F("kind", string(kind)), logger.F("at", tile.Coord))
		return
	}
	if _, occupied := c.grid.EntityAt(tile.Coord); occupied {
		return
	}
	if c.motion != nil && c.motion.Reserved(tile.Coord) {
		c.log.Debug("placement skipped: cell reserved by a moving entity", logger.F("kind", string(kind)), logger.F("at", tile.Coord))
		return
	}
	if kind == world.EntityPlayer && c.player != nil {
		return
	}
	e, err := world.NewEntity(kind, tile.Coord)
	if err != nil {
		c.log.Error("create entity", logger.F("kind", string(kind)), logger.F("err", err))
		return
	}
	e.RenderPos = c.layout.CellCenter(tile.Coord)
	c.grid.SetEntityAt(tile.Coord, e)
	if c.metrics != nil {
		c.metrics.RecordPlacement(kind)
	}
	c.log.Debug("entity placed", logger.F("kind", string(kind)), logger.F("at", tile.Coord))

	if kind != world.EntityPlayer {
		return
	}
	c.player = e
	if c.motion != nil {
		c.motion.Attach(e)
	}
	if c.hud != nil {
		c.hud.EnableTool(world.ToolPlayer, false)
	}
	c.SetTool(world.ToolNone)
	if c.players != nil {
		c.players.PlayerPlaced(e)
	}
}

// Delete destroys e. A moving entity has its motion completed first so it
// never disappears mid-flight.
func (c *Controller) Delete(e *world.Entity) {
	if e == nil || e.Removed() {
		return
	}
	if c.selected == e {
		c.selected = nil
	}
	if e.IsMovable() && c.motion != nil {
		c.motion.Detach(e.ID)
	}
	if occupant, ok := c.grid.EntityAt(e.Position); ok && occupant == e {
		c.grid.SetEntityAt(e.Position, nil)
	}
	if e == c.player {
		c.player = nil
		if c.hud != nil {
			c.hud.EnableTool(world.ToolPlayer, true)
		}
	}
	e.Remove()
	if c.metrics != nil {
		c.metrics.RecordDeletion(e.Kind)
	}
	c.log.Debug("entity deleted", logger.F("kind", string(e.Kind)), logger.F("at", e.Position))
}

func (c *Controller) relocate(e *world.Entity, to world.Coord) {
	if e.IsMovable() && c.motion != nil {
		if mc, ok := c.motion.Controller(e.ID); ok {
			if mc.MoveTo(to, c.moveDuration) && c.metrics != nil {
				c.metrics.RecordRelocation()
			}
			return
		}
	}
	if occupant, ok := c.grid.EntityAt(to); ok && occupant != e {
		return
	}
	if c.motion != nil && c.motion.Reserved(to) {
		return
	}
	if occupant, ok := c.grid.EntityAt(e.Position); ok && occupant == e {
		c.grid.SetEntityAt(e.Position, nil)
	}
	e.LocateAt(to)
	e.RenderPos = c.layout.CellCenter(to)
	c.grid.SetEntityAt(to, e)
	if c.metrics != nil {
		c.metrics.RecordRelocation()
	}
}
