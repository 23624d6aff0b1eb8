package logging

import (
	"tilepuzzle/internal/domain/world"
	"tilepuzzle/internal/logger"
)

// HUD keeps the toolbar state a renderer would draw and logs every change.
type HUD struct {
	log      logger.Logger
	current  world.Tool
	disabled map[world.Tool]bool
}

func NewHUD(l logger.Logger) *HUD {
	return &HUD{log: l, disabled: map[world.Tool]bool{}}
}

func (h *HUD) ShowTool(tool world.Tool) {
	h.current = tool
	h.log.Info("tool selected", logger.F("tool", string(tool)))
}

func (h *HUD) EnableTool(tool world.Tool, enabled bool) {
	h.disabled[tool] = !enabled
	h.log.Info("tool availability changed", logger.F("tool", string(tool)), logger.F("enabled", enabled))
}

func (h *HUD) Current() world.Tool { return h.current }

func (h *HUD) Enabled(tool world.Tool) bool { return !h.disabled[tool] }

// Game is the play-mode host: reset requests, pause state and player wiring.
type Game struct {
	log    logger.Logger
	paused bool
	resets int
	player *world.Entity
}

func NewGame(l logger.Logger) *Game {
	return &Game{log: l}
}

func (g *Game) Reset() {
	g.resets++
	g.log.Info("game reset", logger.F("resets", g.resets))
}

func (g *Game) Paused() bool { return g.paused }

func (g *Game) SetPaused(paused bool) { g.paused = paused }

func (g *Game) Resets() int { return g.resets }

func (g *Game) PlayerPlaced(player *world.Entity) {
	g.player = player
	g.log.Info("player placed", logger.F("player_id", player.ID), logger.F("at", player.Position))
}

func (g *Game) Player() *world.Entity { return g.player }
