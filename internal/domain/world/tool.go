package world

import (
	"errors"
	"fmt"
	"strings"
)

type Tool string

const (
	ToolNone     Tool = "NONE"
	ToolPlay     Tool = "PLAY"
	ToolTile     Tool = "TILE"
	ToolObstacle Tool = "OBSTACLE"
	ToolItem     Tool = "ITEM"
	ToolStar     Tool = "STAR"
	ToolPlayer   Tool = "PLAYER"
)

var ErrUnknownTool = errors.New("unknown tool")

var tools = []Tool{ToolNone, ToolPlay, ToolTile, ToolObstacle, ToolItem, ToolStar, ToolPlayer}

func Tools() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}

func ParseTool(name string) (Tool, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for _, t := range tools {
		if string(t) == n {
			return t, nil
		}
	}
	return ToolNone, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// PlacedKind maps a placement tool to the entity kind it creates.
func (t Tool) PlacedKind() (EntityKind, bool) {
	switch t {
	case ToolObstacle:
		return EntityObstacle, true
	case ToolItem:
		return EntityItem, true
	case ToolStar:
		return EntityStar, true
	case ToolPlayer:
		return EntityPlayer, true
	default:
		return "", false
	}
}
