package world

import (
	"errors"

	"github.com/google/uuid"
)

type EntityKind string

const (
	EntityPlayer   EntityKind = "PLAYER"
	EntityObstacle EntityKind = "OBSTACLE"
	EntityItem     EntityKind = "ITEM"
	EntityStar     EntityKind = "STAR"
)

type Capability string

const (
	CapabilityMovable     Capability = "movable"
	CapabilityCollectable Capability = "collectable"
	CapabilityPassive     Capability = "passive"
)

func (k EntityKind) Capability() Capability {
	switch k {
	case EntityPlayer:
		return CapabilityMovable
	case EntityItem, EntityStar:
		return CapabilityCollectable
	default:
		return CapabilityPassive
	}
}

var ErrInvalidEntity = errors.New("invalid entity")

type Entity struct {
	ID         uuid.UUID
	Kind       EntityKind
	Capability Capability
	Position   Coord
	RenderPos  Vec2

	selected bool
	removed  bool
}

func NewEntity(kind EntityKind, at Coord) (*Entity, error) {
	switch kind {
	case EntityPlayer, EntityObstacle, EntityItem, EntityStar:
	default:
		return nil, ErrInvalidEntity
	}
	if !at.Valid() {
		return nil, ErrInvalidEntity
	}
	return &Entity{
		ID:         uuid.New(),
		Kind:       kind,
		Capability: kind.Capability(),
		Position:   at,
	}, nil
}

func (e *Entity) Select()          { e.selected = true }
func (e *Entity) Deselect()        { e.selected = false }
func (e *Entity) Selected() bool   { return e.selected }
func (e *Entity) LocateAt(c Coord) { e.Position = c }

func (e *Entity) IsCollectable() bool { return e.Capability == CapabilityCollectable }
func (e *Entity) IsMovable() bool     { return e.Capability == CapabilityMovable }

// Remove marks the entity destroyed. Removed entities are never selectable
// or collectable again.
func (e *Entity) Remove() {
	e.selected = false
	e.removed = true
}

func (e *Entity) Removed() bool { return e.removed }
