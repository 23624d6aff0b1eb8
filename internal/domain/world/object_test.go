package world

import "testing"

func TestNewEntityResolvesCapabilityOnce(t *testing.T) {
	cases := map[EntityKind]Capability{
		EntityPlayer:   CapabilityMovable,
		EntityStar:     CapabilityCollectable,
		EntityItem:     CapabilityCollectable,
		EntityObstacle: CapabilityPassive,
	}
	for kind, want := range cases {
		e, err := NewEntity(kind, Coord{X: 1, Y: 2})
		if err != nil {
			t.Fatalf("expected valid %s entity, got %v", kind, err)
		}
		if e.Capability != want {
			t.Fatalf("expected %s capability for %s, got %s", want, kind, e.Capability)
		}
	}
}

func TestNewEntityRejectsUnknownKindAndPosition(t *testing.T) {
	if _, err := NewEntity("DRAGON", Coord{}); err == nil {
		t.Fatalf("expected invalid kind error")
	}
	if _, err := NewEntity(EntityStar, InvalidCoord); err == nil {
		t.Fatalf("expected invalid position error")
	}
}

func TestEntityRemoveClearsSelection(t *testing.T) {
	e, _ := NewEntity(EntityObstacle, Coord{})
	e.Select()
	e.Remove()
	if e.Selected() || !e.Removed() {
		t.Fatalf("expected removed, deselected entity")
	}
}
