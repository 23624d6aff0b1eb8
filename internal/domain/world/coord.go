package world

import "fmt"

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InvalidCoord is the dedup sentinel used when no cell has been acted upon.
var InvalidCoord = Coord{X: -1, Y: -1}

func (c Coord) Valid() bool {
	return c.X >= 0 && c.Y >= 0
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
