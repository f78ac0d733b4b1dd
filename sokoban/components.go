package sokoban

import (
	"fmt"

	"github.com/plus3/sokoban/ecs"
)

// Draw layers assigned by the Factory. Tiles parsed from a map start at Z 0.
const (
	ZFloor = 5
	ZSpot  = 9
	ZTile  = 10
)

// Direction is a grid direction for moves and facing.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Delta returns the unit vector of d in grid coordinates. Y grows downwards.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// String returns the lowercase name used in sprite names.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Position is a grid cell plus a draw layer.
type Position struct {
	X, Y, Z int
}

// Step returns the cell one unit away in direction d, on the same layer.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy, Z: p.Z}
}

// Cell drops the layer so positions on different layers compare equal.
func (p Position) Cell() [2]int {
	return [2]int{p.X, p.Y}
}

// Renderable names the sprite an entity is drawn with.
type Renderable struct {
	Sprite string
}

// Movable marks entities that can be pushed.
type Movable struct{}

// Blocking marks entities that obstruct movement.
type Blocking struct{}

// Directional records which way an entity faces.
type Directional struct {
	Facing Direction
}

// WallColor selects the wall sprite palette.
type WallColor int

const (
	WallGray WallColor = iota
	WallBrown
)

func (c WallColor) String() string {
	switch c {
	case WallGray:
		return "gray"
	case WallBrown:
		return "brown"
	}
	return fmt.Sprintf("WallColor(%d)", int(c))
}

// WallShape selects square or rounded wall sprites.
type WallShape int

const (
	WallSquare WallShape = iota
	WallRound
)

func (s WallShape) String() string {
	switch s {
	case WallSquare:
		return "square"
	case WallRound:
		return "round"
	}
	return fmt.Sprintf("WallShape(%d)", int(s))
}

// Wall is a static, blocking tile.
type Wall struct {
	Color WallColor
	Shape WallShape
}

// Player tags the single entity driven by input.
type Player struct{}

// BoxType selects the bright or dark box sprite.
type BoxType int

const (
	BoxBright BoxType = iota
	BoxDark
)

func (t BoxType) String() string {
	switch t {
	case BoxBright:
		return "bright"
	case BoxDark:
		return "dark"
	}
	return fmt.Sprintf("BoxType(%d)", int(t))
}

// Color is shared by boxes and spots; a box is placed when it rests on a spot of the same color.
type Color int

const (
	Red Color = iota
	Blue
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

// Box is a pushable tile.
type Box struct {
	Type  BoxType
	Color Color
}

// Spot is a target cell for a box of the same color.
type Spot struct {
	Color Color
}

// FloorType and FloorMaterial together pick a floor sprite.
type FloorType int

const (
	FloorGravel FloorType = iota
	FloorTiles
)

func (t FloorType) String() string {
	switch t {
	case FloorGravel:
		return "gravel"
	case FloorTiles:
		return "tiles"
	}
	return fmt.Sprintf("FloorType(%d)", int(t))
}

type FloorMaterial int

const (
	MaterialSand FloorMaterial = iota
	MaterialStone
)

func (m FloorMaterial) String() string {
	switch m {
	case MaterialSand:
		return "sand"
	case MaterialStone:
		return "stone"
	}
	return fmt.Sprintf("FloorMaterial(%d)", int(m))
}

// NewRegistry registers every component kind the game stores.
func NewRegistry() (*ecs.ComponentRegistry, error) {
	registry := ecs.NewComponentRegistry()
	for _, register := range []func(*ecs.ComponentRegistry) error{
		ecs.RegisterComponent[Position],
		ecs.RegisterComponent[Renderable],
		ecs.RegisterComponent[Movable],
		ecs.RegisterComponent[Blocking],
		ecs.RegisterComponent[Directional],
		ecs.RegisterComponent[Wall],
		ecs.RegisterComponent[Player],
		ecs.RegisterComponent[Box],
		ecs.RegisterComponent[Spot],
	} {
		if err := register(registry); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
