package sokoban

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMultiplePlayers is returned when a map places more than one player.
var ErrMultiplePlayers = errors.New("sokoban: map has more than one player")

// ErrEmptyMap is returned for a map file with no tokens.
var ErrEmptyMap = errors.New("sokoban: map is empty")

// ParseError reports an unrecognized map token. Row and Column are zero-based.
type ParseError struct {
	Token  string
	Row    int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unrecognized map token %q at row %d, column %d", e.Token, e.Row, e.Column)
}

// TileKind is the meaning of one map token.
type TileKind int

const (
	TileEmpty TileKind = iota
	TileFloor
	TileWall
	TilePlayer
	TileBox
	TileSpot
)

func (k TileKind) String() string {
	switch k {
	case TileEmpty:
		return "empty"
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TilePlayer:
		return "player"
	case TileBox:
		return "box"
	case TileSpot:
		return "spot"
	}
	return fmt.Sprintf("TileKind(%d)", int(k))
}

var tokens = map[string]TileKind{
	".": TileFloor,
	"W": TileWall,
	"P": TilePlayer,
	"B": TileBox,
	"S": TileSpot,
	"N": TileEmpty,
}

// Tile is one non-empty map cell.
type Tile struct {
	Kind     TileKind
	Position Position
}

// Grid is a parsed map. Tiles lists every non-empty cell in row-major order.
// Width is the longest row; shorter rows are treated as padded with empty cells.
type Grid struct {
	Width  int
	Height int
	Tiles  []Tile
}

// Count returns how many tiles of kind k the grid holds.
func (g Grid) Count(k TileKind) int {
	n := 0
	for _, t := range g.Tiles {
		if t.Kind == k {
			n++
		}
	}
	return n
}

// ParseMap reads a map in the row/column text format: rows separated by newlines,
// single-character tokens separated by a single space.
func ParseMap(text string) (Grid, error) {
	var grid Grid

	text = strings.TrimSpace(text)
	if text == "" {
		return Grid{}, ErrEmptyMap
	}
	rows := strings.Split(text, "\n")
	players := 0
	for y, row := range rows {
		columns := strings.Split(strings.TrimSpace(row), " ")
		grid.Width = max(grid.Width, len(columns))

		for x, token := range columns {
			kind, ok := tokens[token]
			if !ok {
				return Grid{}, &ParseError{Token: token, Row: y, Column: x}
			}
			if kind == TileEmpty {
				continue
			}
			if kind == TilePlayer {
				players++
				if players > 1 {
					return Grid{}, fmt.Errorf("%w: second player at row %d, column %d", ErrMultiplePlayers, y, x)
				}
			}
			grid.Tiles = append(grid.Tiles, Tile{Kind: kind, Position: Position{X: x, Y: y}})
		}
	}
	grid.Height = len(rows)

	return grid, nil
}
