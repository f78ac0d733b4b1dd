package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// CellWidth is the number of terminal columns one board tile occupies. Terminal cells are
// roughly twice as tall as they are wide.
const CellWidth = 2

type Glyph struct {
	Rune  rune
	Style tcell.Style
}

var (
	styleDefault = tcell.StyleDefault
	floorStyle   = styleDefault.Foreground(tcell.ColorDarkGray)
	unknownGlyph = Glyph{Rune: '?', Style: styleDefault.Foreground(tcell.ColorFuchsia)}
)

// glyphs maps sprite names to terminal glyphs.
var glyphs = map[string]Glyph{
	"floor_gravel_sand": {'·', floorStyle},
	"floor_tiles_stone": {'░', floorStyle},
	"wall_gray_square":  {'█', styleDefault.Foreground(tcell.ColorGray)},
	"wall_gray_round":   {'▓', styleDefault.Foreground(tcell.ColorGray)},
	"wall_brown_square": {'█', styleDefault.Foreground(tcell.ColorSaddleBrown)},
	"wall_brown_round":  {'▓', styleDefault.Foreground(tcell.ColorSaddleBrown)},
	"box_bright_red":    {'■', styleDefault.Foreground(tcell.ColorRed).Bold(true)},
	"box_dark_red":      {'■', styleDefault.Foreground(tcell.ColorMaroon)},
	"box_bright_blue":   {'■', styleDefault.Foreground(tcell.ColorBlue).Bold(true)},
	"box_dark_blue":     {'■', styleDefault.Foreground(tcell.ColorNavy)},
	"spot_red":          {'○', styleDefault.Foreground(tcell.ColorRed)},
	"spot_blue":         {'○', styleDefault.Foreground(tcell.ColorBlue)},
	"player_up":         {'▲', styleDefault.Foreground(tcell.ColorYellow).Bold(true)},
	"player_down":       {'▼', styleDefault.Foreground(tcell.ColorYellow).Bold(true)},
	"player_left":       {'◀', styleDefault.Foreground(tcell.ColorYellow).Bold(true)},
	"player_right":      {'▶', styleDefault.Foreground(tcell.ColorYellow).Bold(true)},
}

// GlyphFor returns the glyph of sprite. Unknown player sprites fall back to the facing-less
// player glyph and anything else to a question mark.
func GlyphFor(sprite string) Glyph {
	if g, ok := glyphs[sprite]; ok {
		return g
	}
	if strings.HasPrefix(sprite, "player") {
		return glyphs["player_down"]
	}
	return unknownGlyph
}
