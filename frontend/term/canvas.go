package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// GlyphCanvas draws sprites as glyphs on a tcell screen. Pixel coordinates are divided by the
// tile size, so each tile becomes CellWidth columns of one row.
type GlyphCanvas struct {
	screen   tcell.Screen
	tileSize int
}

func NewGlyphCanvas(screen tcell.Screen, tileSize int) *GlyphCanvas {
	if tileSize <= 0 {
		tileSize = 1
	}
	return &GlyphCanvas{screen: screen, tileSize: tileSize}
}

// Cell converts a pixel position to a screen column and row.
func (c *GlyphCanvas) Cell(x, y int) (col, row int) {
	return x / c.tileSize * CellWidth, y / c.tileSize
}

func (c *GlyphCanvas) DrawSprite(sprite string, x, y int) {
	col, row := c.Cell(x, y)
	g := GlyphFor(sprite)
	c.screen.SetContent(col, row, g.Rune, nil, g.Style)
	for i := 1; i < CellWidth; i++ {
		c.screen.SetContent(col+i, row, ' ', nil, g.Style)
	}
}

func (c *GlyphCanvas) DrawText(text string, x, y int) {
	col, row := c.Cell(x, y)
	for _, r := range text {
		c.screen.SetContent(col, row, r, nil, tcell.StyleDefault)
		col += runewidth.RuneWidth(r)
	}
}
