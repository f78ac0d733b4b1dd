package ebiten

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"path"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

// SpritePath is where a sprite name lives inside the resource root.
func SpritePath(sprite string) string {
	return path.Join("images", sprite+".png")
}

var missingSpriteColor = color.NRGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}

// SpriteCanvas draws sprites from images/ onto the current screen. Images decode on first
// use; a sprite that cannot be loaded is drawn as a magenta tile and reported once.
type SpriteCanvas struct {
	root     fs.FS
	tileSize int
	screen   *ebiten.Image
	face     text.Face
	images   map[string]*ebiten.Image
	missing  *ebiten.Image
	logger   *zap.Logger
}

func NewSpriteCanvas(root fs.FS, tileSize int, logger *zap.Logger) *SpriteCanvas {
	return &SpriteCanvas{
		root:     root,
		tileSize: tileSize,
		face:     text.NewGoXFace(basicfont.Face7x13),
		images:   make(map[string]*ebiten.Image),
		logger:   logger,
	}
}

// Begin targets screen for the following draw calls.
func (c *SpriteCanvas) Begin(screen *ebiten.Image) {
	c.screen = screen
}

func (c *SpriteCanvas) DrawSprite(sprite string, x, y int) {
	img := c.image(sprite)

	op := &ebiten.DrawImageOptions{}
	if b := img.Bounds(); b.Dx() > 0 && b.Dx() != c.tileSize {
		scale := float64(c.tileSize) / float64(b.Dx())
		op.GeoM.Scale(scale, scale)
	}
	op.GeoM.Translate(float64(x), float64(y))
	c.screen.DrawImage(img, op)
}

func (c *SpriteCanvas) DrawText(s string, x, y int) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(c.screen, s, c.face, op)
}

func (c *SpriteCanvas) image(sprite string) *ebiten.Image {
	if img, ok := c.images[sprite]; ok {
		return img
	}

	img, err := c.load(sprite)
	if err != nil {
		c.logger.Warn("sprite unavailable", zap.String("sprite", sprite), zap.Error(err))
		img = c.placeholder()
	}
	c.images[sprite] = img
	return img
}

func (c *SpriteCanvas) load(sprite string) (*ebiten.Image, error) {
	data, err := fs.ReadFile(c.root, SpritePath(sprite))
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", SpritePath(sprite), err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func (c *SpriteCanvas) placeholder() *ebiten.Image {
	if c.missing == nil {
		c.missing = ebiten.NewImage(c.tileSize, c.tileSize)
		c.missing.Fill(missingSpriteColor)
	}
	return c.missing
}
