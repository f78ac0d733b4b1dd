package sokoban_test

import (
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/plus3/sokoban/ecs"
	"github.com/plus3/sokoban/sokoban"
	"github.com/stretchr/testify/require"
)

type fakeAudio struct {
	log    []string
	loaded []string
	closed []string
}

type fakeTrack struct {
	name  string
	audio *fakeAudio
}

func (t *fakeTrack) Play() { t.audio.log = append(t.audio.log, "play "+t.name) }
func (t *fakeTrack) Stop() { t.audio.log = append(t.audio.log, "stop "+t.name) }
func (t *fakeTrack) Close() error {
	t.audio.closed = append(t.audio.closed, t.name)
	return nil
}

func (a *fakeAudio) Load(name string, data []byte, loop bool) (sokoban.Track, error) {
	a.loaded = append(a.loaded, name)
	return &fakeTrack{name: name, audio: a}, nil
}

func (a *fakeAudio) reset() {
	a.log = nil
}

type drawCall struct {
	sprite string
	x, y   int
}

type fakeCanvas struct {
	sprites []drawCall
	texts   []string
}

func (c *fakeCanvas) DrawSprite(sprite string, x, y int) {
	c.sprites = append(c.sprites, drawCall{sprite: sprite, x: x, y: y})
}

func (c *fakeCanvas) DrawText(text string, x, y int) {
	c.texts = append(c.texts, fmt.Sprintf("%s@%d,%d", text, x, y))
}

// testRoot builds a resource root with one map per level and every sound file present.
func testRoot(maps ...string) fstest.MapFS {
	root := fstest.MapFS{}
	for level, m := range maps {
		root[sokoban.MapPath(level)] = &fstest.MapFile{Data: []byte(m)}
		root[sokoban.InGameMusicPath(level)] = &fstest.MapFile{Data: []byte("RIFF")}
		root[sokoban.VictoryMusicPath(level)] = &fstest.MapFile{Data: []byte("RIFF")}
	}
	for _, name := range []string{sokoban.EffectWall, sokoban.EffectCorrect, sokoban.EffectIncorrect} {
		root[sokoban.EffectPath(name)] = &fstest.MapFile{Data: []byte("RIFF")}
	}
	return root
}

func newTestGame(t *testing.T, maps ...string) (*sokoban.Game, *fakeAudio) {
	t.Helper()
	audio := &fakeAudio{}
	vars := sokoban.DefaultVars()
	vars.MaxLevel = len(maps) - 1
	g, err := sokoban.NewGame(sokoban.Options{
		Root:  testRoot(maps...),
		Audio: audio,
		Vars:  vars,
	})
	require.NoError(t, err)
	return g, audio
}

// press delivers each key and runs one update frame per key.
func press(t *testing.T, g *sokoban.Game, keys ...sokoban.Key) {
	t.Helper()
	for _, k := range keys {
		g.OnKeyDown(sokoban.KeyEvent{Key: k})
		require.NoError(t, g.OnUpdate())
	}
}

func playerAt(t *testing.T, g *sokoban.Game) sokoban.Position {
	t.Helper()
	pos, _, ok := g.PlayerPosition()
	require.True(t, ok, "level has no player")
	return pos
}

func boxCells(g *sokoban.Game) [][2]int {
	var cells [][2]int
	for b := range ecs.NewView[struct {
		*sokoban.Position
		*sokoban.Box
	}](g.Storage()).Values() {
		cells = append(cells, b.Position.Cell())
	}
	return cells
}
