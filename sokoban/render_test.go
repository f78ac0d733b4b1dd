package sokoban_test

import (
	"testing"

	"github.com/plus3/sokoban/sokoban"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOrder(t *testing.T) {
	g, _ := newTestGame(t, "P B S")

	canvas := &fakeCanvas{}
	require.NoError(t, g.OnDraw(canvas))

	assert.Equal(t, []drawCall{
		{"floor_gravel_sand", 0, 0},
		{"floor_gravel_sand", 32, 0},
		{"floor_gravel_sand", 64, 0},
		{"spot_red", 64, 0},
		{"player_down", 0, 0},
		{"box_bright_red", 32, 0},
	}, canvas.sprites)
	assert.Equal(t, []string{"level 0  moves 0  pushes 0  playing@0,40"}, canvas.texts)
}

func TestRenderFollowsState(t *testing.T) {
	g, _ := newTestGame(t, "P B S")
	press(t, g, sokoban.KeyRight)

	canvas := &fakeCanvas{}
	require.NoError(t, g.OnDraw(canvas))

	assert.Contains(t, canvas.sprites, drawCall{"player_right", 32, 0})
	assert.Contains(t, canvas.sprites, drawCall{"box_bright_red", 64, 0})
	assert.Equal(t, []string{"level 0  moves 1  pushes 1  won  (press N for the next level)@0,40"}, canvas.texts)
}

func TestRenderDoesNotMutate(t *testing.T) {
	g, _ := newTestGame(t, "W P B . S")
	before := g.Storage().CollectStats()
	pos := playerAt(t, g)

	for range 3 {
		require.NoError(t, g.OnDraw(&fakeCanvas{}))
	}

	assert.Equal(t, before, g.Storage().CollectStats())
	assert.Equal(t, pos, playerAt(t, g))
	assert.Equal(t, sokoban.GameState{}, g.State())
}

func TestRenderWithoutHUD(t *testing.T) {
	vars := sokoban.DefaultVars()
	vars.HUD = false
	vars.TileSize = 16
	vars.MaxLevel = 0
	g, err := sokoban.NewGame(sokoban.Options{Root: testRoot(". P S"), Vars: vars})
	require.NoError(t, err)

	canvas := &fakeCanvas{}
	require.NoError(t, g.OnDraw(canvas))
	assert.Empty(t, canvas.texts)
	assert.Contains(t, canvas.sprites, drawCall{"player_down", 16, 0})
}
