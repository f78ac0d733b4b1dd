package sokoban_test

import (
	"testing"

	"github.com/plus3/sokoban/ecs"
	"github.com/plus3/sokoban/sokoban"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerStep(t *testing.T) {
	g, _ := newTestGame(t, ". . . .\n. P . .\n. . B S")

	press(t, g, sokoban.KeyUp)

	pos, facing, _ := g.PlayerPosition()
	assert.Equal(t, [2]int{1, 0}, pos.Cell())
	assert.Equal(t, sokoban.Up, facing)
	assert.Equal(t, 1, g.State().Moves)
	assert.Equal(t, 0, g.State().Pushes)
}

// Facing follows the key even when the wall stops the step.
func TestFacingUpdatesOnBlockedMove(t *testing.T) {
	g, _ := newTestGame(t, ". W . .\n. P . .\n. . B S")

	_, facing, _ := g.PlayerPosition()
	require.Equal(t, sokoban.Down, facing)

	press(t, g, sokoban.KeyUp)

	pos, facing, _ := g.PlayerPosition()
	assert.Equal(t, [2]int{1, 1}, pos.Cell())
	assert.Equal(t, sokoban.Up, facing)
	assert.Equal(t, 0, g.State().Moves)
}

func TestMoveOutOfBoundsRejected(t *testing.T) {
	g, audio := newTestGame(t, "P . B S")
	audio.reset()

	press(t, g, sokoban.KeyLeft, sokoban.KeyUp)

	assert.Equal(t, [2]int{0, 0}, playerAt(t, g).Cell())
	assert.Equal(t, []string{
		"play sounds/effects/wall.wav",
		"play sounds/effects/wall.wav",
	}, audio.log)
}

func TestPushIntoEmptyCell(t *testing.T) {
	g, _ := newTestGame(t, "W W W W W W\nW P B . S W\nW W W W W W")

	press(t, g, sokoban.KeyRight)

	assert.Equal(t, [2]int{2, 1}, playerAt(t, g).Cell(), "player takes the box's prior cell")
	assert.Equal(t, [][2]int{{3, 1}}, boxCells(g), "box moves exactly one unit")
	assert.Equal(t, 1, g.State().Moves)
	assert.Equal(t, 1, g.State().Pushes)
	assert.False(t, g.State().Won())
}

func TestPushIntoWall(t *testing.T) {
	g, audio := newTestGame(t, "W W W W W\nW P B W S\nW W W W W")
	audio.reset()

	press(t, g, sokoban.KeyRight)

	assert.Equal(t, [2]int{1, 1}, playerAt(t, g).Cell())
	assert.Equal(t, [][2]int{{2, 1}}, boxCells(g))
	assert.Equal(t, 0, g.State().Pushes)
	assert.Equal(t, []string{"play sounds/effects/wall.wav"}, audio.log)
}

func TestPushIntoBox(t *testing.T) {
	g, _ := newTestGame(t, "W W W W W W W\nW P B B . S W\nW W W W W W W")

	press(t, g, sokoban.KeyRight)

	assert.Equal(t, [2]int{1, 1}, playerAt(t, g).Cell())
	assert.Equal(t, [][2]int{{2, 1}, {3, 1}}, boxCells(g))
}

func TestPushOutOfBoundsRejected(t *testing.T) {
	g, _ := newTestGame(t, "S . P B")

	press(t, g, sokoban.KeyRight)

	assert.Equal(t, [2]int{2, 0}, playerAt(t, g).Cell())
	assert.Equal(t, [][2]int{{3, 0}}, boxCells(g))
}

func TestPushOntoSpotWins(t *testing.T) {
	g, audio := newTestGame(t, "W W W W W\nW P B S W\nW W W W W")
	audio.reset()

	press(t, g, sokoban.KeyRight)

	assert.True(t, g.State().Won())
	assert.Equal(t, []string{
		"play sounds/effects/correct.wav",
		"stop sounds/musics/ingame_music_0.wav",
		"play sounds/musics/victory_music_0.wav",
	}, audio.log)
}

func TestPushOverSpotKeepsPlaying(t *testing.T) {
	g, _ := newTestGame(t, "P B S . S\n. . . . B")

	press(t, g, sokoban.KeyRight, sokoban.KeyRight)

	assert.Equal(t, [][2]int{{3, 0}, {4, 1}}, boxCells(g))
	assert.False(t, g.State().Won())
}

func TestWonBlocksMoves(t *testing.T) {
	g, _ := newTestGame(t, "P B S .")
	press(t, g, sokoban.KeyRight)
	require.True(t, g.State().Won())

	press(t, g, sokoban.KeyLeft, sokoban.KeyRight)

	assert.Equal(t, [2]int{1, 0}, playerAt(t, g).Cell())
	assert.True(t, g.State().Won(), "winning is one-way")
	assert.Equal(t, 1, g.State().Moves)
}

func TestWrongColorBoxDoesNotWin(t *testing.T) {
	g, audio := newTestGame(t, "P . . S\n. B . .")

	// Swap the map's red box for a blue one.
	storage := g.Storage()
	for id := range ecs.NewView[struct{ *sokoban.Box }](storage).Iter() {
		storage.Delete(id)
	}
	_, err := sokoban.NewFactory(storage).CreateBox(sokoban.Position{X: 2}, sokoban.BoxDark, sokoban.Blue)
	require.NoError(t, err)
	audio.reset()

	press(t, g, sokoban.KeyRight, sokoban.KeyRight)

	assert.Equal(t, [][2]int{{3, 0}}, boxCells(g))
	assert.False(t, g.State().Won())
	assert.Equal(t, []string{"play sounds/effects/incorrect.wav"}, audio.log)
}

func TestSolved(t *testing.T) {
	f, storage := newFactory(t)
	spot := sokoban.Position{X: 1, Y: 1}
	_, err := f.CreateSpot(spot, sokoban.Red)
	require.NoError(t, err)
	assert.False(t, sokoban.Solved(storage))

	blue, err := f.CreateBox(spot, sokoban.BoxBright, sokoban.Blue)
	require.NoError(t, err)
	assert.False(t, sokoban.Solved(storage), "a box of another color does not count")

	storage.Delete(blue)
	assert.False(t, sokoban.Solved(storage))

	_, err = f.CreateBox(sokoban.Position{X: 5, Y: 5}, sokoban.BoxBright, sokoban.Blue)
	require.NoError(t, err)
	assert.False(t, sokoban.Solved(storage), "a box elsewhere does not count")

	_, err = f.CreateBox(spot, sokoban.BoxDark, sokoban.Red)
	require.NoError(t, err)
	assert.True(t, sokoban.Solved(storage))
}

func TestSolvedWithoutSpots(t *testing.T) {
	_, storage := newFactory(t)
	assert.True(t, sokoban.Solved(storage))
}

// A map without spots is won as soon as it loads.
func TestVacuousWinAtLoad(t *testing.T) {
	g, _ := newTestGame(t, ". . .\n. P .\n. . .")

	assert.True(t, g.State().Won())

	press(t, g, sokoban.KeyUp)
	assert.Equal(t, [2]int{1, 1}, playerAt(t, g).Cell(), "a won level takes no moves")
}

func TestBlockedPushChangesNothing(t *testing.T) {
	maps := map[string]sokoban.Key{
		"W B P . S":     sokoban.KeyLeft,
		"S . P B B":     sokoban.KeyRight,
		"S\nW\nB\nP":    sokoban.KeyUp,
		"S P\n. B\n. B": sokoban.KeyDown,
	}
	for m, key := range maps {
		g, _ := newTestGame(t, m)
		player := playerAt(t, g)
		boxes := boxCells(g)

		press(t, g, key)

		assert.Equal(t, player, playerAt(t, g), "map %q", m)
		assert.Equal(t, boxes, boxCells(g), "map %q", m)
	}
}
