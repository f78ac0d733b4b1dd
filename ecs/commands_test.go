package ecs_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/plus3/sokoban/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commandsResources struct {
	commands *ecs.Commands
}

type captureCommandsSystem struct{}

func (captureCommandsSystem) Execute(frame *ecs.UpdateFrame[*commandsResources]) {
	frame.Resources.commands = frame.Commands
}

// frameCommands returns a Commands buffer from a real frame so tests can drive Flush directly.
func frameCommands(t *testing.T, storage *ecs.Storage) *ecs.Commands {
	t.Helper()
	res := &commandsResources{}
	scheduler := ecs.NewScheduler[*commandsResources](storage)
	scheduler.Register(captureCommandsSystem{})
	require.NoError(t, scheduler.Once(0, res))
	require.NotNil(t, res.commands)
	return res.commands
}

func TestCommandsDeferredUntilFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	cmd := frameCommands(t, storage)

	id := mustSpawn(storage, Position{})
	cmd.Spawn(Position{X: 1})
	cmd.Attach(id, Velocity{DX: 1})
	assert.Equal(t, 2, cmd.Len())
	assert.Equal(t, 1, storage.Len())
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))

	require.NoError(t, cmd.Flush(storage))
	assert.Equal(t, 2, storage.Len())
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
	assert.Equal(t, 0, cmd.Len())
}

func TestCommandsDeleteWinsOverAttach(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	cmd := frameCommands(t, storage)

	id := mustSpawn(storage, Position{})
	cmd.Attach(id, Velocity{})
	cmd.RemoveComponent(id, reflect.TypeFor[Position]())
	cmd.Delete(id)

	require.NoError(t, cmd.Flush(storage))
	assert.False(t, storage.Alive(id))
	assert.Equal(t, 0, storage.Count(reflect.TypeFor[Velocity]()))
}

func TestCommandsDeferRunsLast(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	cmd := frameCommands(t, storage)

	var seen int
	cmd.Defer(func() error {
		seen = storage.Len()
		return nil
	})
	cmd.Spawn(Position{})
	cmd.Spawn(Position{})

	require.NoError(t, cmd.Flush(storage))
	assert.Equal(t, 2, seen)
}

func TestCommandsFlushJoinsErrors(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	cmd := frameCommands(t, storage)

	boom := errors.New("boom")
	type Unknown struct{}
	cmd.Spawn(Unknown{})
	cmd.Attach(999, Position{})
	cmd.Spawn(Position{})
	cmd.Defer(func() error { return boom })

	err := cmd.Flush(storage)
	require.Error(t, err)
	assert.ErrorIs(t, err, ecs.ErrUnregisteredComponent)
	assert.ErrorIs(t, err, ecs.ErrNoSuchEntity)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, storage.Len(), "valid commands still apply")
}
