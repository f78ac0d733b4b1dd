package ecs_test

import (
	"testing"

	"github.com/plus3/sokoban/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := mustSpawn(storage, Position{X: 1}, Velocity{DX: 2})
	other := mustSpawn(storage, Position{X: 3})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, float32(2), item.Velocity.DX)

	assert.Nil(t, view.Get(other))
	assert.Nil(t, view.Get(id+100))
}

func TestViewPointersAlias(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := mustSpawn(storage, Position{X: 1})

	view := ecs.NewView[struct{ *Position }](storage)
	for item := range view.Values() {
		item.Position.X = 50
	}

	assert.Equal(t, float32(50), ecs.ReadComponent[Position](storage, id).X)
}

func TestViewIterCreationOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var want []ecs.EntityId
	for i := range 5 {
		want = append(want, mustSpawn(storage, Position{X: float32(i)}))
	}
	// Deleting from the middle reshuffles the dense array.
	storage.Delete(want[1])
	want = append(want[:1], want[2:]...)

	view := ecs.NewView[struct{ *Position }](storage)
	var got []ecs.EntityId
	for id := range view.Iter() {
		got = append(got, id)
	}
	assert.Equal(t, want, got)
}

func TestViewEntityIdField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := mustSpawn(storage, Name{Value: "a"})

	view := ecs.NewView[struct {
		Id ecs.EntityId
		*Name
	}](storage)
	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, id, item.Id)

	embedded := ecs.NewView[struct {
		ecs.EntityId
		*Name
	}](storage)
	for _, v := range embedded.Iter() {
		assert.Equal(t, id, v.EntityId)
	}
}

func TestViewOptional(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	withHealth := mustSpawn(storage, Position{}, Health{Current: 5})
	without := mustSpawn(storage, Position{})

	view := ecs.NewView[struct {
		Position *Position
		Health   *Health `ecs:"optional"`
	}](storage)

	a := view.Get(withHealth)
	require.NotNil(t, a)
	require.NotNil(t, a.Health)
	assert.Equal(t, 5, a.Health.Current)

	b := view.Get(without)
	require.NotNil(t, b)
	assert.Nil(t, b.Health)

	count := 0
	for range view.Iter() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestViewOptionalResetBetweenItems(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	mustSpawn(storage, Position{}, Health{Current: 5})
	mustSpawn(storage, Position{})

	view := ecs.NewView[struct {
		Position *Position
		Health   *Health `ecs:"optional"`
	}](storage)

	var healths []*Health
	for item := range view.Values() {
		healths = append(healths, item.Health)
	}
	require.Len(t, healths, 2)
	assert.NotNil(t, healths[0])
	assert.Nil(t, healths[1])
}

func TestViewEmptyStorage(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct{ *Position }](storage)

	for range view.Iter() {
		t.Fatal("expected no results")
	}
}

func TestViewUnregisteredWarnsOnce(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	storage := ecs.NewStorage(newTestRegistry(), ecs.WithLogger(zap.New(core)))
	mustSpawn(storage, Position{})

	type Unknown struct{}
	view := ecs.NewView[struct {
		*Position
		*Unknown
	}](storage)

	for range 3 {
		for range view.Iter() {
			t.Fatal("unregistered required kind must match nothing")
		}
	}
	assert.Equal(t, 1, logs.Len())
}

func TestViewUnregisteredOptionalIgnored(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := mustSpawn(storage, Position{})

	type Unknown struct{}
	view := ecs.NewView[struct {
		Position *Position
		Unknown  *Unknown `ecs:"optional"`
	}](storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Nil(t, item.Unknown)
}

func TestViewDeleteDuringIteration(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := mustSpawn(storage, Position{})
	b := mustSpawn(storage, Position{})

	view := ecs.NewView[struct{ *Position }](storage)
	var seen []ecs.EntityId
	for id := range view.Iter() {
		seen = append(seen, id)
		if id == a {
			storage.Delete(b)
		}
	}
	assert.Equal(t, []ecs.EntityId{a}, seen)
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct {
		Position *Position
		Health   *Health `ecs:"optional"`
	}](storage)

	id, err := view.Spawn(struct {
		Position *Position
		Health   *Health `ecs:"optional"`
	}{Position: &Position{X: 4}})
	require.NoError(t, err)

	assert.Equal(t, float32(4), ecs.ReadComponent[Position](storage, id).X)
	assert.Nil(t, ecs.ReadComponent[Health](storage, id))
}

func TestViewInvalidDefinitions(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() {
		ecs.NewView[int](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct{ Position Position }](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position *Position `ecs:"sometimes"`
		}](storage)
	})
}
