package ecs_test

import (
	"fmt"

	"github.com/plus3/sokoban/ecs"
)

// ExampleView demonstrates a one-off join outside of any system.
// Views iterate on demand and visit entities in creation order.
func ExampleView() {
	registry := ecs.NewComponentRegistry()
	_ = ecs.RegisterComponent[Position](registry)
	_ = ecs.RegisterComponent[Velocity](registry)
	storage := ecs.NewStorage(registry)

	_, _ = storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 0})
	_, _ = storage.Spawn(Position{X: 10, Y: 10})
	_, _ = storage.Spawn(Position{X: 20, Y: 20}, Velocity{DX: -1, DY: -1})

	view := ecs.NewView[struct {
		Id ecs.EntityId
		*Position
		*Velocity
	}](storage)

	for item := range view.Values() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
		fmt.Printf("entity %d at (%.0f, %.0f)\n", item.Id, item.Position.X, item.Position.Y)
	}

	// Output:
	// entity 1 at (1, 0)
	// entity 3 at (19, 19)
}

// ExampleView_optional matches entities that may or may not carry a kind.
func ExampleView_optional() {
	registry := ecs.NewComponentRegistry()
	_ = ecs.RegisterComponent[Position](registry)
	_ = ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)

	_, _ = storage.Spawn(Position{X: 10, Y: 10}, Health{Current: 50, Max: 100})
	_, _ = storage.Spawn(Position{X: 30, Y: 30})

	view := ecs.NewView[struct {
		Position *Position
		Health   *Health `ecs:"optional"`
	}](storage)

	for item := range view.Values() {
		if item.Health != nil {
			fmt.Printf("(%.0f, %.0f) health %d/%d\n", item.Position.X, item.Position.Y, item.Health.Current, item.Health.Max)
		} else {
			fmt.Printf("(%.0f, %.0f) invulnerable\n", item.Position.X, item.Position.Y)
		}
	}

	// Output:
	// (10, 10) health 50/100
	// (30, 30) invulnerable
}
