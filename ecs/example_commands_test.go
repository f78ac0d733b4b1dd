package ecs_test

import (
	"fmt"

	"github.com/plus3/sokoban/ecs"
)

type CleanupSystem struct {
	Entities ecs.Query[struct {
		Id ecs.EntityId
		*Health
	}]
}

func (s *CleanupSystem) Execute(frame *ecs.UpdateFrame[struct{}]) {
	for item := range s.Entities.Values() {
		if item.Health.Current <= 0 {
			frame.Commands.Delete(item.Id)
		}
	}
}

// ExampleCommands queues structural changes during a frame. They are applied once every
// system has run, so iteration never observes a half-changed storage.
func ExampleCommands() {
	registry := ecs.NewComponentRegistry()
	_ = ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)

	_, _ = storage.Spawn(Health{Current: 0, Max: 10})
	_, _ = storage.Spawn(Health{Current: 5, Max: 10})
	_, _ = storage.Spawn(Health{Current: -1, Max: 10})

	scheduler := ecs.NewScheduler[struct{}](storage)
	scheduler.Register(&CleanupSystem{})
	_ = scheduler.Once(0, struct{}{})

	fmt.Println("remaining:", storage.Len())

	// Output:
	// remaining: 1
}
