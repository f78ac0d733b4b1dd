package ecs_test

import "github.com/plus3/sokoban/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

type Inventory struct {
	Items []string
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	mustRegister(ecs.RegisterComponent[Position](registry))
	mustRegister(ecs.RegisterComponent[Velocity](registry))
	mustRegister(ecs.RegisterComponent[Name](registry))
	mustRegister(ecs.RegisterComponent[Health](registry))
	mustRegister(ecs.RegisterComponent[PlayerController](registry))
	mustRegister(ecs.RegisterComponent[Score](registry))
	mustRegister(ecs.RegisterComponent[Tag](registry))
	mustRegister(ecs.RegisterComponent[Inventory](registry))
	return registry
}

func mustRegister(err error) {
	if err != nil {
		panic(err)
	}
}

func mustSpawn(storage *ecs.Storage, components ...any) ecs.EntityId {
	id, err := storage.Spawn(components...)
	if err != nil {
		panic(err)
	}
	return id
}
