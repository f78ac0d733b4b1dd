package ecs

import "errors"

var (
	// ErrDuplicateComponent is returned when a component type is registered twice.
	ErrDuplicateComponent = errors.New("ecs: component type already registered")
	// ErrUnregisteredComponent is returned when a component of an unregistered type is attached.
	ErrUnregisteredComponent = errors.New("ecs: component type not registered")
	// ErrNoSuchEntity is returned when operating on a deleted or never-spawned entity.
	ErrNoSuchEntity = errors.New("ecs: no such entity")
	// ErrInvalidComponent is returned for values that cannot be stored as components.
	ErrInvalidComponent = errors.New("ecs: invalid component value")
)
