package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems implement this interface and can include Query fields for accessing
// entities, as well as custom state fields that persist between frames. C is the type of the
// per-frame resources handed to every system through UpdateFrame.Resources.
type System[C any] interface {
	Execute(frame *UpdateFrame[C])
}
