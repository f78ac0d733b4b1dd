package ecs

// UpdateFrame is the explicit context of one scheduler pass. Resources carries whatever
// shared state the caller owns (input buffers, game state, sinks); systems never look it up globally.
type UpdateFrame[C any] struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
	Resources C
}

func newUpdateFrame[C any](dt float64, storage *Storage, resources C) *UpdateFrame[C] {
	return &UpdateFrame[C]{
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
		Resources: resources,
	}
}
