package sokoban

import "github.com/plus3/sokoban/ecs"

var keyIntents = map[Key]Intent{
	KeyUp:    {Kind: IntentMove, Direction: Up},
	KeyW:     {Kind: IntentMove, Direction: Up},
	KeyDown:  {Kind: IntentMove, Direction: Down},
	KeyS:     {Kind: IntentMove, Direction: Down},
	KeyLeft:  {Kind: IntentMove, Direction: Left},
	KeyA:     {Kind: IntentMove, Direction: Left},
	KeyRight: {Kind: IntentMove, Direction: Right},
	KeyD:     {Kind: IntentMove, Direction: Right},
	KeyR:     {Kind: IntentRestart},
	KeyN:     {Kind: IntentNext},
	KeyEnter: {Kind: IntentNext},
}

// IntentFor maps a key to the intent it produces. Unrecognized keys yield IntentNone.
func IntentFor(k Key) Intent {
	return keyIntents[k]
}

// InputSystem pops at most one key per frame and turns it into the frame's intent.
type InputSystem struct{}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame[*Resources]) {
	res := frame.Resources
	res.Intent = Intent{}

	key, ok := res.Input.Pop()
	if !ok {
		return
	}
	res.Intent = IntentFor(key)
}
