package sokoban

import (
	"errors"

	"github.com/plus3/sokoban/ecs"
	"go.uber.org/zap"
)

// Key is a frontend-independent key code. Frontends translate their native codes into these.
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyR
	KeyN
	KeyEnter
)

var keyNames = map[Key]string{
	KeyUnknown: "unknown",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyW:       "w",
	KeyA:       "a",
	KeyS:       "s",
	KeyD:       "d",
	KeyR:       "r",
	KeyN:       "n",
	KeyEnter:   "enter",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKey is the inverse of Key.String. Unknown names map to KeyUnknown.
func ParseKey(name string) Key {
	for k, n := range keyNames {
		if n == name {
			return k
		}
	}
	return KeyUnknown
}

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// KeyEvent is what a frontend delivers on key down. Only Key reaches the simulation.
type KeyEvent struct {
	Key    Key
	Mods   Modifier
	Repeat bool
}

// InputQueue buffers key codes between the key-down callback and the input system.
// It has one producer and one consumer on the same goroutine.
type InputQueue struct {
	keys []Key
}

func (q *InputQueue) Push(k Key) {
	q.keys = append(q.keys, k)
}

// Pop removes and returns the oldest key.
func (q *InputQueue) Pop() (Key, bool) {
	if len(q.keys) == 0 {
		return KeyUnknown, false
	}
	k := q.keys[0]
	q.keys = q.keys[1:]
	if len(q.keys) == 0 {
		q.keys = nil
	}
	return k, true
}

func (q *InputQueue) Len() int {
	return len(q.keys)
}

func (q *InputQueue) Clear() {
	q.keys = nil
}

// IntentKind is what the player asked for this frame.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentMove
	IntentRestart
	IntentNext
)

// Intent is produced by the input system and consumed by the gameplay system in the same frame.
type Intent struct {
	Kind      IntentKind
	Direction Direction
}

// Gameplay is the level's play state. Won is final until the next load.
type Gameplay int

const (
	Playing Gameplay = iota
	Won
)

func (g Gameplay) String() string {
	if g == Won {
		return "won"
	}
	return "playing"
}

// GameState holds the counters shown in the HUD.
type GameState struct {
	Gameplay Gameplay
	Level    int
	Moves    int
	Pushes   int
}

func (s GameState) Won() bool {
	return s.Gameplay == Won
}

func (s *GameState) reset(level int) {
	*s = GameState{Level: level}
}

// GameVars are tunables read by systems. They do not change during play.
type GameVars struct {
	TileSize int
	MaxLevel int
	HUD      bool
}

// DefaultVars matches the shipped resource root.
func DefaultVars() GameVars {
	return GameVars{
		TileSize: 32,
		MaxLevel: 2,
		HUD:      true,
	}
}

// Track is an opaque handle to a loaded sound. A closed track must not be played again.
type Track interface {
	Play()
	Stop()
	Close() error
}

// AudioSink decodes sound files. Music tracks loop.
type AudioSink interface {
	Load(name string, data []byte, loop bool) (Track, error)
}

const (
	EffectWall      = "wall"
	EffectCorrect   = "correct"
	EffectIncorrect = "incorrect"
)

// SoundLibrary holds the tracks of the current level plus the shared effects.
type SoundLibrary struct {
	InGame  Track
	Victory Track
	Effects map[string]Track
}

// Effect returns the named effect, or nil if it was never loaded.
func (l *SoundLibrary) Effect(name string) Track {
	return l.Effects[name]
}

// replaceMusic closes the current level's music and installs the new tracks.
func (l *SoundLibrary) replaceMusic(ingame, victory Track) error {
	err := closeTracks(l.InGame, l.Victory)
	l.InGame = ingame
	l.Victory = victory
	return err
}

func closeTracks(tracks ...Track) error {
	var errs []error
	for _, t := range tracks {
		if t == nil {
			continue
		}
		t.Stop()
		errs = append(errs, t.Close())
	}
	return errors.Join(errs...)
}

// EventKind tells the audio system what happened during a frame.
type EventKind int

const (
	EventPlayerHitObstacle EventKind = iota
	EventEntityMoved
	EventBoxPlacedOnSpot
	EventLevelWon
)

func (k EventKind) String() string {
	switch k {
	case EventPlayerHitObstacle:
		return "player_hit_obstacle"
	case EventEntityMoved:
		return "entity_moved"
	case EventBoxPlacedOnSpot:
		return "box_placed_on_spot"
	case EventLevelWon:
		return "level_won"
	}
	return "unknown"
}

// Event is a gameplay notification. Correct is only meaningful for EventBoxPlacedOnSpot.
type Event struct {
	Kind    EventKind
	Entity  ecs.EntityId
	To      Position
	Correct bool
}

// EventQueue collects the frame's events until the audio system drains them.
type EventQueue struct {
	events []Event
}

func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Drain returns the queued events and empties the queue.
func (q *EventQueue) Drain() []Event {
	events := q.events
	q.events = nil
	return events
}

func (q *EventQueue) Len() int {
	return len(q.events)
}

// LevelInfo describes the loaded map.
type LevelInfo struct {
	Number      int
	Width       int
	Height      int
	Fingerprint uint64
}

// InBounds reports whether p lies inside the map.
func (l LevelInfo) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < l.Width && p.Y < l.Height
}

// Resources is the explicit context handed to every update system.
type Resources struct {
	Input  *InputQueue
	Intent Intent
	State  *GameState
	Vars   GameVars
	Sounds *SoundLibrary
	Events *EventQueue
	Level  LevelInfo
	Loader *LevelLoader
	Logger *zap.Logger
}

func newResources(vars GameVars, logger *zap.Logger) *Resources {
	return &Resources{
		Input:  &InputQueue{},
		State:  &GameState{},
		Vars:   vars,
		Sounds: &SoundLibrary{Effects: make(map[string]Track)},
		Events: &EventQueue{},
		Logger: logger,
	}
}
