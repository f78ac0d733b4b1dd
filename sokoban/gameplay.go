package sokoban

import (
	"iter"

	"github.com/plus3/sokoban/ecs"
	"go.uber.org/zap"
)

type blocker struct {
	id       ecs.EntityId
	position *Position
	box      *Box
	movable  bool
}

// GameplaySystem resolves the frame's intent: player steps, box pushes, the win check and
// level switching.
type GameplaySystem struct {
	Players ecs.Query[struct {
		Id ecs.EntityId
		*Player
		*Position
		*Directional
	}]
	Blockers ecs.Query[struct {
		Id       ecs.EntityId
		Position *Position
		Blocking *Blocking
		Movable  *Movable `ecs:"optional"`
		Box      *Box     `ecs:"optional"`
	}]
	Boxes ecs.Query[boxView]
	Spots ecs.Query[spotView]
}

type boxView struct {
	*Position
	*Box
}

type spotView struct {
	*Position
	*Spot
}

func (s *GameplaySystem) Execute(frame *ecs.UpdateFrame[*Resources]) {
	res := frame.Resources
	intent := res.Intent
	res.Intent = Intent{}

	switch intent.Kind {
	case IntentMove:
		if res.State.Won() {
			return
		}
		s.move(res, intent.Direction)
	case IntentRestart:
		s.switchLevel(frame, res.State.Level)
	case IntentNext:
		if res.State.Won() {
			s.switchLevel(frame, res.State.Level+1)
		}
	}
}

func (s *GameplaySystem) switchLevel(frame *ecs.UpdateFrame[*Resources], level int) {
	loader := frame.Resources.Loader
	if loader == nil {
		return
	}
	frame.Commands.Defer(func() error {
		return loader.Load(level)
	})
}

func (s *GameplaySystem) occupancy() map[[2]int][]blocker {
	cells := make(map[[2]int][]blocker, s.Blockers.Len())
	for b := range s.Blockers.Values() {
		cell := b.Position.Cell()
		cells[cell] = append(cells[cell], blocker{
			id:       b.Id,
			position: b.Position,
			box:      b.Box,
			movable:  b.Movable != nil,
		})
	}
	return cells
}

func (s *GameplaySystem) move(res *Resources, dir Direction) {
	player, ok := s.Players.First()
	if !ok {
		return
	}

	// Facing follows the intent whether or not the step succeeds.
	player.Directional.Facing = dir

	target := player.Position.Step(dir)
	if !res.Level.InBounds(target) {
		s.reject(res, player.Id, target)
		return
	}

	cells := s.occupancy()
	ahead := cells[target.Cell()]

	if len(ahead) > 0 {
		if len(ahead) > 1 || !ahead[0].movable {
			s.reject(res, player.Id, target)
			return
		}

		pushed := ahead[0]
		beyond := pushed.position.Step(dir)
		if !res.Level.InBounds(beyond) || len(cells[beyond.Cell()]) > 0 {
			s.reject(res, player.Id, target)
			return
		}

		*pushed.position = beyond
		res.State.Pushes++
		res.Events.Push(Event{Kind: EventEntityMoved, Entity: pushed.id, To: beyond})
		if pushed.box != nil {
			s.landed(res, pushed, beyond)
		}
	}

	*player.Position = target
	res.State.Moves++
	res.Events.Push(Event{Kind: EventEntityMoved, Entity: player.Id, To: target})

	if len(ahead) > 0 && !res.State.Won() && s.solved() {
		res.State.Gameplay = Won
		res.Events.Push(Event{Kind: EventLevelWon})
		res.Logger.Info("level won",
			zap.Int("level", res.State.Level),
			zap.Int("moves", res.State.Moves),
			zap.Int("pushes", res.State.Pushes))
	}
}

func (s *GameplaySystem) reject(res *Resources, player ecs.EntityId, target Position) {
	res.Events.Push(Event{Kind: EventPlayerHitObstacle, Entity: player, To: target})
}

func (s *GameplaySystem) landed(res *Resources, pushed blocker, at Position) {
	for spot := range s.Spots.Values() {
		if spot.Position.Cell() == at.Cell() {
			res.Events.Push(Event{
				Kind:    EventBoxPlacedOnSpot,
				Entity:  pushed.id,
				To:      at,
				Correct: spot.Spot.Color == pushed.box.Color,
			})
			return
		}
	}
}

func (s *GameplaySystem) solved() bool {
	return coveredSpots(boxColors(s.Boxes.Values()), s.Spots.Values())
}

// Solved reports whether every spot in storage is covered by a box of its color.
// A level without spots is solved.
func Solved(storage *ecs.Storage) bool {
	boxes := boxColors(ecs.NewView[boxView](storage).Values())
	return coveredSpots(boxes, ecs.NewView[spotView](storage).Values())
}

func boxColors(boxes iter.Seq[boxView]) map[[2]int]Color {
	colors := make(map[[2]int]Color)
	for b := range boxes {
		colors[b.Position.Cell()] = b.Box.Color
	}
	return colors
}

func coveredSpots(boxes map[[2]int]Color, spots iter.Seq[spotView]) bool {
	for spot := range spots {
		color, ok := boxes[spot.Position.Cell()]
		if !ok || color != spot.Spot.Color {
			return false
		}
	}
	return true
}
