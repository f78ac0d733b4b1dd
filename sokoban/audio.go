package sokoban

import "github.com/plus3/sokoban/ecs"

// AudioSystem turns the frame's gameplay events into sound.
type AudioSystem struct{}

func (s *AudioSystem) Execute(frame *ecs.UpdateFrame[*Resources]) {
	res := frame.Resources
	sounds := res.Sounds

	for _, ev := range res.Events.Drain() {
		switch ev.Kind {
		case EventPlayerHitObstacle:
			play(sounds.Effect(EffectWall))
		case EventBoxPlacedOnSpot:
			if ev.Correct {
				play(sounds.Effect(EffectCorrect))
			} else {
				play(sounds.Effect(EffectIncorrect))
			}
		case EventLevelWon:
			if sounds.InGame != nil {
				sounds.InGame.Stop()
			}
			play(sounds.Victory)
		}
	}
}

func play(t Track) {
	if t != nil {
		t.Play()
	}
}
