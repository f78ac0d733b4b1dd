package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/plus3/sokoban/sokoban"
)

// SampleRate of the shared audio context. Sounds are resampled on decode.
const SampleRate = 44100

// AudioSink decodes WAV sounds into ebiten players. Ebiten allows a single audio context per
// process, so create one sink and share it.
type AudioSink struct {
	context *audio.Context
}

func NewAudioSink() *AudioSink {
	return &AudioSink{context: audio.NewContext(SampleRate)}
}

func (s *AudioSink) Load(name string, data []byte, loop bool) (sokoban.Track, error) {
	stream, err := wav.DecodeWithSampleRate(s.context.SampleRate(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", name, err)
	}

	var player *audio.Player
	if loop {
		player, err = s.context.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	} else {
		player, err = s.context.NewPlayer(stream)
	}
	if err != nil {
		return nil, fmt.Errorf("player for %q: %w", name, err)
	}
	return &track{player: player}, nil
}

type track struct {
	player *audio.Player
}

// Play restarts the sound from the beginning.
func (t *track) Play() {
	t.player.Pause()
	_ = t.player.SetPosition(0)
	t.player.Play()
}

func (t *track) Stop() {
	t.player.Pause()
}

// Close releases the underlying player.
func (t *track) Close() error {
	return t.player.Close()
}
