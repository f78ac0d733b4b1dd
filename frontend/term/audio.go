package term

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/plus3/sokoban/sokoban"
)

const (
	SampleRate = beep.SampleRate(44100)
	// resampleQuality is the beep.Resample quality used for the 11kHz assets.
	resampleQuality = 4
)

// BeepSink plays decoded sounds through one mixer. Mixer access is guarded by lock, which is
// speaker.Lock once the speaker is running.
type BeepSink struct {
	rate   beep.SampleRate
	mixer  *beep.Mixer
	lock   func()
	unlock func()
}

// NewBeepSink opens the default audio device.
func NewBeepSink() (*BeepSink, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	s := newMixerSink(SampleRate)
	s.lock, s.unlock = speaker.Lock, speaker.Unlock
	speaker.Play(s.mixer)
	return s, nil
}

func newMixerSink(rate beep.SampleRate) *BeepSink {
	return &BeepSink{
		rate:   rate,
		mixer:  &beep.Mixer{},
		lock:   func() {},
		unlock: func() {},
	}
}

// Close stops playback and releases the device.
func (s *BeepSink) Close() {
	s.lock()
	s.mixer.Clear()
	s.unlock()
	speaker.Close()
}

func (s *BeepSink) Load(name string, data []byte, loop bool) (sokoban.Track, error) {
	buffer, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", name, err)
	}
	return &beepTrack{sink: s, buffer: buffer, loop: loop}, nil
}

func decode(data []byte) (*beep.Buffer, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, err
	}
	return buffer, nil
}

type beepTrack struct {
	sink   *BeepSink
	buffer *beep.Buffer
	loop   bool
	ctrl   *beep.Ctrl
}

// Play starts the sound from the beginning, replacing a previous run of the same track.
func (t *beepTrack) Play() {
	if t.buffer == nil {
		return
	}
	var stream beep.Streamer = t.buffer.Streamer(0, t.buffer.Len())
	if t.loop {
		stream = beep.Loop(-1, t.buffer.Streamer(0, t.buffer.Len()))
	}
	if rate := t.buffer.Format().SampleRate; rate != t.sink.rate {
		stream = beep.Resample(resampleQuality, rate, t.sink.rate, stream)
	}

	t.sink.lock()
	defer t.sink.unlock()
	t.stopLocked()
	t.ctrl = &beep.Ctrl{Streamer: stream}
	t.sink.mixer.Add(t.ctrl)
}

func (t *beepTrack) Stop() {
	t.sink.lock()
	defer t.sink.unlock()
	t.stopLocked()
}

// Close detaches the track from the mixer and drops its decoded samples. Play on a closed
// track does nothing.
func (t *beepTrack) Close() error {
	t.sink.lock()
	defer t.sink.unlock()
	t.stopLocked()
	t.buffer = nil
	return nil
}

// stopLocked detaches the running stream. A Ctrl with no streamer drains from the mixer.
func (t *beepTrack) stopLocked() {
	if t.ctrl != nil {
		t.ctrl.Streamer = nil
		t.ctrl = nil
	}
}
