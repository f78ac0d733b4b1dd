package sokoban

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/cespare/xxhash/v2"
	"github.com/plus3/sokoban/ecs"
	"go.uber.org/zap"
)

var (
	// ErrLevelNotFound is returned when the map file of a level cannot be read.
	ErrLevelNotFound = errors.New("sokoban: level not found")
	// ErrAssetMissing is returned when a sound file of a level cannot be read.
	ErrAssetMissing = errors.New("sokoban: asset missing")
)

func MapPath(level int) string {
	return fmt.Sprintf("maps/map_%d.txt", level)
}

func InGameMusicPath(level int) string {
	return fmt.Sprintf("sounds/musics/ingame_music_%d.wav", level)
}

func VictoryMusicPath(level int) string {
	return fmt.Sprintf("sounds/musics/victory_music_%d.wav", level)
}

func EffectPath(name string) string {
	return "sounds/effects/" + name + ".wav"
}

// LevelLoader replaces the storage contents with a level read from a resource root.
type LevelLoader struct {
	root    fs.FS
	storage *ecs.Storage
	factory *Factory
	res     *Resources
	audio   AudioSink
	logger  *zap.Logger
}

// Clamp limits level to [0, MaxLevel].
func (l *LevelLoader) Clamp(level int) int {
	return min(max(level, 0), l.res.Vars.MaxLevel)
}

func (l *LevelLoader) readMap(level int) (string, error) {
	data, err := fs.ReadFile(l.root, MapPath(level))
	if err != nil {
		return "", fmt.Errorf("%w: level %d: %w", ErrLevelNotFound, level, err)
	}
	return string(data), nil
}

func (l *LevelLoader) loadTrack(path string, loop bool) (Track, error) {
	data, err := fs.ReadFile(l.root, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetMissing, err)
	}
	track, err := l.audio.Load(path, data, loop)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return track, nil
}

func (l *LevelLoader) loadEffects() error {
	for _, name := range []string{EffectWall, EffectCorrect, EffectIncorrect} {
		if l.res.Sounds.Effects[name] != nil {
			continue
		}
		track, err := l.loadTrack(EffectPath(name), false)
		if err != nil {
			return err
		}
		l.res.Sounds.Effects[name] = track
	}
	return nil
}

// Load clears the storage and builds the given level. The map and every sound are read
// before the storage is touched, so a failed load leaves the current level in place.
func (l *LevelLoader) Load(level int) error {
	level = l.Clamp(level)

	text, err := l.readMap(level)
	if err != nil {
		return err
	}
	grid, err := ParseMap(text)
	if err != nil {
		return fmt.Errorf("level %d: %w", level, err)
	}

	if err := l.loadEffects(); err != nil {
		return fmt.Errorf("level %d: %w", level, err)
	}
	ingame, err := l.loadTrack(InGameMusicPath(level), true)
	if err != nil {
		return fmt.Errorf("level %d: %w", level, err)
	}
	victory, err := l.loadTrack(VictoryMusicPath(level), false)
	if err != nil {
		return errors.Join(fmt.Errorf("level %d: %w", level, err), closeTracks(ingame))
	}

	l.storage.Clear()
	if err := l.factory.BuildGrid(grid); err != nil {
		return errors.Join(fmt.Errorf("level %d: %w", level, err), closeTracks(ingame, victory))
	}

	if err := l.res.Sounds.replaceMusic(ingame, victory); err != nil {
		l.logger.Warn("closing previous music", zap.Error(err))
	}
	ingame.Play()

	l.res.State.reset(level)
	l.res.Level = LevelInfo{
		Number:      level,
		Width:       grid.Width,
		Height:      grid.Height,
		Fingerprint: xxhash.Sum64String(text),
	}
	l.res.Intent = Intent{}
	l.res.Events.Drain()

	if Solved(l.storage) {
		l.res.State.Gameplay = Won
	}

	l.logger.Info("level loaded",
		zap.Int("level", level),
		zap.Int("width", grid.Width),
		zap.Int("height", grid.Height),
		zap.Int("entities", l.storage.Len()),
		zap.String("fingerprint", fmt.Sprintf("%016x", l.res.Level.Fingerprint)),
		zap.Bool("won", l.res.State.Won()))
	return nil
}

// ReloadIfChanged reloads the current level when its map file no longer matches the loaded
// fingerprint. It reports whether a reload happened.
func (l *LevelLoader) ReloadIfChanged() (bool, error) {
	level := l.res.Level.Number
	text, err := l.readMap(level)
	if err != nil {
		return false, err
	}
	if xxhash.Sum64String(text) == l.res.Level.Fingerprint {
		return false, nil
	}
	if err := l.Load(level); err != nil {
		return false, err
	}
	return true, nil
}
