package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/plus3/sokoban/sokoban"
)

// ParseMoves reads key names separated by whitespace or commas. Lines starting with # are
// comments.
func ParseMoves(r io.Reader) ([]sokoban.Key, error) {
	var keys []sokoban.Key
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		for _, field := range fields {
			key := sokoban.ParseKey(strings.ToLower(field))
			if key == sokoban.KeyUnknown {
				return nil, fmt.Errorf("line %d: unknown key %q", line, field)
			}
			keys = append(keys, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// countingCanvas records draw calls without rendering anything.
type countingCanvas struct {
	sprites int
	texts   int
	lastHUD string
}

func (c *countingCanvas) DrawSprite(string, int, int) { c.sprites++ }

func (c *countingCanvas) DrawText(text string, _, _ int) {
	c.texts++
	c.lastHUD = text
}

// Replay feeds keys to g one per frame, repeat times over, drawing after every frame.
// A final idle frame draws the resulting board.
func Replay(g *sokoban.Game, keys []sokoban.Key, repeat int, report *Report) error {
	canvas := &countingCanvas{}
	frame := func() error {
		start := time.Now()
		if err := g.OnUpdate(); err != nil {
			return err
		}
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(start))

		start = time.Now()
		if err := g.OnDraw(canvas); err != nil {
			return err
		}
		report.DrawTime.Samples = append(report.DrawTime.Samples, time.Since(start))
		report.Frames++
		return nil
	}

	begin := time.Now()
	for range max(repeat, 1) {
		for _, key := range keys {
			g.OnKeyDown(sokoban.KeyEvent{Key: key})
			report.Keys++
			if err := frame(); err != nil {
				return err
			}
		}
	}
	if err := frame(); err != nil {
		return err
	}
	report.TotalTime = time.Since(begin)

	state := g.State()
	report.Level = state.Level
	report.Moves = state.Moves
	report.Pushes = state.Pushes
	report.Won = state.Won()
	report.Sprites = canvas.sprites
	report.HUD = canvas.lastHUD
	report.Entities = g.Storage().Len()
	report.UpdateSystems = g.UpdateStats().Systems
	report.DrawSystems = g.DrawStats().Systems
	report.UpdateTime.Finalize()
	report.DrawTime.Finalize()
	return nil
}
