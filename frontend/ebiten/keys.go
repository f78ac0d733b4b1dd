package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/sokoban/sokoban"
)

// Held keys repeat after repeatDelay ticks, then every repeatInterval ticks.
const (
	repeatDelay    = 18
	repeatInterval = 6
)

var keyMap = map[ebiten.Key]sokoban.Key{
	ebiten.KeyArrowUp:    sokoban.KeyUp,
	ebiten.KeyArrowDown:  sokoban.KeyDown,
	ebiten.KeyArrowLeft:  sokoban.KeyLeft,
	ebiten.KeyArrowRight: sokoban.KeyRight,
	ebiten.KeyW:          sokoban.KeyW,
	ebiten.KeyA:          sokoban.KeyA,
	ebiten.KeyS:          sokoban.KeyS,
	ebiten.KeyD:          sokoban.KeyD,
	ebiten.KeyR:          sokoban.KeyR,
	ebiten.KeyN:          sokoban.KeyN,
	ebiten.KeyEnter:      sokoban.KeyEnter,
}

// TranslateKey maps an ebiten key to the game's key set. Keys the game does not know
// come back as KeyUnknown and are still delivered.
func TranslateKey(k ebiten.Key) sokoban.Key {
	if key, ok := keyMap[k]; ok {
		return key
	}
	return sokoban.KeyUnknown
}

// repeatState reports whether a key held for d ticks fires this tick, and whether that
// firing is a repeat.
func repeatState(d int) (fire, repeat bool) {
	switch {
	case d == 1:
		return true, false
	case d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0:
		return true, true
	}
	return false, false
}

func modifiers() sokoban.Modifier {
	var mods sokoban.Modifier
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= sokoban.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= sokoban.ModControl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= sokoban.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= sokoban.ModSuper
	}
	return mods
}

// pollKeys appends this tick's key events, fresh presses first in the order ebiten reports them.
func pollKeys(dst []sokoban.KeyEvent, pressed []ebiten.Key) ([]sokoban.KeyEvent, []ebiten.Key) {
	pressed = inpututil.AppendPressedKeys(pressed[:0])
	mods := modifiers()
	for _, k := range pressed {
		fire, repeat := repeatState(inpututil.KeyPressDuration(k))
		if !fire {
			continue
		}
		key := TranslateKey(k)
		if key == sokoban.KeyUnknown && isModifier(k) {
			continue
		}
		dst = append(dst, sokoban.KeyEvent{Key: key, Mods: mods, Repeat: repeat})
	}
	return dst, pressed
}

func isModifier(k ebiten.Key) bool {
	switch k {
	case ebiten.KeyShift, ebiten.KeyShiftLeft, ebiten.KeyShiftRight,
		ebiten.KeyControl, ebiten.KeyControlLeft, ebiten.KeyControlRight,
		ebiten.KeyAlt, ebiten.KeyAltLeft, ebiten.KeyAltRight,
		ebiten.KeyMeta, ebiten.KeyMetaLeft, ebiten.KeyMetaRight:
		return true
	}
	return false
}
