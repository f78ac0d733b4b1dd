package term

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/sokoban/sokoban"
)

var specialKeys = map[tcell.Key]sokoban.Key{
	tcell.KeyUp:    sokoban.KeyUp,
	tcell.KeyDown:  sokoban.KeyDown,
	tcell.KeyLeft:  sokoban.KeyLeft,
	tcell.KeyRight: sokoban.KeyRight,
	tcell.KeyEnter: sokoban.KeyEnter,
}

var runeKeys = map[rune]sokoban.Key{
	'w': sokoban.KeyW,
	'a': sokoban.KeyA,
	's': sokoban.KeyS,
	'd': sokoban.KeyD,
	'r': sokoban.KeyR,
	'n': sokoban.KeyN,
}

// TranslateKey converts a tcell key event. Letters match in either case so caps lock
// does not stop the player.
func TranslateKey(ev *tcell.EventKey) sokoban.KeyEvent {
	out := sokoban.KeyEvent{Mods: translateMods(ev.Modifiers())}
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if unicode.IsUpper(r) {
			out.Mods |= sokoban.ModShift
		}
		out.Key = runeKeys[unicode.ToLower(r)]
		return out
	}
	out.Key = specialKeys[ev.Key()]
	return out
}

func translateMods(m tcell.ModMask) sokoban.Modifier {
	var mods sokoban.Modifier
	if m&tcell.ModShift != 0 {
		mods |= sokoban.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= sokoban.ModControl
	}
	if m&tcell.ModAlt != 0 {
		mods |= sokoban.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= sokoban.ModSuper
	}
	return mods
}

// isQuit reports the keys that leave the game: Esc, Ctrl-C and q.
func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
