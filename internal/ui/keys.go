package ui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Key identifies a keypress independent of modifiers. Printable keys carry
// their rune, everything else only its tcell key code.
type Key struct {
	Code tcell.Key
	Rune rune
}

func keyOf(ev *tcell.EventKey) Key {
	if ev.Key() != tcell.KeyRune {
		return Key{Code: ev.Key()}
	}
	// Some terminals report Ctrl+letter as a rune with the Ctrl modifier.
	r := ev.Rune()
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		if lower := unicode.ToLower(r); lower >= 'a' && lower <= 'z' {
			return Key{Code: tcell.KeyCtrlA + tcell.Key(lower-'a')}
		}
	}
	return Key{Code: tcell.KeyRune, Rune: r}
}

func runeKey(r rune) Key {
	return Key{Code: tcell.KeyRune, Rune: r}
}

func codeKey(k tcell.Key) Key {
	return Key{Code: k}
}

type transition func(*Session) Redraw

var keymap = map[Mode]map[Key]transition{
	ModeNormal: normalKeys(),
	ModeMove:   moveKeys(),
}

func normalKeys() map[Key]transition {
	keys := map[Key]transition{
		codeKey(tcell.KeyUp):     (*Session).selectPrev,
		codeKey(tcell.KeyDown):   (*Session).selectNext,
		codeKey(tcell.KeyEnter):  (*Session).playSelected,
		codeKey(tcell.KeyEscape): (*Session).stopPlayback,
		codeKey(tcell.KeyF10):    (*Session).quitKey,
		codeKey(tcell.KeyCtrlC):  (*Session).quitKey,
		codeKey(tcell.KeyInsert): (*Session).addStation,
		codeKey(tcell.KeyDelete): (*Session).deleteStation,
		codeKey(tcell.KeyF2):     (*Session).saveListAs,
		codeKey(tcell.KeyF3):     (*Session).enterMoveMode,
		codeKey(tcell.KeyF4):     (*Session).editStation,
		codeKey(tcell.KeyF5):     (*Session).loadList,
		codeKey(tcell.KeyRight):  (*Session).volumeUp,
		codeKey(tcell.KeyLeft):   (*Session).volumeDown,
	}
	for _, r := range "qQ" {
		keys[runeKey(r)] = (*Session).quitKey
	}
	for _, r := range "+=" {
		keys[runeKey(r)] = (*Session).volumeUp
	}
	for _, r := range "-_" {
		keys[runeKey(r)] = (*Session).volumeDown
	}
	for _, r := range "cC" {
		keys[runeKey(r)] = (*Session).copyURL
	}
	return keys
}

func moveKeys() map[Key]transition {
	return map[Key]transition{
		codeKey(tcell.KeyUp):     (*Session).moveUp,
		codeKey(tcell.KeyDown):   (*Session).moveDown,
		codeKey(tcell.KeyEnter):  (*Session).commitMove,
		codeKey(tcell.KeyEscape): (*Session).cancelMove,
		codeKey(tcell.KeyCtrlC):  (*Session).quitKey,
	}
}
