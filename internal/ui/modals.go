package ui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const modalWidth = 50

func friendlyErrorMessage(errStr string) string {
	if strings.HasPrefix(errStr, "player launch failed") {
		if strings.Contains(errStr, "executable file not found") || strings.Contains(errStr, "no such file or directory") {
			return "Player binary not found.\nCheck player.path in the config."
		}
		if idx := strings.LastIndex(errStr, "): "); idx > 0 && strings.Contains(errStr, "exited immediately") {
			return "Player exited right after start:\n" + errStr[idx+3:]
		}
	}
	if strings.HasPrefix(errStr, "station list format error") {
		if idx := strings.Index(errStr, ": "); idx > 0 {
			return "Not a station list:\n" + errStr[idx+2:]
		}
		return "Not a station list."
	}
	if strings.Contains(errStr, "permission denied") {
		return "Permission denied."
	}
	if strings.Contains(errStr, "no such file or directory") {
		return "File not found."
	}
	if strings.Contains(errStr, "connection refused") {
		return "Player is not accepting commands."
	}

	if len(errStr) > 100 {
		return errStr[:100] + "..."
	}
	return errStr
}

// Confirm shows message with a row of choices. Left/Right or Tab cycle the
// highlight, the first letter or the 1-based number of a choice picks it
// directly, Enter picks the highlighted one and Esc cancels.
func (d *screenDialogs) Confirm(message string, choices ...string) int {
	if len(choices) == 0 {
		return NoChoice
	}

	lines := strings.Split(message, "\n")
	highlighted := 0

	paint := func() {
		r := d.centeredRect(modalWidth, len(lines)+5)
		d.drawFrame(r, "Confirm")
		for i, line := range lines {
			d.printIn(r, i+1, tview.Escape(line), tview.AlignCenter)
		}
		d.printIn(r, len(lines)+2, d.choiceRow(choices, highlighted), tview.AlignCenter)
	}

	for {
		ev, ok := d.nextKey(paint)
		if !ok {
			return NoChoice
		}

		switch keyOf(ev).Code {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return NoChoice
		case tcell.KeyEnter:
			return highlighted
		case tcell.KeyRight, tcell.KeyDown, tcell.KeyTab:
			highlighted = (highlighted + 1) % len(choices)
		case tcell.KeyLeft, tcell.KeyUp, tcell.KeyBacktab:
			highlighted = (highlighted - 1 + len(choices)) % len(choices)
		case tcell.KeyRune:
			if i := choiceHotkey(choices, keyOf(ev).Rune); i != NoChoice {
				return i
			}
		}
	}
}

// choiceHotkey maps a digit or a choice's first letter to its index.
func choiceHotkey(choices []string, r rune) int {
	if r >= '1' && r <= '9' {
		if i := int(r - '1'); i < len(choices) {
			return i
		}
		return NoChoice
	}
	for i, choice := range choices {
		first, _ := utf8.DecodeRuneInString(choice)
		if first != utf8.RuneError && unicode.ToLower(first) == unicode.ToLower(r) {
			return i
		}
	}
	return NoChoice
}

func (d *screenDialogs) choiceRow(choices []string, highlighted int) string {
	parts := make([]string, len(choices))
	for i, choice := range choices {
		label := fmt.Sprintf(" %s ", tview.Escape(choice))
		if i == highlighted {
			parts[i] = d.styles.selected + label + resetTag
		} else {
			parts[i] = label
		}
	}
	return strings.Join(parts, "   ")
}

func (d *screenDialogs) Notify(title, message string) {
	lines := strings.Split(message, "\n")

	paint := func() {
		r := d.centeredRect(modalWidth, len(lines)+5)
		d.drawFrame(r, title)
		for i, line := range lines {
			d.printIn(r, i+1, tview.Escape(line), tview.AlignCenter)
		}
		d.printIn(r, len(lines)+2, d.styles.dim+"Press any key", tview.AlignCenter)
	}

	d.nextKey(paint)
}
