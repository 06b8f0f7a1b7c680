package ui

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/glebovdev/atradio/internal/station"
	"github.com/glebovdev/atradio/internal/store"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

// textField is a single-line editor over runes.
type textField struct {
	value  []rune
	cursor int
}

func newTextField(initial string) *textField {
	value := []rune(initial)
	return &textField{value: value, cursor: len(value)}
}

func (f *textField) String() string {
	return string(f.value)
}

func (f *textField) insert(text string) {
	var runes []rune
	for _, r := range text {
		if unicode.IsPrint(r) {
			runes = append(runes, r)
		}
	}
	if len(runes) == 0 {
		return
	}

	value := make([]rune, 0, len(f.value)+len(runes))
	value = append(value, f.value[:f.cursor]...)
	value = append(value, runes...)
	value = append(value, f.value[f.cursor:]...)
	f.value = value
	f.cursor += len(runes)
}

func (f *textField) backspace() {
	if f.cursor == 0 {
		return
	}
	f.value = append(f.value[:f.cursor-1], f.value[f.cursor:]...)
	f.cursor--
}

func (f *textField) deleteForward() {
	if f.cursor >= len(f.value) {
		return
	}
	f.value = append(f.value[:f.cursor], f.value[f.cursor+1:]...)
}

func (f *textField) left() {
	if f.cursor > 0 {
		f.cursor--
	}
}

func (f *textField) right() {
	if f.cursor < len(f.value) {
		f.cursor++
	}
}

func (f *textField) home() { f.cursor = 0 }
func (f *textField) end()  { f.cursor = len(f.value) }

// window returns the slice of the value to show in width columns and the
// cursor column inside it, scrolling so the cursor stays visible.
func (f *textField) window(width int) (string, int) {
	if width < 1 {
		return "", 0
	}

	start := 0
	for runewidth.StringWidth(string(f.value[start:f.cursor])) >= width {
		start++
	}

	end := start
	used := 0
	for end < len(f.value) {
		w := runewidth.RuneWidth(f.value[end])
		if used+w > width {
			break
		}
		used += w
		end++
	}

	return string(f.value[start:end]), runewidth.StringWidth(string(f.value[start:f.cursor]))
}

type fieldAction int

const (
	fieldContinue fieldAction = iota
	fieldSubmit
	fieldCancel
)

// handleKey applies one keypress to the field.
func (f *textField) handleKey(ev *tcell.EventKey) fieldAction {
	k := keyOf(ev)
	switch k.Code {
	case tcell.KeyEnter:
		return fieldSubmit
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return fieldCancel
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		f.backspace()
	case tcell.KeyDelete, tcell.KeyCtrlD:
		f.deleteForward()
	case tcell.KeyLeft:
		f.left()
	case tcell.KeyRight:
		f.right()
	case tcell.KeyHome, tcell.KeyCtrlA:
		f.home()
	case tcell.KeyEnd, tcell.KeyCtrlE:
		f.end()
	case tcell.KeyCtrlU:
		f.value = f.value[:0]
		f.cursor = 0
	case tcell.KeyCtrlV:
		text, err := clipboardReadAll()
		if err != nil {
			log.Debug().Err(err).Msg("Clipboard read failed")
			break
		}
		if line, _, _ := strings.Cut(text, "\n"); line != "" {
			f.insert(strings.TrimRight(line, "\r"))
		}
	case tcell.KeyRune:
		f.insert(string(k.Rune))
	}
	return fieldContinue
}

func (d *screenDialogs) EditText(title, label, initial string) (string, bool) {
	return d.runTextField(title, label, initial, store.CheckField)
}

func (d *screenDialogs) EditURL(title, label, initial string) (string, bool) {
	value, ok := d.runTextField(title, label, initial, validateStreamURL)
	return strings.TrimSpace(value), ok
}

func validateStreamURL(value string) error {
	if err := station.ValidateURL(value); err != nil {
		return err
	}
	return store.CheckField(value)
}

// fieldProblem is the inline hint shown under a rejected value.
func fieldProblem(err error) string {
	switch {
	case errors.Is(err, station.ErrInvalidURL):
		return "Not a valid URL, expected scheme://address"
	case errors.Is(err, store.ErrDelimiter):
		return fmt.Sprintf("%q and line breaks are not allowed", store.Delimiter)
	default:
		return err.Error()
	}
}

// runTextField edits until Enter with a value that passes validate, or until
// the user cancels.
func (d *screenDialogs) runTextField(title, label, initial string, validate func(string) error) (string, bool) {
	field := newTextField(initial)
	problem := ""

	defer d.screen.HideCursor()

	paint := func() {
		r := d.centeredRect(60, 7)
		d.drawFrame(r, title)
		d.printIn(r, 1, tview.Escape(label), tview.AlignLeft)

		fieldWidth := r.w - 4
		text, cursor := field.window(fieldWidth)
		y := r.y + 3
		for x := 0; x < fieldWidth; x++ {
			d.screen.SetContent(r.x+2+x, y, ' ', nil, tcell.StyleDefault.Underline(true))
		}
		tview.Print(d.screen, "[::u]"+tview.Escape(text), r.x+2, y, fieldWidth, tview.AlignLeft, tcell.ColorDefault)
		d.screen.ShowCursor(r.x+2+cursor, y)

		if problem != "" {
			d.printIn(r, 5, d.styles.message+tview.Escape(problem), tview.AlignLeft)
		} else {
			d.printIn(r, 5, d.styles.dim+"Enter accept  Esc cancel  Ctrl+V paste", tview.AlignLeft)
		}
	}

	for {
		ev, ok := d.nextKey(paint)
		if !ok {
			return "", false
		}

		switch field.handleKey(ev) {
		case fieldCancel:
			return "", false
		case fieldSubmit:
			value := field.String()
			if validate == nil {
				return value, true
			}
			if err := validate(value); err != nil {
				problem = fieldProblem(err)
				continue
			}
			return value, true
		default:
			problem = ""
		}
	}
}
