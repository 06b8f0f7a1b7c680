package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// NoChoice is returned by Confirm when the prompt is cancelled.
const NoChoice = -1

// Dialogs are the blocking modal prompts. Each call owns the keyboard until
// it returns; the caller is expected to fully redraw afterwards.
type Dialogs interface {
	// EditText returns the entered text, or ok=false if cancelled. Text that
	// would break a list row is rejected in place.
	EditText(title, label, initial string) (value string, ok bool)
	// EditURL is EditText that keeps re-prompting until the text is a valid URL.
	EditURL(title, label, initial string) (value string, ok bool)
	// Confirm returns the index of the chosen option or NoChoice.
	Confirm(message string, choices ...string) int
	// PickFile returns the chosen name, or ok=false if cancelled.
	PickFile(title string, files []string) (name string, ok bool)
	// Notify shows message until any key is pressed.
	Notify(title, message string)
}

type screenDialogs struct {
	screen tcell.Screen
	styles styles
}

func newScreenDialogs(screen tcell.Screen, st styles) *screenDialogs {
	return &screenDialogs{screen: screen, styles: st}
}

// nextKey paints the dialog and waits for a key. A resize repaints it on a
// clean screen, so paint must lay the dialog out from the current size. An interrupt is handed back to the main loop and ends the
// dialog with ok=false.
func (d *screenDialogs) nextKey(paint func()) (*tcell.EventKey, bool) {
	for {
		paint()
		d.screen.Show()

		switch ev := d.screen.PollEvent().(type) {
		case *tcell.EventKey:
			return ev, true
		case *tcell.EventResize:
			d.screen.Clear()
			d.screen.Sync()
		case *tcell.EventInterrupt:
			_ = d.screen.PostEvent(ev)
			return nil, false
		case nil:
			return nil, false
		}
	}
}

type rect struct {
	x, y, w, h int
}

// centeredRect fits a width x height box in the middle of the screen.
func (d *screenDialogs) centeredRect(width, height int) rect {
	sw, sh := d.screen.Size()
	if width > sw-2 {
		width = sw - 2
	}
	if height > sh {
		height = sh
	}
	return rect{x: (sw - width) / 2, y: (sh - height) / 2, w: width, h: height}
}

// drawFrame clears r and draws a border with the title set into its top edge.
func (d *screenDialogs) drawFrame(r rect, title string) {
	style := tcell.StyleDefault
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			ch := ' '
			switch {
			case y == r.y && x == r.x:
				ch = tview.Borders.TopLeft
			case y == r.y && x == r.x+r.w-1:
				ch = tview.Borders.TopRight
			case y == r.y+r.h-1 && x == r.x:
				ch = tview.Borders.BottomLeft
			case y == r.y+r.h-1 && x == r.x+r.w-1:
				ch = tview.Borders.BottomRight
			case y == r.y || y == r.y+r.h-1:
				ch = tview.Borders.Horizontal
			case x == r.x || x == r.x+r.w-1:
				ch = tview.Borders.Vertical
			}
			d.screen.SetContent(x, y, ch, nil, style)
		}
	}

	if title != "" {
		tview.Print(d.screen, d.styles.title+" "+tview.Escape(title)+" ", r.x+1, r.y, r.w-2, tview.AlignCenter, tcell.ColorDefault)
	}
}

// printIn draws tagged text on one line inside r.
func (d *screenDialogs) printIn(r rect, line int, text string, align int) {
	if line <= 0 || line >= r.h-1 {
		return
	}
	tview.Print(d.screen, text, r.x+2, r.y+line, r.w-4, align, tcell.ColorDefault)
}
