package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// pickerState is the scrolling selection of a file picker.
type pickerState struct {
	count   int
	current int
	offset  int
	visible int
}

func (p *pickerState) move(delta int) {
	p.current += delta
	if p.current < 0 {
		p.current = 0
	}
	if p.current > p.count-1 {
		p.current = p.count - 1
	}
	if p.current < p.offset {
		p.offset = p.current
	} else if p.current >= p.offset+p.visible {
		p.offset = p.current - p.visible + 1
	}
}

// pickerRows is how many names fit in a picker on a screen of height sh.
func pickerRows(count, sh int) int {
	visible := count
	if limit := sh - 6; visible > limit {
		visible = limit
	}
	if visible < 1 {
		visible = 1
	}
	return visible
}

func (d *screenDialogs) PickFile(title string, files []string) (string, bool) {
	if len(files) == 0 {
		return "", false
	}

	state := &pickerState{count: len(files)}

	paint := func() {
		_, sh := d.screen.Size()
		state.visible = pickerRows(len(files), sh)
		state.move(0)

		r := d.centeredRect(modalWidth, state.visible+4)
		d.drawFrame(r, title)
		for i := 0; i < state.visible && state.offset+i < len(files); i++ {
			index := state.offset + i
			tag := ""
			if index == state.current {
				tag = d.styles.selected
			}
			d.printIn(r, i+1, tag+tview.Escape(files[index]), tview.AlignCenter)
		}
		footer := fmt.Sprintf("%s%d/%d  Enter load  Esc cancel", d.styles.dim, state.current+1, len(files))
		d.printIn(r, r.h-2, footer, tview.AlignCenter)
	}

	for {
		ev, ok := d.nextKey(paint)
		if !ok {
			return "", false
		}

		switch keyOf(ev).Code {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return "", false
		case tcell.KeyEnter:
			return files[state.current], true
		case tcell.KeyUp:
			state.move(-1)
		case tcell.KeyDown:
			state.move(1)
		case tcell.KeyPgUp:
			state.move(-state.visible)
		case tcell.KeyPgDn:
			state.move(state.visible)
		case tcell.KeyHome:
			state.move(-len(files))
		case tcell.KeyEnd:
			state.move(len(files))
		}
	}
}
