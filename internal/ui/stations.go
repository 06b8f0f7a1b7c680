package ui

import "github.com/rivo/tview"

const playingMarker = "▶ "

// rowTag picks the single treatment for the station at index: selection
// wins over playing, which wins over plain.
func (r *Renderer) rowTag(v View, index int) string {
	switch {
	case index == v.CurrentRow && v.MoveMode:
		return r.styles.moving
	case index == v.CurrentRow:
		return r.styles.selected
	case index == v.PlayingIndex:
		return r.styles.playing
	default:
		return ""
	}
}

func (r *Renderer) drawList(v View, w int) {
	if len(v.Stations) == 0 {
		r.print(emptyListHint, r.styles.dim, 0, listTop, w, tview.AlignCenter)
		return
	}

	end := v.Offset + v.VisibleRows
	if end > len(v.Stations) {
		end = len(v.Stations)
	}

	for index := v.Offset; index < end; index++ {
		y := listTop + index - v.Offset
		name := v.Stations[index].Name
		x := centeredX(name, w)

		r.print(name, r.rowTag(v, index), x, y, w-x, tview.AlignLeft)

		if index == v.PlayingIndex && x >= 2 {
			r.print(playingMarker, r.styles.playing, x-2, y, 2, tview.AlignLeft)
		}
	}
}
