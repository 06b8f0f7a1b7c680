package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/glebovdev/atradio/internal/config"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

const (
	MinRows = 5
	MinCols = 40

	listTop      = 3
	reservedRows = 6
)

// styles holds the tview tags for each visual treatment. Terminals with
// fewer than 8 colors get attribute-only tags.
type styles struct {
	title    string
	selected string
	moving   string
	playing  string
	dim      string
	message  string
	key      string
}

func newStyles(screen tcell.Screen, theme config.Theme) styles {
	if screen.Colors() < 8 {
		return styles{
			title:    "[::b]",
			selected: "[::r]",
			moving:   "[::rl]",
			playing:  "[::b]",
			dim:      "[::d]",
			message:  "[::b]",
			key:      "[::b]",
		}
	}
	return styles{
		title:    colorTag(theme.Selected, "b"),
		selected: colorTag(theme.Selected, "r"),
		moving:   colorTag(theme.Selected, "rl"),
		playing:  colorTag(theme.Playing, "b"),
		dim:      colorTag(theme.Dim, "d"),
		message:  colorTag(theme.Selected, "b"),
		key:      colorTag(theme.Selected, "b"),
	}
}

// colorTag builds a tview tag for a theme colour, falling back to the bare
// attributes when the colour is unset or unknown.
func colorTag(color, attrs string) string {
	if config.GetColor(color) == tcell.ColorDefault {
		return fmt.Sprintf("[::%s]", attrs)
	}
	return fmt.Sprintf("[%s::%s]", color, attrs)
}

// VisibleRows is the number of list rows that fit on a screen of height h.
func VisibleRows(h int) int {
	if h-reservedRows < 1 {
		return 1
	}
	return h - reservedRows
}

func TooSmall(w, h int) bool {
	return h < MinRows || w < MinCols
}

// Renderer draws a View onto a tcell screen. It never reads session state.
type Renderer struct {
	screen tcell.Screen
	styles styles
}

func NewRenderer(screen tcell.Screen, theme config.Theme) *Renderer {
	return &Renderer{
		screen: screen,
		styles: newStyles(screen, theme),
	}
}

// Full clears the screen and draws every region.
func (r *Renderer) Full(v View) {
	r.screen.Clear()
	w, h := r.screen.Size()

	r.drawHeader(v, w)
	r.drawList(v, w)
	r.drawStatus(v, w, h)
	r.drawHelp(v, w, h)
}

// Partial repaints only the list and the status lines.
func (r *Renderer) Partial(v View) {
	w, h := r.screen.Size()

	for y := listTop; y < listTop+v.VisibleRows; y++ {
		r.clearRow(y, w)
	}
	r.clearRow(h-3, w)
	r.clearRow(h-2, w)

	r.drawList(v, w)
	r.drawStatus(v, w, h)
}

// SizeWarning replaces everything with a single notice.
func (r *Renderer) SizeWarning() {
	r.screen.Clear()
	w, h := r.screen.Size()
	text := fmt.Sprintf("Terminal too small, need %dx%d", MinCols, MinRows)
	r.print(text, "[::b]", 0, h/2, w, tview.AlignCenter)
}

func (r *Renderer) drawHeader(v View, w int) {
	r.print(config.AppTitle, r.styles.title, 0, 0, w, tview.AlignCenter)
	r.print(headerHint(v), r.styles.dim, 0, 1, w, tview.AlignCenter)
}

func (r *Renderer) drawStatus(v View, w, h int) {
	switch {
	case v.PlayingIndex >= 0:
		playing := nowPlayingText(v)
		line := r.styles.playing + tview.Escape(playing)
		// A message goes after the station so it stays visible.
		if note := fitAfter(v.Message, playing, w); note != "" {
			line += resetTag + "  " + r.styles.message + tview.Escape(note)
		}
		tview.Print(r.screen, line, 0, h-3, w, tview.AlignCenter, tcell.ColorDefault)
	case v.Message != "":
		r.print(v.Message, r.styles.message, 0, h-3, w, tview.AlignCenter)
	default:
		r.print(nowPlayingText(v), r.styles.dim, 0, h-3, w, tview.AlignCenter)
	}

	selection := selectionText(v)
	if len(v.Stations) == 0 {
		r.print(selection, r.styles.dim, 0, h-2, w, tview.AlignCenter)
		return
	}

	url := fitAfter(v.Stations[v.CurrentRow].URL, selection, w)
	if url == "" {
		r.print(selection, "", 0, h-2, w, tview.AlignCenter)
		return
	}

	line := tview.Escape(selection) + "  " + r.styles.dim + tview.Escape(url)
	tview.Print(r.screen, line, 0, h-2, w, tview.AlignCenter, tcell.ColorDefault)
}

func (r *Renderer) drawHelp(v View, w, h int) {
	tview.Print(r.screen, helpText(v.MoveMode, r.styles.key), 0, h-1, w, tview.AlignCenter, tcell.ColorDefault)
}

// print draws plain text, escaped, with a leading style tag.
func (r *Renderer) print(text, tag string, x, y, width, align int) {
	tview.Print(r.screen, tag+tview.Escape(text), x, y, width, align, tcell.ColorDefault)
}

func (r *Renderer) clearRow(y, w int) {
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

// centeredX is the column where text of the given width starts when centered.
func centeredX(text string, w int) int {
	x := (w - runewidth.StringWidth(text)) / 2
	if x < 0 {
		return 0
	}
	return x
}
