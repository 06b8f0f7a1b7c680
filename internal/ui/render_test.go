package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/glebovdev/atradio/internal/config"
	"github.com/glebovdev/atradio/internal/station"
	"github.com/mattn/go-runewidth"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

// screenRow returns the text shown on row y, blanks for empty cells.
func screenRow(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(string(runes))
	}
	return b.String()
}

func testView(stations []station.Station, h int) View {
	return View{
		Stations:     stations,
		VisibleRows:  VisibleRows(h),
		PlayingIndex: noIndex,
		Volume:       256,
		MovingIndex:  noIndex,
	}
}

func TestRenderFull(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, config.DefaultConfig().Theme)

	v := testView(abc, 24)
	v.PlayingIndex = 1
	r.Full(v)
	screen.Show()

	checks := []struct {
		row  int
		want string
	}{
		{0, config.AppTitle},
		{3, "A"},
		{4, "▶ B"},
		{5, "C"},
		{21, "Now playing: B, volume 256 of 512"},
		{22, "Selected: A [1/3]"},
		{22, "http://a/u1"},
		{23, "Ins add"},
		{23, "q quit"},
	}
	for _, c := range checks {
		if row := screenRow(screen, c.row); !strings.Contains(row, c.want) {
			t.Errorf("row %d = %q, want it to contain %q", c.row, row, c.want)
		}
	}

	if col := strings.Index(screenRow(screen, 3), "A"); col != 39 {
		t.Errorf("name A starts at column %d, want 39", col)
	}
}

func TestRenderMoveMode(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, config.DefaultConfig().Theme)

	v := testView(abc, 24)
	v.MoveMode = true
	v.MovingIndex = 0
	r.Full(v)
	screen.Show()

	if row := screenRow(screen, 1); !strings.Contains(row, "Moving A") {
		t.Errorf("header hint = %q", row)
	}
	help := screenRow(screen, 23)
	if !strings.Contains(help, "Enter confirm") || strings.Contains(help, "Ins add") {
		t.Errorf("move-mode help = %q", help)
	}
}

func TestRenderScrolledList(t *testing.T) {
	var stations []station.Station
	for i := 0; i < 30; i++ {
		stations = append(stations, station.Station{Name: fmt.Sprintf("S%02d", i), URL: "http://s"})
	}

	screen := newTestScreen(t, 80, 12)
	r := NewRenderer(screen, config.DefaultConfig().Theme)

	v := testView(stations, 12)
	v.Offset = 10
	v.CurrentRow = 12
	r.Full(v)
	screen.Show()

	if row := screenRow(screen, listTop); !strings.Contains(row, "S10") {
		t.Errorf("first list row = %q, want S10", row)
	}
	last := listTop + v.VisibleRows - 1
	if row := screenRow(screen, last); !strings.Contains(row, fmt.Sprintf("S%02d", 10+v.VisibleRows-1)) {
		t.Errorf("last list row = %q", row)
	}
	for y := 0; y < 12; y++ {
		if strings.Contains(screenRow(screen, y), "S09") {
			t.Errorf("row %d shows S09 above the window", y)
		}
	}
}

func TestRenderPartialLeavesHeader(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, config.DefaultConfig().Theme)

	v := testView(abc, 24)
	r.Full(v)
	screen.SetContent(0, 0, '#', nil, tcell.StyleDefault)
	screen.SetContent(0, 23, '#', nil, tcell.StyleDefault)

	v.CurrentRow = 1
	r.Partial(v)
	screen.Show()

	if row := screenRow(screen, 0); !strings.HasPrefix(row, "#") {
		t.Errorf("partial redraw touched the header: %q", row)
	}
	if row := screenRow(screen, 23); !strings.HasPrefix(row, "#") {
		t.Errorf("partial redraw touched the help line: %q", row)
	}
	if row := screenRow(screen, 22); !strings.Contains(row, "Selected: B [2/3]") {
		t.Errorf("status line = %q", row)
	}
}

func TestRenderStatusVariants(t *testing.T) {
	tests := []struct {
		name     string
		stations []station.Station
		message  string
		row      int
		want     string
	}{
		{"idle", abc, "", 21, "Ready to play"},
		{"message replaces ready", abc, "Saved 3 stations", 21, "Saved 3 stations"},
		{"empty list hint", nil, "", listTop, "List is empty"},
		{"empty list status", nil, "", 22, "No station selected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newTestScreen(t, 80, 24)
			r := NewRenderer(screen, config.DefaultConfig().Theme)

			v := testView(tt.stations, 24)
			v.Message = tt.message
			r.Full(v)
			screen.Show()

			if row := screenRow(screen, tt.row); !strings.Contains(row, tt.want) {
				t.Errorf("row %d = %q, want %q", tt.row, row, tt.want)
			}
		})
	}
}

func TestRenderMessageKeepsNowPlaying(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		message     string
		wantMessage string
	}{
		{"fits", 80, "Player is not accepting volume commands", "Player is not accepting volume commands"},
		{"truncated", 60, "Player is not accepting volume commands", "Player is not acceptin..."},
		{"no room", 38, "Player is not accepting volume commands", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newTestScreen(t, tt.width, 24)
			r := NewRenderer(screen, config.DefaultConfig().Theme)

			v := testView(abc, 24)
			v.PlayingIndex = 1
			v.Message = tt.message
			r.Full(v)
			screen.Show()

			row := screenRow(screen, 21)
			if !strings.Contains(row, "Now playing: B, volume 256 of 512") {
				t.Errorf("row 21 = %q, lost the now playing text", row)
			}
			if tt.wantMessage != "" && !strings.Contains(row, tt.wantMessage) {
				t.Errorf("row 21 = %q, want %q", row, tt.wantMessage)
			}
			if tt.wantMessage == "" && strings.Contains(row, "Pl") {
				t.Errorf("row 21 = %q, message should be dropped", row)
			}
		})
	}
}

func TestRenderTruncatesURL(t *testing.T) {
	screen := newTestScreen(t, 40, 10)
	r := NewRenderer(screen, config.DefaultConfig().Theme)

	long := []station.Station{{Name: "Retro", URL: "http://retro.volna.top/Retro/stream/high/quality.mp3"}}
	r.Full(testView(long, 10))
	screen.Show()

	row := strings.TrimRight(screenRow(screen, 8), " ")
	if !strings.HasSuffix(row, ellipsis) {
		t.Errorf("status line = %q, want a truncated url", row)
	}
	if runewidth.StringWidth(row) > 40 {
		t.Errorf("status line is %d columns wide", runewidth.StringWidth(row))
	}
}

func TestFitAfter(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		prefix string
		width  int
		want   string
	}{
		{"fits", "http://a", "Selected: A [1/1]", 80, "http://a"},
		{"truncated", "http://example.com/very/long/path", "Selected: A [1/1]", 30, "http://e..."},
		{"no room", "http://example.com", "Selected: A very long station name [1/1]", 40, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitAfter(tt.url, tt.prefix, tt.width); got != tt.want {
				t.Errorf("fitAfter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSizeWarning(t *testing.T) {
	screen := newTestScreen(t, 30, 4)
	r := NewRenderer(screen, config.DefaultConfig().Theme)

	r.SizeWarning()
	screen.Show()

	if row := screenRow(screen, 2); !strings.Contains(row, "too small") {
		t.Errorf("row 2 = %q", row)
	}
}

func TestTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{40, 5, false},
		{39, 24, true},
		{80, 4, true},
	}
	for _, tt := range tests {
		if got := TooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("TooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestVisibleRows(t *testing.T) {
	if got := VisibleRows(24); got != 18 {
		t.Errorf("VisibleRows(24) = %d, want 18", got)
	}
	if got := VisibleRows(5); got != 1 {
		t.Errorf("VisibleRows(5) = %d, want 1", got)
	}
}
