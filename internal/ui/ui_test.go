package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/glebovdev/atradio/internal/config"
	"github.com/glebovdev/atradio/internal/service"
	"github.com/glebovdev/atradio/internal/station"
)

func newTestUI(t *testing.T, w, h int, stations []station.Station) (*UI, *fakePlayer, tcell.SimulationScreen) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "stations.csv")
	writeList(t, path, stations)

	svc := service.NewStationService(path)
	if err := svc.Load(); err != nil {
		t.Fatal(err)
	}

	screen := newTestScreen(t, w, h)
	p := &fakePlayer{}
	return NewUI(screen, config.DefaultConfig(), svc, p, dir), p, screen
}

func runUntilDone(t *testing.T, ui *UI) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- ui.Run() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run() did not return")
	}
}

func TestRunPlayStopQuit(t *testing.T) {
	ui, p, screen := newTestUI(t, 80, 24, abc)
	feed(screen,
		key(tcell.KeyDown),
		key(tcell.KeyDown),
		key(tcell.KeyEnter),
		key(tcell.KeyEscape),
		typed("q")[0],
	)

	runUntilDone(t, ui)

	expected := []string{"start http://c/u3", "stop"}
	if strings.Join(p.calls, ",") != strings.Join(expected, ",") {
		t.Errorf("calls = %v, want %v", p.calls, expected)
	}
	if ui.session.CurrentRow() != 2 {
		t.Errorf("currentRow = %d, want 2", ui.session.CurrentRow())
	}
	if ui.session.PlayingIndex() != noIndex || p.playing {
		t.Error("player still held after quit")
	}
}

func TestRunQuitWhilePlaying(t *testing.T) {
	ui, p, screen := newTestUI(t, 80, 24, abc)
	feed(screen, key(tcell.KeyEnter), typed("q")[0])

	runUntilDone(t, ui)

	if p.playing {
		t.Error("quit left the player running")
	}
}

func TestShutdownStopsPlayback(t *testing.T) {
	ui, p, _ := newTestUI(t, 80, 24, abc)

	if err := ui.Autoplay(1); err != nil {
		t.Fatal(err)
	}
	if !p.playing {
		t.Fatal("Autoplay(1) did not start playback")
	}

	ui.Shutdown()
	runUntilDone(t, ui)

	if p.playing {
		t.Error("Shutdown() left the player running")
	}
}

func TestAutoplayOutOfRange(t *testing.T) {
	for _, index := range []int{-1, 3, 100} {
		ui, p, _ := newTestUI(t, 80, 24, abc)
		if err := ui.Autoplay(index); err != nil {
			t.Errorf("Autoplay(%d) error = %v", index, err)
		}
		if len(p.calls) != 0 {
			t.Errorf("Autoplay(%d) calls = %v", index, p.calls)
		}
	}
}

func TestRunTooSmallBlocksUntilKey(t *testing.T) {
	ui, p, screen := newTestUI(t, 30, 4, abc)
	feed(screen, key(tcell.KeyEnter), key(tcell.KeyCtrlC))

	runUntilDone(t, ui)

	if len(p.calls) != 0 {
		t.Errorf("keys reached the session while the screen was too small: %v", p.calls)
	}
	if row := screenRow(screen, 2); !strings.Contains(row, "too small") {
		t.Errorf("row 2 = %q", row)
	}
}

func TestFriendlyErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "missing binary",
			input:    `player launch failed: exec: "vlc": executable file not found in $PATH`,
			expected: "Player binary not found.\nCheck player.path in the config.",
		},
		{
			name:     "immediate exit",
			input:    "player launch failed: vlc exited immediately (exit status 1): main interface error: no suitable interface",
			expected: "Player exited right after start:\nmain interface error: no suitable interface",
		},
		{
			name:     "format error",
			input:    "station list format error: /tmp/x.csv line 3: missing URL column",
			expected: "Not a station list:\n/tmp/x.csv line 3: missing URL column",
		},
		{
			name:     "permission denied",
			input:    "station list resource error: failed to write /etc/x.csv: open /etc/x.csv: permission denied",
			expected: "Permission denied.",
		},
		{
			name:     "missing file",
			input:    "station list resource error: failed to read x.csv: open x.csv: no such file or directory",
			expected: "File not found.",
		},
		{
			name:     "refused",
			input:    "player control channel unavailable: dial tcp 127.0.0.1:4212: connect: connection refused",
			expected: "Player is not accepting commands.",
		},
		{
			name:     "short passthrough",
			input:    "something odd",
			expected: "something odd",
		},
		{
			name:     "long truncated",
			input:    strings.Repeat("x", 150),
			expected: strings.Repeat("x", 100) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := friendlyErrorMessage(tt.input); got != tt.expected {
				t.Errorf("friendlyErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Key
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), runeKey('q')},
		{"special", tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModNone), codeKey(tcell.KeyF3)},
		{"ctrl rune", tcell.NewEventKey(tcell.KeyRune, 'v', tcell.ModCtrl), codeKey(tcell.KeyCtrlV)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyOf(tt.ev); got != tt.want {
				t.Errorf("keyOf() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestModeAndRedrawStrings(t *testing.T) {
	if ModeMove.String() != "move" || ModeNormal.String() != "normal" {
		t.Error("unexpected Mode names")
	}
	if RedrawPartial.String() != "partial" || Redraw(9).String() != "unknown" {
		t.Error("unexpected Redraw names")
	}
}
