package ui

import (
	"time"

	"github.com/glebovdev/atradio/internal/config"
	"github.com/glebovdev/atradio/internal/service"
	"github.com/glebovdev/atradio/internal/station"
)

const noIndex = -1

// Mode is the interaction mode of the main loop.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeMove:
		return "move"
	default:
		return "unknown"
	}
}

// Redraw tells the loop how much of the screen a transition invalidated.
type Redraw int

const (
	RedrawNone Redraw = iota
	RedrawPartial
	RedrawFull
)

func (r Redraw) String() string {
	switch r {
	case RedrawNone:
		return "none"
	case RedrawPartial:
		return "partial"
	case RedrawFull:
		return "full"
	default:
		return "unknown"
	}
}

// PlayerControl is the part of the player controller the loop drives.
type PlayerControl interface {
	Start(url string) error
	Stop()
	SetVolume(level int) error
	Playing() bool
}

// Settings are the config values transitions depend on.
type Settings struct {
	InitialVolume   int
	VolumeStep      int
	ExportExtension string
	WorkDir         string
}

func SettingsFromConfig(cfg *config.Config, workDir string) Settings {
	return Settings{
		InitialVolume:   cfg.Volume.Initial,
		VolumeStep:      cfg.Volume.Step,
		ExportExtension: cfg.ExportExtension,
		WorkDir:         workDir,
	}
}

// Session is all mutable state of the interaction loop. Transitions receive
// it by pointer and are the only code that changes it.
type Session struct {
	stations *service.StationService
	player   PlayerControl
	dialogs  Dialogs
	settings Settings
	now      func() time.Time

	mode Mode
	done bool

	// selection
	currentRow  int
	offset      int
	visibleRows int

	// playback
	playingIndex  int
	currentVolume int

	// move mode
	movingIndex      int
	moveOrigin       int
	moveModePlaying  bool
	moveSnapshot     []station.Station
	movePlayingIndex int

	message string
}

func NewSession(stations *service.StationService, player PlayerControl, dialogs Dialogs, settings Settings) *Session {
	return &Session{
		stations:      stations,
		player:        player,
		dialogs:       dialogs,
		settings:      settings,
		now:           time.Now,
		mode:          ModeNormal,
		visibleRows:   1,
		playingIndex:  noIndex,
		currentVolume: config.ClampVolume(settings.InitialVolume),
		movingIndex:   noIndex,
	}
}

func (s *Session) Mode() Mode        { return s.mode }
func (s *Session) Done() bool        { return s.done }
func (s *Session) CurrentRow() int   { return s.currentRow }
func (s *Session) Offset() int       { return s.offset }
func (s *Session) PlayingIndex() int { return s.playingIndex }
func (s *Session) Volume() int       { return s.currentVolume }
func (s *Session) Message() string   { return s.message }

// SetViewport records how many list rows fit on screen and keeps the
// selection inside the window.
func (s *Session) SetViewport(visibleRows int) {
	if visibleRows < 1 {
		visibleRows = 1
	}
	s.visibleRows = visibleRows
	s.scrollIntoView()
}

// scrollIntoView moves offset so that offset <= currentRow < offset+visibleRows.
// It reports whether offset changed.
func (s *Session) scrollIntoView() bool {
	before := s.offset
	if s.currentRow < s.offset {
		s.offset = s.currentRow
	} else if s.currentRow >= s.offset+s.visibleRows {
		s.offset = s.currentRow - s.visibleRows + 1
	}
	if s.offset < 0 {
		s.offset = 0
	}
	return s.offset != before
}

// clampSelection restores 0 <= currentRow < count after the list shrank.
func (s *Session) clampSelection() {
	count := s.stations.StationCount()
	if count == 0 {
		s.currentRow = 0
		s.offset = 0
		return
	}
	if s.currentRow >= count {
		s.currentRow = count - 1
	}
	if s.currentRow < 0 {
		s.currentRow = 0
	}
	s.scrollIntoView()
}

func (s *Session) selected() *station.Station {
	return s.stations.GetStation(s.currentRow)
}

// HandleKey runs the transition bound to key in the current mode.
func (s *Session) HandleKey(k Key) Redraw {
	hadMessage := s.message != ""
	s.message = ""

	redraw := RedrawNone
	if transition, ok := keymap[s.mode][k]; ok {
		redraw = transition(s)
	}

	if redraw == RedrawNone && hadMessage {
		redraw = RedrawPartial
	}
	return redraw
}

// Interrupt runs the quit teardown regardless of mode.
func (s *Session) Interrupt() {
	s.quit()
}

// View is a read-only copy of what the renderer needs.
type View struct {
	Stations        []station.Station
	CurrentRow      int
	Offset          int
	VisibleRows     int
	PlayingIndex    int
	Volume          int
	MoveMode        bool
	MoveModePlaying bool
	MovingIndex     int
	Message         string
}

func (s *Session) View() View {
	return View{
		Stations:        s.stations.All(),
		CurrentRow:      s.currentRow,
		Offset:          s.offset,
		VisibleRows:     s.visibleRows,
		PlayingIndex:    s.playingIndex,
		Volume:          s.currentVolume,
		MoveMode:        s.mode == ModeMove,
		MoveModePlaying: s.moveModePlaying,
		MovingIndex:     s.movingIndex,
		Message:         s.message,
	}
}
