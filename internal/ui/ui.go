package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/glebovdev/atradio/internal/config"
	"github.com/glebovdev/atradio/internal/service"
	"github.com/rs/zerolog/log"
)

type UI struct {
	screen   tcell.Screen
	session  *Session
	renderer *Renderer
}

// NewUI wires a session to an initialized screen. workDir is where lists
// are exported to and imported from.
func NewUI(screen tcell.Screen, cfg *config.Config, stationService *service.StationService, player PlayerControl, workDir string) *UI {
	renderer := NewRenderer(screen, cfg.Theme)
	dialogs := newScreenDialogs(screen, renderer.styles)

	return &UI{
		screen:   screen,
		session:  NewSession(stationService, player, dialogs, SettingsFromConfig(cfg, workDir)),
		renderer: renderer,
	}
}

// Autoplay starts the station at index before the loop runs. Out of range
// indexes mean no autoplay.
func (ui *UI) Autoplay(index int) error {
	if index < 0 || index >= ui.session.stations.StationCount() {
		if index >= 0 {
			log.Warn().Int("index", index).Msg("Autoplay index out of range, ignoring")
		}
		return nil
	}
	return ui.session.PlayIndex(index)
}

// Shutdown asks the loop to quit from another goroutine, e.g. a signal handler.
func (ui *UI) Shutdown() {
	if err := ui.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		log.Warn().Err(err).Msg("Failed to post shutdown event")
	}
}

// Run reads one event per iteration and redraws as the handled transition
// requests, until the session is done.
func (ui *UI) Run() error {
	ui.screen.SetTitle(config.AppName)
	ui.screen.HideCursor()

	pending := RedrawFull
	for !ui.session.Done() {
		w, h := ui.screen.Size()
		if TooSmall(w, h) {
			ui.renderer.SizeWarning()
			ui.screen.Show()
			ui.waitForRetry()
			pending = RedrawFull
			continue
		}

		ui.session.SetViewport(VisibleRows(h))
		switch pending {
		case RedrawFull:
			ui.renderer.Full(ui.session.View())
			ui.screen.Show()
		case RedrawPartial:
			ui.renderer.Partial(ui.session.View())
			ui.screen.Show()
		}

		pending = ui.handleEvent(ui.screen.PollEvent())
	}

	log.Debug().Msg("Main loop finished")
	return nil
}

func (ui *UI) handleEvent(ev tcell.Event) Redraw {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ui.session.HandleKey(keyOf(ev))
	case *tcell.EventResize:
		ui.screen.Sync()
		return RedrawFull
	case *tcell.EventInterrupt, nil:
		ui.session.Interrupt()
	}
	return RedrawNone
}

// waitForRetry blocks until the next key or resize while the terminal is too
// small. Quit keys and interrupts still end the session.
func (ui *UI) waitForRetry() {
	switch ev := ui.screen.PollEvent().(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			ui.session.Interrupt()
		}
	case *tcell.EventResize:
		ui.screen.Sync()
	case *tcell.EventInterrupt, nil:
		ui.session.Interrupt()
	}
}
