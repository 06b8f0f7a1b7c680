package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/glebovdev/atradio/internal/station"
	"github.com/glebovdev/atradio/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Swapped out in tests.
var (
	clipboardWriteAll = clipboard.WriteAll
	clipboardReadAll  = clipboard.ReadAll
)

func (s *Session) selectPrev() Redraw {
	if s.currentRow == 0 {
		return RedrawNone
	}
	s.currentRow--
	if s.scrollIntoView() {
		return RedrawFull
	}
	return RedrawPartial
}

func (s *Session) selectNext() Redraw {
	if s.currentRow >= s.stations.StationCount()-1 {
		return RedrawNone
	}
	s.currentRow++
	if s.scrollIntoView() {
		return RedrawFull
	}
	return RedrawPartial
}

func (s *Session) playSelected() Redraw {
	if s.stations.StationCount() == 0 {
		return RedrawNone
	}
	if err := s.play(s.currentRow); err != nil {
		s.dialogs.Notify("Playback error", friendlyErrorMessage(err.Error()))
	}
	return RedrawFull
}

// PlayIndex starts the station at index, used for autoplay at startup.
func (s *Session) PlayIndex(index int) error {
	if s.stations.GetStation(index) == nil {
		return fmt.Errorf("no station at position %d (list has %d)", index, s.stations.StationCount())
	}
	s.currentRow = index
	s.scrollIntoView()
	return s.play(index)
}

// play keeps playingIndex set exactly while the controller holds a process.
func (s *Session) play(index int) error {
	st := s.stations.GetStation(index)
	if st == nil {
		return nil
	}

	s.playingIndex = noIndex
	if err := s.player.Start(st.URL); err != nil {
		return err
	}

	s.playingIndex = index
	s.currentVolume = s.settings.InitialVolume
	log.Info().Str("station", st.Name).Int("index", index).Msg("Playing")

	// The player starts at its own default level.
	s.applyVolume()
	return nil
}

func (s *Session) stopPlayback() Redraw {
	if s.playingIndex == noIndex && !s.player.Playing() {
		return RedrawNone
	}
	s.player.Stop()
	s.playingIndex = noIndex
	return RedrawFull
}

func (s *Session) quitKey() Redraw {
	s.quit()
	return RedrawNone
}

func (s *Session) quit() {
	s.player.Stop()
	s.playingIndex = noIndex
	s.done = true
	log.Debug().Str("mode", s.mode.String()).Msg("Quit")
}

func (s *Session) addStation() Redraw {
	name, ok := s.dialogs.EditText("New station", "Name:", "")
	if !ok {
		return RedrawFull
	}
	name = strings.TrimSpace(name)
	if name == "" {
		s.message = "Station name cannot be empty"
		return RedrawFull
	}

	url, ok := s.dialogs.EditURL("New station", "URL:", "")
	if !ok {
		return RedrawFull
	}

	snapshot := s.stations.Snapshot()
	index := s.stations.Append(station.Station{Name: name, URL: url})
	if err := s.stations.Persist(); err != nil {
		s.stations.Restore(snapshot)
		s.reportSaveError(err)
		return RedrawFull
	}

	s.currentRow = index
	s.scrollIntoView()
	s.message = fmt.Sprintf("Added %s", name)
	return RedrawFull
}

func (s *Session) deleteStation() Redraw {
	st := s.selected()
	if st == nil {
		return RedrawNone
	}

	if s.dialogs.Confirm(fmt.Sprintf("Delete %s?", st.Name), "Yes", "No") != 0 {
		return RedrawFull
	}

	index := s.currentRow
	snapshot := s.stations.Snapshot()
	if err := s.stations.Remove(index); err != nil {
		s.message = err.Error()
		return RedrawFull
	}
	if err := s.stations.Persist(); err != nil {
		s.stations.Restore(snapshot)
		s.reportSaveError(err)
		return RedrawFull
	}

	switch {
	case s.playingIndex == index:
		s.player.Stop()
		s.playingIndex = noIndex
	case s.playingIndex > index:
		s.playingIndex--
	}

	s.clampSelection()
	s.message = fmt.Sprintf("Deleted %s", st.Name)
	return RedrawFull
}

func (s *Session) editStation() Redraw {
	st := s.selected()
	if st == nil {
		return RedrawNone
	}

	name, ok := s.dialogs.EditText("Edit station", "Name:", st.Name)
	if !ok {
		return RedrawFull
	}
	name = strings.TrimSpace(name)
	if name == "" {
		s.message = "Station name cannot be empty"
		return RedrawFull
	}

	url, ok := s.dialogs.EditURL("Edit station", "URL:", st.URL)
	if !ok {
		return RedrawFull
	}

	snapshot := s.stations.Snapshot()
	if err := s.stations.Replace(s.currentRow, station.Station{Name: name, URL: url}); err != nil {
		s.message = err.Error()
		return RedrawFull
	}
	if err := s.stations.Persist(); err != nil {
		s.stations.Restore(snapshot)
		s.reportSaveError(err)
	}
	return RedrawFull
}

func (s *Session) saveListAs() Redraw {
	name, ok := s.dialogs.EditText("Save list as", "File name:", store.ExportName(s.now()))
	if !ok {
		return RedrawFull
	}
	name = strings.TrimSpace(name)
	if name == "" {
		s.message = "File name cannot be empty"
		return RedrawFull
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.settings.WorkDir, path)
	}
	path = store.WithExtension(path, s.settings.ExportExtension)

	if _, err := os.Stat(path); err == nil {
		question := fmt.Sprintf("%s already exists. Overwrite?", filepath.Base(path))
		if s.dialogs.Confirm(question, "Yes", "No") != 0 {
			return RedrawFull
		}
	}

	if err := s.stations.Export(path); err != nil {
		s.dialogs.Notify("Save failed", friendlyErrorMessage(err.Error()))
		return RedrawFull
	}

	s.message = fmt.Sprintf("Saved %d stations to %s", s.stations.StationCount(), filepath.Base(path))
	return RedrawFull
}

func (s *Session) loadList() Redraw {
	files, err := store.List(s.settings.WorkDir, s.settings.ExportExtension)
	if err != nil {
		s.message = friendlyErrorMessage(err.Error())
		return RedrawPartial
	}

	mainFile := filepath.Base(s.stations.Path())
	files = lo.Filter(files, func(name string, _ int) bool {
		return name != mainFile
	})
	if len(files) == 0 {
		s.message = fmt.Sprintf("No *%s files to load in %s", s.settings.ExportExtension, s.settings.WorkDir)
		return RedrawPartial
	}

	picked, ok := s.dialogs.PickFile("Load list", files)
	if !ok {
		return RedrawFull
	}

	snapshot := s.stations.Snapshot()
	if err := s.stations.Import(filepath.Join(s.settings.WorkDir, picked)); err != nil {
		s.dialogs.Notify("Load failed", friendlyErrorMessage(err.Error()))
		return RedrawFull
	}
	if err := s.stations.Persist(); err != nil {
		s.stations.Restore(snapshot)
		s.reportSaveError(err)
		return RedrawFull
	}

	s.player.Stop()
	s.playingIndex = noIndex
	s.currentRow = 0
	s.offset = 0
	s.message = fmt.Sprintf("Loaded %d stations from %s", s.stations.StationCount(), picked)
	return RedrawFull
}

func (s *Session) copyURL() Redraw {
	st := s.selected()
	if st == nil {
		return RedrawNone
	}
	if err := clipboardWriteAll(st.URL); err != nil {
		log.Debug().Err(err).Msg("Clipboard write failed")
		s.message = "Clipboard is not available"
		return RedrawPartial
	}
	s.message = "URL copied to clipboard"
	return RedrawPartial
}

func (s *Session) reportSaveError(err error) {
	log.Error().Err(err).Str("path", s.stations.Path()).Msg("Failed to save station list")
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		s.message = fmt.Sprintf("Cannot save %s: %v", filepath.Base(pathErr.Path), pathErr.Err)
		return
	}
	s.message = friendlyErrorMessage(err.Error())
}
