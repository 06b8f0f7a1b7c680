package ui

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

func (s *Session) enterMoveMode() Redraw {
	if s.stations.StationCount() == 0 {
		return RedrawNone
	}

	s.mode = ModeMove
	s.movingIndex = s.currentRow
	s.moveOrigin = s.currentRow
	s.moveModePlaying = s.playingIndex == s.currentRow
	s.movePlayingIndex = s.playingIndex
	s.moveSnapshot = s.stations.Snapshot()
	return RedrawFull
}

func (s *Session) moveUp() Redraw {
	if s.movingIndex <= 0 {
		return RedrawNone
	}
	return s.moveTo(s.movingIndex - 1)
}

func (s *Session) moveDown() Redraw {
	if s.movingIndex >= s.stations.StationCount()-1 {
		return RedrawNone
	}
	return s.moveTo(s.movingIndex + 1)
}

// moveTo swaps the moving item with its neighbour at target and carries
// playingIndex along with whichever of the two items is playing.
func (s *Session) moveTo(target int) Redraw {
	from := s.movingIndex
	if err := s.stations.Swap(from, target); err != nil {
		s.message = err.Error()
		return RedrawPartial
	}

	switch {
	case s.moveModePlaying:
		s.playingIndex = target
	case s.playingIndex == target:
		s.playingIndex = from
	}

	s.movingIndex = target
	s.currentRow = target
	s.scrollIntoView()
	return RedrawFull
}

func (s *Session) commitMove() Redraw {
	if err := s.stations.Persist(); err != nil {
		s.rollbackMove()
		s.reportSaveError(err)
		return RedrawFull
	}

	if st := s.stations.GetStation(s.movingIndex); st != nil && s.movingIndex != s.moveOrigin {
		s.message = fmt.Sprintf("Moved %s to position %d", st.Name, s.movingIndex+1)
	}
	log.Debug().Int("from", s.moveOrigin).Int("to", s.movingIndex).Msg("Move committed")
	s.leaveMoveMode()
	return RedrawFull
}

func (s *Session) cancelMove() Redraw {
	s.rollbackMove()
	return RedrawFull
}

func (s *Session) rollbackMove() {
	s.stations.Restore(s.moveSnapshot)
	s.currentRow = s.moveOrigin
	s.playingIndex = s.movePlayingIndex
	s.scrollIntoView()
	s.leaveMoveMode()
}

func (s *Session) leaveMoveMode() {
	s.mode = ModeNormal
	s.movingIndex = noIndex
	s.moveModePlaying = false
	s.moveSnapshot = nil
}
