package ui

import (
	"errors"

	"github.com/glebovdev/atradio/internal/config"
	"github.com/glebovdev/atradio/internal/player"
	"github.com/rs/zerolog/log"
)

func (s *Session) volumeUp() Redraw {
	return s.adjustVolume(s.settings.VolumeStep)
}

func (s *Session) volumeDown() Redraw {
	return s.adjustVolume(-s.settings.VolumeStep)
}

func (s *Session) adjustVolume(delta int) Redraw {
	if s.playingIndex == noIndex {
		return RedrawNone
	}

	newVolume := config.ClampVolume(s.currentVolume + delta)
	if newVolume == s.currentVolume {
		return RedrawNone
	}
	s.currentVolume = newVolume
	s.applyVolume()
	return RedrawPartial
}

// applyVolume sends currentVolume to the player. Failures only set the
// status message; playback carries on.
func (s *Session) applyVolume() {
	if err := s.player.SetVolume(s.currentVolume); err != nil {
		log.Debug().Err(err).Int("volume", s.currentVolume).Msg("Volume change not applied")
		if errors.Is(err, player.ErrControlChannel) {
			s.message = "Player is not accepting volume commands"
		} else {
			s.message = friendlyErrorMessage(err.Error())
		}
	}
}
