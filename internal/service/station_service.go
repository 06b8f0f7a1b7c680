// Package service owns the in-memory station list and its binding to the main list file.
package service

import (
	"errors"
	"fmt"
	"slices"

	"github.com/glebovdev/atradio/internal/station"
	"github.com/glebovdev/atradio/internal/store"
	"github.com/rs/zerolog/log"
)

// ErrIndexOutOfRange is returned by mutations addressing a missing row.
var ErrIndexOutOfRange = errors.New("station index out of range")

// StationService holds the ordered station list for one session. Mutations
// only touch memory; Persist writes the list back to the main resource.
// It has a single caller, the interaction loop, and does no locking.
type StationService struct {
	path     string
	stations []station.Station
}

// NewStationService creates a service bound to the main list file at path.
func NewStationService(path string) *StationService {
	return &StationService{
		path:     path,
		stations: []station.Station{},
	}
}

// Path returns the main resource the list is persisted to.
func (s *StationService) Path() string {
	return s.path
}

// Load replaces the in-memory list with the contents of the main resource.
func (s *StationService) Load() error {
	stations, err := store.Load(s.path)
	if err != nil {
		return err
	}
	s.stations = stations
	log.Debug().Str("file", s.path).Int("count", len(stations)).Msg("Stations loaded")
	return nil
}

func (s *StationService) StationCount() int {
	return len(s.stations)
}

// GetStation returns a copy of the station at the given index.
// Returns nil if the index is out of bounds.
func (s *StationService) GetStation(index int) *station.Station {
	if index < 0 || index >= len(s.stations) {
		return nil
	}
	st := s.stations[index]
	return &st
}

// All returns a copy of the list in display order.
func (s *StationService) All() []station.Station {
	return slices.Clone(s.stations)
}

// Snapshot is an alias of All used when a later rollback is intended.
func (s *StationService) Snapshot() []station.Station {
	return s.All()
}

// Restore puts back a list previously taken with Snapshot.
func (s *StationService) Restore(snapshot []station.Station) {
	s.stations = slices.Clone(snapshot)
}

// Append adds st at the end and returns its index.
func (s *StationService) Append(st station.Station) int {
	s.stations = append(s.stations, st)
	return len(s.stations) - 1
}

func (s *StationService) Remove(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.stations = slices.Delete(s.stations, index, index+1)
	return nil
}

func (s *StationService) Replace(index int, st station.Station) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.stations[index] = st
	return nil
}

// Swap exchanges two rows; used one adjacent step at a time by move mode.
func (s *StationService) Swap(i, j int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if err := s.checkIndex(j); err != nil {
		return err
	}
	s.stations[i], s.stations[j] = s.stations[j], s.stations[i]
	return nil
}

// ReplaceAll swaps the whole list for stations.
func (s *StationService) ReplaceAll(stations []station.Station) {
	if stations == nil {
		stations = []station.Station{}
	}
	s.stations = slices.Clone(stations)
}

// Persist writes the current list to the main resource.
func (s *StationService) Persist() error {
	return store.Save(s.path, s.stations)
}

// Export writes the current list to path without rebinding the main resource.
func (s *StationService) Export(path string) error {
	if err := store.Save(path, s.stations); err != nil {
		return err
	}
	log.Info().Str("file", path).Int("count", len(s.stations)).Msg("Stations exported")
	return nil
}

// Import loads path and replaces the in-memory list with it. The main
// resource is not written; callers Persist when they want that.
func (s *StationService) Import(path string) error {
	stations, err := store.Load(path)
	if err != nil {
		return err
	}
	s.ReplaceAll(stations)
	log.Info().Str("file", path).Int("count", len(stations)).Msg("Stations imported")
	return nil
}

func (s *StationService) checkIndex(index int) error {
	if index < 0 || index >= len(s.stations) {
		return fmt.Errorf("%w: %d (count %d)", ErrIndexOutOfRange, index, len(s.stations))
	}
	return nil
}
