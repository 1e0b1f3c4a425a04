// Package settings holds the device and authorization state that the
// settings screen and the CLI read and change.
package settings

import (
	"sync"

	"github.com/dtg01100/clickwheel/internal/logger"
	"github.com/dtg01100/clickwheel/internal/models"
	"github.com/rs/zerolog"
)

// Persister saves settings state. *config.Config implements it.
type Persister interface {
	Persist(state models.State) error
}

// Listener is notified with a fresh snapshot after every change.
type Listener func(models.Snapshot)

// Store is the single owner of settings state. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	persistMu sync.Mutex
	state     models.State
	persister Persister
	listeners []Listener
	log       zerolog.Logger
}

// NewStore creates a store seeded with state. persister may be nil.
func NewStore(state models.State, persister Persister) *Store {
	if !state.Theme.Valid() {
		state.Theme = models.ThemeSilver
	}
	if !state.Side.Valid() {
		state.Side = models.SideFront
	}
	return &Store{
		state:     state,
		persister: persister,
		log:       logger.GetLogger("settings"),
	}
}

// Snapshot returns the current settings snapshot.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Snapshot()
}

// State returns a copy of the full state, sessions included.
func (s *Store) State() models.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers a listener for changes.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// SetDeviceTheme changes the device theme. Unknown themes are ignored.
func (s *Store) SetDeviceTheme(theme models.DeviceTheme) {
	if !theme.Valid() {
		s.log.Warn().Str("theme", string(theme)).Msg("ignoring unknown device theme")
		return
	}
	s.update(func(st *models.State) bool {
		if st.Theme == theme {
			return false
		}
		st.Theme = theme
		return true
	})
	s.log.Info().Str("theme", string(theme)).Msg("device theme set")
}

// SetDeviceSide changes the visible side of the device. Unknown sides are ignored.
func (s *Store) SetDeviceSide(side models.DeviceSide) {
	if !side.Valid() {
		s.log.Warn().Str("side", string(side)).Msg("ignoring unknown device side")
		return
	}
	s.update(func(st *models.State) bool {
		if st.Side == side {
			return false
		}
		st.Side = side
		return true
	})
	s.log.Info().Str("side", string(side)).Msg("device side set")
}

// SetService selects the current streaming service. ServiceNone clears it.
func (s *Store) SetService(service models.Service) {
	if service != models.ServiceNone && !service.Valid() {
		s.log.Warn().Str("service", string(service)).Msg("ignoring unknown service")
		return
	}
	s.update(func(st *models.State) bool {
		if st.Service == service {
			return false
		}
		st.Service = service
		return true
	})
}

// UpdateSession lets fn change the session of a service and the selection.
// Nothing is persisted or announced when fn leaves the state as it was. It
// reports false for an unknown service.
func (s *Store) UpdateSession(service models.Service, fn func(*models.State, *models.Session)) bool {
	if !service.Valid() {
		return false
	}
	s.update(func(st *models.State) bool {
		before := *st
		fn(st, st.Session(service))
		return *st != before
	})
	return true
}

// persist writes the latest state. Writes are serialised so the file never
// ends up holding an older state than memory.
func (s *Store) persist() {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if err := s.persister.Persist(s.State()); err != nil {
		s.log.Error().Err(err).Msg("failed to persist settings")
	}
}

// update applies fn under the lock, persists and notifies listeners when fn
// reports a change. Persistence errors are logged only.
func (s *Store) update(fn func(*models.State) bool) {
	s.mu.Lock()
	if !fn(&s.state) {
		s.mu.Unlock()
		return
	}
	state := s.state
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	if s.persister != nil {
		s.persist()
	}

	snap := state.Snapshot()
	for _, l := range listeners {
		l(snap)
	}
}
