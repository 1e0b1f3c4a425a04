// Package auth signs streaming services in and out of the settings store.
// It keeps a local session per service; it does not talk to the providers.
package auth

import (
	"time"

	"github.com/dtg01100/clickwheel/internal/logger"
	"github.com/dtg01100/clickwheel/internal/models"
	"github.com/dtg01100/clickwheel/internal/settings"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Provider signs one streaming service in and out.
type Provider struct {
	service models.Service
	store   *settings.Store
	log     zerolog.Logger

	// now and newSessionID are replaced in tests.
	now          func() time.Time
	newSessionID func() string
}

// NewProvider creates a provider for service backed by store.
func NewProvider(service models.Service, store *settings.Store) *Provider {
	return &Provider{
		service:      service,
		store:        store,
		log:          logger.GetLogger("auth").With().Str("service", string(service)).Logger(),
		now:          time.Now,
		newSessionID: func() string { return uuid.New().String() },
	}
}

// NewMusicKit returns the Apple Music provider.
func NewMusicKit(store *settings.Store) *Provider {
	return NewProvider(models.ServiceApple, store)
}

// NewSpotify returns the Spotify provider.
func NewSpotify(store *settings.Store) *Provider {
	return NewProvider(models.ServiceSpotify, store)
}

// Service returns the service this provider handles.
func (p *Provider) Service() models.Service {
	return p.service
}

// SignIn authorizes the service and makes it the current one. Signing in to
// an already authorized service only switches to it.
func (p *Provider) SignIn() {
	ok := p.store.UpdateSession(p.service, func(st *models.State, s *models.Session) {
		if !s.Authorized {
			s.Authorized = true
			s.SessionID = p.newSessionID()
			s.SignedInAt = p.now()
		}
		st.Service = p.service
	})
	if !ok {
		p.log.Warn().Msg("sign in requested for unknown service")
		return
	}
	p.log.Info().Msg("signed in")
}

// SignOut clears the session. When the service was the current one, the other
// authorized service takes over, or none.
func (p *Provider) SignOut() {
	ok := p.store.UpdateSession(p.service, func(st *models.State, s *models.Session) {
		*s = models.Session{}
		if st.Service != p.service {
			return
		}
		st.Service = models.ServiceNone
		for _, other := range models.Services {
			if other != p.service && st.Session(other).Authorized {
				st.Service = other
				break
			}
		}
	})
	if !ok {
		p.log.Warn().Msg("sign out requested for unknown service")
		return
	}
	p.log.Info().Msg("signed out")
}
