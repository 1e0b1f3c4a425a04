// Package models defines the core settings types shared by the store, the
// auth providers, the menu builder and the CLI.
package models

import (
	"strings"
	"time"

	apperrors "github.com/dtg01100/clickwheel/internal/errors"
)

// Service identifies a streaming provider. The zero value means none is selected.
type Service string

const (
	ServiceNone    Service = ""
	ServiceApple   Service = "apple"
	ServiceSpotify Service = "spotify"
)

// Services lists the known streaming services in menu order.
var Services = []Service{ServiceApple, ServiceSpotify}

// DisplayName returns the user-facing name of the service.
func (s Service) DisplayName() string {
	switch s {
	case ServiceApple:
		return "Apple Music"
	case ServiceSpotify:
		return "Spotify"
	default:
		return "None"
	}
}

// Valid reports whether s is a known service. ServiceNone is not valid.
func (s Service) Valid() bool {
	return s == ServiceApple || s == ServiceSpotify
}

// ParseService parses a service name, accepting a few common spellings.
func ParseService(value string) (Service, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "apple", "apple-music", "applemusic", "musickit":
		return ServiceApple, nil
	case "spotify":
		return ServiceSpotify, nil
	default:
		return ServiceNone, apperrors.NewUnknownServiceError(value)
	}
}

// DeviceTheme is the colour scheme of the rendered device.
type DeviceTheme string

const (
	ThemeSilver DeviceTheme = "silver"
	ThemeBlack  DeviceTheme = "black"
	ThemeU2     DeviceTheme = "u2"
)

// Themes lists the device themes in menu order.
var Themes = []DeviceTheme{ThemeSilver, ThemeBlack, ThemeU2}

// DisplayName returns the user-facing name of the theme.
func (t DeviceTheme) DisplayName() string {
	switch t {
	case ThemeSilver:
		return "Silver"
	case ThemeBlack:
		return "Black"
	case ThemeU2:
		return "U2 Edition"
	default:
		return string(t)
	}
}

// Valid reports whether t is a known theme.
func (t DeviceTheme) Valid() bool {
	switch t {
	case ThemeSilver, ThemeBlack, ThemeU2:
		return true
	}
	return false
}

// ParseDeviceTheme parses a theme name.
func ParseDeviceTheme(value string) (DeviceTheme, error) {
	t := DeviceTheme(strings.ToLower(strings.TrimSpace(value)))
	if !t.Valid() {
		return "", apperrors.NewUnknownThemeError(value)
	}
	return t, nil
}

// DeviceSide is the face of the device currently shown.
type DeviceSide string

const (
	SideFront DeviceSide = "front"
	SideBack  DeviceSide = "back"
)

// Valid reports whether s is a known side.
func (s DeviceSide) Valid() bool {
	return s == SideFront || s == SideBack
}

// ParseDeviceSide parses a side name.
func ParseDeviceSide(value string) (DeviceSide, error) {
	s := DeviceSide(strings.ToLower(strings.TrimSpace(value)))
	if !s.Valid() {
		return "", apperrors.NewUnknownSideError(value)
	}
	return s, nil
}

// Snapshot is a read-only copy of the settings and authorization state at one instant.
type Snapshot struct {
	IsAuthorized        bool        `json:"is_authorized" yaml:"is_authorized"`
	IsAppleAuthorized   bool        `json:"is_apple_authorized" yaml:"is_apple_authorized"`
	IsSpotifyAuthorized bool        `json:"is_spotify_authorized" yaml:"is_spotify_authorized"`
	Service             Service     `json:"service" yaml:"service"`
	DeviceTheme         DeviceTheme `json:"device_theme" yaml:"device_theme"`
	DeviceSide          DeviceSide  `json:"device_side" yaml:"device_side"`
}

// Authorized reports whether the given service is signed in according to the snapshot.
func (s Snapshot) Authorized(service Service) bool {
	switch service {
	case ServiceApple:
		return s.IsAppleAuthorized
	case ServiceSpotify:
		return s.IsSpotifyAuthorized
	default:
		return false
	}
}

// Session records the sign-in state of one streaming service.
type Session struct {
	Authorized bool
	SessionID  string
	SignedInAt time.Time
}

// State is the full persisted settings state. Snapshot derives the view of it
// the menu consumes.
type State struct {
	Theme   DeviceTheme
	Side    DeviceSide
	Service Service
	Apple   Session
	Spotify Session
}

// DefaultState returns the state of a fresh install.
func DefaultState() State {
	return State{
		Theme: ThemeSilver,
		Side:  SideFront,
	}
}

// Session returns a pointer to the session of a service, or nil for an unknown one.
func (s *State) Session(service Service) *Session {
	switch service {
	case ServiceApple:
		return &s.Apple
	case ServiceSpotify:
		return &s.Spotify
	default:
		return nil
	}
}

// Snapshot derives the read-only snapshot. A user is authorized when any
// service is signed in.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		IsAuthorized:        s.Apple.Authorized || s.Spotify.Authorized,
		IsAppleAuthorized:   s.Apple.Authorized,
		IsSpotifyAuthorized: s.Spotify.Authorized,
		Service:             s.Service,
		DeviceTheme:         s.Theme,
		DeviceSide:          s.Side,
	}
}
