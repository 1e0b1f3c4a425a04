package menu

import (
	"github.com/dtg01100/clickwheel/internal/models"
)

const currentSuffix = " (Current)"

// Effects are the callbacks the settings menu binds its actions to.
// Build only stores them; it never calls them.
type Effects struct {
	SignInApple    func()
	SignInSpotify  func()
	SignOutApple   func()
	SignOutSpotify func()
	SetDeviceTheme func(models.DeviceTheme)
	SetDeviceSide  func(models.DeviceSide)
}

// SignIn returns the sign-in effect for a service.
func (e Effects) SignIn(service models.Service) func() {
	switch service {
	case models.ServiceApple:
		return e.SignInApple
	case models.ServiceSpotify:
		return e.SignInSpotify
	}
	return nil
}

// Build derives the settings menu for a snapshot. It is a pure function of
// its arguments.
func Build(s models.Snapshot, fx Effects) []Option {
	var options []Option

	options = append(options, ViewOption{
		Label:     "About",
		ViewID:    ViewAbout,
		Component: ViewAbout,
		Preview:   PreviewSettings,
	})
	options = append(options, includeIf[Option](s.IsAuthorized, chooseServiceSheet(s, fx))...)
	options = append(options, deviceThemeSheet(s, fx), deviceSideSheet(s, fx))
	options = append(options, includeIf[Option](!s.IsAuthorized, signInSheet(fx))...)
	options = append(options, includeIf[Option](s.IsAuthorized, signOutSheet(s, fx))...)

	return options
}

// includeIf returns a one-element slice holding item when cond is true, and
// an empty slice otherwise.
func includeIf[T any](cond bool, item T) []T {
	if !cond {
		return nil
	}
	return []T{item}
}

// markCurrent labels the entry that matches the current value.
func markCurrent(label string, current bool) string {
	if current {
		return label + currentSuffix
	}
	return label
}

func chooseServiceSheet(s models.Snapshot, fx Effects) ActionSheetOption {
	actions := make([]ActionOption, 0, len(models.Services))
	for _, service := range models.Services {
		current := s.Service == service
		actions = append(actions, ActionOption{
			ID:         string(service),
			Label:      markCurrent(service.DisplayName(), current),
			IsSelected: current,
			OnSelect:   fx.SignIn(service),
		})
	}

	return ActionSheetOption{
		ID:      ViewServiceTypeSheet,
		Label:   "Choose service",
		Actions: actions,
		Preview: PreviewService,
	}
}

func deviceThemeSheet(s models.Snapshot, fx Effects) ActionSheetOption {
	actions := make([]ActionOption, 0, len(models.Themes))
	for _, theme := range models.Themes {
		current := s.DeviceTheme == theme
		actions = append(actions, ActionOption{
			ID:         string(theme),
			Label:      markCurrent(theme.DisplayName(), current),
			IsSelected: current,
			OnSelect:   bindTheme(fx.SetDeviceTheme, theme),
		})
	}

	return ActionSheetOption{
		ID:      ViewDeviceThemeSheet,
		Label:   "Device theme",
		Actions: actions,
		Preview: PreviewDevice,
	}
}

// deviceSideSheet has no preview.
func deviceSideSheet(s models.Snapshot, fx Effects) ActionSheetOption {
	sides := []struct {
		label string
		side  models.DeviceSide
	}{
		{"Show back case", models.SideBack},
		{"Hide back case", models.SideFront},
	}

	actions := make([]ActionOption, 0, len(sides))
	for _, entry := range sides {
		current := s.DeviceSide == entry.side
		actions = append(actions, ActionOption{
			ID:         string(entry.side),
			Label:      markCurrent(entry.label, current),
			IsSelected: current,
			OnSelect:   bindSide(fx.SetDeviceSide, entry.side),
		})
	}

	return ActionSheetOption{
		ID:      ViewDeviceSideSheet,
		Label:   "View back case",
		Actions: actions,
	}
}

func signInSheet(fx Effects) ActionSheetOption {
	return ActionSheetOption{
		ID:    ViewSignInPopup,
		Label: "Sign in",
		Actions: []ActionOption{
			{ID: string(models.ServiceApple), Label: models.ServiceApple.DisplayName(), OnSelect: fx.SignInApple},
			{ID: string(models.ServiceSpotify), Label: models.ServiceSpotify.DisplayName(), OnSelect: fx.SignInSpotify},
		},
		Preview: PreviewMusic,
	}
}

func signOutSheet(s models.Snapshot, fx Effects) ActionSheetOption {
	var actions []ActionOption
	actions = append(actions, includeIf(s.IsAppleAuthorized, ActionOption{
		ID:       string(models.ServiceApple),
		Label:    models.ServiceApple.DisplayName(),
		OnSelect: fx.SignOutApple,
	})...)
	actions = append(actions, includeIf(s.IsSpotifyAuthorized, ActionOption{
		ID:       string(models.ServiceSpotify),
		Label:    models.ServiceSpotify.DisplayName(),
		OnSelect: fx.SignOutSpotify,
	})...)

	return ActionSheetOption{
		ID:      ViewSignOutPopup,
		Label:   "Sign out",
		Actions: actions,
		Preview: PreviewService,
	}
}

func bindTheme(set func(models.DeviceTheme), theme models.DeviceTheme) func() {
	if set == nil {
		return nil
	}
	return func() { set(theme) }
}

func bindSide(set func(models.DeviceSide), side models.DeviceSide) func() {
	if set == nil {
		return nil
	}
	return func() { set(side) }
}
