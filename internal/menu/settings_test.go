package menu

import (
	"testing"

	"github.com/dtg01100/clickwheel/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder counts effect invocations so tests can check which effect an
// action is bound to.
type recorder struct {
	calls  []string
	themes []models.DeviceTheme
	sides  []models.DeviceSide
}

func (r *recorder) effects() Effects {
	return Effects{
		SignInApple:    func() { r.calls = append(r.calls, "signin:apple") },
		SignInSpotify:  func() { r.calls = append(r.calls, "signin:spotify") },
		SignOutApple:   func() { r.calls = append(r.calls, "signout:apple") },
		SignOutSpotify: func() { r.calls = append(r.calls, "signout:spotify") },
		SetDeviceTheme: func(t models.DeviceTheme) { r.themes = append(r.themes, t) },
		SetDeviceSide:  func(s models.DeviceSide) { r.sides = append(r.sides, s) },
	}
}

func signedOut() models.Snapshot {
	return models.Snapshot{
		DeviceTheme: models.ThemeSilver,
		DeviceSide:  models.SideFront,
	}
}

func signedIn(apple, spotify bool, service models.Service) models.Snapshot {
	return models.Snapshot{
		IsAuthorized:        apple || spotify,
		IsAppleAuthorized:   apple,
		IsSpotifyAuthorized: spotify,
		Service:             service,
		DeviceTheme:         models.ThemeSilver,
		DeviceSide:          models.SideFront,
	}
}

func findSheet(t *testing.T, options []Option, id ViewID) (ActionSheetOption, bool) {
	t.Helper()
	for _, o := range options {
		if sheet, ok := o.(ActionSheetOption); ok && sheet.ID == id {
			return sheet, true
		}
	}
	return ActionSheetOption{}, false
}

func countSheets(options []Option, id ViewID) int {
	n := 0
	for _, o := range options {
		if sheet, ok := o.(ActionSheetOption); ok && sheet.ID == id {
			n++
		}
	}
	return n
}

func labels(actions []ActionOption) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.Label)
	}
	return out
}

var snapshots = map[string]models.Snapshot{
	"signed out":        signedOut(),
	"apple only":        signedIn(true, false, models.ServiceApple),
	"spotify only":      signedIn(false, true, models.ServiceSpotify),
	"both on spotify":   signedIn(true, true, models.ServiceSpotify),
	"authorized no svc": signedIn(false, false, models.ServiceNone),
}

func TestBuild_AboutAlwaysFirst(t *testing.T) {
	for name, snap := range snapshots {
		t.Run(name, func(t *testing.T) {
			options := Build(snap, Effects{})
			require.NotEmpty(t, options)

			about, ok := options[0].(ViewOption)
			require.True(t, ok, "first option should be a ViewOption, got %T", options[0])
			assert.Equal(t, "About", about.Label)
			assert.Equal(t, ViewAbout, about.ViewID)
			assert.Equal(t, ViewAbout, about.Component)
			assert.Equal(t, PreviewSettings, about.Preview)
		})
	}
}

func TestBuild_ChooseServiceOnlyWhenAuthorized(t *testing.T) {
	options := Build(signedOut(), Effects{})
	assert.Equal(t, 0, countSheets(options, ViewServiceTypeSheet))

	options = Build(signedIn(true, true, models.ServiceApple), Effects{})
	assert.Equal(t, 1, countSheets(options, ViewServiceTypeSheet))

	sheet, _ := findSheet(t, options, ViewServiceTypeSheet)
	assert.Equal(t, "Choose service", sheet.Label)
	assert.Equal(t, PreviewService, sheet.Preview)
	require.Len(t, sheet.Actions, 2)
	assert.Equal(t, []string{"Apple Music (Current)", "Spotify"}, labels(sheet.Actions))
	assert.True(t, sheet.Actions[0].IsSelected)
	assert.False(t, sheet.Actions[1].IsSelected)
}

func TestBuild_ChooseServiceBindsSignIn(t *testing.T) {
	r := &recorder{}
	options := Build(signedIn(true, true, models.ServiceSpotify), r.effects())
	sheet, ok := findSheet(t, options, ViewServiceTypeSheet)
	require.True(t, ok)

	sheet.Actions[0].Select()
	sheet.Actions[1].Select()

	assert.Equal(t, []string{"signin:apple", "signin:spotify"}, r.calls)
}

func TestBuild_ThemeAndSideAlwaysPresent(t *testing.T) {
	for name, snap := range snapshots {
		t.Run(name, func(t *testing.T) {
			options := Build(snap, Effects{})

			theme, ok := findSheet(t, options, ViewDeviceThemeSheet)
			require.True(t, ok)
			assert.Equal(t, "Device theme", theme.Label)
			assert.Equal(t, PreviewDevice, theme.Preview)
			assert.Len(t, theme.Actions, 3)

			side, ok := findSheet(t, options, ViewDeviceSideSheet)
			require.True(t, ok)
			assert.Equal(t, "View back case", side.Label)
			assert.Equal(t, PreviewNone, side.Preview)
			assert.Len(t, side.Actions, 2)
		})
	}
}

func TestBuild_ThemeMarking(t *testing.T) {
	tests := []struct {
		theme    models.DeviceTheme
		labels   []string
		selected []bool
	}{
		{models.ThemeSilver, []string{"Silver (Current)", "Black", "U2 Edition"}, []bool{true, false, false}},
		{models.ThemeBlack, []string{"Silver", "Black (Current)", "U2 Edition"}, []bool{false, true, false}},
		{models.ThemeU2, []string{"Silver", "Black", "U2 Edition (Current)"}, []bool{false, false, true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.theme), func(t *testing.T) {
			snap := signedOut()
			snap.DeviceTheme = tt.theme

			sheet, _ := findSheet(t, Build(snap, Effects{}), ViewDeviceThemeSheet)
			assert.Equal(t, tt.labels, labels(sheet.Actions))
			for i, a := range sheet.Actions {
				assert.Equal(t, tt.selected[i], a.IsSelected, "action %d", i)
			}
		})
	}
}

func TestBuild_ThemeActionsCloseOverTheirValue(t *testing.T) {
	r := &recorder{}
	sheet, _ := findSheet(t, Build(signedOut(), r.effects()), ViewDeviceThemeSheet)

	for _, a := range sheet.Actions {
		a.Select()
	}

	assert.Equal(t, []models.DeviceTheme{models.ThemeSilver, models.ThemeBlack, models.ThemeU2}, r.themes)
}

func TestBuild_SideSheet(t *testing.T) {
	r := &recorder{}
	snap := signedOut()
	snap.DeviceSide = models.SideBack

	sheet, _ := findSheet(t, Build(snap, r.effects()), ViewDeviceSideSheet)
	assert.Equal(t, []string{"Show back case (Current)", "Hide back case"}, labels(sheet.Actions))
	assert.True(t, sheet.Actions[0].IsSelected)
	assert.False(t, sheet.Actions[1].IsSelected)

	sheet.Actions[0].Select()
	sheet.Actions[1].Select()
	assert.Equal(t, []models.DeviceSide{models.SideBack, models.SideFront}, r.sides)
}

func TestBuild_SignInWhenSignedOut(t *testing.T) {
	r := &recorder{}
	options := Build(signedOut(), r.effects())

	sheet, ok := findSheet(t, options, ViewSignInPopup)
	require.True(t, ok)
	assert.Equal(t, "Sign in", sheet.Label)
	assert.Equal(t, PreviewMusic, sheet.Preview)
	assert.Equal(t, []string{"Apple Music", "Spotify"}, labels(sheet.Actions))
	for _, a := range sheet.Actions {
		assert.False(t, a.IsSelected)
	}
	assert.Equal(t, 0, countSheets(options, ViewSignOutPopup))

	sheet.Actions[0].Select()
	sheet.Actions[1].Select()
	assert.Equal(t, []string{"signin:apple", "signin:spotify"}, r.calls)
}

func TestBuild_SignOutWhenAuthorized(t *testing.T) {
	tests := []struct {
		name   string
		snap   models.Snapshot
		labels []string
		calls  []string
	}{
		{"both", signedIn(true, true, models.ServiceApple), []string{"Apple Music", "Spotify"}, []string{"signout:apple", "signout:spotify"}},
		{"apple only", signedIn(true, false, models.ServiceApple), []string{"Apple Music"}, []string{"signout:apple"}},
		{"spotify only", signedIn(false, true, models.ServiceSpotify), []string{"Spotify"}, []string{"signout:spotify"}},
		{"neither", signedIn(false, false, models.ServiceNone), []string{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := tt.snap
			snap.IsAuthorized = true

			r := &recorder{}
			options := Build(snap, r.effects())
			assert.Equal(t, 0, countSheets(options, ViewSignInPopup))

			sheet, ok := findSheet(t, options, ViewSignOutPopup)
			require.True(t, ok)
			assert.Equal(t, "Sign out", sheet.Label)
			assert.Equal(t, tt.labels, labels(sheet.Actions))

			for _, a := range sheet.Actions {
				a.Select()
			}
			assert.Equal(t, tt.calls, r.calls)
		})
	}
}

func TestBuild_DoesNotInvokeEffects(t *testing.T) {
	r := &recorder{}
	for _, snap := range snapshots {
		Build(snap, r.effects())
	}

	assert.Empty(t, r.calls)
	assert.Empty(t, r.themes)
	assert.Empty(t, r.sides)
}

func TestBuild_Idempotent(t *testing.T) {
	r := &recorder{}
	for name, snap := range snapshots {
		t.Run(name, func(t *testing.T) {
			first := Describe(Build(snap, r.effects()))
			second := Describe(Build(snap, r.effects()))
			assert.Equal(t, first, second)
		})
	}
}

func TestBuild_AppleSignedInScenario(t *testing.T) {
	snap := models.Snapshot{
		IsAuthorized:        true,
		IsAppleAuthorized:   true,
		IsSpotifyAuthorized: false,
		Service:             models.ServiceApple,
		DeviceTheme:         models.ThemeSilver,
		DeviceSide:          models.SideFront,
	}

	options := Build(snap, (&recorder{}).effects())
	require.Len(t, options, 5)

	got := make([]string, 0, len(options))
	for _, o := range options {
		got = append(got, o.Text())
	}
	assert.Equal(t, []string{"About", "Choose service", "Device theme", "View back case", "Sign out"}, got)

	service := options[1].(ActionSheetOption)
	assert.Equal(t, "Apple Music (Current)", service.Actions[0].Label)
	assert.True(t, service.Actions[0].IsSelected)

	signOut := options[4].(ActionSheetOption)
	assert.Equal(t, []string{"Apple Music"}, labels(signOut.Actions))
}

func TestBuild_NilEffectsStayUnbound(t *testing.T) {
	entries := Describe(Build(signedOut(), Effects{}))
	for _, e := range entries {
		for _, a := range e.Actions {
			assert.False(t, a.Bound, "%s/%s should be unbound", e.Label, a.Label)
		}
	}

	entries = Describe(Build(signedOut(), (&recorder{}).effects()))
	for _, e := range entries {
		for _, a := range e.Actions {
			assert.True(t, a.Bound, "%s/%s should be bound", e.Label, a.Label)
		}
	}
}

func TestBuild_ActionIDsUniqueWithinSheet(t *testing.T) {
	for _, snap := range []models.Snapshot{signedOut(), signedIn(true, true, models.ServiceApple)} {
		for _, o := range Build(snap, Effects{}) {
			sheet, ok := o.(ActionSheetOption)
			if !ok {
				continue
			}
			seen := map[string]bool{}
			for _, a := range sheet.Actions {
				require.NotEmpty(t, a.ID, "%s/%s needs an id", sheet.Label, a.Label)
				assert.False(t, seen[a.ID], "%s has duplicate id %q", sheet.Label, a.ID)
				seen[a.ID] = true
			}
		}
	}
}

func TestIncludeIf(t *testing.T) {
	assert.Empty(t, includeIf(false, 1))
	assert.Equal(t, []int{1}, includeIf(true, 1))
}

func TestActionOption_SelectNil(t *testing.T) {
	assert.NotPanics(t, func() { ActionOption{Label: "noop"}.Select() })
}

func TestPreviewOf(t *testing.T) {
	assert.Equal(t, PreviewSettings, PreviewOf(ViewOption{Preview: PreviewSettings}))
	assert.Equal(t, PreviewDevice, PreviewOf(ActionSheetOption{Preview: PreviewDevice}))
	assert.Equal(t, PreviewNone, PreviewOf(ActionOption{}))
}
