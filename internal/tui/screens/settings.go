package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dtg01100/clickwheel/internal/logger"
	"github.com/dtg01100/clickwheel/internal/menu"
	"github.com/dtg01100/clickwheel/internal/models"
	"github.com/dtg01100/clickwheel/internal/tui/components"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// SettingsProvider reads and changes the device settings.
// *settings.Store implements it.
type SettingsProvider interface {
	Snapshot() models.Snapshot
	SetDeviceTheme(theme models.DeviceTheme)
	SetDeviceSide(side models.DeviceSide)
}

// AuthProvider signs one streaming service in and out.
// *auth.Provider implements it.
type AuthProvider interface {
	SignIn()
	SignOut()
}

// NavigateMsg asks the app to open the view with the given identity.
type NavigateMsg struct {
	ViewID menu.ViewID
}

// SettingsChangedMsg is sent after an action changed the settings.
type SettingsChangedMsg struct {
	Snapshot models.Snapshot
}

// HideMenuWhenActiveMsg asks the app to hide the menu pane while ViewID is
// the active view.
type HideMenuWhenActiveMsg struct {
	ViewID menu.ViewID
}

type settingsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
}

func (k settingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back}
}

func (k settingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var settingsKeys = settingsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", "right"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "left", "backspace"),
		key.WithHelp("esc", "back"),
	),
}

// SettingsScreen lists the settings menu and the preview of the focused entry.
type SettingsScreen struct {
	settings SettingsProvider
	apple    AuthProvider
	spotify  AuthProvider

	snapshot models.Snapshot
	options  []menu.Option
	scroll   *components.ScrollTracker
	sheet    *components.ActionSheet

	keys   settingsKeyMap
	help   help.Model
	log    zerolog.Logger
	width  int
	height int
	goBack bool
}

// NewSettingsScreen creates a new settings screen. Providers are attached
// later with SetProviders.
func NewSettingsScreen() *SettingsScreen {
	s := &SettingsScreen{
		scroll: components.NewScrollTracker(),
		keys:   settingsKeys,
		help:   help.New(),
		log:    logger.GetLogger("tui.settings"),
	}
	s.refresh()
	return s
}

// SetProviders attaches the settings and auth providers and rebuilds the menu.
func (s *SettingsScreen) SetProviders(settings SettingsProvider, apple, spotify AuthProvider) {
	s.settings = settings
	s.apple = apple
	s.spotify = spotify
	s.refresh()
}

// SetSize sets the screen dimensions.
func (s *SettingsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.help.Width = width
	if s.sheet != nil {
		s.sheet.SetWidth(s.listWidth())
	}
}

// Init registers the screen to hide the menu pane and rebuilds the menu.
func (s *SettingsScreen) Init() tea.Cmd {
	s.refresh()
	return func() tea.Msg {
		return HideMenuWhenActiveMsg{ViewID: menu.ViewSettings}
	}
}

// Activate is called each time the screen becomes the current one.
func (s *SettingsScreen) Activate() {
	s.sheet = nil
	s.refresh()
}

// effects binds menu actions to the current providers.
func (s *SettingsScreen) effects() menu.Effects {
	var fx menu.Effects
	if s.settings != nil {
		fx.SetDeviceTheme = s.settings.SetDeviceTheme
		fx.SetDeviceSide = s.settings.SetDeviceSide
	}
	if s.apple != nil {
		fx.SignInApple = s.apple.SignIn
		fx.SignOutApple = s.apple.SignOut
	}
	if s.spotify != nil {
		fx.SignInSpotify = s.spotify.SignIn
		fx.SignOutSpotify = s.spotify.SignOut
	}
	return fx
}

// refresh rebuilds the option list from the latest snapshot.
func (s *SettingsScreen) refresh() {
	if s.settings != nil {
		s.snapshot = s.settings.Snapshot()
	} else {
		s.snapshot = models.DefaultState().Snapshot()
	}
	s.options = menu.Build(s.snapshot, s.effects())
}

// Options returns the current option list.
func (s *SettingsScreen) Options() []menu.Option {
	return s.options
}

// Cursor returns the focused row.
func (s *SettingsScreen) Cursor() int {
	return s.scroll.Index(menu.ViewSettings, s.options)
}

// Focused returns the focused option, or nil when the list is empty.
func (s *SettingsScreen) Focused() menu.Option {
	if len(s.options) == 0 {
		return nil
	}
	return s.options[s.Cursor()]
}

// HasPopup reports whether an action sheet is open.
func (s *SettingsScreen) HasPopup() bool {
	return s.sheet != nil
}

// Update handles screen updates.
func (s *SettingsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SettingsChangedMsg:
		s.refresh()
		return s, nil

	case components.ActionSheetClosedMsg:
		s.sheet = nil
		if !msg.OK {
			return s, nil
		}
		return s, s.runSheetAction(msg.SheetID, msg.ActionID)
	}

	if s.sheet != nil {
		var cmd tea.Cmd
		s.sheet, cmd = s.sheet.Update(msg)
		return s, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, s.keys.Up):
			s.scroll.Up(menu.ViewSettings, s.options)
		case key.Matches(msg, s.keys.Down):
			s.scroll.Down(menu.ViewSettings, s.options)
		case key.Matches(msg, s.keys.Select):
			return s, s.selectCurrent()
		case key.Matches(msg, s.keys.Back):
			s.goBack = true
		}
	}

	return s, nil
}

// selectCurrent acts on the focused option.
func (s *SettingsScreen) selectCurrent() tea.Cmd {
	switch o := s.Focused().(type) {
	case nil:
		return nil
	case menu.ViewOption:
		return func() tea.Msg { return NavigateMsg{ViewID: o.ViewID} }
	case menu.ActionSheetOption:
		s.sheet = components.NewActionSheet(o)
		s.sheet.SetWidth(s.listWidth())
		s.log.Debug().Str("sheet", string(o.ID)).Msg("opened action sheet")
		return s.sheet.Init()
	case menu.ActionOption:
		return s.runAction(o)
	default:
		return nil
	}
}

// runSheetAction runs the action with the given id in the sheet as it is
// now. The menu may have been rebuilt while the popup was open, so actions are
// matched by id rather than position.
func (s *SettingsScreen) runSheetAction(id menu.ViewID, actionID string) tea.Cmd {
	for _, o := range s.options {
		sheet, ok := o.(menu.ActionSheetOption)
		if !ok || sheet.ID != id {
			continue
		}
		if _, idx, found := lo.FindIndexOf(sheet.Actions, func(a menu.ActionOption) bool {
			return a.ID == actionID
		}); found {
			return s.runAction(sheet.Actions[idx])
		}
		s.log.Warn().Str("sheet", string(id)).Str("action", actionID).Msg("action no longer in sheet")
		return nil
	}
	s.log.Warn().Str("sheet", string(id)).Msg("action sheet no longer in menu")
	return nil
}

// runAction runs the effect off the update loop and reports the new settings.
func (s *SettingsScreen) runAction(a menu.ActionOption) tea.Cmd {
	provider := s.settings
	return func() tea.Msg {
		a.Select()
		if provider == nil {
			return SettingsChangedMsg{Snapshot: models.DefaultState().Snapshot()}
		}
		return SettingsChangedMsg{Snapshot: provider.Snapshot()}
	}
}

// ShouldGoBack returns true if the screen should go back to the main menu.
func (s *SettingsScreen) ShouldGoBack() bool {
	return s.goBack
}

// ResetGoBack resets the go back state.
func (s *SettingsScreen) ResetGoBack() {
	s.goBack = false
}

func (s *SettingsScreen) listWidth() int {
	if s.width <= 0 {
		return 36
	}
	return s.width / 2
}

// View renders the screen.
func (s *SettingsScreen) View() string {
	var b strings.Builder

	title := components.Styles.Title.Render("Settings")
	b.WriteString(lipgloss.NewStyle().
		Width(s.width).
		Align(lipgloss.Center).
		Render(title))
	b.WriteString("\n\n")

	left := s.renderList()
	if s.sheet != nil {
		left = s.sheet.View()
	}

	var preview string
	if focused := s.Focused(); focused != nil {
		preview = components.Preview(menu.PreviewOf(focused), s.snapshot, s.width-s.listWidth()-2)
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(s.listWidth()).Render(left),
		"  ",
		preview,
	))

	b.WriteString("\n\n")
	b.WriteString(s.help.View(s.keys))

	return b.String()
}

func (s *SettingsScreen) renderList() string {
	list := components.NewSelectableList(s.options)
	list.Width = s.listWidth()
	list.Active = s.Cursor()
	return list.Render()
}
