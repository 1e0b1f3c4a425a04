package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dtg01100/clickwheel/internal/models"
	"github.com/dtg01100/clickwheel/internal/tui/components"
)

// AboutScreen shows the application version and the current settings.
type AboutScreen struct {
	settings SettingsProvider
	version  string
	width    int
	height   int
	goBack   bool
}

// NewAboutScreen creates a new about screen.
func NewAboutScreen(version string) *AboutScreen {
	return &AboutScreen{version: version}
}

// SetProvider attaches the settings provider.
func (s *AboutScreen) SetProvider(settings SettingsProvider) {
	s.settings = settings
}

// SetSize sets the screen dimensions.
func (s *AboutScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Init initializes the screen.
func (s *AboutScreen) Init() tea.Cmd {
	return nil
}

// Update handles screen updates.
func (s *AboutScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "left", "backspace", "enter":
			s.goBack = true
		}
	}
	return s, nil
}

// ShouldGoBack returns true if the screen should go back.
func (s *AboutScreen) ShouldGoBack() bool {
	return s.goBack
}

// ResetGoBack resets the go back state.
func (s *AboutScreen) ResetGoBack() {
	s.goBack = false
}

func (s *AboutScreen) snapshot() models.Snapshot {
	if s.settings == nil {
		return models.DefaultState().Snapshot()
	}
	return s.settings.Snapshot()
}

// View renders the screen.
func (s *AboutScreen) View() string {
	snap := s.snapshot()

	var b strings.Builder
	title := components.Styles.Title.Render("About")
	b.WriteString(lipgloss.NewStyle().
		Width(s.width).
		Align(lipgloss.Center).
		Render(title))
	b.WriteString("\n\n")

	rows := [][2]string{
		{"Name", "Clickwheel"},
		{"Version", s.version},
		{"Theme", snap.DeviceTheme.DisplayName()},
		{"Side", string(snap.DeviceSide)},
		{"Service", snap.Service.DisplayName()},
		{"Apple Music", authLabel(snap.IsAppleAuthorized)},
		{"Spotify", authLabel(snap.IsSpotifyAuthorized)},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			components.Styles.MenuKey.Render(fmt.Sprintf("%-12s", row[0])),
			components.Styles.Normal.Render(row[1])))
	}

	b.WriteString("\n")
	b.WriteString(components.HelpBar(s.width, []components.HelpItem{
		{Key: "Esc", Desc: "back"},
	}))

	return b.String()
}

func authLabel(authorized bool) string {
	if authorized {
		return "Signed in"
	}
	return "Signed out"
}
