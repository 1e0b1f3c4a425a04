// Package screens provides individual TUI screens for the application.
package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dtg01100/clickwheel/internal/menu"
	"github.com/dtg01100/clickwheel/internal/tui/components"
)

// NavigateQuit is the navigation target that exits the application.
const NavigateQuit menu.ViewID = "quit"

// MainMenuScreen is the main navigation screen.
type MainMenuScreen struct {
	menu             *components.Menu
	width            int
	height           int
	navigate         bool
	navigationTarget menu.ViewID
}

// NewMainMenuScreen creates a new main menu screen.
func NewMainMenuScreen() *MainMenuScreen {
	items := []components.MenuItem{
		{
			Label:       "Settings",
			Description: "Device theme, back case and streaming service",
			Key:         "S",
		},
		{
			Label:       "About",
			Description: "Version and current settings",
			Key:         "A",
		},
		{
			Label:       "Quit",
			Description: "Exit the application",
			Key:         "Q",
		},
	}

	return &MainMenuScreen{
		menu: components.NewMenu(items),
	}
}

// SetSize sets the screen dimensions.
func (s *MainMenuScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.menu.SetWidth(width - 8)
}

// Init initializes the screen.
func (s *MainMenuScreen) Init() tea.Cmd {
	return nil
}

// Update handles screen updates.
func (s *MainMenuScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch strings.ToLower(msg.String()) {
		case "up", "k":
			s.menu.Up()
		case "down", "j":
			s.menu.Down()
		case "enter", " ", "right":
			s.selectKey(s.menu.Selected().Key)
		case "s", "a", "q":
			s.selectKey(strings.ToUpper(msg.String()))
		}
	}

	return s, nil
}

// selectKey sets the navigation target for a menu key.
func (s *MainMenuScreen) selectKey(k string) {
	switch k {
	case "S":
		s.navigationTarget = menu.ViewSettings
	case "A":
		s.navigationTarget = menu.ViewAbout
	case "Q":
		s.navigationTarget = NavigateQuit
	default:
		return
	}
	s.navigate = true
}

// ShouldNavigate returns true if the screen should navigate to another screen.
func (s *MainMenuScreen) ShouldNavigate() bool {
	return s.navigate
}

// GetNavigationTarget returns the target view to navigate to.
func (s *MainMenuScreen) GetNavigationTarget() menu.ViewID {
	return s.navigationTarget
}

// ResetNavigation resets the navigation state.
func (s *MainMenuScreen) ResetNavigation() {
	s.navigate = false
	s.navigationTarget = ""
}

// View renders the screen.
func (s *MainMenuScreen) View() string {
	var b strings.Builder

	b.WriteString("\n")

	title := components.Styles.Title.Render("Clickwheel")
	b.WriteString(lipgloss.NewStyle().
		Width(s.width).
		Align(lipgloss.Center).
		Render(title))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(s.width).
		Align(lipgloss.Center).
		Render(s.menu.Render()))

	b.WriteString("\n\n")
	b.WriteString(components.HelpBar(s.width, []components.HelpItem{
		{Key: "↑/↓", Desc: "navigate"},
		{Key: "Enter", Desc: "select"},
		{Key: "S/A", Desc: "quick jump"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}))

	return b.String()
}
