// Package tui provides the terminal user interface for clickwheel.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dtg01100/clickwheel/internal/auth"
	"github.com/dtg01100/clickwheel/internal/config"
	"github.com/dtg01100/clickwheel/internal/logger"
	"github.com/dtg01100/clickwheel/internal/menu"
	"github.com/dtg01100/clickwheel/internal/models"
	"github.com/dtg01100/clickwheel/internal/settings"
	"github.com/dtg01100/clickwheel/internal/tui/components"
	"github.com/dtg01100/clickwheel/internal/tui/screens"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rs/zerolog"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Screen represents a TUI screen in the application.
type Screen int

const (
	ScreenMain Screen = iota
	ScreenSettings
	ScreenAbout
	ScreenHelp
)

// String returns the string representation of a screen.
func (s Screen) String() string {
	switch s {
	case ScreenMain:
		return "Main Menu"
	case ScreenSettings:
		return "Settings"
	case ScreenAbout:
		return "About"
	case ScreenHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// viewID returns the menu identity of a screen.
func (s Screen) viewID() menu.ViewID {
	switch s {
	case ScreenSettings:
		return menu.ViewSettings
	case ScreenAbout:
		return menu.ViewAbout
	case ScreenHelp:
		return "help"
	default:
		return "main"
	}
}

// ScreenChangeMsg is sent when the screen should change.
type ScreenChangeMsg struct {
	Screen Screen
}

// AppInitError is sent when app initialization fails.
type AppInitError struct {
	Err error
}

// SettingsUpdatedMsg is sent when the settings store changes, whichever
// screen is active.
type SettingsUpdatedMsg struct {
	Snapshot models.Snapshot
}

// AppInitDone is sent when app initialization is complete.
type AppInitDone struct {
	Config  *config.Config
	Store   *settings.Store
	Apple   *auth.Provider
	Spotify *auth.Provider
}

// App is the main TUI application model.
type App struct {
	currentScreen  Screen
	previousScreen Screen
	aboutReturn    Screen
	width          int
	height         int
	showHelp       bool
	initError      error

	// Help screen scroll state
	helpScrollY    int
	helpContentLen int

	// Screen models
	mainMenu *screens.MainMenuScreen
	settings *screens.SettingsScreen
	about    *screens.AboutScreen
	window   *WindowController

	// Services
	loadConfig func() (*config.Config, error)
	config     *config.Config
	store      *settings.Store
	apple      *auth.Provider
	spotify    *auth.Provider
	log        zerolog.Logger

	// send delivers messages from outside the update loop; nil in tests
	// that drive Update directly.
	send func(tea.Msg)
}

// NewApp creates a new TUI application.
func NewApp() *App {
	return &App{
		currentScreen:  ScreenMain,
		previousScreen: ScreenMain,
		mainMenu:       screens.NewMainMenuScreen(),
		settings:       screens.NewSettingsScreen(),
		about:          screens.NewAboutScreen(Version),
		window:         NewWindowController(),
		loadConfig:     config.Load,
		log:            logger.GetLogger("tui"),
	}
}

// Init initializes the application.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.mainMenu.Init(),
		a.settings.Init(),
		a.initializeServices,
	)
}

// initializeServices loads the configuration and wires the settings store
// and auth providers into the screens.
func (a *App) initializeServices() tea.Msg {
	cfg, err := a.loadConfig()
	if err != nil {
		return AppInitError{Err: err}
	}

	store := settings.NewStore(cfg.State(), cfg)
	return AppInitDone{
		Config:  cfg,
		Store:   store,
		Apple:   auth.NewMusicKit(store),
		Spotify: auth.NewSpotify(store),
	}
}

// attachProviders hands the services to the screens. It runs on the update
// loop so screens are never mutated from a command goroutine.
func (a *App) attachProviders(done AppInitDone) {
	a.config = done.Config
	a.store = done.Store
	a.apple = done.Apple
	a.spotify = done.Spotify
	if a.store == nil {
		return
	}
	a.settings.SetProviders(a.store, a.apple, a.spotify)
	a.about.SetProvider(a.store)
	a.store.Subscribe(a.announceChange)
}

// announceChange runs on whichever goroutine changed the store.
func (a *App) announceChange(snap models.Snapshot) {
	send := a.send
	if send == nil {
		return
	}
	go send(SettingsUpdatedMsg{Snapshot: snap})
}

// snapshot returns the current settings, or the defaults before init.
func (a *App) snapshot() models.Snapshot {
	if a.store == nil {
		return models.DefaultState().Snapshot()
	}
	return a.store.Snapshot()
}

// Update handles application updates.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.quitting(msg) {
			return a, tea.Quit
		}
		if a.handleGlobalKey(msg) {
			return a, nil
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()

	case ScreenChangeMsg:
		a.setScreen(msg.Screen)
		a.showHelp = false
		return a, nil

	case screens.NavigateMsg:
		return a, a.navigate(msg.ViewID)

	case screens.HideMenuWhenActiveMsg:
		a.window.HideMenuWhenActive(msg.ViewID)
		a.resize()
		return a, nil

	case AppInitError:
		a.initError = msg.Err
		a.log.Error().Err(msg.Err).Msg("initialization failed")

	case SettingsUpdatedMsg:
		a.settings.Update(screens.SettingsChangedMsg{Snapshot: msg.Snapshot})
		return a, nil

	case AppInitDone:
		a.attachProviders(msg)
		a.log.Info().Msg("services initialized")
	}

	switch a.currentScreen {
	case ScreenMain:
		model, cmd := a.mainMenu.Update(msg)
		if m, ok := model.(*screens.MainMenuScreen); ok {
			a.mainMenu = m
		}
		cmds = append(cmds, cmd)

		if a.mainMenu.ShouldNavigate() {
			target := a.mainMenu.GetNavigationTarget()
			a.mainMenu.ResetNavigation()
			cmds = append(cmds, a.navigate(target))
		}

	case ScreenSettings:
		model, cmd := a.settings.Update(msg)
		if m, ok := model.(*screens.SettingsScreen); ok {
			a.settings = m
		}
		cmds = append(cmds, cmd)

		if a.settings.ShouldGoBack() {
			a.settings.ResetGoBack()
			a.setScreen(ScreenMain)
		}

	case ScreenAbout:
		model, cmd := a.about.Update(msg)
		if m, ok := model.(*screens.AboutScreen); ok {
			a.about = m
		}
		cmds = append(cmds, cmd)

		if a.about.ShouldGoBack() {
			a.about.ResetGoBack()
			a.setScreen(a.aboutReturn)
		}
	}

	return a, tea.Batch(cmds...)
}

// handleGlobalKey handles keys that apply on every screen. It reports
// whether the key was consumed.
func (a *App) handleGlobalKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		if a.showHelp {
			if a.helpScrollY > 0 {
				a.helpScrollY--
			}
			return true
		}
	case "down", "j":
		if a.showHelp {
			maxScroll := a.helpContentLen - (a.height - 6)
			if maxScroll > 0 && a.helpScrollY < maxScroll {
				a.helpScrollY++
			}
			return true
		}
	case "q":
		if a.currentScreen == ScreenMain {
			return true
		}
		if a.settings.HasPopup() && a.currentScreen == ScreenSettings {
			return false
		}
		a.closeHelpOrGoHome()
		return true
	case "esc":
		if a.showHelp {
			a.closeHelpOrGoHome()
			return true
		}
	case "?":
		if a.currentScreen == ScreenSettings && a.settings.HasPopup() {
			return false
		}
		if !a.showHelp {
			a.previousScreen = a.currentScreen
			a.currentScreen = ScreenHelp
			a.window.SetActive(ScreenHelp.viewID())
			a.showHelp = true
			a.helpScrollY = 0
			a.resize()
		}
		return true
	}
	return false
}

// quitting reports whether a key ends the program.
func (a *App) quitting(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+c":
		return true
	case "q":
		return a.currentScreen == ScreenMain
	}
	return false
}

func (a *App) closeHelpOrGoHome() {
	if a.currentScreen == ScreenHelp {
		a.showHelp = false
		a.setScreen(a.previousScreen)
		return
	}
	a.setScreen(ScreenMain)
}

// navigate opens the screen for a view identity.
func (a *App) navigate(id menu.ViewID) tea.Cmd {
	switch id {
	case menu.ViewSettings:
		a.setScreen(ScreenSettings)
	case menu.ViewAbout:
		a.aboutReturn = a.currentScreen
		a.setScreen(ScreenAbout)
	case screens.NavigateQuit:
		return tea.Quit
	default:
		a.log.Warn().Str("view", string(id)).Msg("navigation to unknown view")
	}
	return nil
}

// setScreen switches screens and lays them out for the new pane split.
func (a *App) setScreen(s Screen) {
	a.currentScreen = s
	a.window.SetActive(s.viewID())
	if s == ScreenSettings {
		a.settings.Activate()
	}
	a.resize()
}

// contentWidth returns the width available to the current screen.
func (a *App) contentWidth() int {
	if a.window.MenuHidden() {
		return a.width
	}
	return a.width - a.paneWidth()
}

// paneWidth returns the width of the device pane beside the content.
func (a *App) paneWidth() int {
	return a.width * 2 / 5
}

// resize propagates the content size to all screens.
func (a *App) resize() {
	width := a.contentWidth()
	height := a.height - 2
	a.mainMenu.SetSize(width, height)
	a.settings.SetSize(width, height)
	a.about.SetSize(width, height)
}

// View renders the application.
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	if a.initError != nil {
		return a.renderInitError()
	}

	headerHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - statusHeight

	var content string
	switch a.currentScreen {
	case ScreenMain:
		content = a.mainMenu.View()
	case ScreenSettings:
		content = a.settings.View()
	case ScreenAbout:
		content = a.about.View()
	case ScreenHelp:
		content = a.renderHelp()
	}

	if !a.window.MenuHidden() {
		pane := components.Preview(menu.PreviewDevice, a.snapshot(), a.paneWidth())
		content = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(a.contentWidth()).Render(content),
			pane,
		)
	}

	contentBox := lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		components.TitleBar(a.width, "Clickwheel", Version),
		contentBox,
		a.renderStatusBar(),
	)
}

// renderStatusBar renders the bottom status bar.
func (a *App) renderStatusBar() string {
	var statusText string
	if a.showHelp {
		statusText = "Press Esc or q to close help"
	} else {
		snap := a.snapshot()
		statusText = fmt.Sprintf("Screen: %s | Theme: %s | Service: %s | ?: Help | q: Quit",
			a.currentScreen.String(), snap.DeviceTheme.DisplayName(), snap.Service.DisplayName())
	}
	return components.StatusBar(a.width, statusText)
}

func writeHelpSection(b *strings.Builder, title string, items []components.HelpItem) {
	b.WriteString(components.Styles.Subtitle.Render(title) + "\n")
	for _, item := range items {
		line := fmt.Sprintf("  %s  %s",
			components.Styles.MenuKey.Render(item.Key),
			components.Styles.Normal.Render(item.Desc))
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

// renderHelp renders the help screen.
func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(components.Styles.Title.Render("Help & Keybindings") + "\n\n")

	writeHelpSection(&b, "Global Keybindings", []components.HelpItem{
		{Key: "↑/k", Desc: "Move up"},
		{Key: "↓/j", Desc: "Move down"},
		{Key: "Enter/→", Desc: "Select"},
		{Key: "Esc/←", Desc: "Go back/cancel"},
		{Key: "q", Desc: "Quit (from main menu) or go back"},
		{Key: "Ctrl+C", Desc: "Force quit"},
		{Key: "?", Desc: "Toggle this help screen"},
	})
	writeHelpSection(&b, "Main Menu", []components.HelpItem{
		{Key: "S", Desc: "Settings"},
		{Key: "A", Desc: "About"},
	})
	writeHelpSection(&b, "Settings", []components.HelpItem{
		{Key: "Enter", Desc: "Open entry or action sheet"},
		{Key: "Esc", Desc: "Close action sheet without changes"},
		{Key: "(Current)", Desc: "Marks the active theme, side or service"},
	})

	lines := strings.Split(b.String(), "\n")
	a.helpContentLen = len(lines)

	availableHeight := a.height - 6
	if availableHeight < 1 {
		availableHeight = 1
	}

	startLine := a.helpScrollY
	if startLine < 0 {
		startLine = 0
	}
	endLine := startLine + availableHeight
	if endLine > len(lines) {
		endLine = len(lines)
	}
	if startLine > endLine {
		startLine = endLine
	}

	visibleContent := strings.Join(lines[startLine:endLine], "\n")

	maxScroll := len(lines) - availableHeight
	if maxScroll > 0 {
		scrollInfo := fmt.Sprintf("\n\n[%d/%d] ↑/↓ to scroll", startLine+1, maxScroll+1)
		visibleContent += components.Styles.HelpText.Render(scrollInfo)
	}

	width := a.contentWidth() - 4
	if width < 10 {
		width = 10
	}
	return components.Styles.Border.
		Width(width).
		Render(visibleContent)
}

// renderInitError renders the initialization error screen.
func (a *App) renderInitError() string {
	center := lipgloss.NewStyle().Width(a.width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Render(components.Styles.Title.Render("Initialization Error")))
	b.WriteString("\n\n")
	b.WriteString(center.Render(components.RenderError(
		wordwrap.String(fmt.Sprintf("Failed to initialize application:\n\n%v", a.initError), errorWrapWidth(a.width)))))
	b.WriteString("\n\n")
	b.WriteString(center.Render(components.Styles.Subtitle.Render("Possible solutions:")))
	b.WriteString("\n\n")

	for _, suggestion := range []string{
		"• Check the syntax of config.yaml",
		"• Run 'clickwheel config restore' to restore the last backup",
		"• Verify you have proper permissions for the config directory",
	} {
		b.WriteString(center.Render(suggestion))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center.Render(components.Styles.HelpText.Render("Press q or Ctrl+C to quit")))

	return b.String()
}

// errorWrapWidth keeps long config errors readable on wide and unsized terminals.
func errorWrapWidth(width int) int {
	if width <= 0 || width > 72 {
		return 68
	}
	return max(width-4, 10)
}

// Run starts the TUI application.
func Run() error {
	app := NewApp()
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	app.send = p.Send
	_, err := p.Run()
	return err
}
