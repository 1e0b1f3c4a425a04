// Package components provides shared UI components for the TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// Color palette, modelled on the classic click-wheel player screen.
var (
	ColorPrimary       = lipgloss.Color("33")  // Selection blue
	ColorPrimaryBright = lipgloss.Color("75")  // Brighter blue
	ColorAccent        = lipgloss.Color("255") // Selected text
	ColorSurface       = lipgloss.Color("236") // Status bar surface

	ColorText       = lipgloss.Color("252") // Light gray text
	ColorTextMuted  = lipgloss.Color("243") // Muted gray
	ColorTextBright = lipgloss.Color("15")  // White

	ColorSuccess = lipgloss.Color("82")  // Green
	ColorError   = lipgloss.Color("196") // Red
)

// Styles contains common styling for the TUI.
var Styles = struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style

	Border     lipgloss.Style
	HelpText   lipgloss.Style
	StatusLine lipgloss.Style
	Header     lipgloss.Style

	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style
	MenuKey      lipgloss.Style

	Sheet lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextBright).
		Background(ColorPrimary).
		Padding(0, 2),
	Subtitle: lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorTextMuted),
	Normal: lipgloss.NewStyle().
		Foreground(ColorText),

	Error: lipgloss.NewStyle().
		Foreground(ColorError),
	Success: lipgloss.NewStyle().
		Foreground(ColorSuccess),

	Border: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1),
	HelpText: lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorTextMuted),
	StatusLine: lipgloss.NewStyle().
		Foreground(ColorTextBright).
		Background(ColorSurface).
		Padding(0, 1),
	Header: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextBright).
		Background(ColorPrimary).
		Padding(0, 1),

	MenuItem: lipgloss.NewStyle().
		Foreground(ColorText),
	MenuSelected: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent).
		Background(ColorPrimary),
	MenuKey: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimaryBright),

	Sheet: lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(ColorTextMuted).
		Padding(0, 1),
}

// MenuItem represents a menu item with label, description, and key binding.
type MenuItem struct {
	Label       string
	Description string
	Key         string
}

// Menu represents a navigable menu.
type Menu struct {
	Items    []MenuItem
	Cursor   int
	Width    int
	ShowKeys bool
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) *Menu {
	return &Menu{
		Items:    items,
		ShowKeys: true,
	}
}

// SetWidth sets the menu width.
func (m *Menu) SetWidth(width int) {
	m.Width = width
}

// Up moves the cursor up.
func (m *Menu) Up() {
	if m.Cursor > 0 {
		m.Cursor--
	}
}

// Down moves the cursor down.
func (m *Menu) Down() {
	if m.Cursor < len(m.Items)-1 {
		m.Cursor++
	}
}

// Selected returns the currently selected menu item.
func (m *Menu) Selected() MenuItem {
	if m.Cursor >= 0 && m.Cursor < len(m.Items) {
		return m.Items[m.Cursor]
	}
	return MenuItem{}
}

// Render renders the menu with styling.
func (m *Menu) Render() string {
	if len(m.Items) == 0 {
		return ""
	}

	lines := lo.Map(m.Items, func(item MenuItem, i int) string {
		key := ""
		if m.ShowKeys && item.Key != "" {
			key = Styles.MenuKey.Render("[" + item.Key + "] ")
		}

		var line string
		if i == m.Cursor {
			line = lipgloss.JoinHorizontal(lipgloss.Left,
				Styles.MenuSelected.Render("▸"), " ", key, Styles.MenuSelected.Render(item.Label))
		} else {
			line = lipgloss.JoinHorizontal(lipgloss.Left,
				"  ", key, Styles.MenuItem.Render(item.Label))
		}

		if item.Description != "" {
			line += "\n" + Styles.Subtitle.Render("    "+item.Description)
		}
		return line
	})

	return strings.Join(lines, "\n") + "\n"
}

// HelpItem represents a help item with key and description.
type HelpItem struct {
	Key  string
	Desc string
}

// HelpBar renders a help bar showing keybindings.
func HelpBar(width int, items []HelpItem) string {
	parts := lo.Map(items, func(item HelpItem, _ int) string {
		return Styles.MenuKey.Render(item.Key) + Styles.HelpText.Render(" "+item.Desc)
	})

	content := strings.Join(parts, Styles.HelpText.Render(" • "))
	return Styles.StatusLine.Width(width).MaxWidth(width).Render(content)
}

// TitleBar renders a title bar with the application name and version.
func TitleBar(width int, title, version string) string {
	left := Styles.Header.Render(title)
	right := Styles.Subtitle.Render("v" + version + "  [?] Help  [q] Quit")

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		left,
		strings.Repeat(" ", padding),
		right,
	)
}

// StatusBar renders a status line at the bottom of the screen.
func StatusBar(width int, text string) string {
	return Styles.StatusLine.Width(width).Render(text)
}

// Center centers text within a given width.
func Center(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}

// Truncate shortens text to maxLen runes, ending with "..." when cut.
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// RenderError renders an error message.
func RenderError(text string) string {
	return Styles.Error.Render("✗ " + text)
}

// RenderSuccess renders a success message.
func RenderSuccess(text string) string {
	return Styles.Success.Render("✓ " + text)
}
