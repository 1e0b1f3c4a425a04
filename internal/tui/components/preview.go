package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dtg01100/clickwheel/internal/menu"
	"github.com/dtg01100/clickwheel/internal/models"
)

// devicePalette holds the case and wheel colours of a device theme.
type devicePalette struct {
	Case  lipgloss.Color
	Wheel lipgloss.Color
	Knob  lipgloss.Color
}

var devicePalettes = map[models.DeviceTheme]devicePalette{
	models.ThemeSilver: {Case: lipgloss.Color("250"), Wheel: lipgloss.Color("255"), Knob: lipgloss.Color("247")},
	models.ThemeBlack:  {Case: lipgloss.Color("235"), Wheel: lipgloss.Color("238"), Knob: lipgloss.Color("241")},
	models.ThemeU2:     {Case: lipgloss.Color("233"), Wheel: lipgloss.Color("160"), Knob: lipgloss.Color("234")},
}

// paletteFor returns the palette of theme, falling back to silver.
func paletteFor(theme models.DeviceTheme) devicePalette {
	if p, ok := devicePalettes[theme]; ok {
		return p
	}
	return devicePalettes[models.ThemeSilver]
}

var previewBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorTextMuted).
	Padding(1, 2).
	Align(lipgloss.Center)

// Preview renders the illustration panel for kind. PreviewNone renders an
// empty string.
func Preview(kind menu.Preview, snap models.Snapshot, width int) string {
	var body string
	switch kind {
	case menu.PreviewNone:
		return ""
	case menu.PreviewSettings:
		body = lipgloss.JoinVertical(lipgloss.Center,
			Styles.MenuKey.Render("⚙"),
			"",
			Styles.Normal.Render("Settings"),
		)
	case menu.PreviewService:
		body = lipgloss.JoinVertical(lipgloss.Center,
			Styles.MenuKey.Render("♫"),
			"",
			Styles.Normal.Render("Streaming from"),
			Styles.Success.Render(snap.Service.DisplayName()),
		)
	case menu.PreviewDevice:
		body = renderDevice(snap)
	case menu.PreviewMusic:
		body = lipgloss.JoinVertical(lipgloss.Center,
			Styles.MenuKey.Render("♪ ♫ ♪"),
			"",
			Styles.Normal.Render("Sign in to play"),
			Styles.Subtitle.Render("Apple Music or Spotify"),
		)
	default:
		body = Styles.Subtitle.Render(string(kind))
	}

	style := previewBox
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(body)
}

// renderDevice draws the device front or back in the theme colours.
func renderDevice(snap models.Snapshot) string {
	p := paletteFor(snap.DeviceTheme)
	caseStyle := lipgloss.NewStyle().Background(p.Case).Padding(0, 1)

	var lines []string
	if snap.DeviceSide == models.SideBack {
		back := lipgloss.NewStyle().Foreground(p.Knob)
		lines = []string{
			"           ",
			"           ",
			back.Render("     ●     "),
			"           ",
			back.Render("   iPod    "),
			"           ",
		}
	} else {
		screen := lipgloss.NewStyle().Background(lipgloss.Color("153")).Foreground(lipgloss.Color("0"))
		wheel := lipgloss.NewStyle().Foreground(p.Wheel)
		knob := lipgloss.NewStyle().Foreground(p.Knob)
		lines = []string{
			screen.Render(" ♪ Music   "),
			"           ",
			wheel.Render("   ╭───╮   "),
			wheel.Render("   │") + knob.Render(" ● ") + wheel.Render("│   "),
			wheel.Render("   ╰───╯   "),
			"           ",
		}
	}

	device := caseStyle.Render(strings.Join(lines, "\n"))
	caption := Styles.Subtitle.Render(snap.DeviceTheme.DisplayName() + " · " + string(snap.DeviceSide))
	return lipgloss.JoinVertical(lipgloss.Center, device, "", caption)
}
