package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dtg01100/clickwheel/internal/menu"
)

const (
	viewMarker  = "›"
	sheetMarker = "…"
)

// SelectableList renders a menu option list with one active row.
type SelectableList struct {
	Options []menu.Option
	Active  int
	Width   int
}

// NewSelectableList creates a list over options.
func NewSelectableList(options []menu.Option) *SelectableList {
	return &SelectableList{Options: options}
}

// Render renders every option, highlighting the active one.
func (l *SelectableList) Render() string {
	if len(l.Options) == 0 {
		return Styles.HelpText.Render("  (empty)") + "\n"
	}

	var b strings.Builder
	for i, o := range l.Options {
		b.WriteString(RenderOption(o, i == l.Active, l.Width))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderOption renders a single row. It panics on an option type it does
// not know, which can only come from a programming error.
func RenderOption(o menu.Option, active bool, width int) string {
	var label, marker string

	switch o := o.(type) {
	case menu.ViewOption:
		label, marker = o.Label, viewMarker
	case menu.ActionSheetOption:
		label, marker = o.Label, sheetMarker
	case menu.ActionOption:
		label = o.Label
	default:
		panic(fmt.Sprintf("components: unknown menu option type %T", o))
	}

	if width <= 0 {
		width = 32
	}
	// two columns of cursor, one space and the marker
	inner := width - 4
	if inner < 1 {
		inner = 1
	}
	label = Truncate(label, inner)
	pad := inner - lipgloss.Width(label)
	if pad < 0 {
		pad = 0
	}
	row := label + strings.Repeat(" ", pad) + " " + marker

	if active {
		return Styles.MenuSelected.Render("▸ " + row)
	}
	return Styles.MenuItem.Render("  " + row)
}
