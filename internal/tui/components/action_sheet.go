package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dtg01100/clickwheel/internal/menu"
	"github.com/samber/lo"
)

// cancelChoice is the value of the trailing Cancel entry.
const cancelChoice = -1

// ActionSheetClosedMsg is sent when an action sheet closes. Index and
// ActionID identify the chosen action as it was shown, valid only when OK is
// true.
type ActionSheetClosedMsg struct {
	SheetID  menu.ViewID
	Index    int
	ActionID string
	OK       bool
}

// ActionSheet is a popup listing the actions of an ActionSheetOption,
// followed by a Cancel entry.
type ActionSheet struct {
	sheet  menu.ActionSheetOption
	form   *huh.Form
	choice int
	width  int
	done   bool
}

// NewActionSheet builds the popup for sheet. The cursor starts on the
// current action when there is one.
func NewActionSheet(sheet menu.ActionSheetOption) *ActionSheet {
	s := &ActionSheet{sheet: sheet, choice: cancelChoice}

	if _, idx, ok := lo.FindIndexOf(sheet.Actions, func(a menu.ActionOption) bool {
		return a.IsSelected
	}); ok {
		s.choice = idx
	} else if len(sheet.Actions) > 0 {
		s.choice = 0
	}

	options := lo.Map(sheet.Actions, func(a menu.ActionOption, i int) huh.Option[int] {
		return huh.NewOption(a.Label, i)
	})
	options = append(options, huh.NewOption("Cancel", cancelChoice))

	keymap := huh.NewDefaultKeyMap()
	keymap.Quit = key.NewBinding(key.WithKeys("ctrl+c"))

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(sheet.Label).
				Options(options...).
				Value(&s.choice),
		),
	).
		WithTheme(huh.ThemeBase16()).
		WithKeyMap(keymap).
		WithShowHelp(false)

	return s
}

// ID returns the view identity of the sheet.
func (s *ActionSheet) ID() menu.ViewID {
	return s.sheet.ID
}

// Labels returns the entries in display order, Cancel included.
func (s *ActionSheet) Labels() []string {
	labels := lo.Map(s.sheet.Actions, func(a menu.ActionOption, _ int) string {
		return a.Label
	})
	return append(labels, "Cancel")
}

// Choice returns the index the cursor rests on, or -1 for Cancel.
func (s *ActionSheet) Choice() int {
	return s.choice
}

// IsDone reports whether the sheet has closed.
func (s *ActionSheet) IsDone() bool {
	return s.done
}

// SetWidth sets the popup width.
func (s *ActionSheet) SetWidth(width int) {
	s.width = width
}

// Init initializes the embedded form.
func (s *ActionSheet) Init() tea.Cmd {
	return s.form.Init()
}

// Update handles popup input. Esc closes the sheet without a choice.
func (s *ActionSheet) Update(msg tea.Msg) (*ActionSheet, tea.Cmd) {
	if s.done {
		return s, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "left", "backspace":
			return s, s.close(cancelChoice)
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateCompleted:
		return s, s.close(s.choice)
	case huh.StateAborted:
		return s, s.close(cancelChoice)
	}

	return s, cmd
}

func (s *ActionSheet) close(choice int) tea.Cmd {
	s.done = true
	msg := ActionSheetClosedMsg{SheetID: s.sheet.ID, Index: choice}
	msg.OK = choice >= 0 && choice < len(s.sheet.Actions)
	if msg.OK {
		msg.ActionID = s.sheet.Actions[choice].ID
	}
	return func() tea.Msg { return msg }
}

// View renders the popup.
func (s *ActionSheet) View() string {
	if s.done {
		return ""
	}

	style := Styles.Sheet
	if s.width > 4 {
		style = style.Width(s.width - 4)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.form.View(),
		Styles.HelpText.Render("enter: choose  esc: cancel"),
	))
}
