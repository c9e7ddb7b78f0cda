package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/params"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// rowPickerModel is the bubbletea model for interactive saved-row selection.
type rowPickerModel struct {
	Rows     []params.SavedRow
	Cursor   int
	Selected *params.SavedRow
}

// newRowPickerModel creates a new row picker model.
func newRowPickerModel(rows []params.SavedRow) rowPickerModel {
	return rowPickerModel{Rows: rows}
}

func (m rowPickerModel) Init() tea.Cmd {
	return nil
}

func (m rowPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Rows[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m rowPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Saved Row"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, r := range m.Rows {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		detail := fmt.Sprintf("sag %.1fmm · end flat %d · %s",
			r.Record.SagMM, r.Record.EndFlat, r.Record.Profile)
		line := fmt.Sprintf("%s%-28s  %s", cursor, r.Record.Label(), listDimStyle.Render(detail))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
