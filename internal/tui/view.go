package tui

import (
	"fmt"
	"strings"

	"look/internal/search"
	"look/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

const (
	resultTitle    = "Result"
	selectedMarker = " > "
	rowIndent      = "   "
	commandPrefix  = ":"
)

// View implements tea.Model
func (m *Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderResultPane(),
		m.renderStatus(),
		m.renderInputPane(),
		m.renderHelp(),
	)
}

func (m *Model) renderResultPane() string {
	body := m.styles.Pane.
		BorderTop(false).
		Width(m.listWidth()).
		Render(m.viewport.View())
	return m.titleBar(lipgloss.Width(body)) + "\n" + body
}

// titleBar draws the top border with the title centred in it.
func (m *Model) titleBar(width int) string {
	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(m.styles.Pane.GetBorderTopForeground())

	title := " " + resultTitle + " "
	inner := width - 2 - lipgloss.Width(title)
	if inner < 0 {
		return edge.Render(border.TopLeft) + m.styles.Title.Render(title) + edge.Render(border.TopRight)
	}
	left := inner / 2
	right := inner - left
	return edge.Render(border.TopLeft+strings.Repeat(border.Top, left)) +
		m.styles.Title.Render(title) +
		edge.Render(strings.Repeat(border.Top, right)+border.TopRight)
}

func (m *Model) renderRecords() string {
	lines := make([]string, len(m.records))
	for i, r := range m.records {
		lines[i] = m.renderRecord(r, i == m.selected)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRecord(r search.MatchRecord, selected bool) string {
	before, match, after := r.Segments()

	var line string
	if selected {
		line = m.styles.Selected.Render(selectedMarker+before) +
			m.styles.SelectedMatch.Render(match) +
			m.styles.Selected.Render(after)
	} else {
		line = m.styles.Row.Render(rowIndent+before) +
			m.styles.Match.Render(match) +
			m.styles.Row.Render(after)
	}
	// Wrapped rows would break the row-to-record mapping the scrolling relies on.
	return ansi.Truncate(line, m.listWidth(), "…")
}

func (m *Model) renderStatus() string {
	status := fmt.Sprintf("[%s] %d/%d", m.mode, m.selected+1, len(m.records))
	if r := m.Selected(); r != nil {
		if r.IsDir {
			status += "  dir"
		} else {
			status += "  file  " + humanize.Bytes(uint64(r.Size))
		}
		status += "  " + r.Name()
	}
	return m.styles.Status.Render(ansi.Truncate(status, m.width, "…"))
}

func (m *Model) renderInputPane() string {
	var content string
	switch {
	case m.showOutput:
		// Multi-line diagnostics are shown on one line.
		flat := strings.Join(strings.Fields(m.lastOutput), " ")
		content = m.styles.Output.Render(ansi.Truncate(flat, m.listWidth(), "…"))
	case m.mode == types.Command:
		content = commandPrefix + m.renderInput()
	}
	return m.styles.Input.Width(m.listWidth()).Render(content)
}

// renderInput draws the command line with the cursor cell highlighted.
func (m *Model) renderInput() string {
	before := string(m.input[:m.cursor])
	at := " "
	after := ""
	if m.cursor < len(m.input) {
		at = string(m.input[m.cursor])
		after = string(m.input[m.cursor+1:])
	}
	return before + m.styles.Cursor.Render(at) + after
}

func (m *Model) renderHelp() string {
	if m.mode == types.Command {
		return m.help.ShortHelpView(m.keys.CommandHelp())
	}
	return m.help.ShortHelpView(m.keys.SelectionHelp())
}
