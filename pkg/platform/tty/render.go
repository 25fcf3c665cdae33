package tty

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	paneStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	focusedPaneStyle = paneStyle.BorderForeground(lipgloss.Color("212"))
	emptyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (p *Platform) render() string {
	windows := p.Windows()
	if len(windows) == 0 {
		return emptyStyle.Render("No open windows.")
	}

	panes := make([]string, 0, len(windows))
	for i, pw := range windows {
		w := pw.(*Window)
		size := w.Size()
		style := paneStyle
		if i == p.focus {
			style = focusedPaneStyle
		}
		pane := style.
			Width(size.Width).
			Height(size.Height).
			MaxWidth(size.Width + borderCells).
			MaxHeight(size.Height + borderCells).
			Render(w.surface.Content())
		title := titleStyle.MaxWidth(size.Width + borderCells).
			Render(fmt.Sprintf("%s %dx%d @%.2gx", w.Title, size.Width, size.Height, w.ContentScaleFactor()))
		panes = append(panes, lipgloss.JoinVertical(lipgloss.Left, title, pane))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, panes...),
		p.help.View(p.keys),
	)
}
