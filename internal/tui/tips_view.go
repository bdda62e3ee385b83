package tui

import (
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studyflow/internal/tips"
)

// tipsModel shows one study tip at a time plus the full table below it. The
// randomness source is injected so tests can pin the selection.
type tipsModel struct {
	rng    *rand.Rand
	width  int
	height int

	current tips.Tip
}

func newTipsModel(rng *rand.Rand) tipsModel {
	return tipsModel{
		rng:     rng,
		current: tips.Random(rng),
	}
}

func (m *tipsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m tipsModel) update(msg tea.Msg) (tipsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.New) {
			m.current = tips.Random(m.rng)
		}
	}
	return m, nil
}

func (m tipsModel) view() string {
	w := m.width - 4

	label := accentStyle.Bold(true).Render(strings.ToUpper(string(m.current.Category)))
	tipPanel := activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			label,
			titleStyle.Render(m.current.Title),
			"",
			normalItemStyle.Render(m.current.Content),
		),
	)

	var rows []string
	rows = append(rows, titleStyle.Render("All Tips"))
	for _, t := range tips.All {
		marker := "  "
		style := mutedStyle
		if t.ID == m.current.ID {
			marker = "> "
			style = normalItemStyle
		}
		rows = append(rows, style.Render(marker+t.Title))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: another tip"))
	listPanel := panelStyle.Width(w).Render(strings.Join(rows, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, tipPanel, listPanel)
}
