package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

type confirmModel struct {
	name   string
	oldURL string
	newURL string
	choice bool
	done   bool
	width  int
	height int
}

// ConfirmReplace asks whether the saved search name should point at newURL
// instead of oldURL. Cancelling answers no.
func ConfirmReplace(name, oldURL, newURL string) (bool, error) {
	program := tea.NewProgram(confirmModel{name: name, oldURL: oldURL, newURL: newURL})
	result, err := program.Run()
	if err != nil {
		return false, err
	}
	return result.(confirmModel).choice, nil
}

func (m confirmModel) Init() tea.Cmd {
	return tea.RequestBackgroundColor
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.BackgroundColorMsg:
		appStyles = newStyles()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch strings.ToLower(msg.String()) {
		case "y":
			m.choice = true
			m.done = true
			return m, tea.Quit
		case "n", "enter", "esc", "ctrl+c":
			m.choice = false
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() tea.View {
	v := tea.NewView("")
	v.SetContent(m.render())
	v.WindowTitle = "Replace saved search"
	return v
}

func (m confirmModel) render() string {
	styles := getStyles()
	contentWidth := min(max(m.width-4, 40), 80)
	fixedWidth := lipgloss.NewStyle().Width(contentWidth)

	lines := []string{
		fixedWidth.Render(styles.SelectedStyle.Render("Replace saved search")),
		"",
		fixedWidth.Render(fmt.Sprintf("%s already points at:", m.name)),
		fixedWidth.Render(styles.URLStyle.Render("  " + truncateToWidth(m.oldURL, contentWidth-2))),
		fixedWidth.Render("Replace it with:"),
		fixedWidth.Render(styles.URLStyle.Render("  " + truncateToWidth(m.newURL, contentWidth-2))),
		"",
		fixedWidth.Render("Replace? (y/N)"),
		fixedWidth.Render(styles.FooterStyle.Render("Y confirm • N cancel • Esc cancel")),
	}

	content := styles.BorderStyle.
		Width(contentWidth + 4).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
	if m.width > 0 && m.height > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
