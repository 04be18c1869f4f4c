package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textinput"
	"go.seanlatimer.dev/folio/internal/bookmarks"
)

// SaveNameResult is the name entered for a saved search and whether it
// collides with an existing one.
type SaveNameResult struct {
	Name   string
	Exists bool
}

type saveNameModel struct {
	location     string
	input        textinput.Model
	existingKeys map[string]struct{}
	errMessage   string
	done         bool
	cancelled    bool
}

// ShowSaveNameInput asks for a name under which to save location.
// existingKeys are the keys of saved searches already on disk.
func ShowSaveNameInput(location string, existingKeys []string) (SaveNameResult, error) {
	model := newSaveNameModel(location, existingKeys)

	program := tea.NewProgram(model)
	result, err := program.Run()
	if err != nil {
		return SaveNameResult{}, err
	}

	final := result.(saveNameModel)
	if final.cancelled {
		return SaveNameResult{}, ErrCancelled
	}
	return final.result(), nil
}

func newSaveNameModel(location string, existingKeys []string) saveNameModel {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Name"
	input.Focus()

	existing := make(map[string]struct{}, len(existingKeys))
	for _, key := range existingKeys {
		existing[strings.ToLower(key)] = struct{}{}
	}

	return saveNameModel{
		location:     location,
		input:        input,
		existingKeys: existing,
	}
}

func (m saveNameModel) Init() tea.Cmd {
	return tea.RequestBackgroundColor
}

func (m saveNameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.BackgroundColorMsg:
		appStyles = newStyles()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if strings.TrimSpace(m.input.Value()) == "" {
				m.errMessage = "name is required"
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.errMessage = ""
	return m, cmd
}

func (m saveNameModel) result() SaveNameResult {
	name := strings.TrimSpace(m.input.Value())
	_, exists := m.existingKeys[bookmarks.SluggifyName(name)]
	return SaveNameResult{Name: name, Exists: exists}
}

func (m saveNameModel) View() tea.View {
	v := tea.NewView("")
	v.SetContent(m.render())
	return v
}

func (m saveNameModel) render() string {
	styles := getStyles()
	value := strings.TrimSpace(m.input.Value())

	lines := []string{
		styles.SelectedStyle.Render("Save search"),
		styles.URLStyle.Render(m.location),
		styles.SearchInputStyle.Render(m.input.View()),
	}
	key := styles.SubtleStyle.Render(fmt.Sprintf("Key: %s", bookmarks.SluggifyName(value)))
	if value != "" && m.result().Exists {
		key += styles.SubtleStyle.Render(" (exists, will ask to replace)")
	}
	lines = append(lines, key)
	if m.errMessage != "" {
		lines = append(lines, styles.ErrorStyle.Render(fmt.Sprintf("Error: %s", m.errMessage)))
	}
	lines = append(lines, styles.FooterStyle.Render("Enter save • Esc cancel"))
	return styles.BorderStyle.Render(strings.Join(lines, "\n"))
}
