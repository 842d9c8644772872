// Package picker provides a small interactive list selection, used when the
// user omits --provider or --type on an interactive terminal.
package picker

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type item string

func (i item) Title() string       { return string(i) }
func (i item) Description() string { return "" }
func (i item) FilterValue() string { return string(i) }

type model struct {
	list    list.Model
	choice  string
	aborted bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok {
				m.choice = string(it)
			}
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string { return m.list.View() }

// Select shows the options and returns the chosen one. Canceling the prompt
// is an error so callers abort instead of proceeding with an empty value.
func Select(title string, options []string) (string, error) {
	items := make([]list.Item, 0, len(options))
	for _, o := range options {
		items = append(items, item(o))
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New(items, delegate, 40, len(options)*2+8)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	final, err := tea.NewProgram(model{list: l}).Run()
	if err != nil {
		return "", fmt.Errorf("running selection prompt: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.aborted || m.choice == "" {
		return "", errors.New("selection canceled")
	}
	return m.choice, nil
}
