// Package tui provides an interactive picker over a film directory.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"filmwatch/internal/directory"
	"filmwatch/internal/render"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type item struct {
	title string
	url   string
}

func (i item) Title() string       { return render.Sanitize(i.title) }
func (i item) Description() string { return render.Sanitize(i.url) }
func (i item) FilterValue() string { return render.Sanitize(i.title) }

// Model lists the directory's titles. Enter picks one; Esc or Ctrl+C cancels.
type Model struct {
	list     list.Model
	selected string
	done     bool
}

// New builds a picker over every usable title in d.
func New(d directory.Directory) Model {
	items := lo.Map(d.Titles(), func(title string, _ int) list.Item {
		e, _ := d.Lookup(title)
		return item{title: title, url: e.URL}
	})

	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = fmt.Sprintf("Films (%d)", len(items))
	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c":
			m.done = true
			return m, tea.Quit
		case "esc":
			if m.list.FilterState() == list.Unfiltered {
				m.done = true
				return m, tea.Quit
			}
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok {
				m.selected = it.title
				m.done = true
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.done {
		return ""
	}
	return docStyle.Render(m.list.View())
}

// Selected returns the picked title, if any.
func (m Model) Selected() (string, bool) {
	return m.selected, m.selected != ""
}

// Pick runs the picker full-screen and returns the chosen title.
func Pick(d directory.Directory) (string, bool, error) {
	if len(d.Titles()) == 0 {
		return "", false, fmt.Errorf("directory has no films")
	}

	final, err := tea.NewProgram(New(d), tea.WithAltScreen()).Run()
	if err != nil {
		return "", false, fmt.Errorf("running picker: %w", err)
	}
	title, ok := final.(Model).Selected()
	return title, ok, nil
}
