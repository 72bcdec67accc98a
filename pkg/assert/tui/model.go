package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dbgh/pkg/assert"
)

// promptModel shows the messages queued since the last keystroke and quits
// on the first key that names a character.
type promptModel struct {
	messages []string
	styles   Styles
	keys     keyMap
	help     help.Model

	choice rune
	done   bool
}

func newPromptModel(messages []string, styles Styles) promptModel {
	return promptModel{
		messages: messages,
		styles:   styles,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

func (m promptModel) Init() tea.Cmd {
	return nil
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Cancel) {
			m.choice, m.done = 'i', true
			return m, tea.Quit
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
			m.choice, m.done = msg.Runes[0], true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m promptModel) View() string {
	var b strings.Builder
	for _, msg := range m.messages {
		text := strings.TrimRight(msg, "\n")
		switch text {
		case assert.PromptText:
			b.WriteString(m.styles.Prompt.Render(text))
		case assert.InvalidActionText:
			b.WriteString(m.styles.Invalid.Render(text))
		default:
			b.WriteString(m.styles.Record.Render(text))
		}
		b.WriteString("\n")
	}
	if m.done {
		b.WriteString(m.styles.Choice.Render("> " + string(m.choice)))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// Choice returns the key pressed, or 0 before any.
func (m promptModel) Choice() rune {
	return m.choice
}
