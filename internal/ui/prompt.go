package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nbmusic/nbx/internal/tasks"
)

// promptKeyMap defines the [key.Binding] mapping for the lyric prompt.
type promptKeyMap struct {
	confirm key.Binding
	skip    key.Binding
	cancel  key.Binding
}

func newPromptKeyMap() promptKeyMap {
	return promptKeyMap{
		confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		skip:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "skip")),
		cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip all prompts for this song")),
	}
}

// PromptModel is the bubbletea model for a single lyric keyword prompt.
//
// The keyword input defaults to the song title; the human can edit and
// confirm, skip the song, or escape out. Skip and escape both fall back to
// the sentinel lyric upstream.
type PromptModel struct {
	title string
	input textinput.Model
	keys  promptKeyMap
	reply tasks.PromptReply
	done  bool
}

// NewPromptModel creates a prompt model for one request.
func NewPromptModel(req tasks.PromptRequest) *PromptModel {
	input := textinput.New()
	input.SetValue(req.Keyword)
	input.CursorEnd()
	input.Focus()
	input.CharLimit = 120
	input.Width = 48

	return &PromptModel{
		title: req.Title,
		input: input,
		keys:  newPromptKeyMap(),
		reply: tasks.PromptReply{Gesture: tasks.GestureCancel},
	}
}

func (m *PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.confirm):
			m.reply = tasks.PromptReply{Gesture: tasks.GestureConfirm, Keyword: m.input.Value()}
			m.done = true
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.skip):
			m.reply = tasks.PromptReply{Gesture: tasks.GestureSkip}
			m.done = true
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.cancel):
			m.reply = tasks.PromptReply{Gesture: tasks.GestureCancel}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *PromptModel) View() string {
	if m.done {
		return ""
	}

	header := styles.title.Render(fmt.Sprintf("Lyrics for: %s", m.title))
	hint := styles.help.Render("enter: search · ctrl+s: skip · esc: skip")
	return fmt.Sprintf("%s\nSearch keyword:\n%s\n\n%s\n", header, m.input.View(), hint)
}

// Reply returns the gesture chosen by the user.
func (m *PromptModel) Reply() tasks.PromptReply {
	return m.reply
}

// TTYPrompter implements [tasks.Prompter] by running one bubbletea program
// per prompt on the controlling terminal.
type TTYPrompter struct{}

// Prompt blocks until the user confirms, skips, or escapes.
func (TTYPrompter) Prompt(ctx context.Context, req tasks.PromptRequest) (tasks.PromptReply, error) {
	model := NewPromptModel(req)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return tasks.PromptReply{}, fmt.Errorf("lyric prompt failed: %w", err)
	}

	if m, ok := final.(*PromptModel); ok {
		return m.Reply(), nil
	}
	return model.Reply(), nil
}
