package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// MaxMessageLength caps a single chat message.
const MaxMessageLength = 2000

// ChatInput wraps bubbles/textinput for the chat prompt.
type ChatInput struct {
	Model textinput.Model
}

// NewChatInput creates a focused chat input.
func NewChatInput(placeholder string) ChatInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = MaxMessageLength
	ti.Focus()
	return ChatInput{Model: ti}
}

// Init returns the cursor blink command.
func (t ChatInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (t ChatInput) Update(msg tea.Msg) (ChatInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input.
func (t ChatInput) View() string {
	return t.Model.View()
}

// Value returns the current input value.
func (t ChatInput) Value() string {
	return t.Model.Value()
}

// Take returns the current value and clears the input.
func (t *ChatInput) Take() string {
	v := t.Model.Value()
	t.Model.Reset()
	return v
}

// SetPlaceholder changes the hint shown while the input is empty.
func (t *ChatInput) SetPlaceholder(s string) {
	t.Model.Placeholder = s
}

// SetWidth sets the visible width of the input.
func (t *ChatInput) SetWidth(w int) {
	t.Model.SetWidth(w)
}
