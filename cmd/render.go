package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/streamchat/internal"
)

var (
	userLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// consoleSink renders engine events to the terminal. Partial updates
// carry the full reply so far; the sink prints only what it has not
// printed yet so the reply appears to stream in place.
type consoleSink struct {
	printed     int
	labelShown  bool
	interactive bool
}

func newConsoleSink(interactive bool) *consoleSink {
	return &consoleSink{interactive: interactive}
}

func (s *consoleSink) UserMessageAppended(msg internal.Message) {
	// The user's text is already on screen; nothing to echo back.
}

func (s *consoleSink) AssistantPartial(id int, text string) {
	if !s.labelShown {
		fmt.Println(assistantLabelStyle.Render("assistant ›"))
		s.labelShown = true
	}
	if len(text) > s.printed {
		fmt.Print(text[s.printed:])
		s.printed = len(text)
	}
}

func (s *consoleSink) AssistantFinalized(msg internal.Message) {
	if !s.labelShown {
		// Empty reply: still show the label so the turn is visible.
		fmt.Println(assistantLabelStyle.Render("assistant ›"))
	}
	fmt.Println()
	if s.interactive {
		// Blank line between turns in the REPL.
		fmt.Println()
	}
	s.printed = 0
	s.labelShown = false
}

func (s *consoleSink) AuthRequired() {
	fmt.Println()
	fmt.Println(warningStyle.Render("Credential rejected and removed."))
	fmt.Println(metaStyle.Render("Run 'streamchat login' to store a new one."))
}

func (s *consoleSink) Error(message string) {
	fmt.Println()
	fmt.Fprintln(os.Stderr, errorStyle.Render("Request failed:"), message)
	s.printed = 0
	s.labelShown = false
}
