package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/streamchat/internal"
)

// MarkdownExporter exports a conversation in Markdown format
type MarkdownExporter struct{}

// Export exports a conversation to Markdown format
func (e *MarkdownExporter) Export(conv *internal.Conversation, w io.Writer) error {
	// Header
	_, _ = fmt.Fprintf(w, "# Conversation\n\n")
	if conv.Model != "" {
		_, _ = fmt.Fprintf(w, "**Model:** %s  \n", conv.Model)
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", conv.MessageCount())

	_, _ = fmt.Fprintf(w, "---\n\n")

	// Messages
	for i, msg := range conv.Messages {
		content := escapeMarkdown(msg.Content)

		_, _ = fmt.Fprintf(w, "**%s:**\n\n%s\n\n", msg.Role, content)

		// Horizontal rule after each message (except the last one)
		if i < len(conv.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes markdown special characters outside code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
