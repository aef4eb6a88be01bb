package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/iksnae/streamchat/internal"
	"github.com/spf13/cobra"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open an interactive conversation",
	Long: `Start an interactive chat session.

Each line you type is sent as one user message; the assistant reply
streams in as it is generated. The conversation picks up where the
stored transcript left off and every completed turn is persisted.

Type /quit (or press Ctrl-D) to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		sink := newConsoleSink(true)
		engine := sess.engine(sink)

		if n := len(engine.History()); n > 0 {
			fmt.Println(metaStyle.Render(fmt.Sprintf("Resuming conversation (%d messages). Type /quit to exit.", n)))
		} else {
			fmt.Println(metaStyle.Render("New conversation. Type /quit to exit."))
		}

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for {
			fmt.Print(userLabelStyle.Render("you ›"), " ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "/quit" || line == "/exit" {
				return nil
			}
			if line == "" {
				continue
			}

			if err := engine.Submit(cmd.Context(), line); err != nil {
				var pre *internal.PreconditionError
				if errors.As(err, &pre) {
					fmt.Println(warningStyle.Render(pre.Err.Error()))
					continue
				}
				// Transport and auth failures were already rendered by the
				// sink; the session stays open for the next attempt.
				internal.LogDebug("Turn failed: %v", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
