package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <text>",
	Short: "Send a single message and stream the reply",
	Long: `Send one user message and print the streamed assistant reply.

The message is appended to the stored conversation, so a later
'streamchat chat' continues from here.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		sink := newConsoleSink(false)
		engine := sess.engine(sink)

		text := strings.Join(args, " ")
		return engine.Submit(cmd.Context(), text)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
