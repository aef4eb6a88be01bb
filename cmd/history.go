package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/streamchat/internal"
	"github.com/iksnae/streamchat/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the stored conversation",
	Long: `Display the durable conversation transcript.

Subcommands export the transcript to a file or clear it entirely.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		messages, err := sess.history.Load()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if len(messages) == 0 {
			fmt.Println(metaStyle.Render("No conversation stored yet."))
			return nil
		}

		fmt.Println(metaStyle.Render(fmt.Sprintf("%d messages", len(messages))))
		fmt.Println()
		for _, msg := range messages {
			switch msg.Role {
			case internal.RoleUser:
				fmt.Println(userLabelStyle.Render("you ›"))
			default:
				fmt.Println(assistantLabelStyle.Render("assistant ›"))
			}
			fmt.Println(msg.Content)
			fmt.Println()
		}
		return nil
	},
}

// historyExportCmd represents the history export command
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the conversation to a file",
	Long: `Export the stored transcript in one of the supported formats
(jsonl, md, yaml, json). Without --output the export is written to
stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		messages, err := sess.history.Load()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		conv := &internal.Conversation{
			Model:    sess.cfg.Model,
			Messages: messages,
		}

		if exportOutput == "" {
			return exporter.Export(conv, os.Stdout)
		}

		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		if err := exporter.Export(conv, f); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Exported %d messages to %s", len(messages), exportOutput)))
		return nil
	},
}

// historyClearCmd represents the history clear command
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		if err := sess.history.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}

		fmt.Println(successStyle.Render("Conversation cleared."))
		return nil
	},
}

func init() {
	historyExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json)")
	historyExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")

	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
