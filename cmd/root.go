package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/streamchat/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	storagePath string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "streamchat",
	Short: "Chat with a streaming completion API from your terminal",
	Long: `A CLI client for streaming chat completion APIs.

streamchat keeps one durable conversation on your machine, streams
assistant replies token by token as they arrive, and survives network
and authentication failures without losing what you typed.

Quick Start:
  streamchat login                # Store your API credential
  streamchat chat                 # Open an interactive conversation
  streamchat ask "a question"     # One-shot question
  streamchat history              # Review the stored transcript

Configuration lives in ~/.streamchat/config.yaml (endpoint, model,
thinking mode, optional system prompt).`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Custom data directory (default ~/.streamchat)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
