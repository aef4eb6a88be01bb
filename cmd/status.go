package cmd

import (
	"fmt"

	"github.com/iksnae/streamchat/internal"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check storage, credential, and configuration health",
	Long: `Verify that streamchat can reach its local storage, whether a
credential is present, and which endpoint and model are in effect.

Useful for debugging configuration problems before opening a chat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := internal.ResolveStoragePaths(storagePath)
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Failed to resolve storage paths:"), err)
			return err
		}
		fmt.Println(successStyle.Render("✓ Data directory:"), paths.BaseDir)

		cfg, err := internal.LoadConfig(paths.ConfigPath)
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Config unreadable:"), err)
			return err
		}
		if paths.ConfigExists() {
			fmt.Println(successStyle.Render("✓ Config:"), paths.ConfigPath)
		} else {
			fmt.Println(warningStyle.Render("– Config: using defaults"), metaStyle.Render("("+paths.ConfigPath+" not found)"))
		}
		fmt.Println(metaStyle.Render(fmt.Sprintf("  endpoint: %s", cfg.APIURL)))
		fmt.Println(metaStyle.Render(fmt.Sprintf("  model: %s, thinking: %s", cfg.Model, cfg.Thinking)))

		db, err := internal.OpenDatabase(paths.DatabasePath)
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Storage unreachable:"), err)
			return err
		}
		defer db.Close()
		fmt.Println(successStyle.Render("✓ Storage:"), paths.DatabasePath)

		creds := internal.NewCredentialStore(db)
		token, err := creds.Load()
		switch {
		case err != nil:
			fmt.Println(errorStyle.Render("✗ Credential unreadable:"), err)
		case token == "":
			fmt.Println(warningStyle.Render("– Credential: not set"), metaStyle.Render("(run 'streamchat login')"))
		default:
			fmt.Println(successStyle.Render("✓ Credential: present"))
		}

		history := internal.NewHistoryStore(db)
		messages, err := history.Load()
		if err != nil {
			fmt.Println(errorStyle.Render("✗ History unreadable:"), err)
			return err
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ History: %d messages", len(messages))))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
