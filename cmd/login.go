package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Store the API credential",
	Long: `Store the bearer token used to authenticate against the completion
endpoint. The token can be passed as an argument or entered at the
prompt. Exactly one credential is kept; storing a new one replaces it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			fmt.Print("API token: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
			token = line
		}

		token = strings.TrimSpace(token)
		if token == "" {
			return fmt.Errorf("token is empty")
		}

		if err := sess.creds.Save(token); err != nil {
			return fmt.Errorf("failed to store credential: %w", err)
		}

		fmt.Println(successStyle.Render("Credential stored."))
		return nil
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		if err := sess.creds.Clear(); err != nil {
			return fmt.Errorf("failed to clear credential: %w", err)
		}

		fmt.Println(successStyle.Render("Credential removed."))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
