package whoami

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/crucial707/authgate/cmd/cli/config"
	"github.com/spf13/cobra"
)

// InitWhoami registers the whoami command on the root command.
func InitWhoami(rootCmd *cobra.Command) {
	rootCmd.AddCommand(whoamiCmd())
}

// whoamiCmd creates a command that calls the protected route with the stored
// token and prints the identity the API reports.
func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity of the stored token",
		Long:  "Call the protected Authgate route with the locally stored token and print the authenticated identity.",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("failed to load token: %w", err)
			}
			if token == "" {
				return fmt.Errorf("no token stored; run 'authctl login' first")
			}

			req, err := http.NewRequest("GET", config.APIURL()+"/protected", nil)
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
			}

			var out struct {
				Identity string `json:"identity"`
				Message  string `json:"message"`
			}
			if err := json.Unmarshal(body, &out); err != nil {
				return err
			}

			fmt.Println(out.Identity)
			return nil
		},
	}
}
