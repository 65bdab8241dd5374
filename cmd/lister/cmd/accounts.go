package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

func accountsCmd() *cobra.Command {
	accountsRoot := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Manage connected seller accounts",
		Long: "Connect, switch between, and disconnect eBay seller accounts.\n" +
			"Each account is identified by user_id:environment.",
	}

	accountsRoot.AddCommand(
		accountsListCmd(),
		accountsUseCmd(),
		accountsConnectCmd(),
		accountsCompleteCmd(),
		accountsDisconnectCmd(),
	)

	return accountsRoot
}

func accountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List connected accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accts, err := newClient().ListAccounts(cmdContext(cmd))
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(accts)
			}

			if len(accts) == 0 {
				fmt.Println("No accounts connected. Run 'lister accounts connect' to add one.")
				return nil
			}
			return printAccountsTable(os.Stdout, accts)
		},
	}
}

func accountsUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "use <account-key>",
		Short:   "Switch the active account",
		Example: `  lister accounts use seller1:production`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().SwitchAccount(cmdContext(cmd), args[0]); err != nil {
				return err
			}
			fmt.Printf("Active account is now %s\n", args[0])
			return nil
		},
	}
}

func accountsConnectCmd() *cobra.Command {
	var env string

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Start connecting a seller account",
		Long: "Prints the eBay consent URL. Open it in a browser and sign in as the\n" +
			"seller. eBay then redirects to the server's callback endpoint, or use\n" +
			"'lister accounts complete' with the redirect URL.",
		Example: `  lister accounts connect --env sandbox`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().Connect(cmdContext(cmd), env)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			fmt.Printf("Open this URL to authorize the account:\n\n  %s\n\nState: %s\n",
				resp.AuthorizeURL, resp.State)
			return nil
		},
	}
	cmd.Flags().StringVar(&env, "env", "production", "eBay environment (sandbox, production)")

	return cmd
}

func accountsCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <redirect-url>",
		Short: "Finish connecting an account from the consent redirect",
		Example: `  lister accounts complete \
    'https://example.com/callback?code=v%5E1.1...&state=3f0c...'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, code, err := parseRedirect(args[0])
			if err != nil {
				return err
			}

			acct, err := newClient().CompleteConnect(cmdContext(cmd), state, code)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(acct)
			}
			fmt.Printf("Connected %s (%s)\n", acct.AccountKey, acct.Username)
			return nil
		},
	}
}

func accountsDisconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "disconnect <account-key>",
		Short:   "Remove an account's credentials",
		Long:    "Removes the stored credentials. Existing listings keep their account attribution.",
		Example: `  lister accounts disconnect seller1:sandbox`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().DisconnectAccount(cmdContext(cmd), args[0]); err != nil {
				return err
			}
			fmt.Printf("Disconnected %s\n", args[0])
			return nil
		},
	}
}

// parseRedirect pulls state and code out of the URL eBay redirected to.
func parseRedirect(raw string) (state, code string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parsing redirect URL: %w", err)
	}
	q := u.Query()
	state, code = q.Get("state"), q.Get("code")
	if state == "" || code == "" {
		return "", "", errors.New("redirect URL must carry both code and state")
	}
	return state, code, nil
}
