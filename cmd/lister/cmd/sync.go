package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/ebay-lister/internal/api/client"
)

func syncCmd() *cobra.Command {
	syncRoot := &cobra.Command{
		Use:   "sync",
		Short: "Refresh listing metrics from eBay",
		Long: "Fetches views, watchers, bids, and price for every active listing\n" +
			"of the account. Syncs are limited to one per cooldown window.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry, err := newClient().Sync(cmdContext(cmd), accountFlag())
			if err != nil {
				var apiErr *apiclient.APIError
				if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
					return fmt.Errorf("sync is cooling down; try again in %s", apiErr.RetryAfter)
				}
				return err
			}

			if jsonOutput() {
				return outputJSON(entry)
			}
			fmt.Printf("Synced %d listings with %d API calls\n", entry.ItemsSynced, entry.APICallsMade)
			return nil
		},
	}

	syncRoot.AddCommand(
		syncHistoryCmd(),
		syncCooldownCmd(),
	)

	return syncRoot
}

func syncHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sync attempts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := newClient().SyncHistory(cmdContext(cmd), accountFlag(), limit)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(entries)
			}
			if len(entries) == 0 {
				fmt.Println("No syncs recorded.")
				return nil
			}
			return printSyncTable(os.Stdout, entries)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries")

	return cmd
}

func syncCooldownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cooldown",
		Short: "Show time until the next sync is allowed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().SyncCooldown(cmdContext(cmd), accountFlag())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}
			if resp.CanSync {
				fmt.Println("Sync allowed now.")
				return nil
			}
			fmt.Printf("Next sync allowed in %ds\n", resp.RemainingSeconds)
			return nil
		},
	}
}
