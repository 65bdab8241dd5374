package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func quotaCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Show eBay API call budget",
		Long: "Shows the server's shared daily call budget. With --remote, shows\n" +
			"the per-resource quota eBay reports for the account.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()

			if remote {
				states, err := c.RemoteQuota(cmdContext(cmd), accountFlag())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(states)
				}
				return printQuotaTable(os.Stdout, states)
			}

			usage, err := c.Quota(cmdContext(cmd))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(usage)
			}
			remaining := fmt.Sprintf("%d", usage.Remaining)
			if usage.Remaining < 0 {
				remaining = "unlimited"
			}
			fmt.Printf("Calls today:\t%d/%d\nRemaining:\t%s\nResets at:\t%s\n",
				usage.DailyCount, usage.DailyLimit, remaining, formatTime(usage.ResetAt))
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "query eBay's per-user quota for the account")

	return cmd
}
