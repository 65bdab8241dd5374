package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/ebay-lister/internal/api/client"
)

func listingsCmd() *cobra.Command {
	listingsRoot := &cobra.Command{
		Use:   "listings",
		Short: "Query listings",
		Long: "Query the local listing records, including metrics from the\n" +
			"most recent sync.",
	}

	listingsRoot.AddCommand(
		listingsListCmd(),
		listingsGetCmd(),
	)

	return listingsRoot
}

func listingsListCmd() *cobra.Command {
	var (
		env      string
		statuses []string
		cardID   string
		limit    int
		offset   int
		orderBy  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List listings with optional filters",
		Example: `  # Listings of the active account's environment
  lister listings list

  # Failed publishes in sandbox
  lister listings list --env sandbox --status failed

  # Most watched first
  lister listings list --order-by watch_count --limit 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().ListListings(cmdContext(cmd), &apiclient.ListListingsParams{
				AccountKey:  accountFlag(),
				Environment: env,
				Statuses:    statuses,
				CardID:      cardID,
				Limit:       limit,
				Offset:      offset,
				OrderBy:     orderBy,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Listings) == 0 {
				fmt.Println("No listings found.")
				return nil
			}

			fmt.Printf("Showing %d of %d listings\n\n", len(resp.Listings), resp.Total)
			return printListingsTable(os.Stdout, resp.Listings)
		},
	}
	cmd.Flags().StringVar(&env, "env", "", "environment filter (sandbox, production)")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "status filter (repeatable)")
	cmd.Flags().StringVar(&cardID, "card-id", "", "card ID filter")
	cmd.Flags().IntVar(&limit, "limit", 50, "number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "result offset")
	cmd.Flags().
		StringVar(&orderBy, "order-by", "", "sort order (created_at, last_updated, price, watch_count)")

	return cmd
}

func listingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <sku>",
		Short:   "Show listing details",
		Example: `  lister listings get CARD-C17-20260301`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := newClient().GetListing(cmdContext(cmd), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(l)
			}

			return printListingDetail(os.Stdout, l)
		},
	}
}
