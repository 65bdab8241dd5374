package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

func publishCmd() *cobra.Command {
	var (
		req    domain.ListingRequest
		price  string
		images []string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a listing",
		Long: "Runs the publish pipeline for one card: ensure a location, upload\n" +
			"images, create the inventory item and offer, then publish.",
		Example: `  lister publish --card-id c-17 --title "Charizard Base Set Holo" \
    --price 249.50 --condition excellent --category 183454 \
    --image ./front.jpg --image https://img.example.com/back.jpg`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("parsing --price: %w", err)
			}
			req.Price = p
			req.ImageRefs = images
			req.AccountKey = accountFlag()

			l, err := newClient().Publish(cmdContext(cmd), &req)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(l)
			}
			if err := printListingDetail(os.Stdout, l); err != nil {
				return err
			}
			if l.Status == domain.StatusPersistPending {
				fmt.Fprintln(os.Stderr, "\nThe listing is live; the local record will be written shortly.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.CardID, "card-id", "", "card identifier (required)")
	cmd.Flags().StringVar(&req.SKU, "sku", "", "explicit SKU (generated when empty)")
	cmd.Flags().StringVar(&req.Title, "title", "", "listing title (required)")
	cmd.Flags().StringVar(&req.Description, "description", "", "listing description")
	cmd.Flags().StringVar(&price, "price", "", "fixed price (required)")
	cmd.Flags().StringVar(&req.Condition, "condition", "", "condition label or code (required)")
	cmd.Flags().StringVar(&req.CategoryID, "category", "", "eBay category ID (required)")
	cmd.Flags().StringArrayVar(&images, "image", nil, "image URL or local file path (repeatable)")

	for _, name := range []string{"card-id", "title", "price", "condition", "category"} {
		cobra.CheckErr(cmd.MarkFlagRequired(name))
	}
	cmd.PreRunE = func(*cobra.Command, []string) error {
		if len(images) == 0 {
			return errors.New("at least one --image is required")
		}
		return nil
	}

	return cmd
}
