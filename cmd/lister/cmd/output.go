package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	apiclient "github.com/donaldgifford/ebay-lister/internal/api/client"
	"github.com/donaldgifford/ebay-lister/internal/ebay"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printAccountsTable(w io.Writer, accounts []apiclient.AccountInfo) error {
	tw := newTabWriter(w)
	tw.writef("ACTIVE\tKEY\tUSERNAME\tENV\tTOKEN EXPIRES\tSTATUS\n")
	for i := range accounts {
		a := &accounts[i]
		active := ""
		if a.Active {
			active = "*"
		}
		status := "ok"
		if a.NeedsReauth {
			status = "needs re-auth"
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
			active,
			a.AccountKey,
			a.Username,
			a.Environment,
			formatTime(a.TokenExpiry),
			status,
		)
	}
	return tw.finish()
}

func printListingsTable(w io.Writer, listings []domain.Listing) error {
	tw := newTabWriter(w)
	tw.writef("SKU\tTITLE\tPRICE\tSTATUS\tENV\tWATCHERS\tVIEWS\n")
	for i := range listings {
		l := &listings[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			l.SKU,
			truncate(l.Title, 40),
			l.Price.StringFixed(2),
			l.Status,
			l.Environment,
			l.Cache.WatchCount,
			l.Cache.ViewCount,
		)
	}
	return tw.finish()
}

func printListingDetail(w io.Writer, l *domain.Listing) error {
	tw := newTabWriter(w)
	tw.writef("SKU:\t%s\n", l.SKU)
	tw.writef("Card:\t%s\n", l.CardID)
	tw.writef("Title:\t%s\n", l.Title)
	tw.writef("Price:\t%s\n", l.Price.StringFixed(2))
	tw.writef("Condition:\t%s\n", l.Condition)
	tw.writef("Status:\t%s\n", l.Status)
	tw.writef("Account:\t%s (%s)\n", l.AccountKey, l.Environment)
	if l.RemoteItemID != nil {
		tw.writef("eBay Item:\t%s\n", *l.RemoteItemID)
	}
	if l.ListingURL != "" {
		tw.writef("URL:\t%s\n", l.ListingURL)
	}
	if l.FailedStage != "" {
		tw.writef("Failed At:\t%s\n", l.FailedStage)
		tw.writef("Error:\t%s\n", l.ErrorMessage)
	}
	if l.Cache.LastSyncedAt != nil {
		tw.writef("Watchers:\t%d\n", l.Cache.WatchCount)
		tw.writef("Views:\t%d\n", l.Cache.ViewCount)
		tw.writef("Bids:\t%d\n", l.Cache.BidCount)
		tw.writef("Synced:\t%s\n", formatTime(*l.Cache.LastSyncedAt))
	}
	return tw.finish()
}

func printSyncTable(w io.Writer, entries []domain.SyncLogEntry) error {
	tw := newTabWriter(w)
	tw.writef("STARTED\tSTATUS\tITEMS\tCALLS\tCOMPLETED\tERROR\n")
	for i := range entries {
		e := &entries[i]
		completed := "-"
		if e.CompletedAt != nil {
			completed = formatTime(*e.CompletedAt)
		}
		tw.writef("%s\t%s\t%d\t%d\t%s\t%s\n",
			formatTime(e.StartedAt),
			e.Status,
			e.ItemsSynced,
			e.APICallsMade,
			completed,
			truncate(e.ErrorMessage, 40),
		)
	}
	return tw.finish()
}

func printQuotaTable(w io.Writer, states []ebay.QuotaState) error {
	tw := newTabWriter(w)
	tw.writef("API\tRESOURCE\tUSED\tLIMIT\tREMAINING\tRESETS\n")
	for i := range states {
		s := &states[i]
		tw.writef("%s/%s\t%s\t%d\t%d\t%d\t%s\n",
			s.APIContext,
			s.APIName,
			s.Resource,
			s.Count,
			s.Limit,
			s.Remaining,
			formatTime(s.ResetAt),
		)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
