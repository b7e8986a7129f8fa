package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/viper"

	"github.com/retrohunt/retro-hunter/internal/currency"
	"github.com/retrohunt/retro-hunter/pkg/pricing"
	"github.com/retrohunt/retro-hunter/pkg/trend"
	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

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

func displayCurrency() domain.Currency {
	if viper.GetString("currency") == "EUR" {
		return domain.CurrencyEUR
	}
	return domain.CurrencyUSD
}

func money(rates *currency.Converter, amountUSD float64) string {
	cur := displayCurrency()
	return currency.Symbol(cur) + rates.Convert(amountUSD, cur)
}

func printListingsTable(rates *currency.Converter, listings []domain.Listing, summary pricing.Summary) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("TITLE\tPRICE\tLINK\n")
	for i := range listings {
		tw.writef("%s\t%s\t%s\n",
			truncate(listings[i].Title, 50),
			money(rates, listings[i].Price),
			listings[i].Link,
		)
	}
	tw.writef("\nLowest:\t%s\n", money(rates, summary.Lowest))
	tw.writef("Highest:\t%s\n", money(rates, summary.Highest))
	tw.writef("Average:\t%s%s\n", currency.Symbol(displayCurrency()), summary.Average)
	return tw.finish()
}

func trendMarker(d trend.Direction) string {
	switch d {
	case trend.Up:
		return "up"
	case trend.Down:
		return "down"
	default:
		return "-"
	}
}

func printItemsTable(rates *currency.Converter, items []domain.CollectionItem) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTITLE\tPLATFORM\tLOOSE\tCIB\tTREND\tFOLDER\tWISHLIST\n")
	for i := range items {
		item := &items[i]
		loose, cib := "-", "-"
		if item.LoosePrice != nil {
			loose = money(rates, *item.LoosePrice)
		}
		if item.CIBPrice != nil {
			cib = money(rates, *item.CIBPrice)
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\t%s\t%v\n",
			item.ID,
			truncate(item.GameTitle, 40),
			item.Platform,
			loose,
			cib,
			trendMarker(trend.Classify(item.LoosePrice, item.PriceHistory, domain.CategoryLoose)),
			item.FolderID,
			item.IsWishlist,
		)
	}
	return tw.finish()
}

func printItemDetail(rates *currency.Converter, item *domain.CollectionItem) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%s\n", item.ID)
	tw.writef("Title:\t%s\n", item.GameTitle)
	tw.writef("Platform:\t%s\n", item.Platform)
	if item.Condition != "" {
		tw.writef("Condition:\t%s\n", item.Condition)
	}
	for _, cat := range domain.Categories() {
		if v := item.CurrentPrice(cat); v != nil {
			tw.writef("%s:\t%s\t%s\n", cat, money(rates, *v),
				trendMarker(trend.Classify(v, item.PriceHistory, cat)))
		}
	}
	if item.PurchasePrice != nil {
		tw.writef("Purchased:\t%s\n", money(rates, *item.PurchasePrice))
	}
	if item.PricingID != "" {
		tw.writef("Pricing ID:\t%s\n", item.PricingID)
	}
	if item.FolderID != "" {
		tw.writef("Folder:\t%s\n", item.FolderID)
	}
	if item.Notes != "" {
		tw.writef("Notes:\t%s\n", item.Notes)
	}
	if item.Completion != "" {
		tw.writef("Completion:\t%s\n", item.Completion)
	}
	tw.writef("Wishlist:\t%v\n", item.IsWishlist)
	tw.writef("Snapshots:\t%d\n", len(item.PriceHistory))
	return tw.finish()
}

func printHistoryTable(rates *currency.Converter, history []domain.PriceSnapshot) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("DATE\tLOOSE\tCIB\tNEW\tGRADED\tBOX ONLY\n")
	for i := range history {
		snap := &history[i]
		tw.writef("%s", snap.Date.Format("2006-01-02"))
		for _, cat := range domain.Categories() {
			if v := snap.Value(cat); v != nil {
				tw.writef("\t%s", money(rates, *v))
			} else {
				tw.writef("\t-")
			}
		}
		tw.writef("\n")
	}
	return tw.finish()
}

func printFoldersTable(folders []domain.Folder) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tCOLOR\tDESCRIPTION\n")
	for i := range folders {
		tw.writef("%s\t%s\t%s\t%s\n",
			folders[i].ID,
			folders[i].Name,
			folders[i].Color,
			truncate(folders[i].Description, 40),
		)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
