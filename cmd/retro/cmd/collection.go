package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/retrohunt/retro-hunter/pkg/platform"
	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

// platformIDStrings lists the canonical platform ids for flag error messages.
// PlatformAll is omitted: it is the absence of a filter, not a choice.
func platformIDStrings() []string {
	ids := platform.IDs()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == domain.PlatformAll {
			continue
		}
		out = append(out, string(id))
	}
	return out
}

func collectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collection",
		Aliases: []string{"col"},
		Short:   "Manage your game collection and wishlist",
	}

	cmd.AddCommand(collectionListCmd())
	cmd.AddCommand(collectionShowCmd())
	cmd.AddCommand(collectionHistoryCmd())
	cmd.AddCommand(collectionAddCmd())
	cmd.AddCommand(collectionUpdateCmd())
	cmd.AddCommand(collectionMoveCmd())
	cmd.AddCommand(collectionDeleteCmd())
	cmd.AddCommand(collectionRefreshCmd())

	return cmd
}

func collectionListCmd() *cobra.Command {
	var wishlistOnly bool
	var folderID string
	var platformName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your collection items",
		Example: `  retro collection list
  retro collection list --wishlist
  retro collection list --platform ps2
  retro collection list --folder f1 --currency EUR`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var platformID domain.PlatformID
			if platformName != "" {
				platformID = platform.Normalize(platformName)
				if !platform.Known(platformID) || platformID == domain.PlatformAll {
					return fmt.Errorf("unknown platform %q (valid: %s)",
						platformName, strings.Join(platformIDStrings(), ", "))
				}
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			user, err := currentUser(cmd, a)
			if err != nil {
				return err
			}

			items, err := a.collection.List(cmd.Context(), user.ID)
			if err != nil {
				return err
			}

			filtered := items[:0]
			for _, item := range items {
				if wishlistOnly && !item.IsWishlist {
					continue
				}
				if folderID != "" && item.FolderID != folderID {
					continue
				}
				if platformID != "" && platform.Normalize(item.Platform) != platformID {
					continue
				}
				filtered = append(filtered, item)
			}

			if viper.GetString("output") == "json" {
				return outputJSON(filtered)
			}
			return printItemsTable(a.rates, filtered)
		},
	}
	cmd.Flags().BoolVar(&wishlistOnly, "wishlist", false, "show only wishlist items")
	cmd.Flags().StringVar(&folderID, "folder", "", "show only items in this folder")
	cmd.Flags().StringVar(&platformName, "platform", "", "show only items for this platform")

	return cmd
}

func collectionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <item id>",
		Short: "Show one item with price history trends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			user, err := currentUser(cmd, a)
			if err != nil {
				return err
			}

			items, err := a.collection.List(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			for i := range items {
				if items[i].ID == args[0] {
					if viper.GetString("output") == "json" {
						return outputJSON(items[i])
					}
					return printItemDetail(a.rates, &items[i])
				}
			}
			return fmt.Errorf("item %s not found", args[0])
		},
	}
}

func collectionHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <item id>",
		Short: "Show an item's price snapshots over time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			user, err := currentUser(cmd, a)
			if err != nil {
				return err
			}

			items, err := a.collection.List(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			for i := range items {
				if items[i].ID == args[0] {
					if viper.GetString("output") == "json" {
						return outputJSON(items[i].PriceHistory)
					}
					return printHistoryTable(a.rates, items[i].PriceHistory)
				}
			}
			return fmt.Errorf("item %s not found", args[0])
		},
	}
}

func collectionAddCmd() *cobra.Command {
	var (
		platformName string
		condition    string
		pricingID    string
		folderID     string
		notes        string
		wishlist     bool
		purchase     float64
		loose        float64
		cib          float64
	)

	cmd := &cobra.Command{
		Use:   "add <game title>",
		Short: "Add a game to your collection or wishlist",
		Example: `  retro collection add "Okami" --platform ps2 --loose 18.50
  retro collection add "Panzer Dragoon Saga" --platform saturn --wishlist`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			user, err := currentUser(cmd, a)
			if err != nil {
				return err
			}

			item := domain.CollectionItem{
				GameTitle:  args[0],
				Platform:   string(platform.Normalize(platformName)),
				Condition:  condition,
				PricingID:  pricingID,
				FolderID:   folderID,
				Notes:      notes,
				IsWishlist: wishlist,
				UserID:     user.ID,
			}
			if purchase > 0 {
				item.PurchasePrice = &purchase
			}
			if loose > 0 {
				item.LoosePrice = &loose
			}
			if cib > 0 {
				item.CIBPrice = &cib
			}

			created, err := a.collection.Add(cmd.Context(), item)
			if err != nil {
				return err
			}

			fmt.Printf("Added %s (id %s)\n", created.GameTitle, created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&platformName, "platform", "", "platform name or alias")
	cmd.Flags().StringVar(&condition, "condition", "", "item condition")
	cmd.Flags().StringVar(&pricingID, "pricing-id", "", "external pricing identifier for refreshes")
	cmd.Flags().StringVar(&folderID, "folder", "", "folder to place the item in")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().BoolVar(&wishlist, "wishlist", false, "add to the wishlist instead of the collection")
	cmd.Flags().Float64Var(&purchase, "purchase", 0, "purchase price in USD")
	cmd.Flags().Float64Var(&loose, "loose", 0, "current loose price in USD")
	cmd.Flags().Float64Var(&cib, "cib", 0, "current complete-in-box price in USD")

	return cmd
}

func collectionUpdateCmd() *cobra.Command {
	var (
		notes      string
		completion string
		condition  string
	)

	cmd := &cobra.Command{
		Use:   "update <item id>",
		Short: "Update an item's notes, condition or completion status",
		Example: `  retro collection update abc123 --completion completed
  retro collection update abc123 --notes "black label, minor wear"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			user, err := currentUser(cmd, a)
			if err != nil {
				return err
			}

			items, err := a.collection.List(cmd.Context(), user.ID)
			if err != nil {
				return err
			}

			for _, item := range items {
				if item.ID != args[0] {
					continue
				}
				if cmd.Flags().Changed("notes") {
					item.Notes = notes
				}
				if cmd.Flags().Changed("completion") {
					item.Completion = domain.CompletionStatus(completion)
				}
				if cmd.Flags().Changed("condition") {
					item.Condition = condition
				}
				if err := a.collection.Update(cmd.Context(), item); err != nil {
					return err
				}
				fmt.Printf("Updated %s\n", item.GameTitle)
				return nil
			}
			return fmt.Errorf("item %s not found", args[0])
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&completion, "completion", "", "completion status (not-started, in-progress, completed)")
	cmd.Flags().StringVar(&condition, "condition", "", "item condition")

	return cmd
}

func collectionMoveCmd() *cobra.Command {
	var folderID string

	cmd := &cobra.Command{
		Use:   "move <item id>",
		Short: "Move an item into a folder, or out of all folders",
		Example: `  retro collection move abc123 --folder f1
  retro collection move abc123 --folder ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			user, err := currentUser(cmd, a)
			if err != nil {
				return err
			}

			if _, err := a.collection.List(cmd.Context(), user.ID); err != nil {
				return err
			}
			if err := a.collection.MoveToFolder(cmd.Context(), args[0], folderID); err != nil {
				return err
			}

			fmt.Println("Moved.")
			return nil
		},
	}
	cmd.Flags().StringVar(&folderID, "folder", "", "destination folder id (empty removes the item from folders)")

	return cmd
}

func collectionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <item id>",
		Short: "Remove an item from your collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			user, err := currentUser(cmd, a)
			if err != nil {
				return err
			}

			if _, err := a.collection.List(cmd.Context(), user.ID); err != nil {
				return err
			}
			if err := a.collection.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Println("Deleted.")
			return nil
		},
	}
}

func collectionRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh tracked prices for every item with a pricing id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			user, err := currentUser(cmd, a)
			if err != nil {
				return err
			}

			if _, err := a.collection.List(cmd.Context(), user.ID); err != nil {
				return err
			}
			report, err := a.collection.RefreshPrices(cmd.Context(), a.agent)
			if err != nil {
				return err
			}

			fmt.Printf("Refreshed %d, skipped %d, failed %d\n",
				report.Refreshed, report.Skipped, report.Failed)
			if remaining := a.limiter.Remaining(); remaining >= 0 {
				fmt.Printf("%d agent calls left today\n", remaining)
			}
			return nil
		},
	}
}
