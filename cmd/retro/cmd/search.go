package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/retrohunt/retro-hunter/internal/agent"
	"github.com/retrohunt/retro-hunter/internal/search"
	"github.com/retrohunt/retro-hunter/pkg/platform"
	"github.com/retrohunt/retro-hunter/pkg/pricing"
)

func searchCmd() *cobra.Command {
	var (
		platformName string
		condition    string
		minPrice     float64
		maxPrice     float64
		sortDesc     bool
	)

	cmd := &cobra.Command{
		Use:   "search <game title>",
		Short: "Search current eBay prices for a game",
		Long: "Searches sold eBay listings through the agent backend and shows\n" +
			"the price range for the game.",
		Example: `  retro search "Shadow of the Colossus" --platform ps2
  retro search "Sonic Adventure" --platform dreamcast --min 10 --max 80
  retro search "Okami" --currency EUR --sort-desc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], platformName, condition, minPrice, maxPrice, sortDesc)
		},
	}
	cmd.Flags().StringVar(&platformName, "platform", "", "platform name or alias (ps2, dreamcast, ...)")
	cmd.Flags().StringVar(&condition, "condition", "", "listing condition filter")
	cmd.Flags().Float64Var(&minPrice, "min", 0, "minimum price shown")
	cmd.Flags().Float64Var(&maxPrice, "max", 0, "maximum price shown")
	cmd.Flags().BoolVar(&sortDesc, "sort-desc", false, "sort prices high to low")

	return cmd
}

func runSearch(
	cmd *cobra.Command,
	title, platformName, condition string,
	minPrice, maxPrice float64,
	sortDesc bool,
) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	session := search.NewSession(search.WithLogger(a.log))
	seq := session.Begin()

	listings, err := a.agent.Search(cmd.Context(), agent.SearchQuery{
		GameName:  title,
		Platform:  platform.Normalize(platformName),
		Condition: condition,
	})
	if err != nil {
		return err
	}
	session.Complete(seq, listings)

	if minPrice > 0 || maxPrice > 0 {
		bounds := session.Summary()
		lo, hi := bounds.Lowest, bounds.Highest
		if minPrice > 0 {
			lo = minPrice
		}
		if maxPrice > 0 {
			hi = maxPrice
		}
		session.SetBounds(lo, hi)
	}
	if sortDesc {
		session.SetOrder(pricing.SortDesc)
	}

	visible := session.Listings()
	if viper.GetString("output") == "json" {
		return outputJSON(map[string]any{
			"listings": visible,
			"summary":  session.Summary(),
		})
	}
	return printListingsTable(a.rates, visible, session.Summary())
}
