package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/retrohunt/retro-hunter/internal/currency"
	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

func rateCmd() *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Fetch the USD to EUR exchange rate, or convert an amount",
		Long: "Refreshes the exchange rate from the configured provider. When the\n" +
			"provider is unreachable a built-in fallback rate is used, so the\n" +
			"command never fails.",
		Example: `  retro rate
  retro rate --amount 49.99`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			rate := a.rates.Refresh(cmd.Context())

			if viper.GetString("output") == "json" {
				out := map[string]any{"usd_to_eur": rate}
				if amount > 0 {
					out["usd"] = amount
					out["eur"] = a.rates.Convert(amount, domain.CurrencyEUR)
				}
				return outputJSON(out)
			}

			fmt.Printf("1 USD = %.4f EUR\n", rate)
			if amount > 0 {
				fmt.Printf("%s%.2f = %s%s\n",
					currency.Symbol(domain.CurrencyUSD), amount,
					currency.Symbol(domain.CurrencyEUR), a.rates.Convert(amount, domain.CurrencyEUR))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", 0, "USD amount to convert to EUR")

	return cmd
}
