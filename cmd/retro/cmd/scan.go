package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/retrohunt/retro-hunter/pkg/pricing"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <image file>",
		Short: "Identify a game from a photo and look up its price",
		Long: "Uploads a photo to the agent backend, which identifies the game\n" +
			"and platform and searches sold eBay listings for it.",
		Example: `  retro scan shelf-photo.jpg
  retro scan cartridge.png --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args[0])
		},
	}
	return cmd
}

func runScan(cmd *cobra.Command, path string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	f, err := os.Open(path) //nolint:gosec // image path from trusted CLI arg
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	result, err := a.agent.Scan(cmd.Context(), filepath.Base(path), f)
	if err != nil {
		return err
	}

	if viper.GetString("output") == "json" {
		return outputJSON(result)
	}

	if !result.Identified() {
		fmt.Println("Could not identify the game.")
		if result.Raw != "" {
			fmt.Println(result.Raw)
		}
		return nil
	}

	fmt.Printf("Identified: %s (%s)\n\n", result.Title, result.Platform)
	return printListingsTable(a.rates, result.Listings, pricing.Summarize(result.Listings))
}
