package cmd

import (
	"fmt"

	"viaggio/internal/itinerary"
	"viaggio/internal/render"
	"viaggio/internal/ui"

	"github.com/spf13/cobra"
)

const printWidth = 80

var printCmd = &cobra.Command{
	Use:   "print [source]",
	Short: "Print one day of the itinerary",
	Long: `Print renders a single day to stdout, with saved checklist progress.

Examples:
  # First day of the default itinerary
  viaggio print

  # Third day of a remote itinerary
  viaggio print --day 3 https://example.com/trip.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

var printDay int

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().IntVarP(&printDay, "day", "d", 1, "day number to print, starting at 1")
}

func runPrint(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), args)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	store := itinerary.NewStore(itinerary.NewFetcher(s.cfg.Itinerary.FetchTimeout()))
	if _, err := store.Load(cmd.Context(), s.cfg.Itinerary.Source); err != nil {
		s.logger.Error("failed to load itinerary", "error", err)
		fmt.Fprintln(out, ui.RenderDay(render.LoadFailed(), nil, printWidth))
		return err
	}

	tree := render.NotFound()
	if day, err := store.Lookup(printDay - 1); err == nil {
		tree = render.Render(day)
	}
	fmt.Fprintln(out, ui.RenderDay(tree, s.tracker.IsChecked, printWidth))
	return nil
}
