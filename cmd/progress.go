package cmd

import (
	"fmt"

	"viaggio/internal/db"
	"viaggio/internal/util"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect or clear saved checklist progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the checked item positions",
	Args:  cobra.NoArgs,
	RunE:  runProgressShow,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all saved progress",
	Args:  cobra.NoArgs,
	RunE:  runProgressReset,
}

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressResetCmd)
}

func runProgressShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", s.cfg.Progress.Key, util.FormatIndices(s.tracker.Checked()))
	return nil
}

func runProgressReset(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := db.DeleteValue(cmd.Context(), s.database, s.cfg.Progress.Key); err != nil {
		return err
	}
	s.logger.Info("progress cleared", "key", s.cfg.Progress.Key)
	fmt.Fprintln(cmd.OutOrStdout(), "Progress cleared")
	return nil
}
