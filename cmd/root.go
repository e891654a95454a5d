package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"viaggio/internal/config"
	"viaggio/internal/itinerary"
	"viaggio/internal/mapview"
	"viaggio/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "viaggio [source]",
	Short: "Browse a multi-day trip itinerary in the terminal",
	Long: `viaggio shows one day of a trip at a time: the morning checklist,
afternoon activities, dinner ideas and where to sleep. Ticked morning items
are saved locally every few seconds and on exit.

source is a JSON file path or an http(s) URL (default is italy.json).`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runViewer,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute(version string) error {
	// .env files are read before flags so env-based defaults still apply.
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	rootCmd.Version = version
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is ~/.viaggio/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database file (default is ~/.viaggio/viaggio.db)")
	rootCmd.PersistentFlags().String("source", "", "itinerary file or URL (default is italy.json)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: DEBUG, INFO, WARN or ERROR")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("storage.db_path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("itinerary.source", rootCmd.PersistentFlags().Lookup("source"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("VIAGGIO")
	// VIAGGIO_PROGRESS_AUTOSAVE_INTERVAL_MS for progress.autosave_interval_ms
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.ReadInConfig()
}

func runViewer(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), args)
	if err != nil {
		return err
	}
	defer s.Close()

	store := itinerary.NewStore(itinerary.NewFetcher(s.cfg.Itinerary.FetchTimeout()))
	model := ui.New(s.cfg, store, s.tracker, s.logger, mapview.DetectTerminalCapabilities())

	s.logger.Info("starting viewer", "source", s.cfg.Itinerary.Source)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, runErr := p.Run()

	if err := s.tracker.Flush(context.Background()); err != nil {
		s.logger.Error("final flush failed", "error", err)
		if runErr == nil {
			return err
		}
	}
	if runErr != nil {
		return fmt.Errorf("failed to run viewer: %w", runErr)
	}
	return nil
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}

		value = strings.Trim(value, `"'`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
