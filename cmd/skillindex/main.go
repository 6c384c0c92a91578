package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"skillindex/internal/classify"
	"skillindex/internal/config"
	"skillindex/internal/description"
	"skillindex/internal/logging"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger

	rootCmd = &cobra.Command{
		Use:           "skillindex",
		Short:         "Classify skill catalog entries into a fixed category taxonomy",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var (
				path string
				err  error
			)
			if configPath != "" {
				cfg, path, err = config.LoadFromPath(configPath)
			} else {
				cfg, path, err = config.Load()
			}
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}

			logger = logging.New(cfg.Log, os.Stderr)
			slog.SetDefault(logger)
			if path != "" {
				logger.Debug("configuration loaded", "path", path)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: search "+config.EnvConfigPath+", ./"+config.ConfigFileName+", XDG dirs)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(buildCmd, classifyCmd, serveCmd, categoriesCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newClassifier builds a classifier whose description fallback reads from the data root
func newClassifier() *classify.Classifier {
	return classify.New(description.NewLoader(cfg.Paths.DataRoot, cfg.Classifier.DescriptionBudget))
}
