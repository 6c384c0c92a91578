package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skillindex/internal/config"
)

var (
	configInitPath  string
	configInitForce bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a config file populated with defaults",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
)

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", config.ConfigFileName, "where to write the config file")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if fileExists(configInitPath) && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configInitPath)
	}
	if err := config.DefaultConfig().Save(configInitPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configInitPath)
	return nil
}
