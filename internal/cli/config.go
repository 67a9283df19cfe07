package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jverlinden/treecompare/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or modify treecompare configuration.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigSetOutputCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Printf("Default output: %s\n", cfg.Report.DefaultOutput)
			fmt.Printf("Sample cap:     %d\n", cfg.Report.SampleCap)
			fmt.Printf("Probe:          %s\n", cfg.Probe.Path)
			fmt.Printf("Auth helper:    %s\n", cfg.Probe.Helper)
			if cfg.Probe.Timeout != "" {
				fmt.Printf("Probe timeout:  %s\n", cfg.Probe.Timeout)
			}
			fmt.Printf("Log format:     %s\n", cfg.Logging.Format)
			fmt.Printf("Log level:      %s\n", cfg.Logging.Level)
			if cfg.Logging.File != "" {
				fmt.Printf("Log file:       %s\n", cfg.Logging.File)
			}

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}

			cfg := config.Default()
			if err := config.SaveToFile(cfg, path); err != nil {
				return err
			}

			fmt.Printf("Configuration file created at: %s\n", path)
			return nil
		},
	}
}

func newConfigSetOutputCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-output PATH",
		Short: "Set the default report output location",
		Long:  `Persist a new default location for comparison reports, used whenever --output is not given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SetDefaultOutput(args[0]); err != nil {
				return err
			}

			fmt.Printf("Default output location set to: %s\n", args[0])
			return nil
		},
	}
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}
