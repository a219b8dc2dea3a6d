package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wrenfm/wren/pkg/wren/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage wren configuration settings.

Configuration is loaded from:
  1. $XDG_CONFIG_HOME/wren/config.yaml (if set)
  2. ~/.config/wren/config.yaml

Environment variables can override config file settings using the WREN_ prefix:
  WREN_DEFAULT_OPENER=less
  WREN_SHOW_HIDDEN=true`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration settings from all sources.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	Long:  `Create a default configuration file if one doesn't exist.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path to the configuration file.`,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("default_opener: %s\n", cfg.DefaultOpener)
	fmt.Printf("show_hidden:    %t\n", cfg.ShowHidden)
	fmt.Printf("sort_by:        %s\n", cfg.SortBy)
	fmt.Printf("trash_dir:      %s\n", trashDir(cfg))
	fmt.Printf("log_level:      %s\n", cfg.Logging.Level)
	if len(cfg.Openers) > 0 {
		fmt.Println("openers:")
		for ext, command := range cfg.Openers {
			fmt.Printf("  %s: %s\n", ext, command)
		}
	}
	return nil
}

// runConfigInit creates a default config file.
func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.WriteDefault(); err != nil {
		return err
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Printf("Configuration file: %s\n", filepath.Join(dir, "config.yaml"))
	return nil
}

// runConfigPath shows the config file location.
func runConfigPath(cmd *cobra.Command, args []string) error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Println(filepath.Join(dir, "config.yaml"))
	return nil
}
