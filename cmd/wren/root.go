package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wrenfm/wren/cmd/wren/tui"
	"github.com/wrenfm/wren/pkg/wren/config"
	"github.com/wrenfm/wren/pkg/wren/engine"
	"github.com/wrenfm/wren/pkg/wren/history"
	"github.com/wrenfm/wren/pkg/wren/logging"
	"github.com/wrenfm/wren/pkg/wren/manifest"
	"github.com/wrenfm/wren/pkg/wren/opener"
	"github.com/wrenfm/wren/pkg/wren/progress"
	"github.com/wrenfm/wren/pkg/wren/session"
	"github.com/wrenfm/wren/pkg/wren/snapshot"
)

var rootCmd = &cobra.Command{
	Use:   "wren [path]",
	Short: "A keyboard-driven terminal file manager",
	Long: `Wren is a terminal file manager with trash-based delete, paste with
collision-safe naming, and full undo/redo of file manipulations.

Examples:
  wren                  # Browse the current directory
  wren ~/Downloads      # Browse a specific directory
  wren trash list       # Show trashed entries
  wren trash empty      # Empty the trash
  wren config show      # Show configuration`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().Bool("show-hidden", false, "show hidden files on startup")
	rootCmd.Flags().String("sort", "", "sort key (name or time)")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// runBrowse launches the interactive browser.
func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logging.Init(logging.Config{
		Level:      cfg.Logging.Level,
		Path:       cfg.Logging.Path,
		Components: cfg.Logging.Components,
	}); err != nil {
		return err
	}
	defer func() { _ = logging.Close() }()

	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving start directory: %w", err)
	}
	if meta, err := os.Stat(root); err != nil {
		return fmt.Errorf("cannot browse %q: %w", root, err)
	} else if !meta.IsDir() {
		return fmt.Errorf("cannot browse %q: not a directory", root)
	}

	sess, err := session.Load(config.DefaultSessionPath(), session.Session{
		SortBy:     cfg.SortBy,
		ShowHidden: cfg.ShowHidden,
	})
	if err != nil {
		logging.Get("tui").Warn("session load failed, using defaults", "error", err)
	}
	if hidden, err := cmd.Flags().GetBool("show-hidden"); err == nil && cmd.Flags().Changed("show-hidden") {
		sess.ShowHidden = hidden
	}
	if sortBy, err := cmd.Flags().GetString("sort"); err == nil && sortBy != "" {
		sess.SortBy = sortBy
	}

	log := &history.Log{}
	engineLogger := logging.Get("engine")
	eng, err := engine.New(trashDir(cfg), log,
		engine.WithProgress(progress.Stages(func(stage string) {
			engineLogger.Debug("copying", "progress", stage)
		})))
	if err != nil {
		return err
	}

	journal, err := manifest.New(config.DefaultManifestPath())
	if err != nil {
		return err
	}

	model, err := tui.NewModel(tui.Options{
		Root:       root,
		Engine:     eng,
		Opener:     opener.New(cfg.Openers, cfg.DefaultOpener),
		Journal:    journal,
		SortBy:     snapshot.ParseSortKey(sess.SortBy),
		ShowHidden: sess.ShowHidden,
	})
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("running interface: %w", err)
	}

	// Persist the sort key and hidden-file visibility for the next run.
	if m, ok := final.(tui.Model); ok {
		sess.SortBy = string(m.SortBy())
		sess.ShowHidden = m.ShowHidden()
		if err := sess.Save(config.DefaultSessionPath()); err != nil {
			logging.Get("tui").Warn("session save failed", "error", err)
		}
	}
	return nil
}

// trashDir resolves the trash directory from config.
func trashDir(cfg *config.Config) string {
	if cfg.TrashDir != "" {
		return cfg.TrashDir
	}
	return config.DefaultTrashDir()
}
