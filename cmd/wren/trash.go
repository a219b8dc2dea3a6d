package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/wrenfm/wren/pkg/wren/config"
	"github.com/wrenfm/wren/pkg/wren/manifest"
	"github.com/wrenfm/wren/pkg/wren/snapshot"
	"github.com/wrenfm/wren/pkg/wren/types"
)

var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "Inspect and empty the trash directory",
}

var trashListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trashed entries",
	Long: `List the entries currently in the trash directory with their original
names and deletion times. With --history, show the journal of past
delete batches instead.`,
	RunE: runTrashList,
}

var trashEmptyCmd = &cobra.Command{
	Use:   "empty",
	Short: "Permanently remove everything in the trash",
	Long: `Remove every entry from the trash directory. This is irreversible:
entries removed here can no longer be restored by undo.`,
	RunE: runTrashEmpty,
}

func init() {
	trashListCmd.Flags().Bool("history", false, "show the delete-batch journal")
	trashListCmd.Flags().Int("limit", 0, "limit the number of entries shown (0 = all)")
	trashEmptyCmd.Flags().BoolP("force", "f", false, "skip the confirmation prompt")

	trashCmd.AddCommand(trashListCmd)
	trashCmd.AddCommand(trashEmptyCmd)
	rootCmd.AddCommand(trashCmd)
}

// runTrashList lists trash entries or the delete journal.
func runTrashList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if showHistory, _ := cmd.Flags().GetBool("history"); showHistory {
		limit, _ := cmd.Flags().GetInt("limit")
		return listHistory(limit)
	}

	items, err := snapshot.List(trashDir(cfg), snapshot.SortTime, true)
	if err != nil {
		// A trash dir that was never created is an empty trash, not an
		// error; List wraps the underlying cause.
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println("Trash is empty.")
			return nil
		}
		return err
	}
	if len(items) == 0 {
		fmt.Println("Trash is empty.")
		return nil
	}

	for _, item := range items {
		deleted, name, ok := types.SplitTrashName(item.Name)
		when := "unknown"
		if ok {
			when = humanize.Time(deleted)
		}
		kind := " "
		if item.Kind == types.KindDirectory {
			kind = "d"
		}
		fmt.Printf("%s %-40s %10s  deleted %s\n", kind, name, item.HumanSize(), when)
	}
	return nil
}

// listHistory prints the delete-batch journal newest first.
func listHistory(limit int) error {
	journal, err := manifest.New(config.DefaultManifestPath())
	if err != nil {
		return err
	}
	entries, err := journal.List(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No delete history.")
		return nil
	}

	for _, entry := range entries {
		fmt.Printf("%s  %s  %d item(s), %s from %s\n",
			entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
			entry.ID[:8],
			len(entry.Names),
			humanize.IBytes(uint64(entry.TotalBytes)),
			entry.SourceDir,
		)
		for _, name := range entry.Names {
			fmt.Printf("    %s\n", name)
		}
	}
	return nil
}

// runTrashEmpty clears the trash directory after confirmation.
func runTrashEmpty(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dir := trashDir(cfg)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("Trash is empty.")
			return nil
		}
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Trash is empty.")
		return nil
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		fmt.Printf("Permanently remove %d trashed entr(ies)? [y/N] ", len(entries))
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("removing %q: %w", entry.Name(), err)
		}
	}
	fmt.Printf("Removed %d entr(ies).\n", len(entries))
	return nil
}
