package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"ignscript/internal/conflict"
	"ignscript/internal/journal"
	"ignscript/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var resolveTake string

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>",
	Short: "Resolve script merge conflicts interactively or by taking one side",
	Long:  "Without --take, resolve opens an interactive picker showing a diff of each conflict. With --take current|incoming, every script conflict in the file is resolved to that side.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		store, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if resolveTake != "" {
			return resolveAll(cmd.Context(), args[0], string(data), resolveTake, store)
		}

		save := func(doc string) error {
			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			return os.WriteFile(args[0], []byte(doc), info.Mode().Perm())
		}
		model := tui.New(args[0], string(data), save, store)
		_, err = tea.NewProgram(model).Run()
		return err
	},
}

// resolveAll takes one side of every script conflict. Edits are applied
// bottom-up so earlier splices cannot shift the line numbers of later ones.
func resolveAll(ctx context.Context, path, doc, side string, store *journal.Store) error {
	conflicts := conflict.Parse(doc)
	if len(conflicts) == 0 {
		slog.Info("no script conflicts found", "file", path)
		return nil
	}
	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].StartLine > conflicts[j].StartLine
	})
	for _, c := range conflicts {
		edit, err := conflict.ResolveTake(doc, c.ID, side)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", c.ID, err)
		}
		doc = conflict.ApplyEdit(doc, edit)
		script := c.CurrentScript
		if side == "incoming" {
			script = c.IncomingScript
		}
		if _, err := store.Record(ctx, journal.Resolution{
			File:           path,
			ConflictID:     c.ID,
			JSONKey:        c.JSONKey,
			CurrentBranch:  c.CurrentBranch,
			IncomingBranch: c.IncomingBranch,
			Choice:         side,
			Script:         script,
		}); err != nil {
			slog.Warn("journal write failed", "conflict", c.ID, "err", err)
		}
		slog.Debug("resolved conflict", "conflict", c.ID, "side", side)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(doc), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("resolved script conflicts", "file", path, "count", len(conflicts), "side", side)
	return nil
}

func init() {
	resolveCmd.Flags().StringVar(&resolveTake, "take", "", "resolve all conflicts to one side: current or incoming")
	rootCmd.AddCommand(resolveCmd)
}
