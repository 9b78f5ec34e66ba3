package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ignscript/internal/config"
	"ignscript/internal/journal"
	"ignscript/internal/resource"

	"github.com/spf13/cobra"
)

var (
	cfgPath string
	verbose bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:     "igs",
	Short:   "ignscript — Ignition script codec and conflict resolver",
	Long:    "ignscript decodes the escaped Python scripts embedded in Ignition JSON resources, re-encodes them for the gateway wire format, and resolves script merge conflicts.",
	Version: config.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "ignscript.toml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output JSON")
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgPath)
}

// newMatcher builds the script path matcher from config: extra patterns
// plus the optional forced indent.
func newMatcher(cfg *config.Config) (*resource.Matcher, error) {
	m, err := resource.NewMatcher(cfg.Patterns.Extra...)
	if err != nil {
		return nil, err
	}
	if cfg.Indent > 0 {
		m.Indent = strings.Repeat(" ", cfg.Indent)
	}
	return m, nil
}

func openJournal(cfg *config.Config) (*journal.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.JournalPath), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	return journal.Open(cfg.JournalPath)
}

// writeOutput sends content to -o <path>, stdout, or back over the input
// file, in that preference order.
func writeOutput(cmd *cobra.Command, inputPath, outPath string, toStdout bool, content string) error {
	switch {
	case toStdout:
		fmt.Fprintln(cmd.OutOrStdout(), content)
		return nil
	case outPath != "":
		return os.WriteFile(outPath, []byte(content), 0o644)
	default:
		info, err := os.Stat(inputPath)
		if err != nil {
			return fmt.Errorf("stat %s: %w", inputPath, err)
		}
		return os.WriteFile(inputPath, []byte(content), info.Mode().Perm())
	}
}
