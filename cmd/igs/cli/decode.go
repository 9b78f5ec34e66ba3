package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	decodeOut    string
	decodeStdout bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decode the scripts of an Ignition resource file to readable form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		m, err := newMatcher(cfg)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		res := m.ExtractAndDecode(string(data))
		if len(res.Errors) > 0 {
			return fmt.Errorf("decode %s: %s", args[0], strings.Join(res.Errors, "; "))
		}
		if !res.HasScripts {
			slog.Info("no script fields found", "file", args[0])
		}
		slog.Debug("decoded scripts", "file", args[0], "count", len(res.Locations))
		return writeOutput(cmd, args[0], decodeOut, decodeStdout, res.Content)
	},
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeOut, "output", "o", "", "write result to this path instead of in place")
	decodeCmd.Flags().BoolVar(&decodeStdout, "stdout", false, "print result to stdout")
	rootCmd.AddCommand(decodeCmd)
}
