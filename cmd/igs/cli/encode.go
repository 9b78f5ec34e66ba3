package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	encodeOut    string
	encodeStdout bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode <file>",
	Short: "Re-encode a decoded resource file to Ignition's wire format",
	Long:  "encode is the inverse of decode. It must only be run on decoded content: re-encoding an already-encoded file double-escapes its scripts.",
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
		return writeOutput(cmd, args[0], encodeOut, encodeStdout, m.EncodeScripts(string(data)))
	},
}

func init() {
	encodeCmd.Flags().StringVarP(&encodeOut, "output", "o", "", "write result to this path instead of in place")
	encodeCmd.Flags().BoolVar(&encodeStdout, "stdout", false, "print result to stdout")
	rootCmd.AddCommand(encodeCmd)
}
