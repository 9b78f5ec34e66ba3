package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"ignscript/internal/conflict"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

var conflictsCmd = &cobra.Command{
	Use:   "conflicts <file>",
	Short: "List unresolved script merge conflicts in a resource file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		conflicts := conflict.Parse(string(data))

		if jsonOut {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(conflicts)
		}

		if len(conflicts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no script conflicts found")
			return nil
		}
		out := cmd.OutOrStdout()
		for _, c := range conflicts {
			fmt.Fprintf(out, "%s  lines %d-%d  %s ↔ %s\n", c.ID, c.StartLine+1, c.EndLine+1, c.CurrentBranch, c.IncomingBranch)
			diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(c.CurrentScript),
				B:        difflib.SplitLines(c.IncomingScript),
				FromFile: c.CurrentBranch,
				ToFile:   c.IncomingBranch,
				Context:  3,
			})
			if err != nil {
				return fmt.Errorf("diff %s: %w", c.ID, err)
			}
			fmt.Fprintln(out, strings.TrimRight(diff, "\n"))
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(conflictsCmd)
}
