package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"ignscript/internal/resource"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var scriptsCmd = &cobra.Command{
	Use:   "scripts <file>",
	Short: "List the script fields of an Ignition resource file",
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
		doc, err := resource.ParseDocument(string(data))
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		locs := m.FindScriptPaths(doc)

		if jsonOut {
			type entry struct {
				Path  string `json:"path"`
				Key   string `json:"key"`
				Lines int    `json:"lines"`
			}
			out := make([]entry, 0, len(locs))
			for _, loc := range locs {
				out = append(out, entry{Path: loc.Path, Key: loc.Key, Lines: resource.ScriptLineCount(loc.DecodedValue)})
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		if len(locs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no script fields found")
			return nil
		}
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Path", "Key", "Lines"})
		table.SetBorder(false)
		table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
		for _, loc := range locs {
			table.Append([]string{loc.Path, loc.Key, strconv.Itoa(resource.ScriptLineCount(loc.DecodedValue))})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scriptsCmd)
}
