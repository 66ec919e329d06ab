package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loadShowDiags bool

var loadCmd = &cobra.Command{
	Use:   "load <history.xml>",
	Short: "Load a history export and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore(cmd, args[0])
		if err != nil {
			return err
		}

		meta := store.Meta()
		fmt.Printf("entries:      %d\n", store.Len())
		if meta.BurpVersion != "" {
			fmt.Printf("burp version: %s\n", meta.BurpVersion)
		}
		if !meta.ExportTime.IsZero() {
			fmt.Printf("exported:     %s\n", meta.ExportTime.Format("2006-01-02 15:04:05 MST"))
		}

		clean, withDiags := 0, 0
		for _, e := range store.Entries() {
			if len(e.Diagnostics) > 0 {
				withDiags++
			}
			if e.Clean() {
				clean++
			}
		}
		fmt.Printf("clean:        %d\n", clean)
		fmt.Printf("with issues:  %d\n", withDiags)

		for _, d := range store.Diagnostics() {
			fmt.Printf("stream %s: %s\n", d.Severity, d.Message)
		}
		if loadShowDiags {
			for _, e := range store.Entries() {
				for _, d := range e.Diagnostics {
					fmt.Printf("entry %d [%s/%s]: %s\n", e.ID, d.Stage, d.Severity, d.Message)
				}
			}
		}
		return nil
	},
}

func init() {
	loadCmd.Flags().BoolVar(&loadShowDiags, "show-diagnostics", false, "list per-entry diagnostics")
	rootCmd.AddCommand(loadCmd)
}
