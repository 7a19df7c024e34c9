package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/mapimp/internal/engine"
)

var listCmd = &cobra.Command{
	Use:     "list <map>",
	Aliases: []string{"ls"},
	Short:   "List the imports of a map",
	Long: `List the entries of a map's import list.

When a session is open the pending list is shown, including unsaved edits.
Otherwise the list is read from the archive.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.List(context.Background(), &engine.ListRequest{ArchivePath: args[0]})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if len(result.Entries) == 0 {
			PrintEmptyState("No imports")
			return nil
		}

		PrintTable([]string{"PATH", "TYPE", "STATE", "SOURCE"}, entryRows(result.Entries))
		if result.Dirty {
			PrintWarning("Unsaved changes (run save to write them)")
		}
		return nil
	},
}
