package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/mapimp/internal/engine"
)

var rmCmd = &cobra.Command{
	Use:   "rm <map> <path>...",
	Short: "Toggle the deleted mark on imports",
	Long: `Mark imports for deletion, or restore them.

The first path decides the direction: if it is marked deleted, every
selected import is restored, otherwise every one is marked. Imports that
were never saved to the archive are dropped from the list instead.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Remove(context.Background(), &engine.RemoveRequest{
			ArchivePath: args[0],
			Paths:       args[1:],
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if len(result.Deleted) > 0 {
			PrintSuccess(fmt.Sprintf("Marked %s for deletion", PrintCount(len(result.Deleted), "import", "imports")))
			PrintList(result.Deleted, 1)
		}
		if len(result.Restored) > 0 {
			PrintSuccess(fmt.Sprintf("Restored %s", PrintCount(len(result.Restored), "import", "imports")))
			PrintList(result.Restored, 1)
		}
		if len(result.Dropped) > 0 {
			PrintSuccess(fmt.Sprintf("Dropped %s", PrintCount(len(result.Dropped), "unsaved import", "unsaved imports")))
			PrintList(result.Dropped, 1)
		}
		return nil
	},
}
