package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/mapimp/internal/engine"
)

var openForce bool

var openCmd = &cobra.Command{
	Use:   "open <map>",
	Short: "Load a map's import list into a new session",
	Long: `Read the import list of a map archive and start an edit session.

An existing session with unsaved edits is kept unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Open(context.Background(), &engine.OpenRequest{
			ArchivePath: args[0],
			Force:       openForce,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if result.Replaced {
			PrintWarning("Discarded the previous session")
		}
		PrintSuccess(fmt.Sprintf("Opened %s (%s, %s)", result.ArchivePath, result.Kind,
			PrintCount(len(result.Entries), "import", "imports")))
		if !result.IndexPresent {
			PrintInfo("The archive has no import list yet")
		}
		return nil
	},
}

func init() {
	openCmd.Flags().BoolVarP(&openForce, "force", "f", false, "Discard unsaved edits of an existing session")
}
