package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/mapimp/internal/engine"
	"github.com/danieljhkim/mapimp/internal/planner"
)

var saveDryRun bool

var saveCmd = &cobra.Command{
	Use:   "save <map>",
	Short: "Write the pending session into the map",
	Long: `Apply the pending session to the map archive.

Deleted imports are removed, moved imports renamed, and imported files
written. The import list is then regenerated and the archive compacted.
Files that cannot be added are reported and dropped from the list; the
rest of the save still goes through.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Save(context.Background(), &engine.SaveRequest{
			ArchivePath: args[0],
			DryRun:      saveDryRun,
		})
		if jsonOutput && result != nil {
			if jerr := outputJSON(result); jerr != nil {
				return jerr
			}
			return err
		}
		if err != nil {
			return err
		}

		if saveDryRun {
			ops := result.Plan.Operations
			PrintInfo(fmt.Sprintf("Dry run - would run %s", PrintCount(len(ops), "operation", "operations")))
			PrintList(operationLines(ops), 1)
			if result.IndexRemoved {
				PrintInfo("The import list would be removed")
			}
			return nil
		}

		PrintSuccess(fmt.Sprintf("Saved %s", PrintCount(len(result.Applied), "operation", "operations")))
		if len(result.FailedFiles) > 0 {
			PrintWarning(fmt.Sprintf("Failed to add %s:", PrintCount(len(result.FailedFiles), "file", "files")))
			PrintList(result.FailedFiles, 1)
		}
		for _, opErr := range result.OpErrors {
			if opErr.Op.Type != planner.OpAdd {
				PrintWarning(fmt.Sprintf("%s %s: %s", opErr.Op.Type, opErr.Op.Source, opErr.Error))
			}
		}
		if !result.Reloaded {
			PrintWarning("Session could not be reloaded; run open to start a new one")
		}
		return nil
	},
}

func init() {
	saveCmd.Flags().BoolVar(&saveDryRun, "dry-run", false, "Show what would be saved without saving")
}
