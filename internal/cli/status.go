package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/mapimp/internal/engine"
)

var statusCmd = &cobra.Command{
	Use:   "status <map>",
	Short: "Show the pending session",
	Long:  `Display the pending session of a map and the operations the next save would run.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Status(context.Background(), &engine.StatusRequest{ArchivePath: args[0]})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintLabelValue("Archive", result.ArchivePath)
		if !result.HasSession {
			PrintEmptyState("No open session")
			return nil
		}
		PrintLabelValue("Kind", result.Kind)
		PrintLabelValue("Imports", fmt.Sprintf("%d (%d marked deleted)", result.Total, result.Deleted))
		PrintLabelValue("Opened", result.CreatedAt.Local().Format(time.DateTime))
		PrintLabelValue("Edited", result.UpdatedAt.Local().Format(time.DateTime))

		if result.Plan == nil || result.Plan.IsEmpty() {
			PrintEmptyState("Nothing to save")
			return nil
		}
		PrintSection("Pending operations")
		PrintList(operationLines(result.Plan.Operations), 1)
		return nil
	},
}
