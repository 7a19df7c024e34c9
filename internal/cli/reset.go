package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/mapimp/internal/engine"
)

var resetCmd = &cobra.Command{
	Use:   "reset <map>",
	Short: "Discard the pending session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Reset(context.Background(), &engine.ResetRequest{ArchivePath: args[0]})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		switch {
		case !result.Discarded:
			PrintInfo("No session to discard")
		case result.Dirty:
			PrintWarning("Discarded unsaved changes")
		default:
			PrintSuccess("Session closed")
		}
		return nil
	},
}
