package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/mapimp/internal/engine"
)

var mvCmd = &cobra.Command{
	Use:   "mv <map> <old> <new>",
	Short: "Change the archive path of an import",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Move(context.Background(), &engine.MoveRequest{
			ArchivePath: args[0],
			From:        args[1],
			To:          args[2],
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		PrintSuccess(fmt.Sprintf("Moved %s -> %s", result.From, result.To))
		return nil
	},
}
