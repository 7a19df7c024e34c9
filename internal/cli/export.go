package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/mapimp/internal/engine"
)

var exportCmd = &cobra.Command{
	Use:   "export <map> <dest>",
	Short: "Extract imports to a directory",
	Long: `Extract every import stored in the map to a directory.

Files are read from the archive under their saved path and written under
their current path, so unsaved moves are reflected in the output. Imports
that were never saved are skipped.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Export(context.Background(), &engine.ExportRequest{
			ArchivePath: args[0],
			Dest:        args[1],
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSuccess(fmt.Sprintf("Exported %s to %s", PrintCount(len(result.Extracted), "file", "files"), result.Dest))
		if len(result.Skipped) > 0 {
			PrintInfo(fmt.Sprintf("Skipped %s not yet saved", PrintCount(len(result.Skipped), "import", "imports")))
		}
		for _, f := range result.Failed {
			PrintWarning(fmt.Sprintf("%s: %s", f.Path, f.Error))
		}
		if len(result.Failed) > 0 {
			return fmt.Errorf("failed to export %s", PrintCount(len(result.Failed), "file", "files"))
		}
		return nil
	},
}
