package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/mapimp/internal/engine"
)

var newCampaign bool

var newCmd = &cobra.Command{
	Use:   "new <map>",
	Short: "Create an empty map archive",
	Long: `Create a new, empty map archive and open a session on it.

The archive holds only the marker file of its kind, so imports can be added
and saved right away. Use --campaign to create a campaign archive.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		kind := "map"
		if newCampaign {
			kind = "campaign"
		}

		result, err := eng.Create(context.Background(), &engine.CreateRequest{
			ArchivePath: args[0],
			Kind:        kind,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		PrintSuccess(fmt.Sprintf("Created %s %s", result.Kind, result.ArchivePath))
		return nil
	},
}

func init() {
	newCmd.Flags().BoolVar(&newCampaign, "campaign", false, "Create a campaign instead of a map")
}
