package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/mapimp/internal/engine"
)

var (
	importAs             string
	importWithFolderName bool
	importInclude        []string
	importExclude        []string
)

var importCmd = &cobra.Command{
	Use:   "import <map> <path>...",
	Short: "Import files or folders from disk",
	Long: `Add files from disk to the map's pending session.

A file is stored under its base name. A folder contributes every file below
it at its relative path; --with-folder-name keeps the folder's own name as
the first path segment. Files whose archive path matches an existing entry
replace that entry's content.

Paths starting with war3mapImported\ are stored under that directory;
any other path is a custom import stored verbatim.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		withFolderName := settings.IncludeFolderName
		if cmd.Flags().Changed("with-folder-name") {
			withFolderName = importWithFolderName
		}

		result, err := eng.Import(context.Background(), &engine.ImportRequest{
			ArchivePath:    args[0],
			Paths:          args[1:],
			As:             importAs,
			WithFolderName: withFolderName,
			Include:        importInclude,
			Exclude:        importExclude,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if len(result.Added) > 0 {
			PrintSuccess(fmt.Sprintf("Added %s", PrintCount(len(result.Added), "file", "files")))
			PrintList(result.Added, 1)
		}
		if len(result.Updated) > 0 {
			PrintSuccess(fmt.Sprintf("Replaced content of %s", PrintCount(len(result.Updated), "entry", "entries")))
			PrintList(result.Updated, 1)
		}
		if len(result.Filtered) > 0 {
			PrintInfo(fmt.Sprintf("Filtered out %s", PrintCount(len(result.Filtered), "file", "files")))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importAs, "as", "", "Archive path for a single file, or path prefix for a folder")
	importCmd.Flags().BoolVar(&importWithFolderName, "with-folder-name", false, "Prefix folder imports with the folder's name")
	importCmd.Flags().StringSliceVar(&importInclude, "include", nil, "Only import folder files matching these globs")
	importCmd.Flags().StringSliceVar(&importExclude, "exclude", nil, "Skip folder files matching these globs")
}
