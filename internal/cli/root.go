package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/mapimp/internal/log"
)

var (
	jsonOutput bool
	configFile string

	groupTitleColor   = color.New(color.FgCyan, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

const (
	groupSession = "session"
	groupEditing = "editing"
	groupArchive = "archive"
	groupTooling = "cli-tooling"
)

var rootCmd = &cobra.Command{
	Use:     "mapimp",
	Version: "dev",
	Short:   "Import list manager for game map archives",
	Long: `mapimp manages the import list of game map archives.

It records which files inside a map are custom imports and under which path
each one is stored. Edits (import, mv, rm) are kept in a session until save
writes them into the archive together with a regenerated import list.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings()
	},
}

// SetVersion sets the version printed by --version and the version command.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// helpFunc prints help with commands listed under colored group titles.
func helpFunc(cmd *cobra.Command, args []string) {
	initColors()
	var b strings.Builder

	if cmd.Long != "" {
		b.WriteString(cmd.Long)
		b.WriteString("\n\n")
	}

	writeSection(&b, sectionTitleColor.Sprint("Usage:"), []string{cmd.UseLine()})

	for _, group := range cmd.Groups() {
		writeSection(&b, groupTitleColor.Sprint(group.Title), commandLines(cmd, group.ID))
	}
	writeSection(&b, sectionTitleColor.Sprint("Additional Commands:"), commandLines(cmd, ""))

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailableInheritedFlags() {
		b.WriteString(sectionTitleColor.Sprint("Flags:"))
		b.WriteString("\n")
		b.WriteString(cmd.LocalFlags().FlagUsages())
		b.WriteString(cmd.InheritedFlags().FlagUsages())
		b.WriteString("\n")
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&b, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	}

	_, _ = io.WriteString(cmd.OutOrStdout(), b.String())
}

// commandLines lists the visible subcommands of cmd in groupID.
func commandLines(cmd *cobra.Command, groupID string) []string {
	var lines []string
	for _, c := range cmd.Commands() {
		if c.GroupID != groupID || (!c.IsAvailableCommand() && c.Name() != "help") {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-11s %s", c.Name(), c.Short))
	}
	return lines
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	b.WriteString(title)
	b.WriteString("\n")
	for _, line := range lines {
		fmt.Fprintf(b, "  %s\n", line)
	}
	b.WriteString("\n")
}

func addGroup(id string, cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.GroupID = id
		rootCmd.AddCommand(c)
	}
}

func init() {
	rootCmd.SetHelpFunc(helpFunc)

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Settings file (default $MAPIMP_ROOT/config.toml)")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupSession, Title: "Sessions:"},
		&cobra.Group{ID: groupEditing, Title: "Editing:"},
		&cobra.Group{ID: groupArchive, Title: "Archive:"},
		&cobra.Group{ID: groupTooling, Title: "CLI & Tooling:"},
	)

	addGroup(groupSession, newCmd, openCmd, statusCmd, resetCmd)
	addGroup(groupEditing, listCmd, importCmd, mvCmd, rmCmd)
	addGroup(groupArchive, saveCmd, exportCmd)

	addGroup(groupTooling, &cobra.Command{
		Use:   "version",
		Short: "Print the mapimp CLI version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version)
		},
	})

	// cobra adds help and completion lazily on first execution
	rootCmd.SetHelpCommandGroupID(groupTooling)
	rootCmd.SetCompletionCommandGroupID(groupTooling)
}

// Execute runs the root command.
func Execute() error {
	defer log.Sync()
	return rootCmd.Execute()
}
