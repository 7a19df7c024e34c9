package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Help(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		resetFlags()
	})
	rootCmd.SetArgs([]string{"--help"})

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "mapimp")
	for _, group := range []string{"Sessions:", "Editing:", "Archive:", "CLI & Tooling:"} {
		assert.Contains(t, out, group)
	}

	// commands are listed under their group, in registration order
	editing := out[strings.Index(out, "Editing:"):strings.Index(out, "Archive:")]
	assert.Contains(t, editing, "import")
	assert.NotContains(t, editing, "save")
}

func TestRootCommand_Version(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	resetFlags()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		resetFlags()
	})
	rootCmd.SetArgs([]string{"--version"})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "1.2.3\n", buf.String())
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"invalid-command"})

	assert.Error(t, rootCmd.Execute())
}

func TestRootCommand_VersionAfterHelp(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		resetFlags()
	})

	rootCmd.SetArgs([]string{"--help"})
	require.NoError(t, rootCmd.Execute())

	resetFlags()
	buf.Reset()
	SetVersion("3.4.5")
	t.Cleanup(func() { SetVersion("dev") })
	rootCmd.SetArgs([]string{"--version"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "3.4.5\n", buf.String())
}

func TestSetVersion_EmptyKeepsCurrent(t *testing.T) {
	SetVersion("2.0.0")
	SetVersion("")
	assert.Equal(t, "2.0.0", rootCmd.Version)
	SetVersion("dev")
}

func TestRootCommand_Subcommands(t *testing.T) {
	rootCmd.InitDefaultHelpCmd()
	rootCmd.InitDefaultCompletionCmd()

	tests := []struct {
		name  string
		group string
	}{
		{"new", groupSession},
		{"open", groupSession},
		{"status", groupSession},
		{"reset", groupSession},
		{"list", groupEditing},
		{"ls", groupEditing},
		{"import", groupEditing},
		{"mv", groupEditing},
		{"rm", groupEditing},
		{"save", groupArchive},
		{"export", groupArchive},
		{"version", groupTooling},
		{"completion", groupTooling},
		{"help", groupTooling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.name})
			require.NoError(t, err)
			require.NotNil(t, cmd)
			assert.Equal(t, tt.group, cmd.GroupID)
		})
	}
}
