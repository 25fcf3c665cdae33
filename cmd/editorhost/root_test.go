package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogDestination(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		kind       string
		args       []string
		want       string
	}{
		{name: "TerminalSession", kind: "tty", args: []string{"host.toml"}, want: defaultTerminalLog},
		{name: "TerminalHelp", kind: "tty", want: ""},
		{name: "Headless", kind: "headless", args: []string{"host.toml"}, want: ""},
		{name: "Configured", configured: "/tmp/host.log", kind: "tty", want: "/tmp/host.log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logDestination(tt.configured, tt.kind, tt.args))
		})
	}
}

func TestHelpCreatesNoLog(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := newRootCommand("1.0.0", "abc", "today")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "usage: editorhost")

	_, err := os.Stat(filepath.Join(".", defaultTerminalLog))
	assert.True(t, os.IsNotExist(err))
}

func TestVersion(t *testing.T) {
	cmd := newRootCommand("1.0.0", "abc", "today")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "1.0.0 (commit: abc, built: today)\n", out.String())
}
