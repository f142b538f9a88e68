package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintHelpText(t *testing.T) {
	var buf bytes.Buffer
	outputWriter = &buf
	defer func() { outputWriter = nil }()

	printHelpText(rootCmd)
	output := buf.String()

	if !strings.Contains(output, "snapvault v") {
		t.Error("Help output should contain version")
	}
	if !strings.Contains(output, "Capture, organize, and find your screenshots.") {
		t.Error("Help output should contain description")
	}
	if !strings.Contains(output, "USAGE:") {
		t.Error("Help output should contain USAGE section")
	}
	if !strings.Contains(output, "COMMANDS:") {
		t.Error("Help output should contain COMMANDS section")
	}
	for _, name := range []string{"capture", "history", "delete", "cleanup", "config", "tray", "tui", "version"} {
		if !strings.Contains(output, name) {
			t.Errorf("Help output should list the %s command", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"capture": false, "history": false, "delete": false, "cleanup": false,
		"config": false, "tray": false, "tui": false, "version": false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %s not registered", name)
		}
	}
}
