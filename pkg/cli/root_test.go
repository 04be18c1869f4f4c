package cli

import (
	"bytes"
	"testing"
)

func TestNewRootCommand(t *testing.T) {
	opts := &Options{}
	cmd := NewRootCommand(opts)

	if cmd == nil {
		t.Fatal("NewRootCommand() returned nil")
	}

	if cmd.Use != "folio" {
		t.Errorf("NewRootCommand() Use = %q, want %q", cmd.Use, "folio")
	}

	commandNames := make(map[string]bool)
	for _, c := range cmd.Commands() {
		commandNames[c.Name()] = true
	}

	expectedCommands := []string{"list", "search", "tags", "url", "browse", "serve", "mcp", "saved", "sync"}
	for _, name := range expectedCommands {
		if !commandNames[name] {
			t.Errorf("NewRootCommand() missing subcommand: %q", name)
		}
	}
}

func TestRootCommandVersion(t *testing.T) {
	cmd := NewRootCommand(&Options{})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("root command --version error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("folio")) {
		t.Error("root command --version output missing 'folio'")
	}
}

func TestRootCommandHelp(t *testing.T) {
	cmd := NewRootCommand(&Options{})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("root command --help error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Search and browse portfolio projects and posts")) {
		t.Error("root command --help output missing description")
	}
}

func TestRootCommandInvalidCommand(t *testing.T) {
	cmd := NewRootCommand(&Options{})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"invalid-command"})

	if err := cmd.Execute(); err == nil {
		t.Error("root command expected error for invalid command, got nil")
	}
}

func TestRootCommandFlags(t *testing.T) {
	setupCLITest(t)
	opts := &Options{}
	cmd := NewRootCommand(opts)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--config", "/nonexistent/config.json", "--verbose", "list"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("list with missing config file error = %v", err)
	}
	if opts.ConfigPath != "/nonexistent/config.json" {
		t.Errorf("ConfigPath = %q, want %q", opts.ConfigPath, "/nonexistent/config.json")
	}
	if !opts.Verbose {
		t.Error("Verbose = false, want true")
	}
}
