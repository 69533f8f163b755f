package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestSetVersion(t *testing.T) {
	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "cerdito" {
		t.Errorf("Expected Use to be 'cerdito', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
}

func TestPersistentFlags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
	}{
		{name: "config", shorthand: "c"},
		{name: "kubeconfig", shorthand: "k"},
		{name: "verbose", shorthand: "v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("Expected persistent flag --%s", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("Expected --%s shorthand %q, got %q", tt.name, tt.shorthand, flag.Shorthand)
			}
		})
	}
}

func TestVerboseFlagCounts(t *testing.T) {
	testCmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	var count int
	testCmd.Flags().CountVarP(&count, "verbose", "v", "")

	testCmd.SetArgs([]string{"-vvv"})
	if err := testCmd.Execute(); err != nil {
		t.Fatalf("Error executing command: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected verbosity 3, got %d", count)
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}

	testCmd.SetVersionTemplate(`{{printf "cerdito version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)

	testCmd.SetArgs([]string{"--version"})
	err := testCmd.Execute()
	if err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	output := buf.String()
	expected := "cerdito version 1.0.0\n"
	if output != expected {
		t.Errorf("Expected version output %q, got %q", expected, output)
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersion("2.0.0")
	var buf bytes.Buffer
	versionCmd := newVersionCmd()
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)

	if got := buf.String(); got != "cerdito version 2.0.0\n" {
		t.Errorf("Unexpected version output %q", got)
	}
}

func TestSubcommands(t *testing.T) {
	commands := rootCmd.Commands()

	expectedCommands := []string{"start", "stop", "version"}
	foundCommands := make(map[string]bool)

	for _, cmd := range commands {
		foundCommands[cmd.Name()] = true
	}

	for _, expected := range expectedCommands {
		if !foundCommands[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestStopWithMissingConfigFails(t *testing.T) {
	var stderr bytes.Buffer
	rootCmd.SetOut(&stderr)
	rootCmd.SetErr(&stderr)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		configPath = ""
	}()

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	rootCmd.SetArgs([]string{"stop", "--config", missing})

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("Expected an error for a missing explicit config file")
	}
	if !strings.Contains(err.Error(), "failed to load cerdito configuration") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestStartRejectsArguments(t *testing.T) {
	startCmd := newStartCmd()
	if err := startCmd.Args(startCmd, []string{"extra"}); err == nil {
		t.Error("Expected start to reject positional arguments")
	}
}
