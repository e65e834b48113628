package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"fetch", "analyze", "render", "build", "browse", "serve", "archive", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("cacheDir() = %q", dir)
	}
}

func TestCacheDirFallsBackToHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, home) {
		t.Errorf("cacheDir() = %q, want under %q", dir, home)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"html"}},
		{"json", []string{"json"}},
		{"html,json,dot", []string{"html", "json", "dot"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.input)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"html", "svg"}); err != nil {
		t.Errorf("validateFormats(html,svg) error = %v", err)
	}
	if err := validateFormats([]string{"pdf"}); err == nil {
		t.Error("validateFormats(pdf) should fail")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output   string
		format   string
		multiple bool
		want     string
	}{
		{"index", "html", false, "index.html"},
		{"report.json", "json", false, "report.json"},
		{"out/site", "html", true, "out/site.html"},
		{"index.html", "json", true, "index.json"},
	}
	for _, tt := range tests {
		got := outputPath(tt.output, tt.format, tt.multiple)
		if got != tt.want {
			t.Errorf("outputPath(%q, %q, %v) = %q, want %q", tt.output, tt.format, tt.multiple, got, tt.want)
		}
	}
}
