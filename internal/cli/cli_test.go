package cli

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/flowviz/sankey/pkg/pipeline"
)

func TestNew(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	if c.Logger == nil {
		t.Fatal("New() should set a logger")
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("GetLevel() = %v, want %v", c.Logger.GetLevel(), log.DebugLevel)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"transform", "layout", "render", "analyze", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty defaults to svg",
			input: "",
			want:  []string{pipeline.FormatSVG},
		},
		{
			name:  "single format",
			input: "png",
			want:  []string{"png"},
		},
		{
			name:  "multiple formats",
			input: "svg,png,json",
			want:  []string{"svg", "png", "json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{
			name:   "empty output strips input extension",
			output: "",
			input:  "funnel.csv",
			want:   "funnel",
		},
		{
			name:   "output with format extension",
			output: "out/chart.svg",
			input:  "funnel.csv",
			want:   "out/chart",
		},
		{
			name:   "output without format extension",
			output: "out/chart",
			input:  "funnel.csv",
			want:   "out/chart",
		},
		{
			name:   "unknown extension kept",
			output: "chart.out",
			input:  "funnel.csv",
			want:   "chart.out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestIsChartFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"graph.json", true},
		{"graph.JSON", true},
		{"funnel.csv", false},
		{"data", false},
	}

	for _, tt := range tests {
		if got := isChartFile(tt.path); got != tt.want {
			t.Errorf("isChartFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}

	if !strings.HasSuffix(dir, filepath.Join(".cache", appName)) {
		t.Errorf("cacheDir() = %q, want suffix %q", dir, filepath.Join(".cache", appName))
	}
}

func TestCacheDirXDG(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", tmp)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}

	want := filepath.Join(tmp, appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	// Run from a temp dir so no sankey.toml is picked up.
	tmp := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(orig)

	c := New(io.Discard, log.InfoLevel)
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Cache.Backend != "" {
		t.Errorf("missing config should yield zero config, got backend %q", cfg.Cache.Backend)
	}
}

func TestFormatFlow(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{100, "100"},
		{40.5, "40.5"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := formatFlow(tt.v); got != tt.want {
			t.Errorf("formatFlow(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	if got := formatRate(0.4); got != "40.0%" {
		t.Errorf("formatRate(0.4) = %q, want %q", got, "40.0%")
	}
}
