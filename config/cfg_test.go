package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}

	ov := cfg.Overlay
	if !ov.Rasterize || !ov.Cleanup || ov.Quiet {
		t.Errorf("rasterize/cleanup/quiet = %v/%v/%v, want true/true/false", ov.Rasterize, ov.Cleanup, ov.Quiet)
	}
	if ov.StrictProperties {
		t.Error("strict property matching must be off by default")
	}
	if ov.OutputDir != "." {
		t.Errorf("OutputDir = %q, want %q", ov.OutputDir, ".")
	}
	if ov.Rasterizer.Backend != RasterBackendExternal {
		t.Errorf("Backend = %v, want external", ov.Rasterizer.Backend)
	}
	if ov.Rasterizer.Command != "/usr/bin/inkscape" {
		t.Errorf("Command = %q", ov.Rasterizer.Command)
	}
	if len(ov.Rasterizer.Arguments) != len(DefaultRasterizerArguments) {
		t.Errorf("Arguments = %v, want defaults", ov.Rasterizer.Arguments)
	}
	if ov.Rasterizer.DPI != 90 {
		t.Errorf("DPI = %d, want 90", ov.Rasterizer.DPI)
	}
	if ov.Rasterizer.StrokeScale != 1 || ov.Rasterizer.Grayscale || ov.Rasterizer.JPEGQuality != 95 {
		t.Errorf("stroke/grayscale/quality = %v/%v/%d", ov.Rasterizer.StrokeScale, ov.Rasterizer.Grayscale, ov.Rasterizer.JPEGQuality)
	}
	if ov.Fragment.Extension != ".tex" {
		t.Errorf("Fragment extension = %q, want .tex", ov.Fragment.Extension)
	}
	if ov.Fragment.Template != DefaultFragmentTemplate {
		t.Error("Fragment template was not defaulted")
	}
	if cfg.Logging.ConsoleLogger.Level != LogLevelNormal {
		t.Errorf("console level = %v, want normal", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Level != LogLevelNone {
		t.Errorf("file level = %v, want none", cfg.Logging.FileLogger.Level)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
overlay:
  output_dir: out
  rasterize: false
  quiet: true
  strict_properties: true
  rasterizer:
    backend: builtin
    format: jpeg
    width: 800
    background: "#000"
    dpi: 90
  fragment:
    extension: .inc
    template: "{{ .Title }}"
logging:
  console:
    level: debug
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	ov := cfg.Overlay
	if ov.OutputDir != "out" {
		t.Errorf("OutputDir = %q, want out", ov.OutputDir)
	}
	if ov.Rasterize {
		t.Error("Expected Rasterize to be false")
	}
	if !ov.Cleanup {
		t.Error("Cleanup must keep default value when not mentioned in file")
	}
	if !ov.Quiet || !ov.StrictProperties {
		t.Error("Expected Quiet and StrictProperties to be true")
	}
	if ov.Rasterizer.Backend != RasterBackendBuiltin {
		t.Errorf("Backend = %v, want builtin", ov.Rasterizer.Backend)
	}
	if got := ov.Rasterizer.OutputExt(); got != ".jpeg" {
		t.Errorf("OutputExt() = %q, want .jpeg", got)
	}
	if ov.Rasterizer.Width != 800 {
		t.Errorf("Width = %d, want 800", ov.Rasterizer.Width)
	}
	if got := ov.Rasterizer.BackgroundColor(); got != (color.RGBA{A: 255}) {
		t.Errorf("BackgroundColor() = %v, want opaque black", got)
	}
	if ov.Fragment.Template != "{{ .Title }}" {
		t.Errorf("Fragment template = %q", ov.Fragment.Template)
	}
	if cfg.Logging.ConsoleLogger.Level != LogLevelDebug {
		t.Errorf("console level = %v, want debug", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `version: 1
overlay:
  rasterize: true
  invalid indent
`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	path := writeConfig(t, `version: 1
overlay:
  eps: true
`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("Expected error for unknown field")
	}
}

func TestLoadConfiguration_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad version", "version: 2\n"},
		{"bad backend", "version: 1\noverlay:\n  rasterizer:\n    backend: magick\n"},
		{"bad format", "version: 1\noverlay:\n  rasterizer:\n    format: webp\n"},
		{"bad dpi", "version: 1\noverlay:\n  rasterizer:\n    dpi: 0\n"},
		{"bad fragment extension", "version: 1\noverlay:\n  fragment:\n    extension: tex\n"},
		{"bad log level", "version: 1\nlogging:\n  console:\n    level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestRasterizerConfig_OutputExt(t *testing.T) {
	tests := []struct {
		conf RasterizerConfig
		want string
	}{
		{RasterizerConfig{Backend: RasterBackendExternal}, ".eps"},
		{RasterizerConfig{Backend: RasterBackendExternal, Extension: ".pdf"}, ".pdf"},
		{RasterizerConfig{Backend: RasterBackendBuiltin, Format: "png", Extension: ".eps"}, ".png"},
	}
	for _, tt := range tests {
		if got := tt.conf.OutputExt(); got != tt.want {
			t.Errorf("OutputExt(%+v) = %q, want %q", tt.conf, got, tt.want)
		}
	}
}

func TestRasterizerConfig_BackgroundColor(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"", white},
		{"#ffffff", white},
		{"#fff", white},
		{"#102030", color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}},
		{"#zzzzzz", white},
		{"#12345", white},
	}
	for _, tt := range tests {
		conf := RasterizerConfig{Background: tt.in}
		if got := conf.BackgroundColor(); got != tt.want {
			t.Errorf("BackgroundColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	out := string(data)
	for _, want := range []string{"backend: external", "level: normal", "extension: .tex", "strict_properties: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump does not contain %q:\n%s", want, out)
		}
	}

	// dumped configuration must be loadable again
	cfg2, err := LoadConfiguration(writeConfig(t, out))
	if err != nil {
		t.Fatalf("LoadConfiguration(dump) error = %v", err)
	}
	if cfg2.Overlay.Rasterizer.Command != cfg.Overlay.Rasterizer.Command {
		t.Errorf("Command = %q, want %q", cfg2.Overlay.Rasterizer.Command, cfg.Overlay.Rasterizer.Command)
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.Contains(string(data), "rasterizer:") {
		t.Errorf("default configuration lacks rasterizer section:\n%s", data)
	}
}

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"slide", "slide"},
		{".hidden", "hidden"},
		{"a" + string(os.PathSeparator) + "b", "ab"},
		{"...", "drawing"},
		{"", "drawing"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
