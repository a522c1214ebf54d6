package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zephyrtronium/scicalc"
)

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scicalc.toml")
	content := `
angle_mode = "radians"
display = "fix"
digits = 3
history = false

[registers]
A = 5.0
M = -2.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mode() != scicalc.Radians {
		t.Errorf("Mode() = %v, want radians", cfg.Mode())
	}
	if got := cfg.DisplayFormat(); got != scicalc.Fix(3) {
		t.Errorf("DisplayFormat() = %v, want Fix 3", got)
	}
	if cfg.History {
		t.Error("History = true, want false")
	}
	if cfg.Precision != 64 {
		t.Errorf("Precision = %d, want default 64", cfg.Precision)
	}
	if cfg.Registers["A"] != 5 || cfg.Registers["M"] != -2.5 {
		t.Errorf("Registers = %v", cfg.Registers)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scicalc.yml")
	content := "angle_mode: gradians\ndisplay: eng\nprecision: 128\nregisters:\n  X: 1.5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mode() != scicalc.Gradians {
		t.Errorf("Mode() = %v, want gradians", cfg.Mode())
	}
	if cfg.DisplayFormat() != scicalc.Eng {
		t.Errorf("DisplayFormat() = %v, want Eng", cfg.DisplayFormat())
	}
	if cfg.Precision != 128 {
		t.Errorf("Precision = %d, want 128", cfg.Precision)
	}
	if !cfg.History {
		t.Error("History = false, want default true")
	}
	if cfg.Registers["X"] != 1.5 {
		t.Errorf("Registers = %v", cfg.Registers)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Load() of a missing file succeeded")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Load() error = %v, want not found", err)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  Format
	}{
		{"angle", `angle_mode = "turns"`, FormatTOML},
		{"display", `display = "hex"`, FormatTOML},
		{"digits", "display: fix\ndigits: 12\n", FormatYAML},
		{"precision", `precision = 0`, FormatTOML},
		{"register", "[registers]\nAns = 1\n", FormatTOML},
		{"syntax", `angle_mode = `, FormatTOML},
		{"yaml", "angle_mode: [\n", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if cfg, err := Parse([]byte(tt.content), tt.format); err == nil {
				t.Errorf("Parse() = %+v, want error", cfg)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Mode() != scicalc.Degrees {
		t.Errorf("Mode() = %v, want degrees", cfg.Mode())
	}
	if cfg.DisplayFormat() != (scicalc.DisplayFormat{}) {
		t.Errorf("DisplayFormat() = %v, want Norm", cfg.DisplayFormat())
	}
}

func TestContextOptions(t *testing.T) {
	cfg := Default()
	cfg.AngleMode = "rad"
	cfg.Registers = map[string]float64{"B": 2, "A": 1}
	ctx := scicalc.NewContext(cfg.ContextOptions()...)
	if ctx.AngleMode() != scicalc.Radians {
		t.Errorf("AngleMode() = %v, want radians", ctx.AngleMode())
	}
	if ctx.Prec() != 64 {
		t.Errorf("Prec() = %d, want 64", ctx.Prec())
	}
	r, err := ctx.Evaluate("10A+B")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if r != 12 {
		t.Errorf("10A+B = %v, want 12", r)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.toml", FormatTOML},
		{"a.yaml", FormatYAML},
		{"a.YML", FormatYAML},
		{"a", FormatTOML},
	}
	for _, tt := range tests {
		if got := detectFormat(tt.path); got != tt.want {
			t.Errorf("detectFormat(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
