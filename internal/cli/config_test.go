package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/errors"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/grin"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/row"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestConfigPathEnvOverride(t *testing.T) {
	t.Setenv(configEnv, "/tmp/elsewhere/grinner.toml")

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}
	if path != "/tmp/elsewhere/grinner.toml" {
		t.Errorf("configPath() = %q, want env override", path)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv(configEnv, filepath.Join(t.TempDir(), "config.toml"))

	cfg, path, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if path == "" {
		t.Error("loadConfig() returned empty path")
	}
	if cfg.Defaults.Sag != nil || cfg.Defaults.EndFlat != nil || cfg.Defaults.Profile != "" {
		t.Errorf("missing file should yield zero config, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[defaults]
sag = 12.5
end_flat = 2
profile = "bezier"
asymmetric = true

[output]
guide_layer = "Dwgs.User"
no_backup = true
`)
	t.Setenv(configEnv, path)

	cfg, _, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Defaults.Sag == nil || *cfg.Defaults.Sag != 12.5 {
		t.Errorf("Sag = %v, want 12.5", cfg.Defaults.Sag)
	}
	if cfg.Defaults.EndFlat == nil || *cfg.Defaults.EndFlat != 2 {
		t.Errorf("EndFlat = %v, want 2", cfg.Defaults.EndFlat)
	}
	if cfg.Defaults.Profile != row.ProfileBezier {
		t.Errorf("Profile = %q, want bezier", cfg.Defaults.Profile)
	}
	if cfg.Defaults.Asymmetric == nil || !*cfg.Defaults.Asymmetric {
		t.Errorf("Asymmetric = %v, want true", cfg.Defaults.Asymmetric)
	}
	if cfg.Output.GuideLayer != "Dwgs.User" {
		t.Errorf("GuideLayer = %q, want Dwgs.User", cfg.Output.GuideLayer)
	}
	if !cfg.Output.NoBackup {
		t.Error("NoBackup = false, want true")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "[defaults\nsag = ")
	t.Setenv(configEnv, path)

	_, _, err := loadConfig()
	if !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("loadConfig() error = %v, want CONFIG_ERROR", err)
	}
}

func TestEffectiveLayout(t *testing.T) {
	layout := effectiveLayout(fileConfig{})
	if layout.SagMM != grin.DefaultSagMM || layout.EndFlat != grin.DefaultEndFlat || layout.Profile != row.ProfileCosine {
		t.Errorf("zero config layout = %+v, want built-ins", layout)
	}

	// An explicit zero sag is a deliberate choice, not an unset value.
	sag := 0.0
	layout = effectiveLayout(fileConfig{Defaults: layoutDefaults{Sag: &sag, Profile: "quadratic"}})
	if layout.SagMM != 0 {
		t.Errorf("SagMM = %v, want explicit 0", layout.SagMM)
	}
	if layout.Profile != row.ProfileQuadratic {
		t.Errorf("Profile = %q, want quadratic", layout.Profile)
	}
	if layout.EndFlat != grin.DefaultEndFlat {
		t.Errorf("EndFlat = %d, want default", layout.EndFlat)
	}
}

func TestApplyConfigLayoutPrecedence(t *testing.T) {
	sag := 12.5
	endFlat := 0
	cfg := fileConfig{Defaults: layoutDefaults{Sag: &sag, EndFlat: &endFlat, Profile: "bezier"}}

	layout := builtinLayout()
	cmd := &cobra.Command{}
	addLayoutFlags(cmd, &layout)
	if err := cmd.Flags().Set("sag", "7"); err != nil {
		t.Fatalf("setting flag: %v", err)
	}

	applyConfigLayout(cmd, cfg, &layout)

	if layout.SagMM != 7 {
		t.Errorf("SagMM = %v, explicit flag should beat config", layout.SagMM)
	}
	if layout.EndFlat != 0 {
		t.Errorf("EndFlat = %d, config should beat built-in", layout.EndFlat)
	}
	if layout.Profile != row.ProfileBezier {
		t.Errorf("Profile = %q, config should beat built-in", layout.Profile)
	}
}

func TestApplyConfigOutput(t *testing.T) {
	cfg := fileConfig{Output: outputDefaults{GuideLayer: "Dwgs.User", NoBackup: true}}

	opts := grin.Options{}
	cmd := &cobra.Command{}
	addOutputFlags(cmd, &opts)

	applyConfigOutput(cmd, cfg, &opts)
	if opts.Guides.Layer != "Dwgs.User" {
		t.Errorf("Guides.Layer = %q, config should beat built-in", opts.Guides.Layer)
	}
	if !opts.NoBackup {
		t.Error("NoBackup = false, config should beat built-in")
	}

	opts = grin.Options{}
	cmd = &cobra.Command{}
	addOutputFlags(cmd, &opts)
	if err := cmd.Flags().Set("guide-layer", "User.1"); err != nil {
		t.Fatalf("setting flag: %v", err)
	}
	applyConfigOutput(cmd, cfg, &opts)
	if opts.Guides.Layer != "User.1" {
		t.Errorf("Guides.Layer = %q, explicit flag should beat config", opts.Guides.Layer)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv(configEnv, path)

	c := New(io.Discard, LogInfo)
	cmd := c.configInitCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	cfg, _, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() after init: %v", err)
	}
	layout := effectiveLayout(cfg)
	if layout.SagMM != grin.DefaultSagMM || layout.EndFlat != grin.DefaultEndFlat || layout.Profile != row.ProfileCosine {
		t.Errorf("initialized layout = %+v, want built-ins", layout)
	}
	if cfg.Output.GuideLayer != grin.DefaultGuideLayer {
		t.Errorf("GuideLayer = %q, want %q", cfg.Output.GuideLayer, grin.DefaultGuideLayer)
	}

	// A second init must refuse to clobber the file.
	cmd = c.configInitCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("second init error = %v, want CONFIG_ERROR", err)
	}

	cmd = c.configInitCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--force"})
	if err := cmd.Execute(); err != nil {
		t.Errorf("forced init: %v", err)
	}
}

func TestConfigPathCommand(t *testing.T) {
	t.Setenv(configEnv, "/tmp/grinner-test.toml")

	c := New(io.Discard, LogInfo)
	cmd := c.configPathCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out.String()) != "/tmp/grinner-test.toml" {
		t.Errorf("config path output = %q", out.String())
	}
}
