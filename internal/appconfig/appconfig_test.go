package appconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/snrplot/internal/plot"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	if cfg.DataFilePath() != DefaultDataPath {
		t.Fatalf("unexpected data path %q", cfg.DataFilePath())
	}
	if cfg.LogFilePath() != "snrplot.log" {
		t.Fatalf("unexpected log path %q", cfg.LogFilePath())
	}
	if cfg.ListenAddr() != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.ListenAddr())
	}
	if cfg.ShutdownTimeoutDuration() != 5*time.Second {
		t.Fatalf("unexpected shutdown timeout %v", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Layout() != plot.DefaultLayout() {
		t.Fatalf("unexpected layout %+v", cfg.Layout())
	}
	if cfg.PlotOptions() != plot.DefaultOptions() {
		t.Fatalf("unexpected options %+v", cfg.PlotOptions())
	}
}

func TestConfigOverrides(t *testing.T) {
	cfg := Config{
		Width:       1000,
		Margin:      &plot.Margin{Top: 10, Right: 20, Bottom: 30, Left: 40},
		BinTicks:    10,
		SNRPadding:  plot.Padding{Lower: 0.9, Upper: 1.1},
		SSIMPadding: plot.Padding{Lower: 0, Upper: 2},
	}
	layout := cfg.Layout()
	if layout.Width != 1000 || layout.Height != 400 || layout.Margin.Left != 40 {
		t.Fatalf("unexpected layout %+v", layout)
	}
	opts := cfg.PlotOptions()
	if opts.BinTicks != 10 || opts.SNRPadding.Lower != 0.9 {
		t.Fatalf("unexpected options %+v", opts)
	}
	if opts.SSIMPadding != plot.DefaultOptions().SSIMPadding {
		t.Fatalf("expected incomplete ssim padding to fall back, got %+v", opts.SSIMPadding)
	}
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `{"dataPath":"d.json","addr":":9000","binTicks":12,"snrPadding":{"lower":0.9,"upper":1.1}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.DataPath != "d.json" || cfg.ListenAddr() != ":9000" || cfg.BinTicks != 12 || cfg.ConfigPath != path {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	path := writeConfig(t, `{"dataPath": 3, "unknown": true}`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestValidatePadding(t *testing.T) {
	if err := Validate([]byte(`{"ssimPadding":{"lower":0.99}}`)); err == nil {
		t.Fatalf("expected missing upper to fail validation")
	}
	if err := Validate([]byte(`{"sync":true,"margin":{"top":1}}`)); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestShippedConfigIsValid(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", DefaultConfigPath))
	if err != nil {
		t.Fatalf("shipped config should load: %v", err)
	}
	if cfg.DataFilePath() != DefaultDataPath || cfg.PlotOptions().BinTicks != 15 {
		t.Fatalf("unexpected shipped config: %+v", cfg)
	}
}
