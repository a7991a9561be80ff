// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mwiater/snrplot/internal/plot"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultDataPath is where the metrics dataset is read from when unset.
	DefaultDataPath = "data/metrics_data.json"
	// defaultReportPath is the destination of the standalone HTML report.
	defaultReportPath = "reports/snrplot.html"
	// defaultExportDir receives PNG exports.
	defaultExportDir = "reports/png"
	// defaultAddr is the listen address of the HTTP viewer.
	defaultAddr = ":8080"
	// defaultShutdownTimeout bounds graceful server shutdown.
	defaultShutdownTimeout = 5 * time.Second
)

// Config represents the top-level application configuration.
type Config struct {
	DataPath        string       `json:"dataPath" mapstructure:"dataPath"`
	LogFile         string       `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug           bool         `json:"debug" mapstructure:"debug"`
	Width           float64      `json:"width,omitempty" mapstructure:"width"`
	Height          float64      `json:"height,omitempty" mapstructure:"height"`
	Margin          *plot.Margin `json:"margin,omitempty" mapstructure:"margin"`
	BinTicks        int          `json:"binTicks,omitempty" mapstructure:"binTicks"`
	SNRPadding      plot.Padding `json:"snrPadding,omitempty" mapstructure:"snrPadding"`
	SSIMPadding     plot.Padding `json:"ssimPadding,omitempty" mapstructure:"ssimPadding"`
	ReportPath      string       `json:"report,omitempty" mapstructure:"report"`
	ExportDir       string       `json:"exportDir,omitempty" mapstructure:"exportDir"`
	Addr            string       `json:"addr,omitempty" mapstructure:"addr"`
	Sync            bool         `json:"sync" mapstructure:"sync"`
	ShutdownTimeout int          `json:"shutdownTimeout,omitempty" mapstructure:"shutdownTimeout"`
	ConfigPath      string       `json:"-" mapstructure:"-"`
}

// DataFilePath returns the dataset path, applying a default if not set.
func (c Config) DataFilePath() string {
	if path := strings.TrimSpace(c.DataPath); path != "" {
		return path
	}
	return DefaultDataPath
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "snrplot.log"
}

// ReportFilePath returns the HTML report destination.
func (c Config) ReportFilePath() string {
	if path := strings.TrimSpace(c.ReportPath); path != "" {
		return path
	}
	return defaultReportPath
}

// ExportDirectory returns where PNG exports are written.
func (c Config) ExportDirectory() string {
	if dir := strings.TrimSpace(c.ExportDir); dir != "" {
		return dir
	}
	return defaultExportDir
}

// ListenAddr returns the HTTP viewer address.
func (c Config) ListenAddr() string {
	if addr := strings.TrimSpace(c.Addr); addr != "" {
		return addr
	}
	return defaultAddr
}

// ShutdownTimeoutDuration returns how long the viewer waits for in-flight requests on shutdown.
func (c Config) ShutdownTimeoutDuration() time.Duration {
	if c.ShutdownTimeout <= 0 {
		return defaultShutdownTimeout
	}
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// Layout returns the drawing surface dimensions with defaults for unset values.
func (c Config) Layout() plot.Layout {
	layout := plot.DefaultLayout()
	if c.Width > 0 {
		layout.Width = c.Width
	}
	if c.Height > 0 {
		layout.Height = c.Height
	}
	if c.Margin != nil {
		layout.Margin = *c.Margin
	}
	return layout
}

// PlotOptions returns scale padding and binning options; zero values fall back to defaults.
func (c Config) PlotOptions() plot.Options {
	opts := plot.DefaultOptions()
	if c.SNRPadding.Lower > 0 && c.SNRPadding.Upper > 0 {
		opts.SNRPadding = c.SNRPadding
	}
	if c.SSIMPadding.Lower > 0 && c.SSIMPadding.Upper > 0 {
		opts.SSIMPadding = c.SSIMPadding
	}
	if c.BinTicks > 0 {
		opts.BinTicks = c.BinTicks
	}
	return opts
}

// Load reads and validates the application configuration at path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q: %w", path, err)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	if err := Validate(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config file %q: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(raw, &config); err != nil {
		return Config{}, fmt.Errorf("could not parse config file %q: %w", path, err)
	}
	config.ConfigPath = path
	return config, nil
}
