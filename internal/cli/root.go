// internal/cli/root.go
package snrplot

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mwiater/snrplot/internal/appconfig"
	"github.com/mwiater/snrplot/internal/dataset"
	"github.com/mwiater/snrplot/internal/logging"
	"github.com/mwiater/snrplot/internal/plot"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config

	// loadRecords is swapped in tests.
	loadRecords = dataset.Load
)

var rootCmd = &cobra.Command{
	Use:          "snrplot",
	Short:        "snrplot: SNR vs SSIM scatter and histogram explorer",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load .env, config file and environment (or defaults)
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// 2) Keep the debug flag in step with the merged value.
		if !cmd.Flags().Changed("debug") {
			_ = cmd.Flags().Set("debug", strconv.FormatBool(viper.GetBool("debug")))
		}

		// 3) Materialize the merged configuration
		//    (flags > env > config > defaults).
		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		currentConfig = &cfg

		// The terminal browser owns the screen, so it logs to the file only.
		console := cmd.Name() != "browse"
		if err := logging.InitWithConsole(cfg.LogFilePath(), console); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Close()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersionInfo is called from main with values injected at build time.
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().String("data", "", "path to the metrics dataset (JSON array)")
	rootCmd.PersistentFlags().String("logFile", "", "log file path")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("dataPath", rootCmd.PersistentFlags().Lookup("data"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads .env, the environment and the config file, and
// sets safe defaults. A missing config file is not an error.
func ensureConfigLoaded() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	viper.SetEnvPrefix("SNRPLOT")
	viper.AutomaticEnv()

	viper.SetDefault("debug", false)
	viper.SetDefault("dataPath", appconfig.DefaultDataPath)
	viper.SetDefault("logFile", "")
	viper.SetDefault("report", "")
	viper.SetDefault("exportDir", "")
	viper.SetDefault("addr", "")
	viper.SetDefault("sync", false)
	viper.SetDefault("shutdownTimeout", 0)
	viper.SetDefault("binTicks", 0)

	if cfgFile != "" {
		// Schema check before viper merges the file.
		if _, err := appconfig.Load(cfgFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No file: fine, we'll use defaults/flags
			return nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// getConfig returns the merged configuration for subcommands.
func getConfig() *appconfig.Config {
	if currentConfig == nil {
		return &appconfig.Config{}
	}
	return currentConfig
}

// loadRenderer reads the dataset and builds the renderer from the merged config.
func loadRenderer(cfg *appconfig.Config) (*plot.Renderer, error) {
	path := cfg.DataFilePath()
	records, err := loadRecords(path)
	if err != nil {
		return nil, err
	}
	logging.LogEvent("[DATA] loaded %d records from %s", len(records), path)
	return plot.NewRenderer(records, cfg.Layout(), cfg.PlotOptions()), nil
}

// DebugEnabled reflects the merged debug setting.
func DebugEnabled() bool { return viper.GetBool("debug") }
