// Package cli implements the xm command: it runs the bundled showcase
// suites through the harness, honoring filter, color, history, and tracing
// configuration from flags, environment, and the config file.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zyndor/xm/internal/config"
	"github.com/zyndor/xm/internal/filter"
	"github.com/zyndor/xm/internal/history"
	"github.com/zyndor/xm/internal/log"
	"github.com/zyndor/xm/internal/registry"
	"github.com/zyndor/xm/internal/report"
	"github.com/zyndor/xm/internal/run"
	"github.com/zyndor/xm/internal/tracing"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config

	// The exit status of a completed run is its failed-test count; cobra
	// only surfaces errors, so the count travels through this variable.
	failedCount int
)

var rootCmd = &cobra.Command{
	Use:   "xm",
	Short: "A minimal unit-testing harness",
	Long: `xm runs its registered tests sequentially, narrowed by a wildcard
filter, and reports one status line per event. The bundled showcase suites
demonstrate plain, fixture, and combinatorial registration.

The process exit status is the number of failed tests.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTests,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .xm/config.yaml, then ~/.config/xm/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false,
		"enable debug logging")
	rootCmd.Flags().StringP("filter", "f", "",
		"test filter: include1[:include2...][-exclude1[:exclude2...]], '*' wildcards")
	rootCmd.Flags().Bool("no-color", false,
		"disable colored output")
	rootCmd.Flags().Bool("history", false,
		"record this run to the history database")
	rootCmd.Flags().Bool("save-filter", false,
		"persist the given --filter to the config file as the new default")

	_ = viper.BindPFlag("filter", rootCmd.Flags().Lookup("filter"))
	_ = viper.BindPFlag("no_color", rootCmd.Flags().Lookup("no-color"))
	_ = viper.BindPFlag("history.enabled", rootCmd.Flags().Lookup("history"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("filter", defaults.Filter)
	viper.SetDefault("no_color", defaults.NoColor)
	viper.SetDefault("debug", defaults.Debug)
	viper.SetDefault("debug_log", defaults.DebugLog)
	viper.SetDefault("history.enabled", defaults.History.Enabled)
	viper.SetDefault("history.path", defaults.History.Path)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .xm/config.yaml (current directory)
		// 2. ~/.config/xm/config.yaml (user config)
		if _, err := os.Stat(".xm/config.yaml"); err == nil {
			viper.SetConfigFile(".xm/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "xm"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .xm/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".xm/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)

	if cfg.Debug || os.Getenv("XM_DEBUG") == "1" {
		if _, err := log.Init(cfg.DebugLog); err == nil {
			log.SetEnabled(true)
		}
	}
}

func runTests(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if save, _ := cmd.Flags().GetBool("save-filter"); save {
		path := viper.ConfigFileUsed()
		if path == "" {
			path = ".xm/config.yaml"
		}
		if err := config.SaveFilter(path, cfg.Filter); err != nil {
			return fmt.Errorf("saving filter: %w", err)
		}
	}

	printer := report.NewPrinter(cmd.OutOrStdout())
	if cfg.NoColor {
		printer = report.NewPlainPrinter(cmd.OutOrStdout())
	}

	var opts []run.Option

	if cfg.History.Enabled {
		db, err := history.Open(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer db.Close()
		opts = append(opts, run.WithRecorder(history.NewRecorder(db, cfg.Filter)))
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()
	if provider.Enabled() {
		opts = append(opts, run.WithTracer(provider.Tracer()))
	}

	runner := run.New(registry.Default(), filter.Parse(cfg.Filter), printer, opts...)
	failedCount = runner.Run()
	return nil
}

// Execute runs the root command and returns the process exit status: the
// failed-test count, or 1 on a command error.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return failedCount
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
