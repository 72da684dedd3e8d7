package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	apperrors "github.com/dshills/jqrt/pkg/errors"
	"github.com/dshills/jqrt/pkg/version"
)

const (
	configVersion   = "1.0"
	defaultDatabase = "runs.db"
)

// Config holds the global configuration for the jqrt CLI
type Config struct {
	ConfigDir string
	Debug     bool

	// File is config.yaml, loaded by initConfig.
	File FileConfig
}

// FileConfig is the content of <config dir>/config.yaml.
type FileConfig struct {
	Version string `yaml:"version"`

	// Database is the run-history SQLite file, relative to the config dir
	// unless absolute.
	Database string `yaml:"database,omitempty"`

	// Catalogs are run by `conform` in addition to the installed catalogs
	// when no files are given.
	Catalogs []string `yaml:"catalogs,omitempty"`
}

// GlobalConfig is the shared configuration instance
var GlobalConfig = &Config{}

// NewRootCommand creates the root cobra command for jqrt
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jqrt",
		Short: "jqrt - jq runtime failures and builtin conformance",
		Long: `jqrt evaluates jq core builtins on JSON arguments and reports the runtime
failure each misuse produces, rendered exactly as jq prints it. Conformance
catalogs pin those outputs and messages; runs can be recorded and reviewed.`,
		Version:       version.Banner(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return fmt.Errorf("%w: failed to initialize configuration: %v", ErrUsage, err)
			}

			if GlobalConfig.Debug {
				log.SetOutput(os.Stderr)
				log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			} else {
				log.SetOutput(io.Discard)
			}

			return nil
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	// Persistent flags (available to all subcommands)
	cmd.PersistentFlags().BoolVar(&GlobalConfig.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&GlobalConfig.ConfigDir, "config-dir", "", "Configuration directory (default: ~/.jqrt)")

	cmd.AddCommand(NewApplyCommand())
	cmd.AddCommand(NewBuiltinsCommand())
	cmd.AddCommand(NewConformCommand())
	cmd.AddCommand(NewCatalogCommand())
	cmd.AddCommand(NewRunsCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// initConfig creates the configuration directory and loads config.yaml,
// writing the default file on first use.
func initConfig() error {
	// Environment variable always takes priority
	if envDir := os.Getenv("JQRT_CONFIG_DIR"); envDir != "" {
		GlobalConfig.ConfigDir = envDir
	} else if GlobalConfig.ConfigDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		GlobalConfig.ConfigDir = filepath.Join(homeDir, ".jqrt")
	}

	if err := os.MkdirAll(GlobalConfig.ConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(GlobalConfig.ConfigDir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		defaultConfig := FileConfig{
			Version:  configVersion,
			Database: defaultDatabase,
		}
		data, err := yaml.Marshal(defaultConfig)
		if err != nil {
			return fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err := os.WriteFile(configFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write default config: %w", err)
		}
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	var file FileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse %s: %w", configFile, err)
	}
	GlobalConfig.File = file

	return nil
}

// GetConfigDir returns the configuration directory path
// Priority order: 1) JQRT_CONFIG_DIR env var, 2) GlobalConfig.ConfigDir, 3) ~/.jqrt
func GetConfigDir() string {
	if envDir := os.Getenv("JQRT_CONFIG_DIR"); envDir != "" {
		return envDir
	}
	if GlobalConfig.ConfigDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory if home dir cannot be determined
			return ".jqrt"
		}
		return filepath.Join(homeDir, ".jqrt")
	}
	return GlobalConfig.ConfigDir
}

// GetDatabasePath returns the run-history database path.
func GetDatabasePath() string {
	return resolvePath(GlobalConfig.File.Database, defaultDatabase)
}

// GetDefaultCatalogs returns the catalog files listed in config.yaml.
func GetDefaultCatalogs() []string {
	paths := make([]string, 0, len(GlobalConfig.File.Catalogs))
	for _, p := range GlobalConfig.File.Catalogs {
		paths = append(paths, resolvePath(p, ""))
	}
	return paths
}

func resolvePath(p, fallback string) string {
	if p == "" {
		p = fallback
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GetConfigDir(), p)
}

// Main runs the CLI with args and returns the process exit code. Errors are
// printed to stderr as "jqrt: error: <message>"; a filter failure prints its
// rendered message.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	_, _ = fmt.Fprintf(stderr, "jqrt: error: %s\n", apperrors.Message(err))
	return ExitCode(err)
}
