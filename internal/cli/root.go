package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dtg01100/clickwheel/internal/config"
	"github.com/dtg01100/clickwheel/internal/logger"
	"github.com/dtg01100/clickwheel/internal/settings"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	outputJSON  bool
	showVersion bool
	cliVersion  = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "clickwheel",
	Short: "Configure the clickwheel player from the command line",
	Long: `clickwheel is a click-wheel music player for the terminal. Run it without
arguments to open the player; use the commands below to change the device
theme, the back case view and the streaming service sign-in from scripts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintln(cmd.OutOrStdout(), cliVersion)
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $XDG_CONFIG_HOME/clickwheel)")
	rootCmd.PersistentFlags().BoolVarP(&outputJSON, "json", "j", false, "output in JSON format")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print version and exit")
}

func Execute() error {
	defer logger.CloseGlobal()
	return rootCmd.Execute()
}

func SetVersion(v string) {
	cliVersion = v
}

// loadConfig returns the application configuration, using the --config flag
// if provided. This function is injectable for testing purposes.
var loadConfig = func() (*config.Config, error) {
	if cfgFile != "" {
		if err := os.Setenv("XDG_CONFIG_HOME", cfgFile); err != nil {
			return nil, fmt.Errorf("failed to set config directory: %w", err)
		}
	}
	return config.Load()
}

// initLogging starts file logging from the log section of the config. A
// config that fails to load is reported by the command itself.
func initLogging() error {
	cfg, err := loadConfig()
	if err != nil {
		return nil
	}
	if err := logger.Initialize(cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}

// openStore loads the configuration and seeds a settings store from it. The
// store does not persist by itself; commands call commit so that write
// errors reach the user.
func openStore() (*config.Config, *settings.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, settings.NewStore(cfg.State(), nil), nil
}

// commit saves the store state into the configuration file.
func commit(cfg *config.Config, store *settings.Store) error {
	if err := cfg.Persist(store.State()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
