package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dtg01100/clickwheel/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Export, import and restore the configuration",
}

var configExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export device and service settings",
	Long: `Export device and service settings to a .json, .yaml or .yml file.
Sign-in sessions are never exported.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigExport,
}

var configImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import device and service settings",
	Long: `Import device and service settings from a file written by export.
The file is validated before anything is changed.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigImport,
}

var configRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the configuration from its last backup",
	Args:  cobra.NoArgs,
	RunE:  runConfigRestore,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration directory",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

// restoreConfig and configDir are injectable for testing purposes.
var (
	restoreConfig = config.RestoreFromBackup
	configDir     = config.Dir
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configExportCmd)
	configCmd.AddCommand(configImportCmd)
	configCmd.AddCommand(configRestoreCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid export path: %w", err)
	}
	if err := cfg.ExportConfig(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Settings exported to %s.\n", path)
	return nil
}

func runConfigImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := cfg.ImportConfig(args[0]); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save imported settings: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Settings imported from %s.\n", args[0])
	return nil
}

func runConfigRestore(cmd *cobra.Command, args []string) error {
	// loadConfig applies --config; a config that fails to load is expected here.
	if _, err := loadConfig(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: current config does not load: %v\n", err)
	}

	if err := restoreConfig(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Configuration restored from backup.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	dir, err := configDir()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(dir, "config.yaml"))
	return nil
}
