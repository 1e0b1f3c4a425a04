package cli

import (
	"fmt"

	"github.com/dtg01100/clickwheel/internal/models"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage the device theme",
}

var themeSetCmd = &cobra.Command{
	Use:       "set <silver|black|u2>",
	Short:     "Set the device theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: lo.Map(models.Themes, func(t models.DeviceTheme, _ int) string { return string(t) }),
	RunE:      runThemeSet,
}

var sideCmd = &cobra.Command{
	Use:   "side",
	Short: "Manage which side of the device is shown",
}

var sideSetCmd = &cobra.Command{
	Use:       "set <front|back>",
	Short:     "Show the front or the back case of the device",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(models.SideFront), string(models.SideBack)},
	RunE:      runSideSet,
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeSetCmd)
	rootCmd.AddCommand(sideCmd)
	sideCmd.AddCommand(sideSetCmd)
}

func runThemeSet(cmd *cobra.Command, args []string) error {
	theme, err := models.ParseDeviceTheme(args[0])
	if err != nil {
		return err
	}

	cfg, store, err := openStore()
	if err != nil {
		return err
	}

	store.SetDeviceTheme(theme)
	if err := commit(cfg, store); err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd.OutOrStdout(), store.Snapshot())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Device theme set to %s.\n", theme.DisplayName())
	return nil
}

func runSideSet(cmd *cobra.Command, args []string) error {
	side, err := models.ParseDeviceSide(args[0])
	if err != nil {
		return err
	}

	cfg, store, err := openStore()
	if err != nil {
		return err
	}

	store.SetDeviceSide(side)
	if err := commit(cfg, store); err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd.OutOrStdout(), store.Snapshot())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Device side set to %s.\n", side)
	return nil
}
