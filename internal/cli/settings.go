package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/dtg01100/clickwheel/internal/menu"
	"github.com/dtg01100/clickwheel/internal/models"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect the settings menu",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings and the settings menu",
	Long: `Show the current device and service settings followed by the entries
of the settings menu as the player would list them.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var copyOutput bool

// copyToClipboard is injectable for testing purposes.
var copyToClipboard = clipboard.WriteAll

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsShowCmd.Flags().BoolVarP(&copyOutput, "copy", "c", false, "also copy the output to the clipboard")
}

// settingsReport is the JSON form of settings show.
type settingsReport struct {
	Settings models.Snapshot `json:"settings"`
	Menu     []menu.Entry    `json:"menu"`
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}

	snap := store.Snapshot()
	entries := menu.Describe(menu.Build(snap, menu.Effects{}))

	var buf bytes.Buffer
	if outputJSON {
		err = printJSON(&buf, settingsReport{Settings: snap, Menu: entries})
	} else {
		err = writeSettings(&buf, snap, entries)
	}
	if err != nil {
		return err
	}

	if _, err := buf.WriteTo(cmd.OutOrStdout()); err != nil {
		return err
	}

	if copyOutput {
		if err := copyToClipboard(buf.String()); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard.")
	}
	return nil
}

func writeSettings(out io.Writer, snap models.Snapshot, entries []menu.Entry) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Theme:\t%s\n", snap.DeviceTheme.DisplayName())
	fmt.Fprintf(w, "Side:\t%s\n", snap.DeviceSide)
	fmt.Fprintf(w, "Service:\t%s\n", snap.Service.DisplayName())
	fmt.Fprintf(w, "Signed in:\t%s\n", signedInSummary(snap))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Menu:")
	writeEntries(out, entries, "  ")
	return nil
}

// signedInSummary lists the authorized services, or "none".
func signedInSummary(snap models.Snapshot) string {
	names := lo.FilterMap(models.Services, func(s models.Service, _ int) (string, bool) {
		return s.DisplayName(), snap.Authorized(s)
	})
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func writeEntries(w io.Writer, entries []menu.Entry, indent string) {
	for _, e := range entries {
		marker := ""
		switch e.Kind {
		case menu.KindView:
			marker = " ›"
		case menu.KindActionSheet:
			marker = " …"
		}
		fmt.Fprintf(w, "%s%s%s\n", indent, e.Label, marker)
		writeEntries(w, e.Actions, indent+"    ")
	}
}
