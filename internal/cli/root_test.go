package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtg01100/clickwheel/internal/config"
	apperrors "github.com/dtg01100/clickwheel/internal/errors"
	"github.com/dtg01100/clickwheel/internal/menu"
	"github.com/dtg01100/clickwheel/internal/models"
	"github.com/spf13/cobra"
)

func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	outputJSON = false
	showVersion = false
	cfgFile = ""
	copyOutput = false

	bufOut := &bytes.Buffer{}
	bufErr := &bytes.Buffer{}
	cmd.SetOut(bufOut)
	cmd.SetErr(bufErr)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return bufOut.String(), bufErr.String(), err
}

// useTempConfig points the config layer at an empty temp directory.
func useTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func mustLoad(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	return cfg
}

func TestVersionFlag(t *testing.T) {
	useTempConfig(t)
	SetVersion("1.2.3")
	defer SetVersion("dev")
	out, _, err := runCmd(t, rootCmd, "--version")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "1.2.3\n" {
		t.Fatalf("expected version output, got %q", out)
	}
}

func TestRootWithoutFlagsPrintsHelp(t *testing.T) {
	useTempConfig(t)
	SetVersion("1.2.3")
	defer SetVersion("dev")

	out, _, err := runCmd(t, rootCmd)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.Contains(out, "1.2.3") || !strings.Contains(out, "Available Commands") {
		t.Errorf("expected help output, got %q", out)
	}
}

func TestUnknownFlag(t *testing.T) {
	_, errOut, err := runCmd(t, rootCmd, "--no-such-flag")
	if err == nil {
		t.Fatalf("expected error for unknown flag")
	}
	if errOut == "" {
		t.Fatalf("expected error message on stderr")
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, map[string]string{"key": "value"}); err != nil {
		t.Fatalf("printJSON failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"key": "value"`) {
		t.Errorf("unexpected JSON output %q", buf.String())
	}
}

func TestSettingsShow(t *testing.T) {
	useTempConfig(t)

	out, _, err := runCmd(t, rootCmd, "settings", "show")
	if err != nil {
		t.Fatalf("settings show failed: %v", err)
	}

	for _, want := range []string{
		"Theme:",
		"Silver",
		"Signed in:  none",
		"About ›",
		"Device theme …",
		"Silver (Current)",
		"Hide back case (Current)",
		"Sign in …",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Choose service") {
		t.Error("signed-out menu must not offer Choose service")
	}
}

func TestSettingsShowJSON(t *testing.T) {
	useTempConfig(t)

	if _, _, err := runCmd(t, rootCmd, "signin", "spotify"); err != nil {
		t.Fatalf("signin failed: %v", err)
	}

	out, _, err := runCmd(t, rootCmd, "settings", "show", "--json")
	if err != nil {
		t.Fatalf("settings show --json failed: %v", err)
	}

	var report settingsReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if !report.Settings.IsSpotifyAuthorized || report.Settings.Service != models.ServiceSpotify {
		t.Errorf("unexpected settings %+v", report.Settings)
	}

	labels := make([]string, len(report.Menu))
	for i, e := range report.Menu {
		labels[i] = e.Label
	}
	want := "About,Choose service,Device theme,View back case,Sign out"
	if got := strings.Join(labels, ","); got != want {
		t.Errorf("menu = %q, want %q", got, want)
	}
	if report.Menu[1].Kind != menu.KindActionSheet || report.Menu[1].Actions[1].Label != "Spotify (Current)" {
		t.Errorf("unexpected Choose service entry %+v", report.Menu[1])
	}
}

func TestSettingsShowCopy(t *testing.T) {
	useTempConfig(t)
	old := copyToClipboard
	defer func() { copyToClipboard = old }()

	var copied string
	copyToClipboard = func(text string) error {
		copied = text
		return nil
	}

	out, errOut, err := runCmd(t, rootCmd, "settings", "show", "--copy")
	if err != nil {
		t.Fatalf("settings show --copy failed: %v", err)
	}
	if copied != out {
		t.Errorf("clipboard = %q, want the printed output %q", copied, out)
	}
	if !strings.Contains(errOut, "Copied") {
		t.Errorf("expected confirmation on stderr, got %q", errOut)
	}

	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	if _, _, err := runCmd(t, rootCmd, "settings", "show", "-c"); err == nil {
		t.Error("expected clipboard failure to be reported")
	}
}

func TestThemeSet(t *testing.T) {
	useTempConfig(t)

	out, _, err := runCmd(t, rootCmd, "theme", "set", "u2")
	if err != nil {
		t.Fatalf("theme set failed: %v", err)
	}
	if !strings.Contains(out, "U2 Edition") {
		t.Errorf("unexpected output %q", out)
	}
	if got := mustLoad(t).Device.Theme; got != "u2" {
		t.Errorf("saved theme = %q, want u2", got)
	}

	_, _, err = runCmd(t, rootCmd, "theme", "set", "gold")
	if !errors.Is(err, apperrors.ErrUnknownTheme) {
		t.Errorf("expected unknown theme error, got %v", err)
	}
	if got := mustLoad(t).Device.Theme; got != "u2" {
		t.Errorf("failed command changed the theme to %q", got)
	}
}

func TestSideSet(t *testing.T) {
	useTempConfig(t)

	if _, _, err := runCmd(t, rootCmd, "side", "set", "back"); err != nil {
		t.Fatalf("side set failed: %v", err)
	}
	if got := mustLoad(t).Device.Side; got != "back" {
		t.Errorf("saved side = %q, want back", got)
	}

	_, _, err := runCmd(t, rootCmd, "side", "set", "top")
	if !errors.Is(err, apperrors.ErrUnknownSide) {
		t.Errorf("expected unknown side error, got %v", err)
	}
}

func TestSignInOutFlow(t *testing.T) {
	useTempConfig(t)

	if _, _, err := runCmd(t, rootCmd, "signin", "apple"); err != nil {
		t.Fatalf("signin apple failed: %v", err)
	}
	cfg := mustLoad(t)
	if !cfg.Auth.Apple.Authorized || cfg.Auth.Apple.SessionID == "" {
		t.Errorf("apple session not saved: %+v", cfg.Auth.Apple)
	}
	if cfg.Service.Selected != "apple" {
		t.Errorf("selected = %q, want apple", cfg.Service.Selected)
	}

	if _, _, err := runCmd(t, rootCmd, "signin", "spotify"); err != nil {
		t.Fatalf("signin spotify failed: %v", err)
	}
	if got := mustLoad(t).Service.Selected; got != "spotify" {
		t.Errorf("selected = %q, want spotify", got)
	}

	if _, _, err := runCmd(t, rootCmd, "service", "use", "apple"); err != nil {
		t.Fatalf("service use apple failed: %v", err)
	}
	if got := mustLoad(t).Service.Selected; got != "apple" {
		t.Errorf("selected = %q, want apple", got)
	}

	out, _, err := runCmd(t, rootCmd, "signout", "apple")
	if err != nil {
		t.Fatalf("signout apple failed: %v", err)
	}
	if !strings.Contains(out, "Current service: Spotify") {
		t.Errorf("signout should fall back to Spotify, got %q", out)
	}

	cfg = mustLoad(t)
	if cfg.Auth.Apple.Authorized || cfg.Auth.Apple.SessionID != "" {
		t.Errorf("apple session should be cleared: %+v", cfg.Auth.Apple)
	}

	_, _, err = runCmd(t, rootCmd, "service", "use", "apple")
	if !errors.Is(err, apperrors.ErrNotAuthorized) {
		t.Errorf("expected not authorized error, got %v", err)
	}
}

func TestSignInUnknownService(t *testing.T) {
	useTempConfig(t)

	_, _, err := runCmd(t, rootCmd, "signin", "tidal")
	if !errors.Is(err, apperrors.ErrUnknownService) {
		t.Errorf("expected unknown service error, got %v", err)
	}
}

func TestConfigFlag(t *testing.T) {
	useTempConfig(t)
	other := t.TempDir()

	if _, _, err := runCmd(t, rootCmd, "--config", other, "theme", "set", "black"); err != nil {
		t.Fatalf("theme set with --config failed: %v", err)
	}
	if got := mustLoad(t).Device.Theme; got != "black" {
		t.Errorf("theme in --config dir = %q, want black", got)
	}
	if !strings.HasPrefix(filepath.Clean(mustDir(t)), filepath.Clean(other)) {
		t.Errorf("config dir %q should be under %q", mustDir(t), other)
	}
}

func mustDir(t *testing.T) string {
	t.Helper()
	dir, err := config.Dir()
	if err != nil {
		t.Fatalf("config.Dir() error = %v", err)
	}
	return dir
}
