// Package main is the entry point for the clickwheel TUI application.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtg01100/clickwheel/internal/cli"
	"github.com/dtg01100/clickwheel/internal/config"
	apperrors "github.com/dtg01100/clickwheel/internal/errors"
	"github.com/dtg01100/clickwheel/internal/logger"
	"github.com/dtg01100/clickwheel/internal/tui"
)

var version = "dev"

type Config struct {
	ShowVersion bool
	SkipChecks  bool
	ConfigDir   string
}

// PreflightChecker verifies the saved configuration before the TUI starts.
type PreflightChecker interface {
	Check() error
}

type configChecker struct {
	load func() (*config.Config, error)
}

func (c *configChecker) Check() error {
	cfg, err := c.load()
	if err != nil {
		return err
	}
	return cfg.Validate()
}

type TUIRunner interface {
	Run() error
}

type defaultTUIRunner struct{}

func (d *defaultTUIRunner) Run() error {
	return tui.Run()
}

func parseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("clickwheel", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Print version and exit")
	skipChecks := fs.Bool("skip-checks", false, "Skip config validation")
	configDir := fs.String("config", "", "Custom config directory (overrides XDG_CONFIG_HOME)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &Config{
		ShowVersion: *showVersion,
		SkipChecks:  *skipChecks,
		ConfigDir:   *configDir,
	}, nil
}

func printVersion(w io.Writer, v string) {
	fmt.Fprintln(w, v)
}

func handleConfigDir(configDir string) error {
	if configDir == "" {
		return nil
	}

	resolvedDir := configDir
	if fi, err := os.Stat(configDir); err == nil && !fi.IsDir() {
		resolvedDir = filepath.Dir(configDir)
	}

	return os.Setenv("XDG_CONFIG_HOME", resolvedDir)
}

func runPreflightChecksTo(w io.Writer, checker PreflightChecker) error {
	err := checker.Check()
	if err == nil {
		return nil
	}

	fmt.Fprintln(w, apperrors.FormatErrorForTUI(err))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run `clickwheel config restore` to go back to the last saved config,")
	fmt.Fprintln(w, "or start with --skip-checks to use the defaults for invalid values.")
	return fmt.Errorf("config check failed: %w", err)
}

// initLogging starts file logging. A config that does not load leaves the
// no-op logger in place.
func initLogging() error {
	cfg, err := config.Load()
	if err != nil {
		return nil
	}
	return logger.Initialize(cfg.Log)
}

type AppDeps struct {
	Stdout       io.Writer
	Stderr       io.Writer
	NewChecker   func() PreflightChecker
	NewTUIRunner func() TUIRunner
	ParseFlags   func(args []string) (*Config, error)
	InitLogging  func() error
}

func DefaultAppDeps(stdout, stderr io.Writer) *AppDeps {
	return &AppDeps{
		Stdout: stdout,
		Stderr: stderr,
		NewChecker: func() PreflightChecker {
			return &configChecker{load: config.Load}
		},
		NewTUIRunner: func() TUIRunner {
			return &defaultTUIRunner{}
		},
		ParseFlags:  parseFlags,
		InitLogging: initLogging,
	}
}

func runMainWithDeps(args []string, deps *AppDeps) int {
	cfg, err := deps.ParseFlags(args)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Error parsing flags: %v\n", err)
		return 2
	}

	if cfg.ShowVersion {
		printVersion(deps.Stdout, version)
		return 0
	}

	if err := handleConfigDir(cfg.ConfigDir); err != nil {
		fmt.Fprintf(deps.Stderr, "Error handling config directory: %v\n", err)
		return 1
	}

	if !cfg.SkipChecks {
		if err := runPreflightChecksTo(deps.Stdout, deps.NewChecker()); err != nil {
			return 1
		}
	}

	if deps.InitLogging != nil {
		if err := deps.InitLogging(); err != nil {
			fmt.Fprintf(deps.Stderr, "Warning: logging disabled: %v\n", err)
		}
		defer logger.CloseGlobal()
	}

	tui.Version = version

	runner := deps.NewTUIRunner()
	if err := runner.Run(); err != nil {
		fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func runMain(args []string, stdout, stderr io.Writer) int {
	return runMainWithDeps(args, DefaultAppDeps(stdout, stderr))
}

var cliCommands = map[string]bool{
	"settings":   true,
	"theme":      true,
	"side":       true,
	"signin":     true,
	"signout":    true,
	"service":    true,
	"config":     true,
	"help":       true,
	"completion": true,
}

// isCLIInvocation reports whether args belong to the command-line interface
// rather than the TUI. The TUI keeps its own --config and --skip-checks flags.
func isCLIInvocation(args []string) bool {
	if len(args) == 0 {
		return false
	}
	first := args[0]
	if cliCommands[first] {
		return true
	}
	if !strings.HasPrefix(first, "-") {
		return false
	}
	name := strings.SplitN(strings.TrimLeft(first, "-"), "=", 2)[0]
	switch name {
	case "config", "skip-checks":
		for _, arg := range args {
			if cliCommands[arg] {
				return true
			}
		}
		return false
	}
	return true
}

func main() {
	args := os.Args[1:]

	for _, arg := range args {
		if arg == "--version" || arg == "-v" {
			printVersion(os.Stdout, version)
			os.Exit(0)
		}
	}

	if isCLIInvocation(args) {
		cli.SetVersion(version)
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}

	os.Exit(runMain(args, os.Stdout, os.Stderr))
}
