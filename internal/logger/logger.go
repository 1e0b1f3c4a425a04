// Package logger sets up zerolog for clickwheel. The terminal belongs to the
// TUI, so records go to a rotated log file.
package logger

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dtg01100/clickwheel/internal/config"
	"github.com/dtg01100/clickwheel/pkg/utils"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Manager hands out per-package loggers that share one writer.
type Manager struct {
	root           zerolog.Logger
	level          zerolog.Level
	packageLoggers map[string]zerolog.Logger
	mu             sync.RWMutex
	closer         io.Closer
}

// NewManager creates a manager writing to the file named in cfg. An empty
// file name disables output.
func NewManager(cfg config.LogConfig) (*Manager, error) {
	level := parseLevel(cfg.Level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = io.Discard
	var closer io.Closer

	if cfg.File != "" {
		path := utils.ExpandHome(cfg.File)
		if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		w = lj
		closer = lj
	}

	return NewManagerWithWriter(w, level, closer), nil
}

// NewManagerWithWriter creates a manager writing JSON records to w.
func NewManagerWithWriter(w io.Writer, level zerolog.Level, closer io.Closer) *Manager {
	return &Manager{
		root:           zerolog.New(w).Level(level).With().Timestamp().Logger(),
		level:          level,
		packageLoggers: make(map[string]zerolog.Logger),
		closer:         closer,
	}
}

// GetLogger returns the logger for a package, tagged with a pkg field.
func (m *Manager) GetLogger(pkg string) zerolog.Logger {
	m.mu.RLock()
	if l, ok := m.packageLoggers[pkg]; ok {
		m.mu.RUnlock()
		return l
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.packageLoggers[pkg]; ok {
		return l
	}

	l := m.root.With().Str("pkg", pkg).Logger()
	m.packageLoggers[pkg] = l
	return l
}

// Level returns the configured level.
func (m *Manager) Level() zerolog.Level {
	return m.level
}

// Close closes the underlying log file, if any.
func (m *Manager) Close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer.Close()
}

// parseLevel converts a level name to a zerolog.Level. Unknown names map to info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "OFF", "DISABLED":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

var (
	globalMu      sync.RWMutex
	globalManager *Manager
)

// Initialize installs the global manager. Calling it again replaces the
// previous manager and closes it.
func Initialize(cfg config.LogConfig) error {
	m, err := NewManager(cfg)
	if err != nil {
		return err
	}
	SetManager(m)
	return nil
}

// SetManager installs m as the global manager.
func SetManager(m *Manager) {
	globalMu.Lock()
	prev := globalManager
	globalManager = m
	globalMu.Unlock()

	if prev != nil && prev != m {
		prev.Close()
	}
}

// GetLogger returns the logger for a package. Before Initialize it returns a
// logger that discards everything.
func GetLogger(pkg string) zerolog.Logger {
	globalMu.RLock()
	m := globalManager
	globalMu.RUnlock()

	if m == nil {
		return zerolog.Nop()
	}
	return m.GetLogger(pkg)
}

// CloseGlobal closes the global manager.
func CloseGlobal() error {
	globalMu.Lock()
	m := globalManager
	globalManager = nil
	globalMu.Unlock()

	if m == nil {
		return nil
	}
	return m.Close()
}
