// Package logging provides config-driven categorized logging for jsonview.
// All categories share one zap core writing JSON lines to a single file.
// Logging is controlled by logging.debug_mode in the config file; when it is
// false every logger is a no-op and no file is created.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"jsonview/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config and logging setup
	CategoryViewer Category = "viewer" // Document loading and widget updates
	CategoryWatch  Category = "watch"  // File watching and reloads
	CategoryUI     Category = "ui"     // Terminal program events
	CategoryConfig Category = "config" // Configuration problems
)

// Logger is a category-scoped printf-style logger.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	mu      sync.RWMutex
	cfg     config.LoggingConfig
	base    = zap.NewNop()
	path    string
	loggers = make(map[Category]*Logger)
)

// DefaultFile returns the log file used when logging.file is empty.
func DefaultFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "jsonview", "jsonview.log")
}

// Initialize replaces the active logging setup. verbose forces debug mode at
// debug level regardless of the configuration.
func Initialize(c config.LoggingConfig, verbose bool) error {
	if verbose {
		c.DebugMode = true
		c.Level = "debug"
	}

	next := zap.NewNop()
	file := ""
	if c.DebugMode {
		file = c.File
		if file == "" {
			file = DefaultFile()
		}
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		zc := zap.NewProductionConfig()
		zc.Sampling = nil
		zc.OutputPaths = []string{file}
		zc.ErrorOutputPaths = []string{file}
		if c.Level != "" {
			lvl, err := zap.ParseAtomicLevel(c.Level)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", c.Level, err)
			}
			zc.Level = lvl
		}
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		next = l
	}

	mu.Lock()
	_ = base.Sync()
	base = next
	cfg = c
	path = file
	loggers = make(map[Category]*Logger)
	mu.Unlock()

	if c.DebugMode {
		Boot("=== jsonview logging initialized ===")
		Boot("Log file: %s", file)
		Boot("Log level: %s", c.Level)
		if len(c.Categories) == 0 {
			Boot("All categories enabled (no category filter)")
		}
	}
	return nil
}

// Path returns the active log file, or "" when logging is disabled.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return path
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.IsCategoryEnabled(string(category))
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category, sugar: zap.NewNop().Sugar()}
	}

	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}
	l := &Logger{
		category: category,
		sugar:    base.With(zap.String("cat", string(category))).Sugar(),
	}
	loggers[category] = l
	return l
}

// Zap exposes the underlying structured logger.
func (l *Logger) Zap() *zap.Logger {
	return l.sugar.Desugar()
}

// With returns a logger carrying additional key/value context.
func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

func (l *Logger) Debug(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *Logger) Error(format string, args ...any) { l.sugar.Errorf(format, args...) }

// Sync flushes buffered entries (call at shutdown).
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return base.Sync()
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// These are no-ops if the category is disabled
// =============================================================================

func Boot(format string, args ...any)      { Get(CategoryBoot).Info(format, args...) }
func BootDebug(format string, args ...any) { Get(CategoryBoot).Debug(format, args...) }
func BootError(format string, args ...any) { Get(CategoryBoot).Error(format, args...) }

func Viewer(format string, args ...any)      { Get(CategoryViewer).Info(format, args...) }
func ViewerDebug(format string, args ...any) { Get(CategoryViewer).Debug(format, args...) }

func Watch(format string, args ...any)      { Get(CategoryWatch).Info(format, args...) }
func WatchDebug(format string, args ...any) { Get(CategoryWatch).Debug(format, args...) }
func WatchWarn(format string, args ...any)  { Get(CategoryWatch).Warn(format, args...) }

func UI(format string, args ...any)      { Get(CategoryUI).Info(format, args...) }
func UIDebug(format string, args ...any) { Get(CategoryUI).Debug(format, args...) }

func ConfigWarn(format string, args ...any) { Get(CategoryConfig).Warn(format, args...) }

// =============================================================================
// TIMING HELPERS
// =============================================================================

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
