package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dirsweep/internal/config"
)

// New creates the run logger. Progress goes to stderr when verbose is set;
// stdout stays reserved for the deletion report. When the config names a log
// file it is appended as well, after age-based rotation. With neither
// destination the logger discards everything.
func New(cfg *config.Config, verbose bool) (*log.Logger, error) {
	var writers []io.Writer
	if verbose {
		writers = append(writers, os.Stderr)
	}

	if cfg != nil && cfg.Logging.File != "" {
		filePath := cfg.Logging.File
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}

		rotateLogsIfNeeded(filePath, cfg.Logging.RotationDays)

		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
	}

	if len(writers) == 0 {
		return log.New(io.Discard, "", 0), nil
	}
	return log.New(io.MultiWriter(writers...), "", log.LstdFlags|log.Lmicroseconds), nil
}

// rotateLogsIfNeeded rotates log files older than the specified days
func rotateLogsIfNeeded(logPath string, rotationDays int) {
	info, err := os.Stat(logPath)
	if err != nil {
		// Log file doesn't exist yet, nothing to rotate
		return
	}

	cutoffTime := time.Now().AddDate(0, 0, -rotationDays)
	if info.ModTime().Before(cutoffTime) {
		// Rotate: rename current log with timestamp
		timestamp := info.ModTime().Format("20060102-150405")
		rotatedPath := logPath + "." + timestamp

		if err := os.Rename(logPath, rotatedPath); err != nil {
			log.Printf("failed to rotate log file: %v", err)
			return
		}

		cleanupOldLogs(logPath, rotationDays)
	}
}

// cleanupOldLogs removes rotated log files older than rotation days
func cleanupOldLogs(logPath string, rotationDays int) {
	logDir := filepath.Dir(logPath)
	baseName := filepath.Base(logPath)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	cutoffTime := time.Now().AddDate(0, 0, -rotationDays)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, baseName+".") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoffTime) {
			fullPath := filepath.Join(logDir, name)
			if err := os.Remove(fullPath); err != nil {
				log.Printf("failed to remove old log file %s: %v", fullPath, err)
			}
		}
	}
}
