package sweep

import (
	"errors"
	"io"
	"log"
	"path/filepath"
	"time"

	"dirsweep/internal/cleanup"
	"dirsweep/internal/config"
	"dirsweep/internal/database"
	"dirsweep/internal/disk"
	"dirsweep/internal/fsops"
	"dirsweep/internal/metrics"
	"dirsweep/internal/pace"
)

// Run executes one sweep starting at target: classify the target, delete it
// if it qualifies, then cascade upward through the parents. The report is
// returned for presentation; history and metrics recording failures are
// logged, never fatal.
func Run(cfg *config.Config, target string, logger *log.Logger, db *database.History) (*cleanup.Report, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if cfg == nil {
		return nil, errors.New("nil config")
	}

	metrics.Init()

	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}

	start := time.Now()

	fs := pace.Filesystem(fsops.OSFilesystem{}, pace.New(cfg.DeleteDelay()))
	cleaner := cleanup.NewCleaner(fs, logger, db)

	report, err := cleaner.Run(target)
	if err != nil {
		metrics.RecordError(metrics.StageClassify)
		return nil, err
	}

	elapsed := time.Since(start)

	outcome := "clean"
	switch {
	case report.Halt != nil:
		outcome = "halted:" + report.Halt.Op
		metrics.RecordError(report.Halt.Op)
	case report.Reason != nil:
		outcome = "blocked:" + report.Reason.Label()
	}

	metrics.RecordRun(elapsed, report.Count(), report.EntriesRemoved)
	recordDiskFree(target, logger)

	if db != nil {
		run := database.RunRecord{
			StartedAt:      start,
			Target:         target,
			Deleted:        report.Count(),
			EntriesRemoved: report.EntriesRemoved,
			Outcome:        outcome,
			DurationMS:     elapsed.Milliseconds(),
		}
		if err := db.RecordRun(run); err != nil {
			logger.Printf("failed to record run: %v", err)
			metrics.RecordError(metrics.StageHistory)
		}
	}

	if cfg.Metrics.TextfileDir != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.TextfileDir); err != nil {
			logger.Printf("failed to write metrics textfile: %v", err)
		}
	}

	logger.Printf("sweep complete: target=%s deleted=%d entries_removed=%d outcome=%s duration=%.3fs",
		target, report.Count(), report.EntriesRemoved, outcome, elapsed.Seconds())
	return report, nil
}

// recordDiskFree samples free space for the target's filesystem. After a
// successful cascade the target itself is gone, so walk up to the nearest
// surviving ancestor.
func recordDiskFree(target string, logger *log.Logger) {
	path := target
	for {
		percent, err := disk.GetFreePercent(path)
		if err == nil {
			metrics.SetTargetDiskFree(percent)
			return
		}
		parent := filepath.Dir(path)
		if parent == path {
			logger.Printf("disk usage unavailable for %s: %v", target, err)
			return
		}
		path = parent
	}
}
