package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Error stages recorded by ErrorsTotal.
const (
	StageClassify = "classify"
	StageRemove   = "remove"
	StageHistory  = "history"
)

var (
	// RunDuration tracks how long a sweep takes from target to cascade end
	RunDuration prometheus.Histogram

	// DirectoriesDeletedTotal tracks the number of directories deleted
	DirectoriesDeletedTotal prometheus.Counter

	// EntriesRemovedTotal tracks disposable entries removed along with their directories
	EntriesRemovedTotal prometheus.Counter

	// ErrorsTotal tracks errors by stage (classify, remove, history)
	ErrorsTotal *prometheus.CounterVec

	// LastRunTimestamp tracks when the last sweep finished (Unix timestamp)
	LastRunTimestamp prometheus.Gauge

	// TargetDiskFreePercent tracks free space on the target's filesystem
	TargetDiskFreePercent prometheus.Gauge
)

// initSweepMetrics creates all sweep metrics
func initSweepMetrics() {
	RunDuration = NewDurationHistogram(
		"dirsweep_run_duration_seconds",
		"Duration of sweep runs in seconds",
	)

	DirectoriesDeletedTotal = NewCounter(
		"dirsweep_directories_deleted_total",
		"Total number of directories deleted",
	)

	EntriesRemovedTotal = NewCounter(
		"dirsweep_entries_removed_total",
		"Total number of entries removed together with their directories",
	)

	ErrorsTotal = NewCounterVec(
		"dirsweep_errors_total",
		"Total number of sweep errors by stage",
		[]string{"stage"},
	)

	LastRunTimestamp = NewGauge(
		"dirsweep_last_run_timestamp",
		"Unix timestamp of the last completed sweep",
	)

	TargetDiskFreePercent = NewGauge(
		"dirsweep_target_disk_free_percent",
		"Free disk space percentage on the target filesystem",
	)
}

// registerSweepMetrics registers all sweep metrics with the registry
func registerSweepMetrics() {
	registry.MustRegister(
		RunDuration,
		DirectoriesDeletedTotal,
		EntriesRemovedTotal,
		ErrorsTotal,
		LastRunTimestamp,
		TargetDiskFreePercent,
	)
}

// RecordRun records the outcome of a completed sweep
func RecordRun(duration time.Duration, deleted, entriesRemoved int) {
	RunDuration.Observe(duration.Seconds())
	DirectoriesDeletedTotal.Add(float64(deleted))
	EntriesRemovedTotal.Add(float64(entriesRemoved))
	LastRunTimestamp.Set(float64(time.Now().Unix()))
}

// RecordError increments the error counter for the given stage
func RecordError(stage string) {
	ErrorsTotal.WithLabelValues(stage).Inc()
}

// SetTargetDiskFree records the free space percentage of the target filesystem
func SetTargetDiskFree(percent float64) {
	TargetDiskFreePercent.Set(percent)
}
