package metrics

import (
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const textfileName = "dirsweep.prom"

var (
	initOnce sync.Once
	registry *prometheus.Registry
)

// Init initializes all metrics and registers them with the tool's registry
// This function is safe to call multiple times (uses sync.Once)
func Init() {
	initOnce.Do(func() {
		registry = prometheus.NewRegistry()

		initSweepMetrics()
		registerSweepMetrics()

		// Seed every series so a run that deletes nothing still exports
		// the complete metric set
		DirectoriesDeletedTotal.Add(0)
		EntriesRemovedTotal.Add(0)
		for _, stage := range []string{StageClassify, StageRemove, StageHistory} {
			ErrorsTotal.WithLabelValues(stage).Add(0)
		}
		LastRunTimestamp.Set(0)
	})
}

// Registry returns the tool's metric registry. Init must have been called.
func Registry() *prometheus.Registry {
	return registry
}

// WriteTextfile writes the gathered metrics into dir for the node_exporter
// textfile collector. The library writes through a temp file and rename, so
// the collector never sees a partial file.
func WriteTextfile(dir string) error {
	return prometheus.WriteToTextfile(filepath.Join(dir, textfileName), registry)
}
