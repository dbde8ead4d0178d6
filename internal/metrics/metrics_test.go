package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestMetricsInit verifies that Init() is idempotent and registers metrics
func TestMetricsInit(t *testing.T) {
	// Call Init multiple times - should be idempotent via sync.Once
	Init()
	Init()
	Init()

	// Verify metrics are non-nil (successfully created)
	if RunDuration == nil {
		t.Error("RunDuration should be initialized")
	}
	if DirectoriesDeletedTotal == nil {
		t.Error("DirectoriesDeletedTotal should be initialized")
	}
	if EntriesRemovedTotal == nil {
		t.Error("EntriesRemovedTotal should be initialized")
	}
	if ErrorsTotal == nil {
		t.Error("ErrorsTotal should be initialized")
	}
	if LastRunTimestamp == nil {
		t.Error("LastRunTimestamp should be initialized")
	}
	if TargetDiskFreePercent == nil {
		t.Error("TargetDiskFreePercent should be initialized")
	}

	// Test metrics are registered by gathering from the registry
	mfs, err := Registry().Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	// Check for expected metric names
	expectedMetrics := []string{
		"dirsweep_run_duration_seconds",
		"dirsweep_directories_deleted_total",
		"dirsweep_entries_removed_total",
		"dirsweep_errors_total",
		"dirsweep_last_run_timestamp",
		"dirsweep_target_disk_free_percent",
	}

	foundMetrics := make(map[string]bool)
	for _, mf := range mfs {
		foundMetrics[*mf.Name] = true
	}

	for _, expected := range expectedMetrics {
		if !foundMetrics[expected] {
			t.Errorf("Expected metric %s not found in registry", expected)
		}
	}
}

// TestErrorStagesSeeded verifies every error stage exports a series before
// any error is recorded
func TestErrorStagesSeeded(t *testing.T) {
	Init()

	mfs, err := Registry().Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	stages := make(map[string]bool)
	for _, mf := range mfs {
		if *mf.Name != "dirsweep_errors_total" {
			continue
		}
		for _, m := range mf.Metric {
			for _, lp := range m.Label {
				if *lp.Name == "stage" {
					stages[*lp.Value] = true
				}
			}
		}
	}

	for _, stage := range []string{StageClassify, StageRemove, StageHistory} {
		if !stages[stage] {
			t.Errorf("Expected stage %q series in dirsweep_errors_total", stage)
		}
	}
}

// TestHelperFunctions verifies that helper functions create valid metrics
func TestHelperFunctions(t *testing.T) {
	t.Run("NewDurationHistogram", func(t *testing.T) {
		h := NewDurationHistogram("test_duration", "Test duration metric")
		if h == nil {
			t.Error("NewDurationHistogram returned nil")
		}
	})

	t.Run("NewCounter", func(t *testing.T) {
		c := NewCounter("test_counter", "Test counter metric")
		if c == nil {
			t.Error("NewCounter returned nil")
		}
	})

	t.Run("NewCounterVec", func(t *testing.T) {
		cv := NewCounterVec("test_counter_vec", "Test counter vec metric", []string{"label"})
		if cv == nil {
			t.Error("NewCounterVec returned nil")
		}
	})

	t.Run("NewGauge", func(t *testing.T) {
		g := NewGauge("test_gauge", "Test gauge metric")
		if g == nil {
			t.Error("NewGauge returned nil")
		}
	})
}

// TestStandardBuckets verifies that standard bucket definitions are correct
func TestStandardBuckets(t *testing.T) {
	expected := []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300}
	if len(DurationBuckets) != len(expected) {
		t.Errorf("Expected %d duration buckets, got %d", len(expected), len(DurationBuckets))
	}
	for i, v := range expected {
		if DurationBuckets[i] != v {
			t.Errorf("Duration bucket[%d]: expected %v, got %v", i, v, DurationBuckets[i])
		}
	}
}

// TestRecordHelpers tests the sweep metric record helpers
func TestRecordHelpers(t *testing.T) {
	Init() // Ensure metrics are initialized

	t.Run("RecordRun", func(t *testing.T) {
		// Should not panic
		RecordRun(150*time.Millisecond, 3, 2)
		RecordRun(0, 0, 0)
	})

	t.Run("RecordError", func(t *testing.T) {
		// Should not panic
		RecordError(StageClassify)
		RecordError(StageRemove)
		RecordError(StageHistory)
	})

	t.Run("SetTargetDiskFree", func(t *testing.T) {
		// Should not panic
		SetTargetDiskFree(85.5)
		SetTargetDiskFree(42.3)
	})
}

// TestWriteTextfile verifies the textfile export produces a readable file
// containing the sweep metrics
func TestWriteTextfile(t *testing.T) {
	Init()
	RecordRun(time.Second, 1, 0)

	dir := t.TempDir()
	if err := WriteTextfile(dir); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "dirsweep.prom"))
	if err != nil {
		t.Fatalf("Failed to read exported file: %v", err)
	}

	content := string(data)
	for _, name := range []string{
		"dirsweep_run_duration_seconds",
		"dirsweep_directories_deleted_total",
		"dirsweep_entries_removed_total",
		"dirsweep_errors_total",
		"dirsweep_last_run_timestamp",
		"dirsweep_target_disk_free_percent",
	} {
		if !strings.Contains(content, name) {
			t.Errorf("Exported file missing metric %s", name)
		}
	}
}

// TestWriteTextfileMissingDir verifies export into a nonexistent directory fails
func TestWriteTextfileMissingDir(t *testing.T) {
	Init()

	missing := filepath.Join(t.TempDir(), "no", "such", "dir")
	if err := WriteTextfile(missing); err == nil {
		t.Error("Expected error writing into missing directory, got nil")
	}
}
