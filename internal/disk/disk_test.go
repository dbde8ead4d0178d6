package disk

import "testing"

func TestGetDiskUsage(t *testing.T) {
	used, free, total, err := GetDiskUsage(t.TempDir())
	if err != nil {
		t.Fatalf("GetDiskUsage() error = %v", err)
	}
	if used < 0 || used > 100 {
		t.Errorf("usedPercent = %f, want 0..100", used)
	}
	if free < 0 || total <= 0 {
		t.Errorf("free = %d, total = %d, want free >= 0 and total > 0", free, total)
	}
	if free > total {
		t.Errorf("free %d exceeds total %d", free, total)
	}
}

func TestGetDiskUsageMissingPath(t *testing.T) {
	if _, _, _, err := GetDiskUsage("/nonexistent/dirsweep/test/path"); err == nil {
		t.Error("GetDiskUsage(missing) error = nil, want error")
	}
}

func TestGetFreePercent(t *testing.T) {
	free, err := GetFreePercent(t.TempDir())
	if err != nil {
		t.Fatalf("GetFreePercent() error = %v", err)
	}
	if free < 0 || free > 100 {
		t.Errorf("GetFreePercent() = %f, want 0..100", free)
	}
}
