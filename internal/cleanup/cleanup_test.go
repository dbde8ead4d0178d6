package cleanup

import (
	"errors"
	"reflect"
	"testing"

	"dirsweep/internal/fsops"
)

func TestRunUpwardCascade(t *testing.T) {
	fake := fsops.NewFakeFilesystem()
	fake.AddDir("/data/foo/bar/baz")
	fake.AddFile("/data/keep.txt")

	report, err := NewCleaner(fake, nil, nil).Run("/data/foo/bar/baz")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"/data/foo/bar/baz", "/data/foo/bar", "/data/foo"}
	if !reflect.DeepEqual(report.Deleted, want) {
		t.Errorf("Deleted = %v, want %v", report.Deleted, want)
	}
	if report.Count() != 3 {
		t.Errorf("Count() = %d, want 3", report.Count())
	}
	if report.Reason != nil {
		t.Errorf("Reason = %v, want nil", report.Reason)
	}
	if report.Halt != nil {
		t.Errorf("Halt = %v, want nil", report.Halt)
	}
	if !fake.Exists("/data") {
		t.Error("cascade deleted an ancestor with other content")
	}

	// every directory was empty when removed, so no recursive calls
	wantCalls := []string{"rm:/data/foo/bar/baz", "rm:/data/foo/bar", "rm:/data/foo"}
	if !reflect.DeepEqual(fake.Calls, wantCalls) {
		t.Errorf("Calls = %v, want %v", fake.Calls, wantCalls)
	}
}

func TestRunDisposableContentRemovedRecursively(t *testing.T) {
	fake := fsops.NewFakeFilesystem()
	fake.AddFile("/data/shots/.DS_Store")
	fake.AddFile("/data/keep.txt")

	report, err := NewCleaner(fake, nil, nil).Run("/data/shots")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if want := []string{"/data/shots"}; !reflect.DeepEqual(report.Deleted, want) {
		t.Errorf("Deleted = %v, want %v", report.Deleted, want)
	}
	if report.EntriesRemoved != 1 {
		t.Errorf("EntriesRemoved = %d, want 1", report.EntriesRemoved)
	}
	// the .DS_Store inside means the directory is not empty at remove time
	if want := []string{"rmall:/data/shots"}; !reflect.DeepEqual(fake.Calls, want) {
		t.Errorf("Calls = %v, want %v", fake.Calls, want)
	}
}

func TestRunKeepsBlockedTarget(t *testing.T) {
	fake := fsops.NewFakeFilesystem()
	fake.AddFile("/data/proj/makeup-tips.html")
	fake.AddFile("/data/proj/paste_images.py")
	fake.AddFile("/data/proj/Screenshot 2025-01-05.png")

	report, err := NewCleaner(fake, nil, nil).Run("/data/proj")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(report.Deleted) != 0 {
		t.Errorf("Deleted = %v, want none", report.Deleted)
	}
	if report.Reason == nil || report.Reason.NotEmpty == nil {
		t.Fatalf("Reason = %+v, want NotEmpty", report.Reason)
	}
	wantEntries := []string{"Screenshot 2025-01-05.png", "makeup-tips.html", "paste_images.py"}
	if !reflect.DeepEqual(report.Reason.NotEmpty.Entries, wantEntries) {
		t.Errorf("Reason entries = %v, want %v", report.Reason.NotEmpty.Entries, wantEntries)
	}
	if len(fake.Calls) != 0 {
		t.Errorf("Calls = %v, want none", fake.Calls)
	}
}

func TestRunAncestorReasonNotSurfaced(t *testing.T) {
	fake := fsops.NewFakeFilesystem()
	fake.AddDir("/data/proj/empty")
	fake.AddFile("/data/proj/keep.txt")

	report, err := NewCleaner(fake, nil, nil).Run("/data/proj/empty")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if want := []string{"/data/proj/empty"}; !reflect.DeepEqual(report.Deleted, want) {
		t.Errorf("Deleted = %v, want %v", report.Deleted, want)
	}
	// only the initial target's verdict is reported
	if report.Reason != nil {
		t.Errorf("Reason = %v, want nil", report.Reason)
	}
}

func TestRunProtectedTarget(t *testing.T) {
	fake := fsops.NewFakeFilesystem()
	fake.AddDir("/repo/.git/refs")

	tests := []struct {
		name string
		path string
	}{
		{"git itself", "/repo/.git"},
		{"inside git", "/repo/.git/refs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := NewCleaner(fake, nil, nil).Run(tt.path)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if len(report.Deleted) != 0 {
				t.Errorf("Deleted = %v, want none", report.Deleted)
			}
			if report.Reason == nil || report.Reason.Protected == nil {
				t.Errorf("Reason = %+v, want Protected", report.Reason)
			}
			if len(fake.Calls) != 0 {
				t.Errorf("Calls = %v, want none", fake.Calls)
			}
		})
	}
}

func TestRunInitialTargetUnreadable(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		fake := fsops.NewFakeFilesystem()
		fake.AddDir("/data")

		if _, err := NewCleaner(fake, nil, nil).Run("/data/gone"); err == nil {
			t.Error("Run(missing) error = nil, want error")
		}
	})

	t.Run("unlistable", func(t *testing.T) {
		boom := errors.New("permission denied")
		fake := fsops.NewFakeFilesystem()
		fake.AddDir("/data/locked")
		fake.FailList["/data/locked"] = boom

		if _, err := NewCleaner(fake, nil, nil).Run("/data/locked"); !errors.Is(err, boom) {
			t.Errorf("Run() error = %v, want wrapped injected error", err)
		}
	})
}

func TestRunRemoveFailureHaltsCascade(t *testing.T) {
	boom := errors.New("device busy")

	fake := fsops.NewFakeFilesystem()
	fake.AddDir("/data/a/b")
	fake.AddFile("/data/keep.txt")
	fake.FailRemove["/data/a"] = boom

	report, err := NewCleaner(fake, nil, nil).Run("/data/a/b")
	if err != nil {
		t.Fatalf("Run() error = %v, halt must not fail the run", err)
	}

	// b went, then a's removal failed and the cascade stopped
	if want := []string{"/data/a/b"}; !reflect.DeepEqual(report.Deleted, want) {
		t.Errorf("Deleted = %v, want %v", report.Deleted, want)
	}
	if report.Halt == nil {
		t.Fatal("Halt = nil, want remove failure")
	}
	if report.Halt.Path != "/data/a" || report.Halt.Op != "remove" {
		t.Errorf("Halt = %+v, want remove of /data/a", report.Halt)
	}
	if !errors.Is(report.Halt, boom) {
		t.Errorf("Halt does not wrap the removal error: %v", report.Halt)
	}
}

func TestRunClassifyFailureMidCascade(t *testing.T) {
	boom := errors.New("stale handle")

	fake := fsops.NewFakeFilesystem()
	fake.AddDir("/data/a/b")
	fake.FailList["/data/a"] = boom

	report, err := NewCleaner(fake, nil, nil).Run("/data/a/b")
	if err != nil {
		t.Fatalf("Run() error = %v, mid-cascade failures land on the report", err)
	}
	if want := []string{"/data/a/b"}; !reflect.DeepEqual(report.Deleted, want) {
		t.Errorf("Deleted = %v, want %v", report.Deleted, want)
	}
	if report.Halt == nil || report.Halt.Op != "classify" || report.Halt.Path != "/data/a" {
		t.Errorf("Halt = %+v, want classify failure at /data/a", report.Halt)
	}
}

func TestRunStopsAtRoot(t *testing.T) {
	fake := fsops.NewFakeFilesystem()
	fake.AddDir("/only")

	report, err := NewCleaner(fake, nil, nil).Run("/only")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// the cascade climbs to "/" and must terminate there
	if want := []string{"/only", "/"}; !reflect.DeepEqual(report.Deleted, want) {
		t.Errorf("Deleted = %v, want %v", report.Deleted, want)
	}
}

func TestRunNothingLeftOnSecondPass(t *testing.T) {
	fake := fsops.NewFakeFilesystem()
	fake.AddDir("/data/a/b/c")
	fake.AddFile("/data/keep.txt")

	cleaner := NewCleaner(fake, nil, nil)

	first, err := cleaner.Run("/data/a/b/c")
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if first.Count() != 3 {
		t.Fatalf("first Count() = %d, want 3", first.Count())
	}

	// the surviving ancestor has nothing deletable left
	second, err := cleaner.Run("/data")
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if second.Count() != 0 {
		t.Errorf("second Count() = %d, want 0", second.Count())
	}
	if second.Reason == nil || second.Reason.NotEmpty == nil {
		t.Errorf("second Reason = %+v, want NotEmpty", second.Reason)
	}
}

func TestHaltErrorMessage(t *testing.T) {
	halt := &HaltError{Path: "/data/a", Op: "remove", Err: errors.New("device busy")}
	if got, want := halt.Error(), "remove /data/a: device busy"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
