package cleanup

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	"dirsweep/internal/classify"
	"dirsweep/internal/database"
	"dirsweep/internal/fsops"
)

// Report is the outcome of one cascade: every deleted directory in order,
// deepest first, as absolute paths.
type Report struct {
	Deleted []string

	// Reason is set only when the initial target itself was kept; verdicts
	// on ancestors are not surfaced.
	Reason *classify.Reason

	// Halt is set when an I/O failure stopped the cascade partway. Earlier
	// deletions are committed and stay in Deleted.
	Halt *HaltError

	// EntriesRemoved counts the immediate listing entries that went down
	// with the deleted directories.
	EntriesRemoved int
}

// Count returns the number of deleted directories.
func (r *Report) Count() int {
	return len(r.Deleted)
}

// HaltError records the single I/O failure that stopped a cascade.
type HaltError struct {
	Path string
	Op   string // "classify" or "remove"
	Err  error
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *HaltError) Unwrap() error {
	return e.Err
}

// Cleaner walks the deletion cascade: remove the target if it classifies as
// deletable, then reconsider its parent, and keep climbing until an ancestor
// is kept, the filesystem root is passed, or an I/O failure stops the run.
type Cleaner struct {
	fs         fsops.Filesystem
	classifier *classify.Classifier
	logger     *log.Logger
	db         *database.History // optional deletion history, nil to skip
}

// NewCleaner creates a Cleaner over the given filesystem. logger may be nil;
// db may be nil to skip history recording.
func NewCleaner(fs fsops.Filesystem, logger *log.Logger, db *database.History) *Cleaner {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Cleaner{
		fs:         fs,
		classifier: classify.New(fs),
		logger:     logger,
		db:         db,
	}
}

// Run cascades from start, which may be relative; reported paths are always
// absolute. The returned error is non-nil only when the initial target
// itself cannot be classified (missing, unreadable, not a directory). Later
// failures land in Report.Halt: completed deletions are discrete committed
// steps and are never rolled back or retried.
func (c *Cleaner) Run(start string) (*Report, error) {
	current, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", start, err)
	}

	report := &Report{}
	first := true

	for {
		decision, err := c.classifier.Classify(current)
		if err != nil {
			if first {
				return nil, err
			}
			report.Halt = &HaltError{Path: current, Op: "classify", Err: err}
			return report, nil
		}

		if !decision.CanDelete {
			if first {
				reason := decision.Reason
				report.Reason = &reason
			}
			return report, nil
		}

		if err := c.remove(current, decision); err != nil {
			report.Halt = &HaltError{Path: current, Op: "remove", Err: err}
			return report, nil
		}
		report.Deleted = append(report.Deleted, current)
		report.EntriesRemoved += decision.Entries
		c.record(current, decision)

		parent, ok := c.fs.Parent(current)
		if !ok {
			return report, nil
		}
		current = parent
		first = false
	}
}

// remove picks the removal call by what the listing showed: a bare rmdir for
// a truly empty directory, a recursive removal when tolerated entries have
// to go down with it. A concurrent writer surfaces as an error here, never
// as a silent recursive delete of unseen content.
func (c *Cleaner) remove(path string, d classify.Decision) error {
	if d.Entries == 0 {
		return c.fs.RemoveDir(path)
	}
	return c.fs.RemoveTree(path)
}

func (c *Cleaner) record(path string, d classify.Decision) {
	method := "rmdir"
	if d.Entries > 0 {
		method = "recursive"
	}
	c.logger.Printf("deleted %s method=%s entries=%d", path, method, d.Entries)

	if c.db == nil {
		return
	}
	if err := c.db.RecordDeletion(path, method, d.Entries); err != nil {
		// history is best effort; the deletion already happened
		c.logger.Printf("failed to record deletion of %s: %v", path, err)
	}
}
