package pace

import (
	"time"

	"dirsweep/internal/fsops"
)

// Pacer spaces out filesystem removals with a fixed pause, keeping deletion
// bursts from monopolizing a shared disk.
type Pacer struct {
	delay time.Duration
}

// New creates a pacer. A zero or negative delay disables pacing.
func New(delay time.Duration) *Pacer {
	return &Pacer{delay: delay}
}

// Wait blocks for the configured delay. Safe on a nil pacer.
func (p *Pacer) Wait() {
	if p == nil || p.delay <= 0 {
		return
	}
	time.Sleep(p.delay)
}

// Filesystem wraps fs so every removal waits on the pacer first. Listings
// and parent lookups pass through unpaced. With pacing disabled the
// filesystem is returned unwrapped.
func Filesystem(fs fsops.Filesystem, p *Pacer) fsops.Filesystem {
	if p == nil || p.delay <= 0 {
		return fs
	}
	return &pacedFilesystem{inner: fs, pacer: p}
}

type pacedFilesystem struct {
	inner fsops.Filesystem
	pacer *Pacer
}

func (f *pacedFilesystem) List(path string) ([]fsops.DirEntry, error) {
	return f.inner.List(path)
}

func (f *pacedFilesystem) RemoveDir(path string) error {
	f.pacer.Wait()
	return f.inner.RemoveDir(path)
}

func (f *pacedFilesystem) RemoveTree(path string) error {
	f.pacer.Wait()
	return f.inner.RemoveTree(path)
}

func (f *pacedFilesystem) Parent(path string) (string, bool) {
	return f.inner.Parent(path)
}
