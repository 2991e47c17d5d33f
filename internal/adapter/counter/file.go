package counter

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"pushcron/internal/domain/ports"
)

const lockRetryDelay = 50 * time.Millisecond

// File is an integer counter stored as text, guarded by an advisory lock file.
type File struct {
	path string
	lock *flock.Flock
}

var _ ports.Counter = (*File)(nil)

// NewFile creates a counter at path; the lock lives next to it.
func NewFile(path string) *File {
	return &File{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the counter file location.
func (f *File) Path() string {
	return f.path
}

// Increment adds one to the stored value and returns the new value.
// A missing, empty or unparsable file counts as zero.
func (f *File) Increment(ctx context.Context) (int, error) {
	locked, err := f.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return 0, fmt.Errorf("lock counter %s: %w", f.path, err)
	}
	if !locked {
		return 0, fmt.Errorf("lock counter %s: not acquired", f.path)
	}
	defer func() { _ = f.lock.Unlock() }()

	next := f.read() + 1
	if err := os.WriteFile(f.path, []byte(strconv.Itoa(next)+"\n"), 0o644); err != nil {
		return 0, fmt.Errorf("write counter %s: %w", f.path, err)
	}
	return next, nil
}

func (f *File) read() int {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return n
}
