package driven

import (
	"context"
	"time"
)

// FileChange reports that a watched file was written.
type FileChange struct {
	Path string
	At   time.Time
}

// FileWatcher reports writes to a single file.
type FileWatcher interface {
	// Watch streams changes of path until ctx is cancelled. The channel
	// is closed when watching stops.
	Watch(ctx context.Context, path string) (<-chan FileChange, error)
}
