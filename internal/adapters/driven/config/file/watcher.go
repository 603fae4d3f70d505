package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/reader-cli/internal/core/ports/driven"
	"github.com/custodia-labs/reader-cli/internal/logger"
)

// Ensure Watcher implements the port.
var _ driven.FileWatcher = (*Watcher)(nil)

// settleDelay gives an editor time to finish writing before a change is
// reported.
const settleDelay = 50 * time.Millisecond

// Watcher reports changes to manifest files. Bursts of filesystem events
// are coalesced and reports are limited to one per interval.
type Watcher struct {
	interval time.Duration
}

// NewWatcher creates a watcher reporting at most one change per interval
// and file.
func NewWatcher(interval time.Duration) *Watcher {
	return &Watcher{interval: interval}
}

// Watch streams changes of path until ctx is cancelled. The parent
// directory is watched so that editors replacing the file through a rename
// are seen. The channel is closed when ctx is done or the watcher fails.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan driven.FileChange, error) {
	path = filepath.Clean(path)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	limiter := rate.NewLimiter(rate.Every(w.interval), 1)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	changes := make(chan driven.FileChange, 1)

	go func() {
		defer close(changes)
		defer fw.Close()

		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher: %v", err)
			case evt, ok := <-fw.Events:
				if !ok {
					return
				}
				if !relevant(evt, path) {
					continue
				}
				logger.Debug("watcher: %s %s", evt.Op, evt.Name)
				if fire == nil {
					delay := limiter.Reserve().Delay()
					if delay < settleDelay {
						delay = settleDelay
					}
					fire = time.After(delay)
				}
			case at := <-fire:
				fire = nil
				select {
				case changes <- driven.FileChange{Path: path, At: at}:
				default:
					// The consumer still has a pending change to handle.
				}
			}
		}
	}()

	return changes, nil
}

func relevant(evt fsnotify.Event, path string) bool {
	if filepath.Clean(evt.Name) != path {
		return false
	}
	return evt.Has(fsnotify.Write) || evt.Has(fsnotify.Create) || evt.Has(fsnotify.Rename)
}
