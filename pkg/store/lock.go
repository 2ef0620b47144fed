package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/meshgate/pkg/device"
)

// fileLock serializes writers of one device document. Writers inside this process
// queue on slot; writers in other processes are excluded by an flock(2) on a sidecar
// file, which the kernel drops if the holder dies.
type fileLock struct {
	path       string
	slot       chan struct{}
	retries    int
	minBackoff time.Duration
	maxBackoff time.Duration
}

func newFileLock(path string, retries int, minBackoff, maxBackoff time.Duration) *fileLock {
	return &fileLock{
		path:       path,
		slot:       make(chan struct{}, 1),
		retries:    retries,
		minBackoff: minBackoff,
		maxBackoff: maxBackoff,
	}
}

// budget is the longest acquire will sleep between file lock attempts.
func (l *fileLock) budget() time.Duration {
	var total time.Duration
	backoff := l.minBackoff
	for i := 0; i < l.retries; i++ {
		total += backoff
		backoff = min(backoff*2, l.maxBackoff)
	}
	return total
}

// acquire takes the lock or fails with device.ErrLockTimeout once the retry budget
// is spent. The returned release func must be called exactly once.
func (l *fileLock) acquire() (func(), error) {
	wait := time.NewTimer(l.budget())
	defer wait.Stop()

	select {
	case l.slot <- struct{}{}:
	case <-wait.C:
		return nil, fmt.Errorf("%w: %s busy in this process", device.ErrLockTimeout, l.path)
	}

	// The sidecar shares the document directory, which may not exist yet.
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		<-l.slot
		return nil, fmt.Errorf("%w: lock directory: %w", device.ErrStorageUnavailable, err)
	}

	fl := flock.New(l.path)
	backoff := l.minBackoff
	for attempt := 0; ; attempt++ {
		locked, err := fl.TryLock()
		if err != nil {
			<-l.slot
			return nil, fmt.Errorf("%w: lock %s: %w", device.ErrStorageUnavailable, l.path, err)
		}
		if locked {
			break
		}
		if attempt >= l.retries {
			<-l.slot
			return nil, fmt.Errorf("%w: %s still held after %d attempts", device.ErrLockTimeout, l.path, attempt+1)
		}
		time.Sleep(backoff)
		backoff = min(backoff*2, l.maxBackoff)
	}

	return func() {
		if err := fl.Unlock(); err != nil {
			log.Error().Err(err).Str("lock", l.path).Msg("Failed to release device document lock")
		}
		<-l.slot
	}, nil
}
