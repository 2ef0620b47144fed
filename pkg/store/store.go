// Package store persists the device document: one JSON object mapping slot ids
// to device records. It is the system of record for last-known node state.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/meshgate/pkg/device"
)

// Options tunes id assignment and lock acquisition.
type Options struct {
	// IDPrefix is prepended to the sequence number of new slot ids.
	IDPrefix string

	// LockRetries is how many times a busy lock is retried after the first attempt.
	LockRetries int

	// LockMinBackoff is the first retry delay; it doubles up to LockMaxBackoff.
	LockMinBackoff time.Duration
	LockMaxBackoff time.Duration
}

// DefaultOptions returns hotspot-N ids with 6 lock retries capped at 1s.
func DefaultOptions() Options {
	return Options{
		IDPrefix:       "hotspot-",
		LockRetries:    6,
		LockMinBackoff: 100 * time.Millisecond,
		LockMaxBackoff: time.Second,
	}
}

// FileStore implements device.Store on a single JSON file.
type FileStore struct {
	path string
	opts Options
	lock *fileLock
}

var _ device.Store = (*FileStore)(nil)

// New returns a store for the document at path. Nothing is read until first use;
// a missing file reads as an empty document.
func New(path string, opts Options) *FileStore {
	def := DefaultOptions()
	if opts.IDPrefix == "" {
		opts.IDPrefix = def.IDPrefix
	}
	if opts.LockRetries <= 0 {
		opts.LockRetries = def.LockRetries
	}
	if opts.LockMinBackoff <= 0 {
		opts.LockMinBackoff = def.LockMinBackoff
	}
	if opts.LockMaxBackoff < opts.LockMinBackoff {
		opts.LockMaxBackoff = max(def.LockMaxBackoff, opts.LockMinBackoff)
	}

	return &FileStore{
		path: path,
		opts: opts,
		lock: newFileLock(path+".lock", opts.LockRetries, opts.LockMinBackoff, opts.LockMaxBackoff),
	}
}

// Path returns the document path.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the full mapping as currently persisted.
func (s *FileStore) Get(ctx context.Context) (device.Document, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	return decode(data)
}

// Snapshot returns the persisted bytes for passthrough to read-only clients.
func (s *FileStore) Snapshot(ctx context.Context) ([]byte, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", device.ErrStorageUnavailable, s.path)
	}
	return data, nil
}

// SetSlotState sets isOn on the record keyed by id.
func (s *FileStore) SetSlotState(ctx context.Context, id string, isOn bool) error {
	return s.update(func(doc device.Document) error {
		rec := doc[id]
		if rec == nil {
			return fmt.Errorf("%w: slot %q", device.ErrNotFound, id)
		}
		rec.IsOn = isOn
		return nil
	})
}

// SetNodeState sets isOn on the record whose nodeID matches. It is fed by the
// gateway event path, so an empty nodeID is logged and ignored rather than reported.
// When several records share a nodeID the lowest slot id wins.
func (s *FileStore) SetNodeState(ctx context.Context, nodeID string, isOn bool) error {
	if nodeID == "" {
		log.Warn().Bool("isOn", isOn).Msg("Ignoring node state update without node id")
		return nil
	}

	return s.update(func(doc device.Document) error {
		matches := doc.FindByNode(nodeID)
		if len(matches) == 0 {
			return fmt.Errorf("%w: node %q", device.ErrNotFound, nodeID)
		}
		if len(matches) > 1 {
			log.Warn().
				Str("nodeID", nodeID).
				Int("matches", len(matches)).
				Str("slot", matches[0].ID).
				Msg("Node id is shared by several slots, updating the first")
		}
		matches[0].IsOn = isOn
		log.Debug().Str("nodeID", nodeID).Str("slot", matches[0].ID).Bool("isOn", isOn).Msg("Node state updated")
		return nil
	})
}

// Create stores rec under the next sequential slot id and returns that id.
func (s *FileStore) Create(ctx context.Context, rec *device.Record) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("%w: nil record", device.ErrValidation)
	}

	var id string
	err := s.update(func(doc device.Document) error {
		id = nextID(doc, s.opts.IDPrefix)
		stored := *rec
		stored.ID = id
		stored.Extra = maps.Clone(rec.Extra)
		doc[id] = &stored
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// update runs fn between lock acquisition and write-back. The document is always
// re-read after the lock is held; fn errors abort without writing.
func (s *FileStore) update(fn func(device.Document) error) error {
	release, err := s.lock.acquire()
	if err != nil {
		return err
	}
	defer release()

	data, err := s.read()
	if err != nil {
		return err
	}
	doc, err := decode(data)
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	return s.write(doc)
}

func (s *FileStore) read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []byte("{}"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", device.ErrStorageUnavailable, err)
	}
	return data, nil
}

// write replaces the document atomically: readers see either the old or the new file.
func (s *FileStore) write(doc device.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", device.ErrStorageUnavailable, err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", device.ErrStorageUnavailable, err)
		}
	}

	if err := renameio.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", device.ErrStorageUnavailable, s.path, err)
	}
	return nil
}

func decode(data []byte) (device.Document, error) {
	var doc device.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse: %w", device.ErrStorageUnavailable, err)
	}
	if doc == nil {
		doc = make(device.Document)
	}
	for id, rec := range doc {
		if rec != nil {
			rec.ID = id
		}
	}
	return doc, nil
}

// nextID returns prefix + (highest existing sequence number + 1). Keys that do not
// follow the prefix+number pattern are ignored.
func nextID(doc device.Document, prefix string) string {
	highest := 0
	for id := range doc {
		rest, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		n, ok := device.ParseSeq(rest)
		if !ok {
			continue
		}
		highest = max(highest, n)
	}
	return prefix + strconv.Itoa(highest+1)
}
