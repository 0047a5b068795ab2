// Package jsonstore is the repository for the trading post: it loads the
// single JSON document into memory, exposes typed accessors and mutators
// for the six collections, and writes the whole document back after every
// mutation.
package jsonstore

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/tradepost/pkg/types"
)

// errorBuffer is the capacity of the persistence error channel.
const errorBuffer = 16

// Store holds the in-memory document and the writer that persists it.
// Accessors return copies; callers never share memory with the store.
type Store struct {
	mu     sync.RWMutex
	log    *zap.Logger
	config types.Config
	path   string
	doc    *document // nil while detached
	w      *writer

	write   writeFunc
	errs    chan error
	dropped atomic.Int64
}

// Option configures a Store.
type Option func(*Store)

// WithWriteFunc replaces the function used to write the document file.
// Tests use it to inject write failures.
func WithWriteFunc(fn func(path string, data []byte) error) Option {
	return func(s *Store) { s.write = fn }
}

// NewStore creates a detached store. Call Attach to load a document.
func NewStore(log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		log:   log,
		write: writeFileAtomic,
		errs:  make(chan error, errorBuffer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach loads the document described by config, creating the data
// directory and an empty document if needed. A document that exists but
// cannot be decoded returns an error wrapping types.ErrCorruptDocument.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc != nil {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(config.GetDataDir(), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	path := config.DocumentPath()
	data, exists, err := readFile(path)
	if err != nil {
		return err
	}

	var doc *document
	if exists {
		doc, err = decodeDocument(data)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	} else {
		doc = newDocument()
		encoded, err := doc.encode()
		if err != nil {
			return fmt.Errorf("encode empty document: %w", err)
		}
		if err := s.write(path, encoded); err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
	}

	s.config = config
	s.path = path
	s.doc = doc
	s.w = newWriter(path, config.GetSync(), s.write, s.log, s.errs, &s.dropped)

	fields := []zap.Field{
		zap.String("path", path),
		zap.String("sync", config.GetSync()),
		zap.Bool("created", !exists),
	}
	for name, n := range doc.counts() {
		fields = append(fields, zap.Int(name, n))
	}
	s.log.Info("store attached", fields...)
	if n := doc.unparsedDates(); n > 0 {
		s.log.Warn("transaction dates kept as written", zap.String("path", path), zap.Int("count", n))
	}
	return nil
}

// Detach writes any pending snapshot, stops the writer and releases the
// document. It returns the outcome of the final write. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil
	}
	err := s.w.close()
	s.doc = nil
	s.w = nil
	s.log.Info("store detached", zap.String("path", s.path))
	return err
}

// Flush waits until every mutation made so far has been written, and
// returns the outcome of the most recent write.
func (s *Store) Flush() error {
	s.mu.RLock()
	w := s.w
	s.mu.RUnlock()
	if w == nil {
		return types.ErrStoreDetached
	}
	return w.flush()
}

// Errors returns the channel on which failed writes are reported as
// *PersistError. The channel is never closed. When it is full, further
// failures are still logged and counted by DroppedErrors.
func (s *Store) Errors() <-chan error {
	return s.errs
}

// DroppedErrors returns how many write failures did not fit in the error
// channel.
func (s *Store) DroppedErrors() int64 {
	return s.dropped.Load()
}

// Path returns the document path, or "" while detached.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return ""
	}
	return s.path
}

// persistLocked encodes the whole document and hands it to the writer.
// Encoding failures are reported like write failures. The caller must hold
// s.mu for writing.
func (s *Store) persistLocked(op string) {
	data, err := s.doc.encode()
	if err != nil {
		s.w.report(&PersistError{WriteID: newWriteID(), Path: s.path, Err: fmt.Errorf("encode after %s: %w", op, err)})
		return
	}
	s.log.Debug("mutation", zap.String("op", op))
	s.w.submit(data)
}
