package jsonstore

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/tradepost/pkg/types"
)

// PersistError reports a document write that failed after the in-memory
// mutation had already been applied. The in-memory state is not rolled
// back; the next successful write brings the file up to date.
type PersistError struct {
	WriteID string // UUID v7 identifying the write in logs.
	Path    string
	Err     error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s (write %s): %v", e.Path, e.WriteID, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// newWriteID generates a UUID v7 for a write.
func newWriteID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// writeFunc replaces the document at path with data.
type writeFunc func(path string, data []byte) error

// writer owns the document file. Snapshots are submitted as encoded bytes;
// only the latest pending snapshot is kept, since every snapshot is a
// complete document.
type writer struct {
	path     string
	strategy string
	write    writeFunc
	log      *zap.Logger
	errs     chan<- error
	dropped  *atomic.Int64

	mu      sync.Mutex
	cond    *sync.Cond
	pending []byte
	queued  uint64 // snapshots submitted
	written uint64 // snapshots whose write has finished
	lastErr error  // result of the most recent write
	closed  bool
	done    chan struct{}
}

func newWriter(path, strategy string, write writeFunc, log *zap.Logger, errs chan<- error, dropped *atomic.Int64) *writer {
	w := &writer{
		path:     path,
		strategy: strategy,
		write:    write,
		log:      log,
		errs:     errs,
		dropped:  dropped,
		done:     make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	if strategy == types.SyncAsync {
		go w.run()
	} else {
		close(w.done)
	}
	return w
}

// submit hands a snapshot to the writer. It never returns an error:
// failures go to the log and the error channel.
func (w *writer) submit(data []byte) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.log.Warn("snapshot submitted after close, dropped", zap.String("path", w.path))
		return
	}
	w.queued++
	switch w.strategy {
	case types.SyncImmediate:
		seq := w.queued
		w.mu.Unlock()
		err := w.persist(data)
		w.mu.Lock()
		w.finish(seq, err)
		w.mu.Unlock()
	default:
		w.pending = data
		w.cond.Broadcast()
		w.mu.Unlock()
	}
}

// run is the async write loop. It drains the pending snapshot before
// exiting on close.
func (w *writer) run() {
	defer close(w.done)

	w.mu.Lock()
	for {
		for w.pending == nil && !w.closed {
			w.cond.Wait()
		}
		if w.pending == nil {
			w.mu.Unlock()
			return
		}
		data, seq := w.pending, w.queued
		w.pending = nil
		w.mu.Unlock()

		err := w.persist(data)

		w.mu.Lock()
		w.finish(seq, err)
	}
}

// finish records the outcome of the write of snapshot seq.
// The caller must hold w.mu.
func (w *writer) finish(seq uint64, err error) {
	w.lastErr = err
	if seq > w.written {
		w.written = seq
	}
	w.cond.Broadcast()
}

// flush blocks until every snapshot submitted so far has been written or
// has failed, and returns the outcome of the most recent write.
func (w *writer) flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.strategy == types.SyncOnClose && w.pending != nil {
		data, seq := w.pending, w.queued
		w.pending = nil
		w.mu.Unlock()
		err := w.persist(data)
		w.mu.Lock()
		w.finish(seq, err)
	}

	target := w.queued
	for w.written < target {
		w.cond.Wait()
	}
	return w.lastErr
}

// close flushes and stops the async loop. Idempotent.
func (w *writer) close() error {
	err := w.flush()

	w.mu.Lock()
	w.closed = true
	w.cond.Broadcast()
	w.mu.Unlock()

	<-w.done
	return err
}

// persist writes data and reports a failure as a *PersistError.
func (w *writer) persist(data []byte) error {
	writeID := newWriteID()
	if err := w.write(w.path, data); err != nil {
		perr := &PersistError{WriteID: writeID, Path: w.path, Err: err}
		w.report(perr)
		return perr
	}
	w.log.Debug("document persisted",
		zap.String("write_id", writeID),
		zap.String("path", w.path),
		zap.Int("bytes", len(data)))
	return nil
}

func (w *writer) report(perr *PersistError) {
	w.log.Error("persist document failed",
		zap.String("write_id", perr.WriteID),
		zap.String("path", perr.Path),
		zap.Error(perr.Err))

	select {
	case w.errs <- perr:
	default:
		n := w.dropped.Add(1)
		w.log.Warn("persist error channel full",
			zap.String("write_id", perr.WriteID),
			zap.Int64("overflow", n))
	}
}
