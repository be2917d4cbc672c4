package actionlog

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const insertTimeout = time.Second * 5

type inserter interface {
	Insert(ctx context.Context, entry *Entry) error
}

// Writer persists entries on its own goroutine
// Entries recorded while the buffer is full are dropped and logged.
type Writer struct {
	logger  logrus.FieldLogger
	store   inserter
	entries chan *Entry
	done    chan struct{}

	lock   sync.Mutex
	closed bool
}

// NewWriter returns a writer that buffers up to size entries
func NewWriter(logger logrus.FieldLogger, store inserter, size int) *Writer {
	return &Writer{
		logger:  logger,
		store:   store,
		entries: make(chan *Entry, size),
		done:    make(chan struct{}),
	}
}

// Start starts the write loop
func (w *Writer) Start() {
	go w.runLoop()
}

func (w *Writer) runLoop() {
	defer close(w.done)

	for entry := range w.entries {
		ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
		if err := w.store.Insert(ctx, entry); err != nil {
			w.logger.WithError(err).WithFields(logrus.Fields{
				"hand":   entry.HandID,
				"player": entry.PlayerID,
			}).Error("could not write action log entry")
		}
		cancel()
	}
}

// Record queues the entry
func (w *Writer) Record(entry *Entry) {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.closed {
		return
	}

	select {
	case w.entries <- entry:
	default:
		w.logger.WithField("hand", entry.HandID).Warn("action log buffer full, dropping entry")
	}
}

// Stop flushes the queued entries and waits for the write loop to finish
// It must only be called after Start
func (w *Writer) Stop() {
	w.lock.Lock()
	if !w.closed {
		w.closed = true
		close(w.entries)
	}
	w.lock.Unlock()

	<-w.done
}
