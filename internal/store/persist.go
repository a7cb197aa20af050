package store

import (
	"path/filepath"

	"flowstate/internal/fsutil"

	"github.com/charmbracelet/log"
)

// Persister writes snapshots to disk off the action path. Saves are
// fire-and-forget: the in-memory state stays authoritative and a failed
// write is logged, never surfaced as a fault. Writes are serialized on one
// goroutine and a pending write is replaced by a newer one, so the disk
// only ever sees whole snapshots in order.
type Persister struct {
	path   string
	logger *log.Logger
	ch     chan []byte
	done   chan struct{}
}

// NewPersister starts the background writer for the given data directory.
func NewPersister(dataDir string, logger *log.Logger) *Persister {
	if logger == nil {
		logger = log.Default()
	}
	p := &Persister{
		path:   filepath.Join(dataDir, StateFile),
		logger: logger,
		ch:     make(chan []byte, 1),
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

// Save enqueues a serialized snapshot without blocking. If a write is
// already pending it is superseded; only the newest snapshot matters.
func (p *Persister) Save(data []byte) {
	for {
		select {
		case p.ch <- data:
			return
		default:
			select {
			case <-p.ch: // drop the stale pending write
			default:
			}
		}
	}
}

// Close flushes any pending write and stops the writer.
func (p *Persister) Close() {
	close(p.ch)
	<-p.done
}

func (p *Persister) run() {
	defer close(p.done)
	for data := range p.ch {
		fsutil.BestEffortBackup(p.path, 0600)
		if err := fsutil.WriteFileAtomic(p.path, data, 0600); err != nil {
			p.logger.Warn("snapshot write failed; in-memory state remains authoritative",
				"path", p.path, "err", err)
		}
	}
}
