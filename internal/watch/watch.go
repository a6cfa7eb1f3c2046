package watch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

var ErrStopped = errors.New("watch: engine stopped")

// ChangeEvent reports that the watched state file was rewritten by someone.
type ChangeEvent struct {
	Path string
	Op   string
	At   time.Time
}

// Engine watches the directory holding one state file and emits a debounced
// ChangeEvent for every burst of writes to it. Sqlite sidecars such as
// "state.db-wal" count as the file itself.
type Engine struct {
	mu       sync.Mutex
	path     string
	base     string
	debounce time.Duration
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	out      chan ChangeEvent
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopped  bool
	dropped  uint64
}

func NewEngine(path string, bufferSize int, debounce time.Duration, logger zerolog.Logger) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if debounce <= 0 {
		debounce = 50 * time.Millisecond
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Engine{
		path:     abs,
		base:     filepath.Base(abs),
		debounce: debounce,
		logger:   logger,
		out:      make(chan ChangeEvent, bufferSize),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (e *Engine) C() <-chan ChangeEvent {
	return e.out
}

func (e *Engine) Path() string { return e.path }

func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	if e.started {
		return nil
	}
	dir := filepath.Dir(e.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return err
	}
	e.watcher = w
	e.started = true
	go e.loop()
	e.logger.Debug().Str("path", e.path).Msg("watching state file")
	return nil
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Dropped counts change events discarded because the consumer lagged.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)
	defer e.watcher.Close()

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending ChangeEvent
	)
	for {
		select {
		case ev, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			if !e.matches(ev) {
				continue
			}
			pending = ChangeEvent{Path: e.path, Op: ev.Op.String(), At: time.Now().UTC()}
			timer = resetTimer(timer, e.debounce)
			timerC = timer.C
		case <-timerC:
			timerC = nil
			select {
			case e.out <- pending:
			default:
				atomic.AddUint64(&e.dropped, 1)
			}
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			e.logger.Warn().Err(err).Str("path", e.path).Msg("watch error")
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) matches(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Base(ev.Name)
	if name == e.base {
		return true
	}
	// sqlite writes go through base+"-wal" and base+"-journal".
	return strings.HasPrefix(name, e.base+"-")
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
