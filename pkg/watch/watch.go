// Package watch reloads a catalogue file when it changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
)

// Reload is the outcome of one reload attempt. Catalogue is nil when the file
// could not be loaded or has validation errors; Errors then lists them.
type Reload struct {
	Path      string
	Catalogue *catalogue.Catalogue
	Errors    []*catalogue.ValidationError
}

// OK reports whether the reload produced a usable catalogue.
func (r Reload) OK() bool { return r.Catalogue != nil }

// Summary renders the validation errors as one line per error.
func (r Reload) Summary() string {
	var b strings.Builder
	for _, e := range r.Errors {
		if e.Severity == "warning" {
			continue
		}
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// DefaultDebounce collapses the burst of events editors produce on save.
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches one catalogue file.
type Watcher struct {
	path     string
	debounce time.Duration
	onReload func(Reload)
	logger   *zap.Logger
	fs       *fsnotify.Watcher
}

// New creates a watcher for path. onReload is called from the watcher
// goroutine after every change settles.
func New(path string, onReload func(Reload), logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors that replace the file on save would drop
	// a watch on the file itself.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		onReload: onReload,
		logger:   logger,
		fs:       fsw,
	}, nil
}

// SetDebounce changes the settle delay. Call before Run.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("catalogue changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.onReload(Load(w.path))

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// Load reads and validates a catalogue file.
func Load(path string) Reload {
	r := Reload{Path: path}
	c, errs := catalogue.ValidateFile(path)
	r.Errors = errs
	if c != nil && !catalogue.HasErrors(errs) {
		r.Catalogue = c
	}
	return r
}
