// Package watch rebuilds navigation artifacts when content changes.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// DefaultDebounce is the quiet period after the last event before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc runs one build. Its error is logged; watching continues.
type RebuildFunc func(ctx context.Context) error

// Watcher triggers rebuilds for changes below Dirs or to Files.
type Watcher struct {
	// Dirs are watched recursively. Missing directories are skipped.
	Dirs []string
	// Files are watched through their parent directory; only events naming
	// the file itself trigger a rebuild.
	Files    []string
	Debounce time.Duration
	// Interval, when positive, also rebuilds on a fixed schedule for
	// filesystems that do not deliver change events.
	Interval time.Duration
	Logger   *slog.Logger
}

// Run performs an initial build, then rebuilds after each burst of changes
// until ctx is canceled.
func (w *Watcher) Run(ctx context.Context, rebuild RebuildFunc) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create file watcher").Build()
	}
	defer func() { _ = fw.Close() }()

	for _, d := range w.Dirs {
		if st, statErr := os.Stat(d); statErr != nil || !st.IsDir() {
			logger.Warn("Watch directory missing", logfields.Dir(d))
			continue
		}
		addDirsRecursive(fw, d, logger)
	}
	files := make(map[string]struct{}, len(w.Files))
	for _, f := range w.Files {
		abs := filepath.Clean(f)
		files[abs] = struct{}{}
		if err := fw.Add(filepath.Dir(abs)); err != nil {
			logger.Warn("Watch add failed", logfields.File(f), logfields.Error(err))
		}
	}

	runBuild(ctx, rebuild, logger)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	rebuildReq, trigger, stop := newDebouncer(debounce)
	defer stop()

	if w.Interval > 0 {
		sched, err := schedule(w.Interval, trigger)
		if err != nil {
			return err
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				logger.Warn("Scheduler shutdown failed", logfields.Error(err))
			}
		}()
		logger.Info("Periodic rebuild scheduled", slog.Duration("interval", w.Interval))
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				logger.Info("Change detected; rebuilding navigation")
				runBuild(ctx, rebuild, logger)
			}
		}
	}()
	defer func() { <-done }()

	logger.Info("Watching for changes", logfields.Count(len(fw.WatchList())))
	for {
		select {
		case <-ctx.Done():
			logger.Info("Watch stopped")
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev, files) {
				if ev.Has(fsnotify.Create) {
					if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
						addDirsRecursive(fw, ev.Name, logger)
					}
				}
				logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
				trigger()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event, files map[string]struct{}) bool {
	name := filepath.Clean(ev.Name)
	if _, ok := files[name]; ok {
		return true
	}
	if ignored(name) {
		return false
	}
	for _, d := range w.Dirs {
		if within(filepath.Clean(d), name) {
			return true
		}
	}
	return false
}

func within(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ignored reports editor swap files, hidden files and backups.
func ignored(p string) bool {
	base := filepath.Base(p)
	return strings.HasPrefix(base, ".") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".tmp")
}

func runBuild(ctx context.Context, rebuild RebuildFunc, logger *slog.Logger) {
	if err := rebuild(ctx); err != nil && ctx.Err() == nil {
		logger.Warn("Rebuild failed", logfields.Error(err))
	}
}

// newDebouncer returns a channel that receives once per quiet period after
// trigger calls, the trigger and a stop function.
func newDebouncer(d time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return req, trigger, stop
}

// schedule starts a scheduler calling trigger every interval.
func schedule(interval time.Duration, trigger func()) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to create scheduler").Build()
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(trigger),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to schedule periodic rebuild").
			WithContext("interval", interval.String()).
			Build()
	}
	s.Start()
	return s, nil
}

func addDirsRecursive(fw *fsnotify.Watcher, root string, logger *slog.Logger) {
	_ = filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			logger.Warn("Watch add failed", logfields.Dir(p), logfields.Error(err))
		}
		return nil
	})
}
