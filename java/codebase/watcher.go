package codebase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

var watchLog = commonlog.GetLogger("jparse.watch")

// ChangeFunc is called after a file was reparsed, with a nil info when the
// file went away.
type ChangeFunc func(path string, info *FileInfo)

// Watcher reparses .java files below the codebase root as they change.
type Watcher struct {
	codebase *Codebase
	w        *fsnotify.Watcher
	onChange ChangeFunc
}

func NewWatcher(c *Codebase) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	fw := &Watcher{codebase: c, w: w}
	if err := fw.addTree(c.RootDir()); err != nil {
		w.Close()
		return nil, err
	}
	return fw, nil
}

// OnChange sets the callback. It must be called before Run.
func (w *Watcher) OnChange(fn ChangeFunc) {
	w.onChange = fn
}

// addTree watches dir and every non-hidden directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run handles events until ctx is done. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.w.Close()
	watchLog.Infof("watching %s", w.codebase.RootDir())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			watchLog.Errorf("watch: %s", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	switch {
	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
		if ev.Op&fsnotify.Create != 0 {
			if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
				if err := w.addTree(ev.Name); err != nil {
					watchLog.Errorf("%s", err)
				}
				return
			}
		}
		if !IsJavaFile(ev.Name) {
			return
		}
		info, err := w.codebase.ScanFile(ev.Name)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				watchLog.Errorf("scan %s: %s", ev.Name, err)
			}
			return
		}
		watchLog.Infof("%s: %d errors", ev.Name, info.ErrorCount())
		w.notify(ev.Name, info)
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if !IsJavaFile(ev.Name) {
			return
		}
		w.codebase.RemoveFile(ev.Name)
		watchLog.Infof("%s: removed", ev.Name)
		w.notify(ev.Name, nil)
	}
}

func (w *Watcher) notify(path string, info *FileInfo) {
	if w.onChange != nil {
		w.onChange(path, info)
	}
}
