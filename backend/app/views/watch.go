package views

import (
	"context"
	"path/filepath"

	"bugtracker/backend/global"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads r whenever a template in dir changes, until ctx is done.
func (r *Renderer) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return err
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Ext(evt.Name) != ".html" || !evt.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				if err := r.Reload(); err != nil {
					global.Logger.Error().Err(err).Str("file", evt.Name).Msg("template reload failed")
					continue
				}
				global.Logger.Info().Str("file", evt.Name).Msg("templates reloaded")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				global.Logger.Error().Err(err).Msg("template watcher")
			}
		}
	}()
	return nil
}
