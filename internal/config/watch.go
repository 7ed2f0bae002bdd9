package config

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"chanctl/pkg/logging"
)

// Watch emits the path of a watched file after it changes, debouncing the
// burst of events editors produce on save. The channel closes when ctx ends.
func Watch(ctx context.Context, paths []string, debounce time.Duration) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		var timer *time.Timer
		var pending string
		var fire <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				pending = event.Name
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				fire = timer.C
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warn("Config", "Watch error: %v", err)
			case <-fire:
				fire = nil
				select {
				case out <- pending:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
