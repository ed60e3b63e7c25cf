package services

import (
	"sync"
	"time"
)

// debouncer coalesces repeated schedule calls into a single trailing-edge
// run. Scheduling replaces any pending run; cancellation is a pure no-op
// for the canceled task because the task re-checks liveness immediately
// before doing any work.
type debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// schedule arranges fn to run after delay, replacing any pending run.
// fn receives a live func it must consult immediately before performing
// any write; a false result means a newer schedule or a cancel superseded
// this task and it must do nothing.
func (d *debouncer) schedule(delay time.Duration, fn func(live func() bool)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	live := func() bool {
		d.mu.Lock()
		defer d.mu.Unlock()
		return gen == d.gen
	}
	d.timer = time.AfterFunc(delay, func() {
		if !live() {
			return
		}
		fn(live)
	})
}

// cancel invalidates any pending run.
func (d *debouncer) cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
