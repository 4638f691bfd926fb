package dom

import (
	"sort"
	"time"
)

type timer struct {
	id  int
	due int64
	fn  func()
}

// SetTimeout schedules fn to run once d has elapsed on the page clock.
func (d *Document) SetTimeout(delay time.Duration, fn func()) int {
	if delay < 0 {
		delay = 0
	}
	d.nextID++
	d.timers = append(d.timers, &timer{id: d.nextID, due: d.elapsed + int64(delay), fn: fn})
	return d.nextID
}

// ClearTimeout cancels a pending timer.
func (d *Document) ClearTimeout(id int) {
	for i, t := range d.timers {
		if t.id == id {
			d.timers = append(d.timers[:i], d.timers[i+1:]...)
			return
		}
	}
}

// PendingTimers returns the number of scheduled timers.
func (d *Document) PendingTimers() int { return len(d.timers) }

// Elapsed returns the page clock.
func (d *Document) Elapsed() time.Duration { return time.Duration(d.elapsed) }

// Advance moves the page clock forward, firing due timers in order.
// Timers scheduled by a firing timer run in the same call if they fall due.
func (d *Document) Advance(delta time.Duration) {
	end := d.elapsed + int64(delta)
	for {
		sort.SliceStable(d.timers, func(i, j int) bool { return d.timers[i].due < d.timers[j].due })
		if len(d.timers) == 0 || d.timers[0].due > end {
			break
		}
		t := d.timers[0]
		d.timers = d.timers[1:]
		d.elapsed = t.due
		if t.fn != nil {
			t.fn()
		}
	}
	d.elapsed = end
}
