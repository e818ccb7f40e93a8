// Package timer provides the named countdown registry gameplay code uses for
// every delayed or periodic behaviour (cooldowns, arming, round clock).
package timer

import (
	"maps"
	"slices"
)

// Func is invoked synchronously when an entry expires
type Func func()

// entry is one registered countdown
type entry struct {
	name      string
	remaining float64
	total     float64
	looping   bool
	triggers  int
	fn        Func
	firing    bool   // callback currently running
	born      uint64 // advance generation the entry was added in
}

// Scheduler is a registry of named countdowns, advanced once per frame.
//
// Callbacks may add or remove other entries, and may re-add their own name
// to re-arm a one-shot entry. A callback must not remove its own entry.
//
// Scheduler is not safe for concurrent use.
type Scheduler struct {
	entries map[string]*entry
	gen     uint64
}

// New creates an empty Scheduler
func New() *Scheduler {
	return &Scheduler{entries: make(map[string]*entry)}
}

// Add registers a countdown of d seconds. It returns false without changing
// anything if name is already registered.
func (s *Scheduler) Add(name string, d float64, fn Func, looping bool) bool {
	if e, ok := s.entries[name]; ok && !(e.firing && !e.looping) {
		return false
	}
	s.entries[name] = &entry{
		name:      name,
		remaining: d,
		total:     d,
		looping:   looping,
		fn:        fn,
		born:      s.gen,
	}
	return true
}

// Remove unregisters name, returning false if it was not registered
func (s *Scheduler) Remove(name string) bool {
	if _, ok := s.entries[name]; !ok {
		return false
	}
	delete(s.entries, name)
	return true
}

// Advance counts every entry down by dt seconds and fires the expired ones in
// key order. Entries added during this call start counting on the next one.
func (s *Scheduler) Advance(dt float64) {
	s.gen++
	gen := s.gen
	for _, name := range s.Names() {
		e, ok := s.entries[name]
		if !ok || e.born == gen {
			continue
		}
		e.remaining -= dt
		if e.remaining > 0 {
			continue
		}
		e.triggers++
		e.remaining = 0
		s.fire(e)
	}
}

func (s *Scheduler) fire(e *entry) {
	e.firing = true
	if e.fn != nil {
		e.fn()
	}
	e.firing = false

	cur, ok := s.entries[e.name]
	if !ok || cur != e {
		// removed or replaced by its own callback
		return
	}
	if e.looping {
		e.remaining = e.total
		return
	}
	delete(s.entries, e.name)
}

// Remaining returns the seconds left on name, or -1 if not registered
func (s *Scheduler) Remaining(name string) float64 {
	if e, ok := s.entries[name]; ok {
		return e.remaining
	}
	return -1
}

// TriggerCount returns how many times name has fired, or -1 if not registered
func (s *Scheduler) TriggerCount(name string) int {
	if e, ok := s.entries[name]; ok {
		return e.triggers
	}
	return -1
}

// Has reports whether name is registered
func (s *Scheduler) Has(name string) bool {
	_, ok := s.entries[name]
	return ok
}

// Len returns the number of registered entries
func (s *Scheduler) Len() int {
	return len(s.entries)
}

// Names returns the registered names in key order
func (s *Scheduler) Names() []string {
	return slices.Sorted(maps.Keys(s.entries))
}

// Clear unregisters every entry
func (s *Scheduler) Clear() {
	clear(s.entries)
}
