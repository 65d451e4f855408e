package optimizer

import (
	"sort"
	"strings"
)

// Liveness maps names to whether they are live at a program point. For
// variables, live means the current value may still be read before it gets
// overwritten. A missing name is treated like a dead one.
type Liveness map[string]bool

// NewLiveness creates an empty liveness snapshot.
func NewLiveness() Liveness {
	return make(Liveness)
}

// MarkLive marks the given name as live, adding it if necessary.
func (l Liveness) MarkLive(name string) {
	l[name] = true
}

// MarkDead marks the given name as dead, adding it if necessary.
func (l Liveness) MarkDead(name string) {
	l[name] = false
}

// IsLive returns whether the given name is known to be live.
func (l Liveness) IsLive(name string) bool {
	return l[name]
}

// Clone returns an independent copy of the snapshot.
func (l Liveness) Clone() Liveness {
	c := make(Liveness, len(l))
	for name, live := range l {
		c[name] = live
	}
	return c
}

// Reset removes all entries.
func (l Liveness) Reset() {
	clear(l)
}

// Set replaces all entries with the entries of other.
func (l Liveness) Set(other Liveness) {
	clear(l)
	for name, live := range other {
		l[name] = live
	}
}

// Live returns the sorted names of all live entries.
func (l Liveness) Live() []string {
	var names []string
	for name, live := range l {
		if live {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (l Liveness) String() string {
	return "{" + strings.Join(l.Live(), ", ") + "}"
}

// Merge merges from into into at a control flow join: names missing in into
// are copied over and names live in from become live in into. Merge never
// turns a live name dead. It returns whether any name became live in into.
func Merge(into, from Liveness) bool {
	changed := false
	for name, live := range from {
		old, ok := into[name]
		if !ok {
			into[name] = live
			changed = changed || live
		} else if live && !old {
			into[name] = true
			changed = true
		}
	}
	return changed
}
