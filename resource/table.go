package resource

import (
	"sync"
)

// Table maps handles to values. It is safe for concurrent use.
type Table struct {
	entries   []entry
	freeList  []Handle
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

type entry struct {
	value any
	tag   string
	valid bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 8),
		freeList: make([]Handle, 0, 4),
	}
}

// Insert stores value under tag and returns its handle.
// It returns 0 once the table is closed.
func (t *Table) Insert(tag string, value any) Handle {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0
	}

	e := entry{
		value: value,
		tag:   tag,
		valid: true,
	}

	var handle Handle
	if len(t.freeList) > 0 {
		handle = t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[handle-1] = e
	} else {
		t.entries = append(t.entries, e)
		handle = Handle(len(t.entries))
	}
	t.mu.Unlock()

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		Tag:    tag,
		Value:  value,
	})
	return handle
}

// Get retrieves a value by handle.
func (t *Table) Get(handle Handle) (any, bool) {
	e, ok := t.lookup(handle)
	if !ok {
		return nil, false
	}
	return e.value, true
}

// GetTagged retrieves a value only if it was inserted under tag.
func (t *Table) GetTagged(handle Handle, tag string) (any, bool) {
	e, ok := t.lookup(handle)
	if !ok || e.tag != tag {
		return nil, false
	}
	return e.value, true
}

// Remove invalidates handle, drops its value and returns it.
// Removing an unknown or already removed handle reports false.
func (t *Table) Remove(handle Handle) (any, bool) {
	if handle == 0 {
		return nil, false
	}

	t.mu.Lock()
	idx := int(handle - 1)
	if idx >= len(t.entries) || !t.entries[idx].valid {
		t.mu.Unlock()
		return nil, false
	}
	e := t.entries[idx]
	t.entries[idx] = entry{}
	t.freeList = append(t.freeList, handle)
	t.mu.Unlock()

	if d, ok := e.value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		Tag:    e.tag,
		Value:  e.value,
	})
	return e.value, true
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries) - len(t.freeList)
}

// Each calls fn for every live handle until fn returns false.
// fn must not modify the table.
func (t *Table) Each(fn func(Handle, string, any) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, e := range t.entries {
		if e.valid {
			if !fn(Handle(i+1), e.tag, e.value) {
				break
			}
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Close drops every live value and rejects further inserts.
func (t *Table) Close() error {
	var handles []Handle
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	for i, e := range t.entries {
		if e.valid {
			handles = append(handles, Handle(i+1))
		}
	}
	t.mu.Unlock()

	for _, h := range handles {
		t.Remove(h)
	}
	return nil
}

func (t *Table) lookup(handle Handle) (entry, bool) {
	if handle == 0 {
		return entry{}, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := int(handle - 1)
	if idx >= len(t.entries) {
		return entry{}, false
	}
	e := t.entries[idx]
	return e, e.valid
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
