package resource

// Typed is a view of a Table restricted to one tag and Go type.
type Typed[T any] struct {
	table *Table
	tag   string
}

// NewTyped returns a view of table for values of type T stored under tag.
func NewTyped[T any](table *Table, tag string) *Typed[T] {
	return &Typed[T]{table: table, tag: tag}
}

// Insert adds a value and returns its handle.
func (t *Typed[T]) Insert(value T) Handle {
	return t.table.Insert(t.tag, value)
}

// Get retrieves a value by handle. It fails for handles of another tag or type.
func (t *Typed[T]) Get(handle Handle) (T, bool) {
	var zero T
	v, ok := t.table.GetTagged(handle, t.tag)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Remove drops a value and returns it. It refuses handles of another tag.
func (t *Typed[T]) Remove(handle Handle) (T, bool) {
	var zero T
	if _, ok := t.table.GetTagged(handle, t.tag); !ok {
		return zero, false
	}
	v, ok := t.table.Remove(handle)
	if !ok {
		return zero, false
	}
	typed, _ := v.(T)
	return typed, true
}

// Tag returns the tag this view reads and writes.
func (t *Typed[T]) Tag() string {
	return t.tag
}

// Table returns the underlying table.
func (t *Typed[T]) Table() *Table {
	return t.table
}
