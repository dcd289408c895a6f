package status

import (
	"slices"
	"sync"
)

// Table maps metric keys to stable pointers
// Writers cache the pointer once and never touch the table again
type Table[T any] struct {
	entries sync.Map // string -> *T
}

// NewTable creates an empty table
func NewTable[T any]() *Table[T] {
	return &Table[T]{}
}

// Get returns the metric for key, creating it on first use
func (t *Table[T]) Get(key string) *T {
	if v, ok := t.entries.Load(key); ok {
		return v.(*T)
	}
	v, _ := t.entries.LoadOrStore(key, new(T))
	return v.(*T)
}

// Lookup returns the metric for key without creating it
func (t *Table[T]) Lookup(key string) (*T, bool) {
	v, ok := t.entries.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// Keys returns the registered keys sorted
func (t *Table[T]) Keys() []string {
	var keys []string
	t.entries.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	slices.Sort(keys)
	return keys
}

// Each visits metrics in key order
func (t *Table[T]) Each(fn func(key string, ptr *T)) {
	for _, k := range t.Keys() {
		fn(k, t.Get(k))
	}
}

func (t *Table[T]) Len() int {
	n := 0
	t.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
