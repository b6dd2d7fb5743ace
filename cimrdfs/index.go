package cimrdfs

// Index is a map that remembers insertion order.
// A key keeps the position it was first inserted at; putting an existing key
// again replaces the value in place.
type Index[T any] struct {
	keys  []string
	items map[string]T
}

// NewIndex creates an empty index.
func NewIndex[T any]() *Index[T] {
	return &Index[T]{items: make(map[string]T)}
}

// Put stores v under key.
func (x *Index[T]) Put(key string, v T) {
	if x.items == nil {
		x.items = make(map[string]T)
	}
	if _, ok := x.items[key]; !ok {
		x.keys = append(x.keys, key)
	}
	x.items[key] = v
}

// Get returns the value stored under key.
func (x *Index[T]) Get(key string) (T, bool) {
	if x == nil {
		var zero T
		return zero, false
	}
	v, ok := x.items[key]
	return v, ok
}

// Len returns the number of keys.
func (x *Index[T]) Len() int {
	if x == nil {
		return 0
	}
	return len(x.keys)
}

// Keys returns the keys in insertion order.
func (x *Index[T]) Keys() []string {
	if x == nil {
		return nil
	}
	out := make([]string, len(x.keys))
	copy(out, x.keys)
	return out
}

// Values returns the values in insertion order.
func (x *Index[T]) Values() []T {
	if x == nil {
		return nil
	}
	out := make([]T, 0, len(x.keys))
	for _, k := range x.keys {
		out = append(out, x.items[k])
	}
	return out
}
