package repository

import "encoding/json"

// collection is one JSON array of the store, loaded lazily by a unit
type collection[T any] struct {
	key    string
	items  []T
	stored []byte // value as loaded, nil when the key was absent
	loaded bool
	dirty  bool
}

type encodable interface {
	storeKey() string
	isDirty() bool
	encode() ([]byte, error)
	previous() []byte
}

func newCollection[T any](key string) *collection[T] {
	return &collection[T]{key: key}
}

func (c *collection[T]) storeKey() string { return c.key }
func (c *collection[T]) isDirty() bool    { return c.dirty }

// previous is the value to write back when a commit has to be undone
func (c *collection[T]) previous() []byte {
	if c.stored == nil {
		return []byte("[]")
	}
	return c.stored
}

func (c *collection[T]) encode() ([]byte, error) {
	if c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

// prepend puts item at the front, where the newest entries live
func (c *collection[T]) prepend(item T) {
	c.items = append([]T{item}, c.items...)
	c.dirty = true
}

func (c *collection[T]) push(item T) {
	c.items = append(c.items, item)
	c.dirty = true
}

// replace overwrites the first item matching and reports whether one did
func (c *collection[T]) replace(item T, match func(T) bool) bool {
	for i := range c.items {
		if match(c.items[i]) {
			c.items[i] = item
			c.dirty = true
			return true
		}
	}
	return false
}

func (c *collection[T]) find(match func(T) bool) (T, bool) {
	for _, item := range c.items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) set(items []T) {
	c.items = items
	c.dirty = true
}
