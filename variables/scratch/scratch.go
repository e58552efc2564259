// Package scratch provides reusable buffers that keep per-response evaluation free of heap churn.
//
// A Buffer or Pool is owned by exactly one evaluator closure and reset at the start of every call.
// Neither type is safe for concurrent use.
package scratch

import "slices"

// Buffer is a growable result buffer.
type Buffer[T comparable] struct {
	items []T
}

// NewBuffer creates a Buffer with the given initial capacity.
func NewBuffer[T comparable](capacity int) *Buffer[T] {
	return &Buffer[T]{items: make([]T, 0, max(capacity, 0))}
}

// Reset empties the buffer, keeping its capacity.
func (b *Buffer[T]) Reset() {
	b.items = b.items[:0]
}

// Append adds v.
func (b *Buffer[T]) Append(v T) {
	b.items = append(b.items, v)
}

// AppendUnique adds v unless it is already present and reports whether it was added.
// The check is a linear scan.
func (b *Buffer[T]) AppendUnique(v T) bool {
	if b.Contains(v) {
		return false
	}

	b.items = append(b.items, v)

	return true
}

// Contains reports whether v is present.
func (b *Buffer[T]) Contains(v T) bool {
	return slices.Contains(b.items, v)
}

// Len returns the number of items.
func (b *Buffer[T]) Len() int {
	return len(b.items)
}

// Items returns a view of the current items. It is invalidated by the next Reset.
func (b *Buffer[T]) Items() []T {
	return b.items
}

// Pool is an arena handing out slices from one backing array.
type Pool[T any] struct {
	backing []T
	used    int
}

// NewPool creates a Pool with the given initial capacity.
func NewPool[T any](capacity int) *Pool[T] {
	return &Pool[T]{backing: make([]T, max(capacity, 0))}
}

// Rent returns an empty slice with capacity n. Appending beyond n never touches other rented slices.
// When the backing array is exhausted a larger one is allocated; slices rented earlier stay valid.
func (p *Pool[T]) Rent(n int) []T {
	if p.used+n > len(p.backing) {
		p.backing = make([]T, max(2*len(p.backing), n))
		p.used = 0
	}

	rented := p.backing[p.used : p.used : p.used+n]
	p.used += n

	return rented
}

// FreeAll makes the whole backing array available again. Previously rented slices must no longer be used.
func (p *Pool[T]) FreeAll() {
	p.used = 0
}

// Capacity returns the size of the current backing array.
func (p *Pool[T]) Capacity() int {
	return len(p.backing)
}
