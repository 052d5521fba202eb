// Package recycle keeps free render slot keys grouped by item type.
package recycle

// Pool is a per-type LIFO stack of free slot keys. A key is in the pool at
// most once; the pool never hands out a key it does not hold.
type Pool[T comparable] struct {
	stacks map[T][]string
	owner  map[string]T
}

// New creates an empty pool.
func New[T comparable]() *Pool[T] {
	return &Pool[T]{
		stacks: make(map[T][]string),
		owner:  make(map[string]T),
	}
}

// Get pops the most recently pooled key of type t.
func (p *Pool[T]) Get(t T) (string, bool) {
	stack := p.stacks[t]
	if len(stack) == 0 {
		return "", false
	}
	key := stack[len(stack)-1]
	p.stacks[t] = stack[:len(stack)-1]
	delete(p.owner, key)
	return key, true
}

// Put returns key to the pool under type t. Putting a key that is already
// pooled is a no-op; a key pooled under another type is moved.
func (p *Pool[T]) Put(t T, key string) {
	if prev, ok := p.owner[key]; ok {
		if prev == t {
			return
		}
		p.Remove(key)
	}
	p.stacks[t] = append(p.stacks[t], key)
	p.owner[key] = t
}

// Remove takes key out of the pool and reports whether it was present.
func (p *Pool[T]) Remove(key string) bool {
	t, ok := p.owner[key]
	if !ok {
		return false
	}
	delete(p.owner, key)
	stack := p.stacks[t]
	for i, k := range stack {
		if k == key {
			p.stacks[t] = append(stack[:i], stack[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether key is pooled.
func (p *Pool[T]) Contains(key string) bool {
	_, ok := p.owner[key]
	return ok
}

// Len returns the number of pooled keys across all types.
func (p *Pool[T]) Len() int {
	return len(p.owner)
}

// ClearAll drops every pooled key.
func (p *Pool[T]) ClearAll() {
	clear(p.stacks)
	clear(p.owner)
}
