// Package keylock provides mutual exclusion scoped to a key.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Locker serializes callers that lock the same key while callers with
// different keys proceed in parallel. The zero value is ready to use.
type Locker[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*entry
}

// Lock blocks until the key is available and returns the function releasing it.
func (l *Locker[K]) Lock(key K) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[K]*entry)
	}

	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// Len returns the number of keys currently held or waited on.
func (l *Locker[K]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.locks)
}
