// Package lock guards shared values behind a mutex that is poisoned when a
// holder panics.
package lock

import (
	"errors"
	"sync"
)

// ErrPoisoned is returned once a previous holder panicked while holding the
// lock. The guarded value may be half-updated.
var ErrPoisoned = errors.New("lock poisoned")

type Mutex[T any] struct {
	mu       sync.Mutex
	poisoned bool
	v        T
}

func New[T any](v T) *Mutex[T] {
	return &Mutex[T]{v: v}
}

// With calls fn with the guarded value while holding the lock. The lock is
// released on every path. If fn panics the mutex is poisoned and the panic
// continues up the stack.
func (m *Mutex[T]) With(fn func(v *T) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.poisoned {
		return ErrPoisoned
	}

	ok := false
	defer func() {
		if !ok {
			m.poisoned = true
		}
	}()

	err := fn(&m.v)
	ok = true

	return err
}

func (m *Mutex[T]) Poisoned() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.poisoned
}
