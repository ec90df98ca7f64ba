package syncs

import (
	"path/filepath"
	"sync"
)

// PathLock is a per-file mutex. Different spellings of the same path share a
// lock, independent paths can be held concurrently, and idle entries are
// dropped. The zero value is ready to use.
type PathLock struct {
	locks map[string]*pathEntry
	mu    sync.Mutex
}

type pathEntry struct {
	mu   sync.Mutex
	refs int
}

// Key returns the normalized form of path used to select a lock.
func Key(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}

	return abs
}

// Lock blocks until path is free and returns the function that releases it.
func (pl *PathLock) Lock(path string) func() {
	key := Key(path)

	pl.mu.Lock()
	if pl.locks == nil {
		pl.locks = make(map[string]*pathEntry)
	}

	e, ok := pl.locks[key]
	if !ok {
		e = &pathEntry{}
		pl.locks[key] = e
	}

	e.refs++
	pl.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		pl.mu.Lock()
		defer pl.mu.Unlock()

		e.refs--
		if e.refs == 0 {
			delete(pl.locks, key)
		}
	}
}

// Len returns the number of paths that are held or waited on.
func (pl *PathLock) Len() int {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	return len(pl.locks)
}
