package generator

import "sync"

// pathLocks serializes work per destination path. Entries are dropped once no
// caller holds or waits for them.
type pathLocks struct {
	mu    sync.Mutex
	locks map[string]*pathLock
}

type pathLock struct {
	mu   sync.Mutex
	refs int
}

func newPathLocks() *pathLocks {
	return &pathLocks{locks: make(map[string]*pathLock)}
}

// Lock blocks until path is free and returns the matching unlock function
func (p *pathLocks) Lock(path string) func() {
	p.mu.Lock()
	lock, ok := p.locks[path]
	if !ok {
		lock = &pathLock{}
		p.locks[path] = lock
	}
	lock.refs++
	p.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		p.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(p.locks, path)
		}
		p.mu.Unlock()
	}
}

// size returns the number of tracked paths
func (p *pathLocks) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}
