package utils

import (
	"os"
	"sync"
	"time"
)

// fileEntry is a cached value together with the file metadata it was derived from
type fileEntry[V any] struct {
	value   V
	modTime time.Time
	size    int64
}

// FileCache memoizes values derived from file contents. An entry is dropped
// as soon as the file's modification time or size no longer matches.
type FileCache[V any] struct {
	items map[string]*fileEntry[V]
	mutex sync.RWMutex
}

// NewFileCache creates an empty cache
func NewFileCache[V any]() *FileCache[V] {
	return &FileCache[V]{
		items: make(map[string]*fileEntry[V]),
	}
}

// Get returns the cached value for path if the file is unchanged
func (c *FileCache[V]) Get(path string) (V, bool) {
	c.mutex.RLock()
	item, exists := c.items[path]
	c.mutex.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}

	if stat, err := os.Stat(path); err == nil {
		if stat.ModTime().Equal(item.modTime) && stat.Size() == item.size {
			return item.value, true
		}
	}

	c.mutex.Lock()
	delete(c.items, path)
	c.mutex.Unlock()

	return zero, false
}

// Load returns the cached value for path, or reads the file, derives the
// value with decode and caches it. Decode errors are not cached.
func (c *FileCache[V]) Load(path string, decode func(data []byte) (V, error)) (V, error) {
	if value, ok := c.Get(path); ok {
		return value, nil
	}

	var zero V
	stat, err := os.Stat(path)
	if err != nil {
		return zero, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, err
	}

	value, err := decode(data)
	if err != nil {
		return zero, err
	}

	c.mutex.Lock()
	c.items[path] = &fileEntry[V]{value: value, modTime: stat.ModTime(), size: stat.Size()}
	c.mutex.Unlock()

	return value, nil
}

// Size returns the number of cached entries
func (c *FileCache[V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}
