package competition

import "sync"

// keyedMutex serializes operations sharing the same key while letting those
// on different keys run concurrently.
type keyedMutex struct {
	lock  *sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		lock:  &sync.Mutex{},
		locks: map[string]*refMutex{},
	}
}

// Lock locks the mutex of the given key and returns the func to unlock it.
func (k *keyedMutex) Lock(key string) func() {
	k.lock.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.lock.Unlock()

	m.Lock()
	return func() {
		m.Unlock()

		k.lock.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.lock.Unlock()
	}
}
