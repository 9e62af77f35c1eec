package usecase

import "sync"

// Locks serializes access to the registry and to individual accounts.
// Registry writes (customer and account creation) are exclusive; lookups
// share the registry lock and then serialize on the account's own mutex.
type Locks struct {
	registry sync.RWMutex
	mu       sync.Mutex
	accounts map[int]*sync.Mutex
}

// NewLocks creates an empty lock set.
func NewLocks() *Locks {
	return &Locks{accounts: make(map[int]*sync.Mutex)}
}

func (l *Locks) account(number int) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.accounts[number]
	if !ok {
		m = &sync.Mutex{}
		l.accounts[number] = m
	}
	return m
}

// WriteRegistry runs fn with exclusive registry access.
func (l *Locks) WriteRegistry(fn func() error) error {
	l.registry.Lock()
	defer l.registry.Unlock()
	return fn()
}

// ReadRegistry runs fn with shared registry access.
func (l *Locks) ReadRegistry(fn func() error) error {
	l.registry.RLock()
	defer l.registry.RUnlock()
	return fn()
}

// WithAccount runs fn holding the account's mutex. Callers must already
// hold the registry lock (shared or exclusive).
func (l *Locks) WithAccount(number int, fn func() error) error {
	m := l.account(number)
	m.Lock()
	defer m.Unlock()
	return fn()
}
