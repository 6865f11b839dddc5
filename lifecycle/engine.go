package lifecycle

import (
	"fmt"
	"sync"

	"volunect/renderer"

	"gorm.io/gorm"
)

// DocumentStore persists rendered certificate documents and returns an
// opaque reference to the stored artifact.
type DocumentStore interface {
	Save(name string, data []byte) (string, error)
}

// Engine owns the task lifecycle: status derivation, application approval,
// attendance recording and certificate issuance. All state transitions go
// through it; storage is never written around it.
type Engine struct {
	db       *gorm.DB
	clock    Clock
	renderer renderer.Renderer
	docs     DocumentStore

	taskLocks lockTable // serializes approval decisions per task
	pairLocks lockTable // serializes issuance per (task, volunteer) pair
}

// Default is the engine instance wired up at startup and shared by the
// controllers, mirroring the global database instance.
var Default *Engine

// New builds an engine on the given storage and collaborators.
func New(db *gorm.DB, r renderer.Renderer, docs DocumentStore) *Engine {
	return &Engine{
		db:       db,
		clock:    systemClock{},
		renderer: r,
		docs:     docs,
	}
}

// Init wires the shared Default engine.
func Init(db *gorm.DB, r renderer.Renderer, docs DocumentStore) {
	Default = New(db, r, docs)
}

// WithClock replaces the engine's clock. Test hook.
func (e *Engine) WithClock(c Clock) *Engine {
	e.clock = c
	return e
}

func pairKey(taskID, volunteerID uint) string {
	return fmt.Sprintf("%d:%d", taskID, volunteerID)
}

// lockTable hands out one mutex per key. Locks are never evicted; the key
// space is bounded by live tasks and pairs.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (lt *lockTable) acquire(key string) *sync.Mutex {
	lt.mu.Lock()
	if lt.locks == nil {
		lt.locks = make(map[string]*sync.Mutex)
	}
	l, ok := lt.locks[key]
	if !ok {
		l = &sync.Mutex{}
		lt.locks[key] = l
	}
	lt.mu.Unlock()

	l.Lock()
	return l
}
