package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/model"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = model.ErrNotFound

// meta exposes the identity and timestamps of a record
type meta[T any] func(v *T) (id *int64, createdAt, updatedAt *time.Time)

// table is an auto-increment keyed store of records of one kind. Stored
// values never leave the table; callers get copies.
type table[T any] struct {
	mu     sync.RWMutex
	name   string
	rows   map[int64]*T
	nextID int64
	clone  func(*T) *T
	meta   meta[T]
}

func newTable[T any](name string, clone func(*T) *T, m meta[T]) *table[T] {
	return &table[T]{
		name:   name,
		rows:   make(map[int64]*T),
		nextID: 1,
		clone:  clone,
		meta:   m,
	}
}

func (t *table[T]) create(v *T) *T {
	t.mu.Lock()
	defer t.mu.Unlock()

	created := t.clone(v)
	id, createdAt, updatedAt := t.meta(created)
	now := time.Now().UTC()
	*id = t.nextID
	*createdAt = now
	*updatedAt = now
	t.nextID++

	t.rows[*id] = created
	return t.clone(created)
}

func (t *table[T]) get(id int64) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.rows[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, t.name+" not found", goerr.V("id", id))
	}
	return t.clone(v), nil
}

// list returns copies of the records accepted by keep, ordered by ID
func (t *table[T]) list(keep func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*T, 0, len(t.rows))
	for _, v := range t.rows {
		if keep == nil || keep(v) {
			out = append(out, t.clone(v))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, _, _ := t.meta(out[i])
		b, _, _ := t.meta(out[j])
		return *a < *b
	})
	return out
}

func (t *table[T]) update(v *T) (*T, error) {
	id, _, _ := t.meta(v)
	return t.mutate(*id, func(current *T) error {
		_, createdAt, _ := t.meta(current)
		keep := *createdAt
		*current = *t.clone(v)
		_, c, _ := t.meta(current)
		*c = keep
		return nil
	})
}

// mutate applies fn to the stored record under the write lock. The record
// is left untouched when fn fails.
func (t *table[T]) mutate(id int64, fn func(*T) error) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.rows[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, t.name+" not found", goerr.V("id", id))
	}

	next := t.clone(current)
	if err := fn(next); err != nil {
		return nil, err
	}
	_, _, updatedAt := t.meta(next)
	*updatedAt = time.Now().UTC()

	t.rows[id] = next
	return t.clone(next), nil
}

func (t *table[T]) delete(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return goerr.Wrap(ErrNotFound, t.name+" not found", goerr.V("id", id))
	}
	delete(t.rows, id)
	return nil
}
