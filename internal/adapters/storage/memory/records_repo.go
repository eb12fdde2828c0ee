package memory

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"shelter-dashboard/internal/domain/animals"

	"github.com/google/uuid"
)

var (
	ErrDuplicateID = errors.New("record already exists")
)

// recordRepo guarda documentos en orden de inserción (el orden de lectura es estable).
type recordRepo struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]animals.Record
}

func NewRecordRepo() animals.Repository {
	return &recordRepo{
		byID: make(map[string]animals.Record),
	}
}

func (r *recordRepo) Create(ctx context.Context, doc animals.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := doc.Clone()
	id := d.String(animals.FieldID)
	if id == "" {
		id = uuid.NewString()
		d[animals.FieldID] = id
	}
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	r.byID[id] = d
	r.order = append(r.order, id)
	return nil
}

func (r *recordRepo) Read(ctx context.Context, f animals.Filter) ([]animals.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Record, 0)
	for _, id := range r.order {
		d := r.byID[id]
		if f.Matches(d) {
			out = append(out, d.Clone())
		}
	}
	return out, nil
}

func (r *recordRepo) Update(ctx context.Context, f animals.Filter, set animals.Record) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, id := range r.order {
		d := r.byID[id]
		if !f.Matches(d) {
			continue
		}
		changed := false
		for k, v := range set {
			if k == animals.FieldID {
				continue
			}
			// $set: siempre se escribe; solo cuenta si cambió valor o tipo.
			if old, ok := d[k]; !ok || !reflect.DeepEqual(old, v) {
				changed = true
			}
			d[k] = v
		}
		if changed {
			n++
		}
	}
	return n, nil
}

func (r *recordRepo) Delete(ctx context.Context, f animals.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.order[:0]
	var n int64
	for _, id := range r.order {
		if f.Matches(r.byID[id]) {
			delete(r.byID, id)
			n++
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return n, nil
}
