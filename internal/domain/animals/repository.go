package animals

import "context"

// Repository es CRUD sobre una única colección.
// Cada llamada va al store; no hay cache.
type Repository interface {
	Create(ctx context.Context, doc Record) error
	Read(ctx context.Context, f Filter) ([]Record, error)
	Update(ctx context.Context, f Filter, set Record) (int64, error)
	Delete(ctx context.Context, f Filter) (int64, error)
}
