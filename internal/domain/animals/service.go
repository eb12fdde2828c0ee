package animals

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"shelter-dashboard/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// StoreObserver recibe la duración y resultado de cada operación contra el store.
type StoreObserver interface {
	ObserveStore(op string, d time.Duration, err error)
}

type Service struct {
	repo Repository
	log  logger.Logger
	obs  StoreObserver
	now  func() time.Time
}

func NewService(repo Repository, log logger.Logger, obs StoreObserver) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"component": "animals"}),
		obs:  obs,
		now:  time.Now,
	}
}

func (s *Service) Create(ctx context.Context, doc Record) error {
	if len(doc) == 0 {
		return ErrInvalidInput
	}
	start := s.now()
	err := s.repo.Create(ctx, doc)
	s.observe("create", start, err, nil)
	return err
}

// Read es el passthrough crudo (incluye el identificador interno).
func (s *Service) Read(ctx context.Context, f Filter) ([]Record, error) {
	start := s.now()
	out, err := s.repo.Read(ctx, f)
	s.observe("read", start, err, map[string]any{"filter": f.String(), "rows": len(out)})
	return out, err
}

func (s *Service) Update(ctx context.Context, f Filter, set Record) (int64, error) {
	if len(set) == 0 {
		return 0, ErrInvalidInput
	}
	if _, ok := set[FieldID]; ok {
		return 0, fmt.Errorf("%w: %s is immutable", ErrInvalidInput, FieldID)
	}
	start := s.now()
	n, err := s.repo.Update(ctx, f, set)
	s.observe("update", start, err, map[string]any{"filter": f.String(), "modified": n})
	return n, err
}

func (s *Service) Delete(ctx context.Context, f Filter) (int64, error) {
	start := s.now()
	n, err := s.repo.Delete(ctx, f)
	s.observe("delete", start, err, map[string]any{"filter": f.String(), "deleted": n})
	return n, err
}

// Table lee y deja los registros listos para mostrar:
// sin identificador interno y sin valores no serializables (NaN => null).
func (s *Service) Table(ctx context.Context, f Filter) ([]Record, error) {
	rows, err := s.Read(ctx, f)
	if err != nil {
		return nil, err
	}
	return Displayable(rows), nil
}

// Import crea los documentos en orden. Corta en el primer error.
func (s *Service) Import(ctx context.Context, docs []Record) (int, error) {
	for i, d := range docs {
		if err := s.Create(ctx, d); err != nil {
			return i, fmt.Errorf("import doc %d: %w", i, err)
		}
	}
	s.log.Info("import done", map[string]any{"docs": len(docs)})
	return len(docs), nil
}

func (s *Service) observe(op string, start time.Time, err error, fields map[string]any) {
	d := s.now().Sub(start)
	if s.obs != nil {
		s.obs.ObserveStore(op, d, err)
	}

	entry := map[string]any{"op": op, "duration_ms": d.Milliseconds()}
	for k, v := range fields {
		entry[k] = v
	}
	if err != nil {
		entry["error"] = err.Error()
		s.log.Error("store operation failed", entry)
		return
	}
	s.log.Debug("store operation", entry)
}

// Displayable devuelve copias sin _id y con NaN/Inf convertidos a nil.
func Displayable(rows []Record) []Record {
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		c := make(Record, len(r))
		for k, v := range r {
			if k == FieldID {
				continue
			}
			if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
				v = nil
			}
			c[k] = v
		}
		out = append(out, c)
	}
	return out
}
