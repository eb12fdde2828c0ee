package animals

import (
	"context"
	"fmt"
	"sort"
)

// Snapshot es la foto de la colección completa tomada al arrancar.
// Es inmutable: se usa para poblar opciones del dashboard (dropdown de tipos).
type Snapshot struct {
	Columns []string
	Rows    []Record
}

// LoadSnapshot lee toda la colección (filtro vacío) y descarta _id.
func (s *Service) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	rows, err := s.Table(ctx, Filter{})
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	snap := NewSnapshot(rows)
	s.log.Info("snapshot loaded", map[string]any{"rows": len(snap.Rows), "columns": len(snap.Columns)})
	return snap, nil
}

// NewSnapshot arma el snapshot a partir de filas ya limpias.
func NewSnapshot(rows []Record) *Snapshot {
	return &Snapshot{
		Columns: Columns(rows),
		Rows:    rows,
	}
}

// Distinct devuelve los valores distintos de una columna en orden de aparición.
// Nulls se omiten.
func (s *Snapshot) Distinct(column string) []string {
	if s == nil {
		return nil
	}
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, r := range s.Rows {
		v := r.String(column)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Columns es la unión de campos de las filas: primero los del esquema conocido
// (en ese orden), luego el resto ordenado alfabéticamente.
func Columns(rows []Record) []string {
	present := map[string]struct{}{}
	for _, r := range rows {
		for k := range r {
			if k == FieldID {
				continue
			}
			present[k] = struct{}{}
		}
	}

	out := make([]string, 0, len(present))
	for _, f := range SchemaFields {
		if _, ok := present[f]; ok {
			out = append(out, f)
			delete(present, f)
		}
	}

	rest := make([]string, 0, len(present))
	for k := range present {
		rest = append(rest, k)
	}
	sort.Strings(rest)

	return append(out, rest...)
}

// HasColumn indica si alguna fila tiene el campo (equivalente a "columna presente").
func HasColumn(rows []Record, column string) bool {
	for _, r := range rows {
		if _, ok := r[column]; ok {
			return true
		}
	}
	return false
}
