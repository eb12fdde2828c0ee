package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"shelter-dashboard/internal/domain/animals"

	"github.com/google/uuid"
)

// RecordsRepo guarda cada documento como JSONB en una tabla (id, doc).
type RecordsRepo struct {
	db    *sql.DB
	table string
}

// NewRecordsRepo valida el nombre de tabla; no crea el esquema (ver EnsureSchema).
func NewRecordsRepo(db *sql.DB, table string) (*RecordsRepo, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	return &RecordsRepo{db: db, table: table}, nil
}

func (r *RecordsRepo) Create(ctx context.Context, doc animals.Record) error {
	d := doc.Clone()
	id := d.String(animals.FieldID)
	if id == "" {
		id = uuid.NewString()
	}
	delete(d, animals.FieldID)

	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal doc: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %q (id, doc) VALUES ($1, $2::jsonb)`, r.table),
		id, string(b),
	)
	return err
}

func (r *RecordsRepo) Read(ctx context.Context, f animals.Filter) ([]animals.Record, error) {
	where, args := whereClause(f, 1)

	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, doc FROM %q WHERE %s ORDER BY seq ASC`, r.table, where),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Record, 0)
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}

		doc := animals.Record{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode doc %s: %w", id, err)
		}
		doc[animals.FieldID] = id
		out = append(out, doc)
	}

	return out, rows.Err()
}

// Update hace merge (doc || set). Solo cuenta filas que realmente cambian.
func (r *RecordsRepo) Update(ctx context.Context, f animals.Filter, set animals.Record) (int64, error) {
	s := set.Clone()
	delete(s, animals.FieldID)

	b, err := json.Marshal(s)
	if err != nil {
		return 0, fmt.Errorf("marshal set: %w", err)
	}

	where, args := whereClause(f, 2)
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %q SET doc = doc || $1::jsonb WHERE %s AND NOT (doc @> $1::jsonb)`, r.table, where),
		append([]any{string(b)}, args...)...,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *RecordsRepo) Delete(ctx context.Context, f animals.Filter) (int64, error) {
	where, args := whereClause(f, 1)
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %q WHERE %s`, r.table, where),
		args...,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// whereClause traduce el filtro a SQL sobre jsonb. Los nombres de campo van como
// parámetros, nunca interpolados. next es el primer índice de placeholder libre.
func whereClause(f animals.Filter, next int) (string, []any) {
	if len(f) == 0 {
		return "TRUE", nil
	}

	fields := make([]string, 0, len(f))
	for k := range f {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		s := fmt.Sprintf("$%d", next)
		next++
		return s
	}

	for _, field := range fields {
		c := f[field]
		if c.Equals != nil {
			b, _ := json.Marshal(c.Equals)
			conds = append(conds, fmt.Sprintf("doc -> %s = %s::jsonb", arg(field), arg(string(b))))
			continue
		}

		p := arg(field)
		num := fmt.Sprintf("(CASE WHEN jsonb_typeof(doc -> %[1]s) = 'number' THEN (doc ->> %[1]s)::double precision END)", p)
		if c.Min != nil {
			conds = append(conds, fmt.Sprintf("%s >= %s", num, arg(*c.Min)))
		}
		if c.Max != nil {
			conds = append(conds, fmt.Sprintf("%s < %s", num, arg(*c.Max)))
		}
	}

	if len(conds) == 0 {
		return "TRUE", nil
	}
	return strings.Join(conds, " AND "), args
}
