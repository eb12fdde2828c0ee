package animals

import (
	"fmt"
	"strings"
)

// FilterFromMap interpreta un filtro estilo documento:
//
//	{"animal_type": "Dog", "age_upon_outcome_in_weeks": {"$gte": 52, "$lt": 312}}
//
// Operadores soportados: $eq, $gte, $lt.
func FilterFromMap(m map[string]any) (Filter, error) {
	f := Filter{}
	for field, raw := range m {
		field = strings.TrimSpace(field)
		if field == "" || strings.HasPrefix(field, "$") {
			return nil, fmt.Errorf("%w: invalid field %q", ErrInvalidInput, field)
		}

		ops, ok := raw.(map[string]any)
		if !ok {
			if raw == nil {
				return nil, fmt.Errorf("%w: null value for %q", ErrInvalidInput, field)
			}
			f[field] = Eq(raw)
			continue
		}

		var c Condition
		for op, v := range ops {
			switch op {
			case "$eq":
				if v == nil {
					return nil, fmt.Errorf("%w: null value for %q", ErrInvalidInput, field)
				}
				c.Equals = v
			case "$gte":
				n, ok := numeric(v)
				if !ok {
					return nil, fmt.Errorf("%w: %s.%s must be a number", ErrInvalidInput, field, op)
				}
				c.Min = &n
			case "$lt":
				n, ok := numeric(v)
				if !ok {
					return nil, fmt.Errorf("%w: %s.%s must be a number", ErrInvalidInput, field, op)
				}
				c.Max = &n
			default:
				return nil, fmt.Errorf("%w: unsupported operator %q", ErrInvalidInput, op)
			}
		}
		if c.Equals == nil && c.Min == nil && c.Max == nil {
			return nil, fmt.Errorf("%w: empty condition for %q", ErrInvalidInput, field)
		}
		// Condition no representa igualdad y rango a la vez.
		if c.Equals != nil && (c.Min != nil || c.Max != nil) {
			return nil, fmt.Errorf("%w: %q combines $eq with a range", ErrInvalidInput, field)
		}
		f[field] = c
	}
	return f, nil
}
