package animals

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Límites de edad en semanas.
const (
	AdultMinWeeks  = 52
	SeniorMinWeeks = 312
)

// AgeBucket agrupa la edad en semanas.
// @Enum young, adult, senior
type AgeBucket string

const (
	AgeNone   AgeBucket = ""
	AgeYoung  AgeBucket = "young"
	AgeAdult  AgeBucket = "adult"
	AgeSenior AgeBucket = "senior"
)

// ParseAgeBucket normaliza la selección del radio. Valores desconocidos => AgeNone.
func ParseAgeBucket(s string) AgeBucket {
	switch AgeBucket(strings.ToLower(strings.TrimSpace(s))) {
	case AgeYoung:
		return AgeYoung
	case AgeAdult:
		return AgeAdult
	case AgeSenior:
		return AgeSenior
	default:
		return AgeNone
	}
}

// ClassifyAge: v<52 young, 52<=v<312 adult, v>=312 senior.
func ClassifyAge(weeks float64) AgeBucket {
	switch {
	case weeks < AdultMinWeeks:
		return AgeYoung
	case weeks < SeniorMinWeeks:
		return AgeAdult
	default:
		return AgeSenior
	}
}

// Condition es la condición sobre un campo: igualdad literal o rango numérico.
// Min es inclusivo, Max exclusivo. Si Equals != nil se ignora el rango.
type Condition struct {
	Equals any
	Min    *float64
	Max    *float64
}

// IsRange indica si la condición es de rango.
func (c Condition) IsRange() bool {
	return c.Equals == nil && (c.Min != nil || c.Max != nil)
}

func (c Condition) matches(v any, present bool) bool {
	if c.Equals != nil {
		return present && equalValues(v, c.Equals)
	}
	if !c.IsRange() {
		return true
	}
	if !present {
		return false
	}
	f, ok := toFloat(v)
	if !ok {
		return false
	}
	if c.Min != nil && f < *c.Min {
		return false
	}
	if c.Max != nil && f >= *c.Max {
		return false
	}
	return true
}

// Filter mapea campo -> condición. Las condiciones se combinan con AND.
// Un Filter vacío selecciona todo.
type Filter map[string]Condition

// Eq arma una condición de igualdad.
func Eq(v any) Condition { return Condition{Equals: v} }

// Range arma una condición de rango; nil = sin límite.
func Range(min, max *float64) Condition { return Condition{Min: min, Max: max} }

// Matches evalúa el filtro en memoria.
func (f Filter) Matches(r Record) bool {
	for field, c := range f {
		v, ok := r[field]
		if !c.matches(v, ok) {
			return false
		}
	}
	return true
}

func (f Filter) String() string {
	if len(f) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(f))
	for _, field := range sortedKeys(f) {
		c := f[field]
		switch {
		case c.Equals != nil:
			parts = append(parts, fmt.Sprintf("%s=%v", field, c.Equals))
		default:
			lo, hi := "-inf", "+inf"
			if c.Min != nil {
				lo = fmt.Sprint(*c.Min)
			}
			if c.Max != nil {
				hi = fmt.Sprint(*c.Max)
			}
			parts = append(parts, fmt.Sprintf("%s in [%s,%s)", field, lo, hi))
		}
	}
	return "{" + strings.Join(parts, " AND ") + "}"
}

// ResolveFilter arma el filtro a partir de las dos selecciones opcionales del UI.
// Selecciones vacías no agregan condición.
func ResolveFilter(animalType string, age AgeBucket) Filter {
	f := Filter{}

	if at := strings.TrimSpace(animalType); at != "" {
		f[FieldAnimalType] = Eq(at)
	}

	switch age {
	case AgeYoung:
		f[FieldAgeInWeeks] = Range(nil, ptr(AdultMinWeeks))
	case AgeAdult:
		f[FieldAgeInWeeks] = Range(ptr(AdultMinWeeks), ptr(SeniorMinWeeks))
	case AgeSenior:
		f[FieldAgeInWeeks] = Range(ptr(SeniorMinWeeks), nil)
	}

	return f
}

func ptr(v float64) *float64 { return &v }

// equalValues compara con tipo: números entre sí (int/float da igual),
// strings con strings, bools con bools. Tipos distintos nunca son iguales.
func equalValues(a, b any) bool {
	fa, okA := numeric(a)
	fb, okB := numeric(b)
	if okA || okB {
		return okA && okB && fa == fb
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}
	return reflect.DeepEqual(a, b)
}

// numeric no considera strings: "52" y 52 no son iguales, como en Mongo.
func numeric(v any) (float64, bool) {
	if _, ok := v.(string); ok {
		return 0, false
	}
	return toFloat(v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
