package animals

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Campos conocidos de la colección. El store es schema-less: no se validan,
// solo se usan para ordenar columnas y para los callbacks del dashboard.
const (
	FieldID             = "_id"
	FieldAnimalType     = "animal_type"
	FieldBreed          = "breed"
	FieldName           = "name"
	FieldAgeUponOutcome = "age_upon_outcome"
	FieldAgeInWeeks     = "age_upon_outcome_in_weeks"
	FieldOutcomeType    = "outcome_type"
	FieldLocationLat    = "location_lat"
	FieldLocationLong   = "location_long"
)

// SchemaFields define el orden de columnas preferido en la tabla.
var SchemaFields = []string{
	FieldAnimalType,
	FieldBreed,
	FieldName,
	FieldAgeUponOutcome,
	FieldAgeInWeeks,
	FieldOutcomeType,
	FieldLocationLat,
	FieldLocationLong,
}

// Record es un evento de ingreso/egreso de un animal tal como viene del store.
type Record map[string]any

// Clone devuelve una copia superficial.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String devuelve el valor de un campo como texto ("" si falta o es null).
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || IsMissing(v) {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Float devuelve el valor numérico de un campo.
// ok=false si falta, es null/NaN o no es convertible.
func (r Record) Float(field string) (float64, bool) {
	v, ok := r[field]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// IsMissing replica la noción de "NA": nil o NaN.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(x) {
			return 0, false
		}
		return x, true
	case float32:
		if math.IsNaN(float64(x)) {
			return 0, false
		}
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case interface{ Float64() (float64, error) }: // json.Number
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
