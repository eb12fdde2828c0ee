package mongo

import (
	"fmt"

	"shelter-dashboard/internal/domain/animals"

	"go.mongodb.org/mongo-driver/bson"
)

// DecodeExtJSON lee un documento en Extended JSON (relaxed o canonical), como
// los que produce mongoexport. JSON plano también es válido.
// {"$oid": ...} queda como hex y los enteros como float64.
func DecodeExtJSON(b []byte) (animals.Record, error) {
	var m bson.M
	if err := bson.UnmarshalExtJSON(b, false, &m); err != nil {
		return nil, fmt.Errorf("decode extended json: %w", err)
	}
	return fromBSON(m), nil
}
