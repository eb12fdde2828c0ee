package mongo

import (
	"context"
	"fmt"

	"shelter-dashboard/internal/domain/animals"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RecordsRepo es el CRUD sobre una colección de MongoDB.
type RecordsRepo struct {
	coll *mongo.Collection
}

func NewRecordsRepo(client *mongo.Client, database, collection string) *RecordsRepo {
	return &RecordsRepo{coll: client.Database(database).Collection(collection)}
}

func (r *RecordsRepo) Create(ctx context.Context, doc animals.Record) error {
	_, err := r.coll.InsertOne(ctx, bson.M(doc))
	return err
}

func (r *RecordsRepo) Read(ctx context.Context, f animals.Filter) ([]animals.Record, error) {
	cur, err := r.coll.Find(ctx, toBSON(f))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]animals.Record, 0)
	for cur.Next(ctx) {
		var m bson.M
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		out = append(out, fromBSON(m))
	}
	return out, cur.Err()
}

func (r *RecordsRepo) Update(ctx context.Context, f animals.Filter, set animals.Record) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, toBSON(f), bson.M{"$set": bson.M(set)})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *RecordsRepo) Delete(ctx context.Context, f animals.Filter) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, toBSON(f))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// toBSON traduce el filtro a un documento de query:
// igualdad => {field: v}; rango => {field: {$gte: min, $lt: max}}.
func toBSON(f animals.Filter) bson.M {
	q := bson.M{}
	for field, c := range f {
		if c.Equals != nil {
			q[field] = c.Equals
			continue
		}
		ops := bson.M{}
		if c.Min != nil {
			ops["$gte"] = *c.Min
		}
		if c.Max != nil {
			ops["$lt"] = *c.Max
		}
		if len(ops) > 0 {
			q[field] = ops
		}
	}
	return q
}

// fromBSON normaliza tipos del driver a tipos planos (JSON-friendly).
func fromBSON(m bson.M) animals.Record {
	out := make(animals.Record, len(m))
	for k, v := range m {
		out[k] = plain(v)
	}
	return out
}

func plain(v any) any {
	switch x := v.(type) {
	case primitive.ObjectID:
		return x.Hex()
	case primitive.DateTime:
		return x.Time().UTC()
	case primitive.Decimal128:
		return x.String()
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case bson.M:
		return map[string]any(fromBSON(x))
	case bson.D:
		return map[string]any(fromBSON(x.Map()))
	case bson.A:
		out := make([]any, 0, len(x))
		for _, e := range x {
			out = append(out, plain(e))
		}
		return out
	default:
		return v
	}
}
