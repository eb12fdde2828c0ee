package mongo

import "testing"

func TestDecodeExtJSON(t *testing.T) {
	doc, err := DecodeExtJSON([]byte(`{
		"_id": {"$oid": "5f1b2c3d4e5f6a7b8c9d0e1f"},
		"animal_type": "Dog",
		"age_upon_outcome_in_weeks": 52,
		"location_lat": 30.75,
		"tags": ["a", {"k": 1}]
	}`))
	if err != nil {
		t.Fatalf("DecodeExtJSON: %v", err)
	}

	if doc["_id"] != "5f1b2c3d4e5f6a7b8c9d0e1f" {
		t.Fatalf("expected hex id, got %#v", doc["_id"])
	}
	if doc["age_upon_outcome_in_weeks"] != 52.0 {
		t.Fatalf("expected float64 52, got %#v", doc["age_upon_outcome_in_weeks"])
	}
	if doc["location_lat"] != 30.75 {
		t.Fatalf("unexpected lat %#v", doc["location_lat"])
	}
	tags, ok := doc["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Fatalf("expected plain slice, got %#v", doc["tags"])
	}
	if nested, ok := tags[1].(map[string]any); !ok || nested["k"] != 1.0 {
		t.Fatalf("expected plain nested map, got %#v", tags[1])
	}
}

func TestDecodeExtJSON_Invalid(t *testing.T) {
	if _, err := DecodeExtJSON([]byte(`[1,2]`)); err == nil {
		t.Fatal("expected error for non-document input")
	}
}
