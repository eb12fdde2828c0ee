package seed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"shelter-dashboard/internal/adapters/storage/memory"
	"shelter-dashboard/internal/domain/animals"

	"github.com/google/go-cmp/cmp"
)

const csvSeed = `"",animal_id,animal_type,breed,name,age_upon_outcome_in_weeks,outcome_type,location_lat,location_long
1,A733653,Cat,Siamese Mix,Kitty,17.26,Transfer,30.61,-97.54
2,A725717,Dog,Beagle,,52,Adoption,,
`

func TestParseCSV_LikeHeaderlineImport(t *testing.T) {
	docs, err := Parse([]byte(csvSeed), FormatCSV)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}

	want := animals.Record{
		"animal_id":                 "A733653",
		"animal_type":               "Cat",
		"breed":                     "Siamese Mix",
		"name":                      "Kitty",
		"age_upon_outcome_in_weeks": 17.26,
		"outcome_type":              "Transfer",
		"location_lat":              30.61,
		"location_long":             -97.54,
	}
	if diff := cmp.Diff(want, docs[0]); diff != "" {
		t.Fatalf("first doc mismatch (-want +got):\n%s", diff)
	}

	second := docs[1]
	if v, ok := second["location_lat"]; !ok || v != nil {
		t.Fatalf("empty cell should be null, got %#v", v)
	}
	if second["name"] != nil {
		t.Fatalf("empty name should be null, got %#v", second["name"])
	}
	if got := animals.ClassifyAge(second["age_upon_outcome_in_weeks"].(float64)); got != animals.AgeAdult {
		t.Fatalf("52 weeks should be adult, got %s", got)
	}
}

func TestParseJSONAndNDJSON(t *testing.T) {
	arr := []byte(`[{"animal_type":"Dog","age_upon_outcome_in_weeks":10},{"animal_type":"Cat"}]`)
	docs, err := Parse(arr, FormatJSON)
	if err != nil || len(docs) != 2 {
		t.Fatalf("json array: docs=%v err=%v", docs, err)
	}
	if docs[0]["age_upon_outcome_in_weeks"] != 10.0 {
		t.Fatalf("expected float64, got %#v", docs[0]["age_upon_outcome_in_weeks"])
	}

	nd := []byte("{\"_id\":{\"$oid\":\"5f1b2c3d4e5f6a7b8c9d0e1f\"},\"animal_type\":\"Dog\"}\n\n{\"animal_type\":\"Cat\"}\n")
	docs, err = Parse(nd, FormatNDJSON)
	if err != nil || len(docs) != 2 {
		t.Fatalf("ndjson: docs=%v err=%v", docs, err)
	}
	if docs[0]["_id"] != "5f1b2c3d4e5f6a7b8c9d0e1f" {
		t.Fatalf("expected hex id, got %#v", docs[0]["_id"])
	}

	if _, err := Parse([]byte("{bad}\n"), FormatNDJSON); err == nil {
		t.Fatal("expected error for bad line")
	}
	if _, err := Parse(nil, Format("xml")); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name, ct string
		data     string
		want     Format
	}{
		{"aac.csv", "", "a,b", FormatCSV},
		{"dump.jsonl", "", "{}", FormatNDJSON},
		{"dump.json", "", " [ {} ]", FormatJSON},
		{"export.json", "", "{}\n{}", FormatNDJSON},
		{"https://x/data?fmt=1", "text/csv; charset=utf-8", "a", FormatCSV},
		{"https://x/data", "application/x-ndjson", "{}", FormatNDJSON},
		{"https://x/data", "application/json", "[]", FormatJSON},
		{"seed", "", "animal_type\nDog", FormatCSV},
	}
	for _, tc := range cases {
		if got := DetectFormat(tc.name, tc.ct, []byte(tc.data)); got != tc.want {
			t.Fatalf("DetectFormat(%q,%q) = %s, want %s", tc.name, tc.ct, got, tc.want)
		}
	}
}

func TestRun_FromFileIntoService(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animals.csv")
	if err := os.WriteFile(path, []byte(csvSeed), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	svc := animals.NewService(memory.NewRecordRepo(), nil, nil)
	n, err := Run(context.Background(), svc, path, "", nil, nil)
	if err != nil || n != 2 {
		t.Fatalf("Run: n=%d err=%v", n, err)
	}

	rows, err := svc.Table(context.Background(), animals.ResolveFilter("Dog", animals.AgeAdult))
	if err != nil || len(rows) != 1 {
		t.Fatalf("expected 1 adult dog, got %v err=%v", rows, err)
	}
}

func TestRun_FromURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"animal_type":"Dog"},{"animal_type":"Dog"},{"animal_type":"Cat"}]`))
	}))
	defer ts.Close()

	svc := animals.NewService(memory.NewRecordRepo(), nil, nil)
	n, err := Run(context.Background(), svc, ts.URL+"/animals", "", nil, nil)
	if err != nil || n != 3 {
		t.Fatalf("Run: n=%d err=%v", n, err)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := LoadFormat(context.Background(), " ", "", nil); err == nil {
		t.Fatal("expected error for empty source")
	}
	if _, err := LoadFormat(context.Background(), filepath.Join(t.TempDir(), "missing.json"), "", nil); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFormat_ForcedOverridesDetection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animals.txt")
	if err := os.WriteFile(path, []byte("{\"animal_type\":\"Dog\"}\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	docs, err := LoadFormat(context.Background(), path, FormatNDJSON, nil)
	if err != nil {
		t.Fatalf("LoadFormat: %v", err)
	}
	want := []animals.Record{{"animal_type": "Dog"}}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Fatalf("docs mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": "", "auto": "", " CSV ": FormatCSV, "ndjson": FormatNDJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
