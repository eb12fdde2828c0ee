package dashboard

import (
	"context"
	"errors"
	"math"
	"testing"

	"shelter-dashboard/internal/domain/animals"
)

func TestHighlightColumns(t *testing.T) {
	if got := HighlightColumns(nil, "#D2F3FF"); len(got) != 0 {
		t.Fatalf("expected no rules for empty selection, got %v", got)
	}

	got := HighlightColumns([]string{"breed", "name"}, "#D2F3FF")
	if len(got) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(got))
	}
	if got[0].If.ColumnID != "breed" || got[1].If.ColumnID != "name" || got[1].BackgroundColor != "#D2F3FF" {
		t.Fatalf("unexpected rules %#v", got)
	}
}

func TestPieFigure_Empty(t *testing.T) {
	f := PieFigure(nil, animals.FieldAnimalType, "Animal Type Distribution")
	if len(f.Data) != 0 || f.Layout != nil {
		t.Fatalf("expected empty figure, got %#v", f)
	}
}

func TestPieFigure_CountsByCategory(t *testing.T) {
	rows := []animals.Record{
		{"animal_type": "Dog", "outcome_type": "Adoption"},
		{"animal_type": "Cat", "outcome_type": "Transfer"},
		{"animal_type": "Dog", "outcome_type": nil},
		{"animal_type": "Bird"},
		{"animal_type": "Dog", "outcome_type": "Adoption"},
	}

	types := PieFigure(rows, animals.FieldAnimalType, "Animal Type Distribution")
	if n := len(types.Data[0].Labels); n != 3 {
		t.Fatalf("expected 3 slices, got %d", n)
	}
	if types.Data[0].Labels[0] != "Dog" || types.Data[0].Labels[2] != "Bird" {
		t.Fatalf("expected first-appearance order, got %v", types.Data[0].Labels)
	}
	want := map[string]int{"Dog": 3, "Cat": 1, "Bird": 1}
	for k, v := range want {
		if sliceCounts(types)[k] != v {
			t.Fatalf("slice %s: want %d got %d", k, v, sliceCounts(types)[k])
		}
	}
	if types.Layout.Title.Text != "Animal Type Distribution" {
		t.Fatalf("unexpected title %q", types.Layout.Title.Text)
	}

	outcomes := PieFigure(rows, animals.FieldOutcomeType, "Outcome Type Distribution")
	if got := sliceCounts(outcomes); len(got) != 2 || got["Adoption"] != 2 || got["Transfer"] != 1 {
		t.Fatalf("missing outcome values must not form slices, got %v", got)
	}
}

func TestBuildMap_PlaceholderPrecedence(t *testing.T) {
	withLoc := animals.Record{
		"name": "Rex", "breed": "Labrador", "age_upon_outcome": "2 years",
		"location_lat": 30.75, "location_long": -97.48,
	}

	cases := []struct {
		name     string
		view     []animals.Record
		selected []int
		want     string
	}{
		{"no rows", nil, nil, MsgNoData},
		{"no rows even with selection", []animals.Record{}, []int{0}, MsgNoData},
		{"no location columns", []animals.Record{{"name": "Rex"}}, nil, MsgNoLocation},
		{"only lat column", []animals.Record{{"name": "Rex", "location_lat": 1.0}}, nil, MsgNoLocation},
		{"null lat at default row", []animals.Record{{"location_lat": nil, "location_long": 1.0}, withLoc}, nil, MsgNoLocation},
		{"NaN long at selected row", []animals.Record{withLoc, {"location_lat": 1.0, "location_long": math.NaN()}}, []int{1}, MsgNoLocation},
		{"key missing in targeted row", []animals.Record{withLoc, {"name": "Tom"}}, []int{1}, MsgNoLocation},
		{"ok", []animals.Record{withLoc}, nil, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildMap(tc.view, tc.selected, 10)
			if got.Placeholder != tc.want {
				t.Fatalf("want placeholder %q, got %q", tc.want, got.Placeholder)
			}
		})
	}
}

func TestBuildMap_MarkerAtSelectedRow(t *testing.T) {
	view := []animals.Record{
		{"name": "Rex", "breed": "Labrador", "age_upon_outcome": "2 years", "location_lat": 30.1, "location_long": -97.1},
		{"name": "Tom", "breed": "Siamese", "age_upon_outcome": "8 years", "location_lat": 30.2, "location_long": -97.2},
	}

	got := BuildMap(view, []int{1}, 10)
	if got.Placeholder != "" || got.Lat != 30.2 || got.Long != -97.2 || got.Zoom != 10 {
		t.Fatalf("unexpected map %#v", got)
	}
	if got.Name != "Tom" || got.Breed != "Siamese" || got.Age != "8 years" {
		t.Fatalf("unexpected popup data %#v", got)
	}

	// sin selección => fila 0; fuera de rango => fila 0
	if m := BuildMap(view, nil, 10); m.Name != "Rex" {
		t.Fatalf("expected default row 0, got %q", m.Name)
	}
	if m := BuildMap(view, []int{7}, 10); m.Name != "Rex" {
		t.Fatalf("expected out-of-range selection to fall back to row 0, got %q", m.Name)
	}
}

func TestMapResult_Children(t *testing.T) {
	ph := MapResult{Placeholder: MsgNoData}.Children()
	if len(ph) != 1 || ph[0].Type != "P" || ph[0].Props["text"] != MsgNoData {
		t.Fatalf("unexpected placeholder children %#v", ph)
	}

	m := MapResult{Lat: 1, Long: 2, Zoom: 10, Name: "Rex", Breed: "Lab", Age: "2 years"}.Children()
	if len(m) != 1 || m[0].Type != "Map" {
		t.Fatalf("expected one Map, got %#v", m)
	}
	if m[0].Props["zoom"] != 10 {
		t.Fatalf("expected zoom 10, got %v", m[0].Props["zoom"])
	}
	marker := m[0].Children[1]
	if marker.Type != "Marker" || marker.Children[0].Props["text"] != "Rex" {
		t.Fatalf("expected marker with name tooltip, got %#v", marker)
	}
	popup := marker.Children[1]
	if popup.Children[1].Props["text"] != "Breed: Lab" || popup.Children[2].Props["text"] != "Age: 2 years" {
		t.Fatalf("unexpected popup %#v", popup)
	}
}

type fakeTables struct {
	got []animals.Filter
	err error
}

func (f *fakeTables) Table(_ context.Context, flt animals.Filter) ([]animals.Record, error) {
	f.got = append(f.got, flt)
	return []animals.Record{}, f.err
}

func TestRefreshTable_ResolvesFilterAndPropagatesErrors(t *testing.T) {
	ft := &fakeTables{}
	if _, err := RefreshTable(context.Background(), ft, "Dog", animals.AgeSenior); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ft.got) != 1 || len(ft.got[0]) != 2 {
		t.Fatalf("expected one read with 2 conditions, got %v", ft.got)
	}

	ft.err = errors.New("connection refused")
	if _, err := RefreshTable(context.Background(), ft, "", animals.AgeNone); !errors.Is(err, ft.err) {
		t.Fatalf("expected store error, got %v", err)
	}
}

// sliceCounts devuelve label -> tamaño de la primera traza.
func sliceCounts(f Figure) map[string]int {
	out := map[string]int{}
	if len(f.Data) == 0 {
		return out
	}
	tr := f.Data[0]
	for i, l := range tr.Labels {
		out[l] = tr.Values[i]
	}
	return out
}
