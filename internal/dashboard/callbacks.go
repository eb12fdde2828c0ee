package dashboard

import (
	"context"

	"shelter-dashboard/internal/domain/animals"
)

const (
	MsgNoData     = "No data available to display."
	MsgNoLocation = "Location data not available for the selected row."
)

// StyleRule es una regla condicional de estilo por columna de la tabla.
type StyleRule struct {
	If              StyleCondition `json:"if"`
	BackgroundColor string         `json:"background_color"`
}

type StyleCondition struct {
	ColumnID string `json:"column_id"`
}

// HighlightColumns resalta cada columna seleccionada; sin selección no hay reglas.
func HighlightColumns(selected []string, color string) []StyleRule {
	out := make([]StyleRule, 0, len(selected))
	for _, c := range selected {
		out = append(out, StyleRule{
			If:              StyleCondition{ColumnID: c},
			BackgroundColor: color,
		})
	}
	return out
}

// TableReader es la lectura que usa el refresco de tabla (animals.Service.Table).
type TableReader interface {
	Table(ctx context.Context, f animals.Filter) ([]animals.Record, error)
}

// RefreshTable re-consulta el store con el filtro de las dos selecciones.
// Los errores del store se propagan tal cual.
func RefreshTable(ctx context.Context, r TableReader, animalType string, age animals.AgeBucket) ([]animals.Record, error) {
	return r.Table(ctx, animals.ResolveFilter(animalType, age))
}

// PieFigure cuenta filas por categoría (orden de primera aparición).
// Filas sin valor para field no suman. Sin filas => figura vacía.
func PieFigure(rows []animals.Record, field, title string) Figure {
	if len(rows) == 0 {
		return Figure{}
	}

	idx := map[string]int{}
	tr := PieTrace{Type: "pie", Labels: []string{}, Values: []int{}}
	for _, r := range rows {
		v, ok := r[field]
		if !ok || animals.IsMissing(v) {
			continue
		}
		label := r.String(field)
		i, seen := idx[label]
		if !seen {
			i = len(tr.Labels)
			idx[label] = i
			tr.Labels = append(tr.Labels, label)
			tr.Values = append(tr.Values, 0)
		}
		tr.Values[i]++
	}

	return Figure{
		Data:   []PieTrace{tr},
		Layout: &FigureLayout{Title: FigureTitle{Text: title}},
	}
}

// MapResult es el resultado del callback del mapa: un placeholder o un marcador.
type MapResult struct {
	Placeholder string

	Lat, Long float64
	Zoom      int
	Name      string
	Breed     string
	Age       string
}

// BuildMap decide qué mostrar en el panel del mapa a partir de las filas visibles
// de la tabla (ya ordenadas/filtradas/paginadas en el cliente) y la fila seleccionada.
// Chequeos en orden:
//  1. sin filas => "no data"
//  2. sin selección => fila 0
//  3. columnas de ubicación ausentes => "location not available"
//  4. lat/long null en la fila => "location not available"
//  5. mapa centrado en la fila con un marcador
func BuildMap(view []animals.Record, selected []int, zoom int) MapResult {
	if len(view) == 0 {
		return MapResult{Placeholder: MsgNoData}
	}

	row := 0
	if len(selected) > 0 {
		row = selected[0]
	}
	// índice fuera de rango: se toma la primera fila visible
	if row < 0 || row >= len(view) {
		row = 0
	}

	if !animals.HasColumn(view, animals.FieldLocationLat) || !animals.HasColumn(view, animals.FieldLocationLong) {
		return MapResult{Placeholder: MsgNoLocation}
	}

	r := view[row]
	lat, okLat := r.Float(animals.FieldLocationLat)
	long, okLong := r.Float(animals.FieldLocationLong)
	if !okLat || !okLong {
		return MapResult{Placeholder: MsgNoLocation}
	}

	return MapResult{
		Lat:   lat,
		Long:  long,
		Zoom:  zoom,
		Name:  r.String(animals.FieldName),
		Breed: r.String(animals.FieldBreed),
		Age:   r.String(animals.FieldAgeUponOutcome),
	}
}

// Children arma los hijos del contenedor del mapa.
func (m MapResult) Children() []Component {
	if m.Placeholder != "" {
		return []Component{text("P", m.Placeholder)}
	}

	pos := []float64{m.Lat, m.Long}
	return []Component{
		el("Map", map[string]any{
			"style":  map[string]any{"width": "1000px", "height": "500px"},
			"center": pos,
			"zoom":   m.Zoom,
		},
			withID(el("TileLayer", nil), "base-layer-id"),
			el("Marker", map[string]any{"position": pos},
				text("Tooltip", m.Name),
				el("Popup", nil,
					text("H1", m.Name),
					text("P", "Breed: "+m.Breed),
					text("P", "Age: "+m.Age),
				),
			),
		),
	}
}
