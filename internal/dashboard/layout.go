package dashboard

import (
	"shelter-dashboard/internal/domain/animals"
)

// Ids de componentes; también forman los slots del grafo de callbacks.
const (
	IDAnimalTypeDropdown = "animal-type-dropdown"
	IDAgeRadio           = "animal-age-radio"
	IDTable              = "datatable-id"
	IDAnimalTypePie      = "animal-type-pie-chart"
	IDOutcomePie         = "outcome-pie-chart"
	IDMap                = "map-id"
)

// Settings son los ajustes de presentación (recargables).
type Settings struct {
	Title          string
	HeaderImage    string
	PageSize       int
	MapZoom        int
	HighlightColor string
}

type option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Layout arma el árbol estático de la página. Las opciones del dropdown salen del
// snapshot inicial; los datos iniciales de la tabla también.
func Layout(snap *animals.Snapshot, s Settings) Component {
	header := []Component{}
	if s.HeaderImage != "" {
		header = append(header, el("Img", map[string]any{
			"src":   s.HeaderImage,
			"style": map[string]any{"width": "150px", "height": "auto"},
		}))
	}
	header = append(header, el("Center", nil, el("B", nil, text("H1", s.Title))))

	typeOptions := []option{}
	for _, v := range snap.Distinct(animals.FieldAnimalType) {
		typeOptions = append(typeOptions, option{Label: v, Value: v})
	}

	columns := make([]map[string]any, 0, len(snap.Columns))
	for _, c := range snap.Columns {
		columns = append(columns, map[string]any{
			"name":       c,
			"id":         c,
			"deletable":  false,
			"selectable": true,
		})
	}

	rows := snap.Rows
	if rows == nil {
		rows = []animals.Record{}
	}

	return el("Div", nil,
		el("Div", map[string]any{"style": map[string]any{"textAlign": "center"}}, header...),
		el("Hr", nil),
		el("Div", nil,
			text("Label", "Select Animal Type:"),
			withID(el("Dropdown", map[string]any{
				"options":     typeOptions,
				"value":       nil,
				"placeholder": "Select an animal type",
				"style":       map[string]any{"width": "50%"},
			}), IDAnimalTypeDropdown),
			el("Br", nil),
			text("Label", "Select Animal Age:"),
			withID(el("RadioItems", map[string]any{
				"options": []option{
					{Label: "Young", Value: string(animals.AgeYoung)},
					{Label: "Adult", Value: string(animals.AgeAdult)},
					{Label: "Senior", Value: string(animals.AgeSenior)},
				},
				"value": nil,
			}), IDAgeRadio),
		),
		el("Br", nil),
		withID(el("DataTable", map[string]any{
			"columns":           columns,
			"data":              rows,
			"filter_action":     "native",
			"sort_action":       "native",
			"page_size":         s.PageSize,
			"row_selectable":    "single",
			"column_selectable": "multi",
			"style_table":       map[string]any{"overflowX": "auto"},
			"style_cell": map[string]any{
				"height":     "auto",
				"minWidth":   "150px",
				"maxWidth":   "200px",
				"whiteSpace": "normal",
			},
		}), IDTable),
		el("Br", nil),
		el("Hr", nil),
		el("Div", map[string]any{"style": map[string]any{
			"display":        "flex",
			"flexDirection":  "row",
			"justifyContent": "space-between",
		}},
			withID(el("Graph", nil), IDAnimalTypePie),
			withID(el("Graph", nil), IDOutcomePie),
		),
		el("Hr", nil),
		withID(el("Div", map[string]any{"className": "col s12 m6"}), IDMap),
	)
}
