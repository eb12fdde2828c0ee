package dashboard

// Figure es un subconjunto del formato de figura de Plotly (data + layout).
// El zero value serializa como {} (figura vacía).
type Figure struct {
	Data   []PieTrace    `json:"data,omitempty"`
	Layout *FigureLayout `json:"layout,omitempty"`
}

type PieTrace struct {
	Type   string   `json:"type"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

type FigureLayout struct {
	Title FigureTitle `json:"title"`
}

type FigureTitle struct {
	Text string `json:"text"`
}
