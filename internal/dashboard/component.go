package dashboard

// Component es un nodo del árbol declarativo que renderiza el cliente.
// Type es el tipo de widget ("Div", "DataTable", "Graph", "Map", ...).
type Component struct {
	Type     string         `json:"type"`
	ID       string         `json:"id,omitempty"`
	Props    map[string]any `json:"props,omitempty"`
	Children []Component    `json:"children,omitempty"`
}

func el(typ string, props map[string]any, children ...Component) Component {
	return Component{Type: typ, Props: props, Children: children}
}

// text es un nodo con contenido de texto plano.
func text(typ, s string) Component {
	return Component{Type: typ, Props: map[string]any{"text": s}}
}

func withID(c Component, id string) Component {
	c.ID = id
	return c
}
