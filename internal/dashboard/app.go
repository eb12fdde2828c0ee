package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/platform/logger"
	"shelter-dashboard/internal/reactive"
)

// Slots del grafo.
var (
	SlotAnimalType      = reactive.S(IDAnimalTypeDropdown, "value")
	SlotAge             = reactive.S(IDAgeRadio, "value")
	SlotTableData       = reactive.S(IDTable, "data")
	SlotSelectedColumns = reactive.S(IDTable, "selected_columns")
	SlotStyleData       = reactive.S(IDTable, "style_data_conditional")
	SlotVirtualData     = reactive.S(IDTable, "derived_virtual_data")
	SlotVirtualSelected = reactive.S(IDTable, "derived_virtual_selected_rows")
	SlotMapChildren     = reactive.S(IDMap, "children")
	SlotAnimalTypePie   = reactive.S(IDAnimalTypePie, "figure")
	SlotOutcomePie      = reactive.S(IDOutcomePie, "figure")
)

// App une snapshot, ajustes y grafo de callbacks.
type App struct {
	snapshot *animals.Snapshot
	settings atomic.Pointer[Settings]
	graph    *reactive.Graph
	log      logger.Logger
}

// NewApp registra los callbacks. snap es el snapshot inicial (inmutable).
func NewApp(snap *animals.Snapshot, tables TableReader, s Settings, obs reactive.Observer, log logger.Logger) (*App, error) {
	if snap == nil {
		snap = animals.NewSnapshot(nil)
	}
	if log == nil {
		log = logger.Nop()
	}

	a := &App{
		snapshot: snap,
		log:      log.With(map[string]any{"component": "dashboard"}),
	}
	a.settings.Store(&s)

	g, err := reactive.NewGraph(obs, a.callbacks(tables)...)
	if err != nil {
		return nil, fmt.Errorf("build callback graph: %w", err)
	}
	a.graph = g
	return a, nil
}

// Settings devuelve los ajustes vigentes.
func (a *App) Settings() Settings { return *a.settings.Load() }

// ApplySettings reemplaza los ajustes (hot reload).
func (a *App) ApplySettings(s Settings) {
	a.settings.Store(&s)
	a.log.Info("settings applied", map[string]any{"title": s.Title, "page_size": s.PageSize, "map_zoom": s.MapZoom})
}

// Layout del estado actual.
func (a *App) Layout() Component { return Layout(a.snapshot, a.Settings()) }

// Dispatch re-evalúa los callbacks afectados por changed.
func (a *App) Dispatch(ctx context.Context, state reactive.State, changed []reactive.Slot) (reactive.State, error) {
	return a.graph.Dispatch(ctx, state, changed)
}

// Initial evalúa todos los callbacks (primera carga).
func (a *App) Initial(ctx context.Context, state reactive.State) (reactive.State, error) {
	return a.graph.Initial(ctx, state)
}

func (a *App) callbacks(tables TableReader) []reactive.Callback {
	return []reactive.Callback{
		{
			Name:    "update_styles",
			Inputs:  []reactive.Slot{SlotSelectedColumns},
			Outputs: []reactive.Slot{SlotStyleData},
			Fn: func(_ context.Context, in []json.RawMessage) ([]any, error) {
				cols, err := reactive.Decode[[]string](in[0])
				if err != nil {
					return nil, fmt.Errorf("selected_columns: %w", err)
				}
				return []any{HighlightColumns(cols, a.Settings().HighlightColor)}, nil
			},
		},
		{
			Name:    "update_table",
			Inputs:  []reactive.Slot{SlotAnimalType, SlotAge},
			Outputs: []reactive.Slot{SlotTableData},
			Fn: func(ctx context.Context, in []json.RawMessage) ([]any, error) {
				animalType, err := reactive.Decode[string](in[0])
				if err != nil {
					return nil, fmt.Errorf("animal type: %w", err)
				}
				age, err := reactive.Decode[string](in[1])
				if err != nil {
					return nil, fmt.Errorf("age: %w", err)
				}
				rows, err := RefreshTable(ctx, tables, animalType, animals.ParseAgeBucket(age))
				if err != nil {
					return nil, err
				}
				return []any{rows}, nil
			},
		},
		{
			Name:    "update_map",
			Inputs:  []reactive.Slot{SlotVirtualData, SlotVirtualSelected},
			Outputs: []reactive.Slot{SlotMapChildren},
			Fn: func(_ context.Context, in []json.RawMessage) ([]any, error) {
				view, err := reactive.Decode[[]animals.Record](in[0])
				if err != nil {
					return nil, fmt.Errorf("derived_virtual_data: %w", err)
				}
				sel, err := reactive.Decode[[]int](in[1])
				if err != nil {
					return nil, fmt.Errorf("derived_virtual_selected_rows: %w", err)
				}
				return []any{BuildMap(view, sel, a.Settings().MapZoom).Children()}, nil
			},
		},
		pieCallback("update_animal_type_pie", SlotAnimalTypePie, animals.FieldAnimalType, "Animal Type Distribution"),
		pieCallback("update_outcome_pie", SlotOutcomePie, animals.FieldOutcomeType, "Outcome Type Distribution"),
	}
}

// Los gráficos leen datatable-id.data (filtrado en servidor), no la vista del cliente.
func pieCallback(name string, out reactive.Slot, field, title string) reactive.Callback {
	return reactive.Callback{
		Name:    name,
		Inputs:  []reactive.Slot{SlotTableData},
		Outputs: []reactive.Slot{out},
		Fn: func(_ context.Context, in []json.RawMessage) ([]any, error) {
			rows, err := reactive.Decode[[]animals.Record](in[0])
			if err != nil {
				return nil, fmt.Errorf("data: %w", err)
			}
			return []any{PieFigure(rows, field, title)}, nil
		},
	}
}
