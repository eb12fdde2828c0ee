// Package reactive evalúa callbacks puros registrados sobre slots con nombre
// ("componente.propiedad"). Cuando cambia un slot se re-ejecutan, en orden
// topológico, todos los callbacks que dependen de él (directa o transitivamente).
package reactive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrCycle           = errors.New("callback graph has a cycle")
	ErrDuplicateOutput = errors.New("output slot already owned by another callback")
	ErrInvalid         = errors.New("invalid callback")
)

// Slot identifica una propiedad de un componente: "datatable-id.data".
type Slot string

// S arma un Slot a partir de id y propiedad.
func S(id, prop string) Slot { return Slot(id + "." + prop) }

// State son los valores actuales de los slots, ya serializados.
type State map[Slot]json.RawMessage

// Func recibe los valores de Inputs (mismo orden) y devuelve uno por Output.
type Func func(ctx context.Context, in []json.RawMessage) ([]any, error)

type Callback struct {
	Name    string
	Inputs  []Slot
	Outputs []Slot
	Fn      Func
}

// Observer recibe la duración y el error de cada callback ejecutado.
type Observer interface {
	ObserveCallback(name string, d time.Duration, err error)
}

// Graph es inmutable después de NewGraph; se puede usar desde varios requests a la vez.
type Graph struct {
	callbacks []Callback
	order     []int
	obs       Observer
}

// NewGraph valida los callbacks y calcula el orden topológico.
func NewGraph(obs Observer, cbs ...Callback) (*Graph, error) {
	owner := map[Slot]int{}
	for i, cb := range cbs {
		if strings.TrimSpace(cb.Name) == "" || cb.Fn == nil || len(cb.Outputs) == 0 {
			return nil, fmt.Errorf("%w: #%d %q", ErrInvalid, i, cb.Name)
		}
		for _, out := range cb.Outputs {
			if prev, ok := owner[out]; ok {
				return nil, fmt.Errorf("%w: %s (%s, %s)", ErrDuplicateOutput, out, cbs[prev].Name, cb.Name)
			}
			owner[out] = i
		}
	}

	// arista j -> i si una salida de j es entrada de i
	indeg := make([]int, len(cbs))
	next := make([][]int, len(cbs))
	for i, cb := range cbs {
		seen := map[int]bool{}
		for _, in := range cb.Inputs {
			j, ok := owner[in]
			if !ok || seen[j] {
				continue
			}
			if j == i {
				return nil, fmt.Errorf("%w: %s reads its own output %s", ErrCycle, cb.Name, in)
			}
			seen[j] = true
			next[j] = append(next[j], i)
			indeg[i]++
		}
	}

	// Kahn; a igualdad de grado se respeta el orden de registro.
	order := make([]int, 0, len(cbs))
	queue := make([]int, 0)
	for i := range cbs {
		if indeg[i] == 0 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)
		for _, k := range next[i] {
			indeg[k]--
			if indeg[k] == 0 {
				queue = append(queue, k)
			}
		}
	}
	if len(order) != len(cbs) {
		return nil, ErrCycle
	}

	return &Graph{
		callbacks: append([]Callback(nil), cbs...),
		order:     order,
		obs:       obs,
	}, nil
}

// Dispatch ejecuta los callbacks afectados por changed y devuelve solo los slots actualizados.
// Cada callback ve las salidas de los que corrieron antes (no hay vistas parciales).
// state no se modifica.
func (g *Graph) Dispatch(ctx context.Context, state State, changed []Slot) (State, error) {
	dirty := map[Slot]bool{}
	for _, s := range changed {
		dirty[s] = true
	}
	return g.run(ctx, state, func(cb Callback) bool {
		for _, in := range cb.Inputs {
			if dirty[in] {
				return true
			}
		}
		return false
	}, dirty)
}

// Initial ejecuta todos los callbacks (carga inicial de la página).
func (g *Graph) Initial(ctx context.Context, state State) (State, error) {
	return g.run(ctx, state, func(Callback) bool { return true }, map[Slot]bool{})
}

func (g *Graph) run(ctx context.Context, state State, affected func(Callback) bool, dirty map[Slot]bool) (State, error) {
	cur := make(State, len(state))
	for k, v := range state {
		cur[k] = v
	}
	updated := State{}

	for _, i := range g.order {
		cb := g.callbacks[i]
		if !affected(cb) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		in := make([]json.RawMessage, len(cb.Inputs))
		for k, s := range cb.Inputs {
			in[k] = cur[s]
		}

		start := time.Now()
		outs, err := cb.Fn(ctx, in)
		if err == nil && len(outs) != len(cb.Outputs) {
			err = fmt.Errorf("%w: %s returned %d values for %d outputs", ErrInvalid, cb.Name, len(outs), len(cb.Outputs))
		}
		if g.obs != nil {
			g.obs.ObserveCallback(cb.Name, time.Since(start), err)
		}
		if err != nil {
			return nil, fmt.Errorf("callback %s: %w", cb.Name, err)
		}

		for k, s := range cb.Outputs {
			b, err := json.Marshal(outs[k])
			if err != nil {
				return nil, fmt.Errorf("callback %s: encode %s: %w", cb.Name, s, err)
			}
			cur[s] = b
			updated[s] = b
			dirty[s] = true
		}
	}

	return updated, nil
}

// Decode lee un valor de slot. Ausente o null => zero value.
func Decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 || string(raw) == "null" {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, err
	}
	return v, nil
}
