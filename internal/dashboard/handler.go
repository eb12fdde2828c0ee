package dashboard

import (
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"

	"shelter-dashboard/internal/reactive"

	"github.com/go-chi/chi/v5"
)

//go:embed assets
var assetsFS embed.FS

var pageTmpl = template.Must(template.ParseFS(assetsFS, "assets/index.html.tmpl"))

// RegisterRoutes monta la página, los assets y los endpoints de callbacks.
func RegisterRoutes(r chi.Router, app *App) {
	static, _ := fs.Sub(assetsFS, "assets")

	r.Get("/", pageHandler(app))
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(static))))

	r.Route("/_dash", func(dr chi.Router) {
		dr.Get("/layout", layoutHandler(app))
		dr.Post("/initial", initialHandler(app))
		dr.Post("/update", updateHandler(app))
	})
}

// updateRequest: slots que cambiaron + valores actuales de todos los slots que el cliente conoce.
type updateRequest struct {
	Changed []reactive.Slot `json:"changed"`
	State   reactive.State  `json:"state"`
}

type updateResponse struct {
	Outputs reactive.State `json:"outputs"`
}

func pageHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := app.Settings()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTmpl.Execute(w, map[string]any{"Title": s.Title}); err != nil {
			app.log.Error("render page failed", map[string]any{"error": err.Error()})
		}
	}
}

// layoutHandler godoc
// @Summary Layout del dashboard
// @Description Árbol declarativo de componentes (header, filtros, tabla, gráficos, mapa). Incluye los datos iniciales de la tabla.
// @Tags dashboard
// @Produce json
// @Success 200 {object} Component
// @Router /_dash/layout [get]
func layoutHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, app.Layout())
	}
}

// initialHandler godoc
// @Summary Evaluación inicial
// @Description Ejecuta todos los callbacks en orden topológico con el estado recibido.
// @Tags dashboard
// @Accept json
// @Produce json
// @Param payload body updateRequest true "Estado actual (changed se ignora)"
// @Success 200 {object} updateResponse
// @Failure 400 {string} string "invalid json"
// @Failure 500 {string} string "callback failed"
// @Router /_dash/initial [post]
func initialHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		out, err := app.Initial(r.Context(), req.State)
		if err != nil {
			app.log.Error("initial dispatch failed", map[string]any{"error": err.Error()})
			http.Error(w, "callback failed", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, updateResponse{Outputs: out})
	}
}

// updateHandler godoc
// @Summary Dispatch de callbacks
// @Description Re-evalúa los callbacks que dependen de los slots en `changed` y devuelve los slots actualizados. Un error del store corta el request (500).
// @Tags dashboard
// @Accept json
// @Produce json
// @Param payload body updateRequest true "Slots cambiados y estado actual"
// @Success 200 {object} updateResponse
// @Failure 400 {string} string "invalid json / changed required"
// @Failure 500 {string} string "callback failed"
// @Router /_dash/update [post]
func updateHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if len(req.Changed) == 0 {
			http.Error(w, "changed required", http.StatusBadRequest)
			return
		}

		out, err := app.Dispatch(r.Context(), req.State, req.Changed)
		if err != nil {
			app.log.Error("dispatch failed", map[string]any{"changed": req.Changed, "error": err.Error()})
			http.Error(w, "callback failed", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, updateResponse{Outputs: out})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
