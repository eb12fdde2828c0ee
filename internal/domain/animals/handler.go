package animals

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta la API JSON de registros.
// writeGuard protege las rutas de escritura (puede ser nil).
func RegisterRoutes(r chi.Router, svc *Service, writeGuard func(http.Handler) http.Handler) {
	r.Route("/api/records", func(rr chi.Router) {
		rr.Get("/", listRecordsHandler(svc))

		wr := rr
		if writeGuard != nil {
			wr = rr.With(writeGuard)
		}
		wr.Post("/", createRecordHandler(svc))
		wr.Patch("/", updateRecordsHandler(svc))
		wr.Delete("/", deleteRecordsHandler(svc))
	})
}

// updateRequest es el cuerpo de PATCH /api/records.
type updateRequest struct {
	Filter map[string]any `json:"filter"`
	Set    map[string]any `json:"set"`
}

// deleteRequest es el cuerpo de DELETE /api/records.
type deleteRequest struct {
	Filter map[string]any `json:"filter"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

// listRecordsHandler godoc
// @Summary Listar registros
// @Description Devuelve los registros que cumplen el filtro de tipo y grupo de edad. Sin parámetros devuelve toda la colección. El identificador interno no se expone.
// @Tags records
// @Produce json
// @Param animal_type query string false "Tipo de animal (Dog, Cat, ...)"
// @Param age query string false "Grupo de edad" Enums(young, adult, senior)
// @Success 200 {array} object
// @Failure 500 {string} string "internal error"
// @Router /api/records [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := ResolveFilter(q.Get("animal_type"), ParseAgeBucket(q.Get("age")))

		rows, err := svc.Table(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, rows)
	}
}

// createRecordHandler godoc
// @Summary Crear registro
// @Description Inserta un documento en la colección. Requiere `Authorization: Bearer <operator key>` si está configurada.
// @Tags records
// @Accept json
// @Param Authorization header string false "Bearer operator key"
// @Param payload body object true "Documento"
// @Success 201 {string} string "created"
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /api/records [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]any
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.Create(r.Context(), Record(doc)); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	}
}

// updateRecordsHandler godoc
// @Summary Actualizar registros
// @Description Aplica `set` (semántica $set) a todos los documentos que cumplen `filter`. Operadores: $eq, $gte, $lt.
// @Tags records
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer operator key"
// @Param payload body updateRequest true "Filtro y campos a modificar"
// @Success 200 {object} countResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /api/records [patch]
func updateRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		f, err := FilterFromMap(req.Filter)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		n, err := svc.Update(r.Context(), f, Record(req.Set))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, countResponse{Count: n})
	}
}

// deleteRecordsHandler godoc
// @Summary Borrar registros
// @Description Borra los documentos que cumplen `filter`. Un filtro vacío se rechaza para evitar vaciar la colección por error.
// @Tags records
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer operator key"
// @Param payload body deleteRequest true "Filtro"
// @Success 200 {object} countResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /api/records [delete]
func deleteRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		f, err := FilterFromMap(req.Filter)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if len(f) == 0 {
			http.Error(w, "filter required", http.StatusBadRequest)
			return
		}

		n, err := svc.Delete(r.Context(), f)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, countResponse{Count: n})
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
