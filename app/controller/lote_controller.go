package controller

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"inmobiliaria-api/models"
	"inmobiliaria-api/repository"
	"inmobiliaria-api/service"
)

// Uploaded property photos are capped at 10 MB before optimization.
const maxFotoSize = 10 << 20

// LoteController handles HTTP requests for properties
type LoteController struct {
	repository repository.LoteRepositoryInterface
}

// NewLoteController creates a new LoteController
func NewLoteController(repo repository.LoteRepositoryInterface) *LoteController {
	return &LoteController{
		repository: repo,
	}
}

// loteID extracts the property id from /api/lotes/{id}
func loteID(r *http.Request) (int64, error) {
	path := strings.TrimPrefix(r.URL.Path, "/api/lotes/")
	if path == "" || strings.Contains(path, "/") {
		return 0, fmt.Errorf("invalid path format")
	}
	return strconv.ParseInt(path, 10, 64)
}

// GetAll handles GET /api/lotes
func (c *LoteController) GetAll(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetLotes: Received %s request to %s", r.Method, r.URL.Path)

	lotes, err := c.repository.GetAll(r.Context())
	if err != nil {
		log.Printf("❌ GetLotes: Error fetching properties: %v", err)
		writeError(w, err, "Error al obtener lotes")
		return
	}

	log.Printf("✅ GetLotes: Successfully fetched %d properties", len(lotes))
	writeJSON(w, http.StatusOK, lotes)
}

// GetByID handles GET /api/lotes/:id
func (c *LoteController) GetByID(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetLote: Received %s request to %s", r.Method, r.URL.Path)

	id, err := loteID(r)
	if err != nil {
		http.Error(w, "invalid lote id parameter", http.StatusBadRequest)
		return
	}

	lote, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("❌ GetLote: Error fetching property: %v", err)
		writeError(w, err, "Error al obtener lote")
		return
	}

	log.Printf("✅ GetLote: Successfully fetched property id=%d", id)
	writeJSON(w, http.StatusOK, lote)
}

// parseLoteForm reads the multipart form fields of a create request
func parseLoteForm(r *http.Request) (*models.CreateLoteRequest, error) {
	if err := r.ParseMultipartForm(maxFotoSize); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	req := &models.CreateLoteRequest{
		Tipo:               r.FormValue("tipo"),
		NumLote:            r.FormValue("numlote"),
		Manzana:            r.FormValue("manzana"),
		Direccion:          r.FormValue("direccion"),
		NombreColoniaNueva: r.FormValue("nombre_colonia_nueva"),
		EstadoPropiedad:    r.FormValue("estado_propiedad"),
	}

	for field, dest := range map[string]*int64{
		"id_estado":  &req.IDEstado,
		"id_ciudad":  &req.IDCiudad,
		"id_colonia": &req.IDColonia,
	} {
		if v := r.FormValue(field); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %q", field, v)
			}
			*dest = n
		}
	}

	for field, dest := range map[string]*decimal.Decimal{
		"superficie_m2": &req.SuperficieM2,
		"precio":        &req.Precio,
	} {
		if v := r.FormValue(field); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %q", field, v)
			}
			*dest = d
		}
	}

	return req, nil
}

// readFoto pulls the optional "imagen" file out of the multipart form,
// optimizes it and stores it on disk. Returns the stored path, or "".
func readFoto(r *http.Request) (string, error) {
	file, _, err := r.FormFile("imagen")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("invalid imagen file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxFotoSize))
	if err != nil {
		return "", fmt.Errorf("failed to read imagen file: %w", err)
	}

	return service.SaveFoto(data)
}

// Create handles POST /api/lotes (multipart/form-data, optional "imagen" file)
func (c *LoteController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateLote: Received %s request to %s", r.Method, r.URL.Path)

	req, err := parseLoteForm(r)
	if err != nil {
		log.Printf("❌ CreateLote: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if detalles := req.Validate(); detalles != nil {
		log.Printf("❌ CreateLote: Validation failed: %v", detalles)
		writeValidationError(w, detalles)
		return
	}

	fotoPath, err := readFoto(r)
	if err != nil {
		log.Printf("❌ CreateLote: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Imagen = fotoPath

	lote, err := c.repository.Create(r.Context(), req)
	if err != nil {
		log.Printf("❌ CreateLote: Error creating property: %v", err)
		service.DeleteFoto(fotoPath)
		writeError(w, err, "Error al crear lote")
		return
	}

	log.Printf("✅ CreateLote: Successfully created property id=%d", lote.IDPropiedad)
	writeJSON(w, http.StatusCreated, lote)
}

// Update handles PUT/PATCH /api/lotes/:id (multipart/form-data)
// Only the fields present in the form are updated.
func (c *LoteController) Update(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateLote: Received %s request to %s", r.Method, r.URL.Path)

	id, err := loteID(r)
	if err != nil {
		http.Error(w, "invalid lote id parameter", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxFotoSize); err != nil {
		log.Printf("❌ UpdateLote: invalid multipart form: %v", err)
		http.Error(w, fmt.Sprintf("invalid multipart form: %v", err), http.StatusBadRequest)
		return
	}

	patch := &models.LotePatch{}
	for field, dest := range map[string]**string{
		"tipo":                 &patch.Tipo,
		"numlote":              &patch.NumLote,
		"manzana":              &patch.Manzana,
		"direccion":            &patch.Direccion,
		"nombre_colonia_nueva": &patch.NombreColoniaNueva,
		"estado_propiedad":     &patch.EstadoPropiedad,
	} {
		if _, ok := r.MultipartForm.Value[field]; ok {
			v := r.FormValue(field)
			*dest = &v
		}
	}
	for field, dest := range map[string]**int64{
		"id_estado":  &patch.IDEstado,
		"id_ciudad":  &patch.IDCiudad,
		"id_colonia": &patch.IDColonia,
	} {
		if v := r.FormValue(field); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				http.Error(w, fmt.Sprintf("invalid %s: %q", field, v), http.StatusBadRequest)
				return
			}
			*dest = &n
		}
	}
	for field, dest := range map[string]**decimal.Decimal{
		"superficie_m2": &patch.SuperficieM2,
		"precio":        &patch.Precio,
	} {
		if v := r.FormValue(field); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				http.Error(w, fmt.Sprintf("invalid %s: %q", field, v), http.StatusBadRequest)
				return
			}
			*dest = &d
		}
	}

	fotoPath, err := readFoto(r)
	if err != nil {
		log.Printf("❌ UpdateLote: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if fotoPath != "" {
		patch.Imagen = &fotoPath
	}

	lote, err := c.repository.Update(r.Context(), id, patch)
	if err != nil {
		log.Printf("❌ UpdateLote: Error updating property: %v", err)
		service.DeleteFoto(fotoPath)
		writeError(w, err, "Error al actualizar lote")
		return
	}

	log.Printf("✅ UpdateLote: Successfully updated property id=%d", id)
	writeJSON(w, http.StatusOK, lote)
}

// Delete handles DELETE /api/lotes/:id
func (c *LoteController) Delete(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteLote: Received %s request to %s", r.Method, r.URL.Path)

	id, err := loteID(r)
	if err != nil {
		http.Error(w, "invalid lote id parameter", http.StatusBadRequest)
		return
	}

	lote, err := c.repository.Delete(r.Context(), id)
	if err != nil {
		log.Printf("❌ DeleteLote: Error deleting property: %v", err)
		writeError(w, err, "Error al eliminar lote")
		return
	}

	service.DeleteFoto(lote.Imagen)

	log.Printf("✅ DeleteLote: Successfully deleted property id=%d", id)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Lote eliminado",
		"lote":    lote,
	})
}
