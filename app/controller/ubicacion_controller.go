package controller

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"inmobiliaria-api/repository"
)

// UbicacionController handles HTTP requests for geographic reference data
type UbicacionController struct {
	repository repository.UbicacionRepositoryInterface
}

// NewUbicacionController creates a new UbicacionController
func NewUbicacionController(repo repository.UbicacionRepositoryInterface) *UbicacionController {
	return &UbicacionController{
		repository: repo,
	}
}

// GetEstados handles GET /api/ubicacion/estados
func (c *UbicacionController) GetEstados(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetEstados: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	estados, err := c.repository.GetEstados(r.Context())
	if err != nil {
		log.Printf("❌ GetEstados: Error fetching states: %v", err)
		writeError(w, err, "Error al obtener los estados")
		return
	}

	writeJSON(w, http.StatusOK, estados)
}

// GetCiudades handles GET /api/ubicacion/ciudades/:estadoId
func (c *UbicacionController) GetCiudades(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetCiudades: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/ubicacion/ciudades/")
	idEstado, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid estado id parameter", http.StatusBadRequest)
		return
	}

	ciudades, err := c.repository.GetCiudades(r.Context(), idEstado)
	if err != nil {
		log.Printf("❌ GetCiudades: Error fetching cities: %v", err)
		writeError(w, err, "Error al obtener las ciudades")
		return
	}

	writeJSON(w, http.StatusOK, ciudades)
}

// GetColonias handles GET /api/ubicacion/colonias/:ciudadId
func (c *UbicacionController) GetColonias(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetColonias: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/ubicacion/colonias/")
	idCiudad, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid ciudad id parameter", http.StatusBadRequest)
		return
	}

	colonias, err := c.repository.GetColonias(r.Context(), idCiudad)
	if err != nil {
		log.Printf("❌ GetColonias: Error fetching neighborhoods: %v", err)
		writeError(w, err, "Error al obtener las colonias")
		return
	}

	writeJSON(w, http.StatusOK, colonias)
}

// GetCiudadPorCP handles GET /api/ubicacion/cp/:codigoPostal
func (c *UbicacionController) GetCiudadPorCP(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetCiudadPorCP: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	codigoPostal := strings.TrimPrefix(r.URL.Path, "/api/ubicacion/cp/")
	if codigoPostal == "" || strings.Contains(codigoPostal, "/") {
		http.Error(w, "codigo postal parameter is required", http.StatusBadRequest)
		return
	}

	ciudad, err := c.repository.GetCiudadPorCP(r.Context(), codigoPostal)
	if err != nil {
		log.Printf("❌ GetCiudadPorCP: Error resolving postal code: %v", err)
		writeError(w, err, "Error al buscar por código postal")
		return
	}

	writeJSON(w, http.StatusOK, ciudad)
}
