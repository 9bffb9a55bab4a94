package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"inmobiliaria-api/models"
	"inmobiliaria-api/repository"
)

// ContratoController handles HTTP requests for sales contracts
type ContratoController struct {
	repository repository.ContratoRepositoryInterface
}

// NewContratoController creates a new ContratoController
func NewContratoController(repo repository.ContratoRepositoryInterface) *ContratoController {
	return &ContratoController{
		repository: repo,
	}
}

// Create handles POST /api/contratos
// Example request:
// POST /api/contratos
// {
//   "id_lote": 7,
//   "correo_cliente": "ana@example.com",
//   "nombre": "Ana",
//   "apellido_paterno": "López",
//   "precio_total": 120000.00,
//   "enganche": 20000.00,
//   "plazo_meses": 10
// }
// Example response (201):
// {
//   "contrato": { "id_contrato": 15, "id_lote": 7, ... },
//   "mensualidad": 10000.00,
//   "pagos": [ { "id_pago": 301, "numero_pago": 1, ... }, ... ]
// }
func (c *ContratoController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateContrato: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ CreateContrato: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CreateContratoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateContrato: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if detalles := req.Validate(); detalles != nil {
		log.Printf("❌ CreateContrato: Validation failed: %v", detalles)
		writeValidationError(w, detalles)
		return
	}

	// The down payment must leave something to finance.
	if req.Enganche.GreaterThanOrEqual(req.PrecioTotal) {
		log.Printf("❌ CreateContrato: enganche %s >= precio_total %s", req.Enganche, req.PrecioTotal)
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"message": "El enganche debe ser menor que el precio total",
		})
		return
	}

	resp, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		log.Printf("❌ CreateContrato: Error creating contract: %v", err)
		writeError(w, err, "Error al crear contrato")
		return
	}

	log.Printf("✅ CreateContrato: Successfully created contract id=%d with %d payments",
		resp.Contrato.IDContrato, len(resp.Pagos))
	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /api/contratos
// Returns contracts joined with their client and property, newest first.
func (c *ContratoController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListContratos: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ ListContratos: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contratos, err := c.repository.List(r.Context())
	if err != nil {
		log.Printf("❌ ListContratos: Error fetching contracts: %v", err)
		writeError(w, err, "Error al obtener contratos")
		return
	}

	log.Printf("✅ ListContratos: Successfully fetched %d contracts", len(contratos))
	writeJSON(w, http.StatusOK, contratos)
}
