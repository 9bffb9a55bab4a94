package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"inmobiliaria-api/models"
	"inmobiliaria-api/repository"
	"inmobiliaria-api/service"
)

// Customer documents (INE, CURP) are capped at 5 MB.
const maxDocumentoSize = 5 << 20

// ClienteController handles HTTP requests for customers
type ClienteController struct {
	repository repository.ClienteRepositoryInterface
	drive      service.DriveServiceInterface
}

// NewClienteController creates a new ClienteController
func NewClienteController(repo repository.ClienteRepositoryInterface, drive service.DriveServiceInterface) *ClienteController {
	return &ClienteController{
		repository: repo,
		drive:      drive,
	}
}

// clienteCURP extracts the CURP from /api/clientes/{curp} or
// /api/clientes/{curp}/documentos
func clienteCURP(r *http.Request) (string, error) {
	path := strings.TrimPrefix(r.URL.Path, "/api/clientes/")
	curp := strings.TrimSuffix(path, "/documentos")
	if curp == "" || strings.Contains(curp, "/") {
		return "", fmt.Errorf("invalid path format")
	}
	return strings.ToUpper(curp), nil
}

// GetAll handles GET /api/clientes
func (c *ClienteController) GetAll(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetClientes: Received %s request to %s", r.Method, r.URL.Path)

	clientes, err := c.repository.GetAll(r.Context())
	if err != nil {
		log.Printf("❌ GetClientes: Error fetching customers: %v", err)
		writeError(w, err, "Error al obtener clientes")
		return
	}

	log.Printf("✅ GetClientes: Successfully fetched %d customers", len(clientes))
	writeJSON(w, http.StatusOK, clientes)
}

// GetByCURP handles GET /api/clientes/:curp
func (c *ClienteController) GetByCURP(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetCliente: Received %s request to %s", r.Method, r.URL.Path)

	curp, err := clienteCURP(r)
	if err != nil {
		http.Error(w, "curp parameter is required", http.StatusBadRequest)
		return
	}

	cliente, err := c.repository.GetByCURP(r.Context(), curp)
	if err != nil {
		log.Printf("❌ GetCliente: Error fetching customer: %v", err)
		writeError(w, err, "Error al obtener cliente")
		return
	}

	log.Printf("✅ GetCliente: Successfully fetched customer curp=%s", curp)
	writeJSON(w, http.StatusOK, cliente)
}

// Create handles POST /api/clientes
func (c *ClienteController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateCliente: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateClienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateCliente: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	req.CURP = strings.ToUpper(strings.TrimSpace(req.CURP))

	if detalles := req.Validate(); detalles != nil {
		log.Printf("❌ CreateCliente: Validation failed: %v", detalles)
		writeValidationError(w, detalles)
		return
	}

	cliente, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		log.Printf("❌ CreateCliente: Error creating customer: %v", err)
		writeError(w, err, "Error al crear cliente")
		return
	}

	log.Printf("✅ CreateCliente: Successfully created customer id=%d", cliente.IDCliente)
	writeJSON(w, http.StatusCreated, cliente)
}

// Update handles PUT/PATCH /api/clientes/:curp
// Only the fields present in the body are updated.
func (c *ClienteController) Update(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateCliente: Received %s request to %s", r.Method, r.URL.Path)

	curp, err := clienteCURP(r)
	if err != nil {
		http.Error(w, "curp parameter is required", http.StatusBadRequest)
		return
	}

	var patch models.ClientePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Printf("❌ UpdateCliente: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	cliente, err := c.repository.Update(r.Context(), curp, &patch)
	if err != nil {
		log.Printf("❌ UpdateCliente: Error updating customer: %v", err)
		writeError(w, err, "Error al actualizar cliente")
		return
	}

	log.Printf("✅ UpdateCliente: Successfully updated customer curp=%s", curp)
	writeJSON(w, http.StatusOK, cliente)
}

// Delete handles DELETE /api/clientes/:curp
func (c *ClienteController) Delete(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteCliente: Received %s request to %s", r.Method, r.URL.Path)

	curp, err := clienteCURP(r)
	if err != nil {
		http.Error(w, "curp parameter is required", http.StatusBadRequest)
		return
	}

	cliente, err := c.repository.Delete(r.Context(), curp)
	if err != nil {
		log.Printf("❌ DeleteCliente: Error deleting customer: %v", err)
		writeError(w, err, "Error al eliminar cliente")
		return
	}

	log.Printf("✅ DeleteCliente: Successfully deleted customer curp=%s", curp)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Cliente eliminado",
		"cliente": cliente,
	})
}

// UploadDocumento handles POST /api/clientes/:curp/documentos
// Multipart form with a "documento" file and a "tipo" field
// ("identificacion" or "curp"). The file goes to Drive and the
// resulting link is stored on the customer row.
func (c *ClienteController) UploadDocumento(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UploadDocumento: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ UploadDocumento: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	curp, err := clienteCURP(r)
	if err != nil {
		http.Error(w, "curp parameter is required", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxDocumentoSize); err != nil {
		log.Printf("❌ UploadDocumento: invalid multipart form: %v", err)
		http.Error(w, fmt.Sprintf("invalid multipart form: %v", err), http.StatusBadRequest)
		return
	}

	tipo := r.FormValue("tipo")
	if tipo != "identificacion" && tipo != "curp" {
		http.Error(w, "tipo must be 'identificacion' or 'curp'", http.StatusBadRequest)
		return
	}

	// The customer must exist before we touch Drive.
	if _, err := c.repository.GetByCURP(r.Context(), curp); err != nil {
		log.Printf("❌ UploadDocumento: %v", err)
		writeError(w, err, "Error al obtener cliente")
		return
	}

	file, header, err := r.FormFile("documento")
	if err != nil {
		log.Printf("❌ UploadDocumento: missing documento file: %v", err)
		http.Error(w, "documento file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	link, err := c.drive.UploadClienteDocument(r.Context(), curp, tipo, header.Filename, file)
	if err != nil {
		log.Printf("❌ UploadDocumento: Error uploading document: %v", err)
		writeError(w, err, "Error al subir documento")
		return
	}

	patch := &models.ClientePatch{}
	if tipo == "identificacion" {
		patch.DocIdentificacion = &link
	} else {
		patch.DocCURP = &link
	}

	cliente, err := c.repository.Update(r.Context(), curp, patch)
	if err != nil {
		log.Printf("❌ UploadDocumento: Error saving document link: %v", err)
		writeError(w, err, "Error al actualizar cliente")
		return
	}

	log.Printf("✅ UploadDocumento: Document %s stored for customer curp=%s", tipo, curp)
	writeJSON(w, http.StatusOK, cliente)
}
