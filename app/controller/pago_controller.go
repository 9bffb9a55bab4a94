package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"inmobiliaria-api/models"
	"inmobiliaria-api/repository"
	"inmobiliaria-api/service"
)

// PagoController handles HTTP requests for installments
type PagoController struct {
	repository repository.PagoRepositoryInterface
	contratos  repository.ContratoRepositoryInterface
	recibos    service.ReciboServiceInterface
}

// NewPagoController creates a new PagoController
func NewPagoController(
	repo repository.PagoRepositoryInterface,
	contratos repository.ContratoRepositoryInterface,
	recibos service.ReciboServiceInterface,
) *PagoController {
	return &PagoController{
		repository: repo,
		contratos:  contratos,
		recibos:    recibos,
	}
}

// pathID parses the numeric id that follows prefix and precedes suffix
func pathID(r *http.Request, prefix, suffix string) (int64, error) {
	path := strings.TrimPrefix(r.URL.Path, prefix)
	idStr := strings.TrimSuffix(path, suffix)
	if idStr == "" || strings.Contains(idStr, "/") {
		return 0, fmt.Errorf("invalid path format")
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// GetByContrato handles GET /api/pagos/contrato/:id
// Returns the installment schedule of a contract in sequence order.
func (c *PagoController) GetByContrato(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetPagos: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ GetPagos: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idContrato, err := pathID(r, "/api/pagos/contrato/", "")
	if err != nil {
		http.Error(w, "invalid contrato id parameter", http.StatusBadRequest)
		return
	}

	pagos, err := c.repository.GetByContrato(r.Context(), idContrato)
	if err != nil {
		log.Printf("❌ GetPagos: Error fetching payments: %v", err)
		writeError(w, err, "Error al obtener pagos")
		return
	}

	log.Printf("✅ GetPagos: Successfully fetched %d payments for contract id=%d", len(pagos), idContrato)
	writeJSON(w, http.StatusOK, pagos)
}

// MarcarPagado handles PUT /api/pagos/:id/pagar
// Example request: {"metodo_pago": "transferencia"}
// Marks the installment paid with today's date; the method defaults
// to "efectivo" when absent.
func (c *PagoController) MarcarPagado(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 MarcarPagado: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		log.Printf("❌ MarcarPagado: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idPago, err := pathID(r, "/api/pagos/", "/pagar")
	if err != nil {
		http.Error(w, "invalid pago id parameter", http.StatusBadRequest)
		return
	}

	// An empty body is fine, the payment method then defaults.
	var req models.MarcarPagadoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		log.Printf("❌ MarcarPagado: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	pago, err := c.repository.MarcarPagado(r.Context(), idPago, req.MetodoPago)
	if err != nil {
		log.Printf("❌ MarcarPagado: Error marking payment: %v", err)
		writeError(w, err, "Error al registrar pago")
		return
	}

	log.Printf("✅ MarcarPagado: Payment id=%d marked as paid (%s)", idPago, pago.MetodoPago)
	writeJSON(w, http.StatusOK, pago)
}

// GenerarRecibo handles GET /api/pagos/:id/recibo
// Streams the payment receipt as a PDF. Only paid installments have receipts.
func (c *PagoController) GenerarRecibo(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GenerarRecibo: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ GenerarRecibo: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idPago, err := pathID(r, "/api/pagos/", "/recibo")
	if err != nil {
		http.Error(w, "invalid pago id parameter", http.StatusBadRequest)
		return
	}

	pago, err := c.repository.GetByID(r.Context(), idPago)
	if err != nil {
		log.Printf("❌ GenerarRecibo: Error fetching payment: %v", err)
		writeError(w, err, "Error al obtener pago")
		return
	}

	if pago.EstadoPago != models.EstadoPagoPagado {
		log.Printf("❌ GenerarRecibo: Payment id=%d is not paid (estado=%s)", idPago, pago.EstadoPago)
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"message": "El pago no ha sido realizado, no hay recibo que generar",
		})
		return
	}

	contrato, err := c.contratos.GetByID(r.Context(), pago.IDContrato)
	if err != nil {
		log.Printf("❌ GenerarRecibo: Error fetching contract: %v", err)
		writeError(w, err, "Error al obtener el contrato")
		return
	}

	pdf, err := c.recibos.GenerarRecibo(r.Context(), pago, contrato)
	if err != nil {
		log.Printf("❌ GenerarRecibo: Error generating PDF: %v", err)
		writeError(w, err, "Error al generar el recibo")
		return
	}

	log.Printf("✅ GenerarRecibo: Receipt generated for payment id=%d (%d bytes)", idPago, len(pdf))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=recibo_%d.pdf", idPago))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
