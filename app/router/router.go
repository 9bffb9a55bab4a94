package router

import (
	"net/http"
	"strings"

	"inmobiliaria-api/app/controller"
)

type Controllers struct {
	Contrato  *controller.ContratoController
	Lote      *controller.LoteController
	Cliente   *controller.ClienteController
	Pago      *controller.PagoController
	Ubicacion *controller.UbicacionController
	User      *controller.UserController
	Auth      *controller.AuthController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Contratos: create and list
	http.HandleFunc("/api/contratos", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Contrato.Create(w, r)
		} else if r.Method == http.MethodGet {
			controllers.Contrato.List(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Lotes collection
	http.HandleFunc("/api/lotes", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Lote.GetAll(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Lote.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Lote by id
	http.HandleFunc("/api/lotes/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			controllers.Lote.GetByID(w, r)
		case http.MethodPut, http.MethodPatch:
			controllers.Lote.Update(w, r)
		case http.MethodDelete:
			controllers.Lote.Delete(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Clientes collection
	http.HandleFunc("/api/clientes", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Cliente.GetAll(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Cliente.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Cliente by CURP, plus the document upload action
	http.HandleFunc("/api/clientes/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/documentos") {
			controllers.Cliente.UploadDocumento(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
			controllers.Cliente.GetByCURP(w, r)
		case http.MethodPut, http.MethodPatch:
			controllers.Cliente.Update(w, r)
		case http.MethodDelete:
			controllers.Cliente.Delete(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Pagos: schedule by contract, mark paid, receipt PDF
	http.HandleFunc("/api/pagos/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/pagos/")

		if strings.HasPrefix(path, "contrato/") {
			controllers.Pago.GetByContrato(w, r)
			return
		}
		if strings.HasSuffix(path, "/pagar") {
			controllers.Pago.MarcarPagado(w, r)
			return
		}
		if strings.HasSuffix(path, "/recibo") {
			controllers.Pago.GenerarRecibo(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Ubicación lookups
	http.HandleFunc("/api/ubicacion/estados", controllers.Ubicacion.GetEstados)
	http.HandleFunc("/api/ubicacion/ciudades/", controllers.Ubicacion.GetCiudades)
	http.HandleFunc("/api/ubicacion/colonias/", controllers.Ubicacion.GetColonias)
	http.HandleFunc("/api/ubicacion/cp/", controllers.Ubicacion.GetCiudadPorCP)

	// Users collection
	http.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.User.GetAll(w, r)
		} else if r.Method == http.MethodPost {
			controllers.User.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// User by id
	http.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			controllers.User.GetByID(w, r)
		case http.MethodPut, http.MethodPatch:
			controllers.User.Update(w, r)
		case http.MethodDelete:
			controllers.User.Delete(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Auth: 2FA login and password recovery
	http.HandleFunc("/api/auth/login", controllers.Auth.Login)
	http.HandleFunc("/api/auth/verify-otp", controllers.Auth.VerifyOTP)
	http.HandleFunc("/api/auth/recover", controllers.Auth.Recover)
	http.HandleFunc("/api/auth/reset-password", controllers.Auth.ResetPassword)
}
