package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"inmobiliaria-api/models"
	"inmobiliaria-api/repository"
)

// UserController handles HTTP requests for system users
type UserController struct {
	repository repository.UserRepositoryInterface
}

// NewUserController creates a new UserController
func NewUserController(repo repository.UserRepositoryInterface) *UserController {
	return &UserController{
		repository: repo,
	}
}

// userID extracts the user id from /api/users/{id}
func userID(r *http.Request) (int64, error) {
	path := strings.TrimPrefix(r.URL.Path, "/api/users/")
	if path == "" || strings.Contains(path, "/") {
		return 0, fmt.Errorf("invalid path format")
	}
	return strconv.ParseInt(path, 10, 64)
}

// GetAll handles GET /api/users
func (c *UserController) GetAll(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetUsers: Received %s request to %s", r.Method, r.URL.Path)

	users, err := c.repository.GetAll(r.Context())
	if err != nil {
		log.Printf("❌ GetUsers: Error fetching users: %v", err)
		writeError(w, err, "Error al obtener usuarios")
		return
	}

	log.Printf("✅ GetUsers: Successfully fetched %d users", len(users))
	writeJSON(w, http.StatusOK, users)
}

// GetByID handles GET /api/users/:id
func (c *UserController) GetByID(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetUser: Received %s request to %s", r.Method, r.URL.Path)

	id, err := userID(r)
	if err != nil {
		http.Error(w, "invalid user id parameter", http.StatusBadRequest)
		return
	}

	user, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("❌ GetUser: Error fetching user: %v", err)
		writeError(w, err, "Error al obtener usuario")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Create handles POST /api/users
// The password is stored as a bcrypt hash, never in clear.
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateUser: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateUser: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if detalles := req.Validate(); detalles != nil {
		log.Printf("❌ CreateUser: Validation failed: %v", detalles)
		writeValidationError(w, detalles)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("❌ CreateUser: Error hashing password: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error al crear usuario"})
		return
	}

	user, err := c.repository.Create(r.Context(), &req, string(hash))
	if err != nil {
		log.Printf("❌ CreateUser: Error creating user: %v", err)
		writeError(w, err, "Error al crear usuario")
		return
	}

	log.Printf("✅ CreateUser: Successfully created user id=%d", user.IDUsuario)
	writeJSON(w, http.StatusCreated, user)
}

// Update handles PUT/PATCH /api/users/:id
// A password in the patch is re-hashed before it reaches the repository.
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateUser: Received %s request to %s", r.Method, r.URL.Path)

	id, err := userID(r)
	if err != nil {
		http.Error(w, "invalid user id parameter", http.StatusBadRequest)
		return
	}

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Printf("❌ UpdateUser: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if patch.Password != nil {
		if len(*patch.Password) < 8 {
			writeValidationError(w, []string{"La contraseña debe tener al menos 8 caracteres."})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("❌ UpdateUser: Error hashing password: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error al actualizar usuario"})
			return
		}
		hashed := string(hash)
		patch.Password = &hashed
	}

	user, err := c.repository.Update(r.Context(), id, &patch)
	if err != nil {
		log.Printf("❌ UpdateUser: Error updating user: %v", err)
		writeError(w, err, "Error al actualizar usuario")
		return
	}

	log.Printf("✅ UpdateUser: Successfully updated user id=%d", id)
	writeJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/:id
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteUser: Received %s request to %s", r.Method, r.URL.Path)

	id, err := userID(r)
	if err != nil {
		http.Error(w, "invalid user id parameter", http.StatusBadRequest)
		return
	}

	user, err := c.repository.Delete(r.Context(), id)
	if err != nil {
		log.Printf("❌ DeleteUser: Error deleting user: %v", err)
		writeError(w, err, "Error al eliminar usuario")
		return
	}

	log.Printf("✅ DeleteUser: Successfully deleted user id=%d", id)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Usuario eliminado",
		"user":    user,
	})
}
