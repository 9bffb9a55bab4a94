package controller

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"inmobiliaria-api/apperrors"
	"inmobiliaria-api/models"
	"inmobiliaria-api/repository"
	"inmobiliaria-api/service"
)

// AuthController handles the two-step login, OTP verification and
// password recovery endpoints.
type AuthController struct {
	users repository.UserRepositoryInterface
	store service.AuthStoreInterface
	mail  service.MailServiceInterface
}

// NewAuthController creates a new AuthController
func NewAuthController(
	users repository.UserRepositoryInterface,
	store service.AuthStoreInterface,
	mail service.MailServiceInterface,
) *AuthController {
	return &AuthController{
		users: users,
		store: store,
		mail:  mail,
	}
}

// writeAuthFail answers an auth endpoint error in its status/msg shape
func writeAuthFail(w http.ResponseWriter, status int, msg string) {
	s := "fail"
	if status >= 500 {
		s = "error"
	}
	writeJSON(w, status, models.LoginResponse{Status: s, Mensaje: msg})
}

// generateOTP returns a random 6-digit code
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Login handles POST /api/auth/login
// Checks the password and, when valid, emails a 6-digit code. The session
// token is only issued after the code is verified.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Login: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Login: Failed to decode request body: %v", err)
		writeAuthFail(w, http.StatusBadRequest, "Correo y contraseña son requeridos")
		return
	}

	if detalles := req.Validate(); detalles != nil {
		log.Printf("❌ Login: Validation failed: %v", detalles)
		writeAuthFail(w, http.StatusBadRequest, detalles[0])
		return
	}

	ctx := r.Context()

	user, err := c.users.GetByCorreo(ctx, req.Correo)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) {
			log.Printf("❌ Login: User not found: %s", req.Correo)
			writeAuthFail(w, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		log.Printf("❌ Login: Error fetching user: %v", err)
		writeAuthFail(w, http.StatusInternalServerError, "Error en el servidor")
		return
	}

	locked, err := c.store.IsLockedOut(ctx, req.Correo)
	if err != nil {
		log.Printf("❌ Login: Error checking lockout: %v", err)
		writeAuthFail(w, http.StatusInternalServerError, "Error en el servidor")
		return
	}
	if locked {
		log.Printf("⚠️ Login: Account locked: %s", req.Correo)
		writeAuthFail(w, http.StatusBadRequest, "Usuario bloqueado temporalmente")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		justLocked, serr := c.store.RegisterFailedLogin(ctx, req.Correo)
		if serr != nil {
			log.Printf("❌ Login: Error registering failed attempt: %v", serr)
		}
		if justLocked {
			writeAuthFail(w, http.StatusBadRequest, "Usuario bloqueado por intentos fallidos")
			return
		}
		writeAuthFail(w, http.StatusBadRequest, "Contraseña incorrecta")
		return
	}

	if err := c.store.ClearAttempts(ctx, req.Correo); err != nil {
		log.Printf("⚠️ Login: Error clearing attempts: %v", err)
	}

	otp, err := generateOTP()
	if err != nil {
		log.Printf("❌ Login: Error generating OTP: %v", err)
		writeAuthFail(w, http.StatusInternalServerError, "Error en el servidor")
		return
	}

	if err := c.store.SetOTP(ctx, req.Correo, otp); err != nil {
		log.Printf("❌ Login: Error storing OTP: %v", err)
		writeAuthFail(w, http.StatusInternalServerError, "Error en el servidor")
		return
	}

	if err := c.mail.SendOTP(ctx, req.Correo, otp); err != nil {
		log.Printf("❌ Login: Error sending OTP email: %v", err)
		writeAuthFail(w, http.StatusInternalServerError, "Error enviando correo")
		return
	}

	log.Printf("✅ Login: OTP sent to %s", req.Correo)
	writeJSON(w, http.StatusOK, models.LoginResponse{
		Status:  "success",
		Mensaje: "Código 2FA enviado al correo",
	})
}

// VerifyOTP handles POST /api/auth/verify-otp
// Exchanges a valid code for a signed session token.
func (c *AuthController) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 VerifyOTP: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ VerifyOTP: Failed to decode request body: %v", err)
		writeAuthFail(w, http.StatusBadRequest, "Correo y OTP requeridos")
		return
	}

	if detalles := models.CheckStruct(&req); detalles != nil {
		log.Printf("❌ VerifyOTP: Validation failed: %v", detalles)
		writeAuthFail(w, http.StatusBadRequest, detalles[0])
		return
	}

	ctx := r.Context()

	stored, err := c.store.GetOTP(ctx, req.Correo)
	if err != nil {
		log.Printf("❌ VerifyOTP: Error fetching OTP: %v", err)
		writeAuthFail(w, http.StatusInternalServerError, "Error en el servidor")
		return
	}
	if stored == "" {
		writeAuthFail(w, http.StatusBadRequest, "OTP no generado o expirado")
		return
	}
	if stored != req.OTP {
		writeAuthFail(w, http.StatusBadRequest, "OTP incorrecto")
		return
	}

	if err := c.store.DeleteOTP(ctx, req.Correo); err != nil {
		log.Printf("⚠️ VerifyOTP: Error deleting OTP: %v", err)
	}

	user, err := c.users.GetByCorreo(ctx, req.Correo)
	if err != nil {
		log.Printf("❌ VerifyOTP: Error fetching user: %v", err)
		writeAuthFail(w, http.StatusInternalServerError, "Error en el servidor")
		return
	}

	token, err := signToken(user)
	if err != nil {
		log.Printf("❌ VerifyOTP: Error signing token: %v", err)
		writeAuthFail(w, http.StatusInternalServerError, "Error en el servidor")
		return
	}

	log.Printf("✅ VerifyOTP: Authentication complete for %s", req.Correo)
	writeJSON(w, http.StatusOK, models.TokenResponse{
		Status: "success",
		Token:  token,
		User:   user,
	})
}

// signToken issues a 24-hour HS256 token carrying the user id and role
func signToken(user *models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	claims := jwt.MapClaims{
		"id":  user.IDUsuario,
		"rol": user.Rol,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Recover handles POST /api/auth/recover
// Emails a short-lived password-reset link.
func (c *AuthController) Recover(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Recover: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.RecoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Recover: Failed to decode request body: %v", err)
		writeAuthFail(w, http.StatusBadRequest, "Correo requerido")
		return
	}

	if detalles := models.CheckStruct(&req); detalles != nil {
		log.Printf("❌ Recover: Validation failed: %v", detalles)
		writeAuthFail(w, http.StatusBadRequest, detalles[0])
		return
	}

	ctx := r.Context()

	if _, err := c.users.GetByCorreo(ctx, req.Correo); err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) {
			writeAuthFail(w, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		log.Printf("❌ Recover: Error fetching user: %v", err)
		writeAuthFail(w, http.StatusInternalServerError, "Error en el servidor")
		return
	}

	token := uuid.NewString()
	if err := c.store.SetResetToken(ctx, token, req.Correo); err != nil {
		log.Printf("❌ Recover: Error storing reset token: %v", err)
		writeAuthFail(w, http.StatusInternalServerError, "Error en el servidor")
		return
	}

	if err := c.mail.SendPasswordReset(ctx, req.Correo, token); err != nil {
		log.Printf("❌ Recover: Error sending reset email: %v", err)
		writeAuthFail(w, http.StatusInternalServerError, "Error enviando correo")
		return
	}

	log.Printf("✅ Recover: Reset link sent to %s", req.Correo)
	writeJSON(w, http.StatusOK, models.LoginResponse{
		Status:  "success",
		Mensaje: "Correo enviado correctamente",
	})
}

// ResetPassword handles POST /api/auth/reset-password
// Consumes a reset token and stores the new password hash.
func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ResetPassword: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ ResetPassword: Failed to decode request body: %v", err)
		writeAuthFail(w, http.StatusBadRequest, "Token y nueva contraseña requeridos")
		return
	}

	if detalles := models.CheckStruct(&req); detalles != nil {
		log.Printf("❌ ResetPassword: Validation failed: %v", detalles)
		writeAuthFail(w, http.StatusBadRequest, detalles[0])
		return
	}

	ctx := r.Context()

	correo, err := c.store.GetResetToken(ctx, req.Token)
	if err != nil {
		log.Printf("❌ ResetPassword: Error fetching reset token: %v", err)
		writeAuthFail(w, http.StatusInternalServerError, "Error en el servidor")
		return
	}
	if correo == "" {
		writeAuthFail(w, http.StatusBadRequest, "Token inválido o expirado")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("❌ ResetPassword: Error hashing password: %v", err)
		writeAuthFail(w, http.StatusInternalServerError, "Error en el servidor")
		return
	}

	if err := c.users.UpdatePassword(ctx, correo, string(hash)); err != nil {
		log.Printf("❌ ResetPassword: Error updating password: %v", err)
		writeError(w, err, "Error en el servidor")
		return
	}

	if err := c.store.DeleteResetToken(ctx, req.Token); err != nil {
		log.Printf("⚠️ ResetPassword: Error deleting reset token: %v", err)
	}

	log.Printf("✅ ResetPassword: Password updated for %s", correo)
	writeJSON(w, http.StatusOK, models.LoginResponse{
		Status:  "success",
		Mensaje: "Contraseña actualizada correctamente",
	})
}
