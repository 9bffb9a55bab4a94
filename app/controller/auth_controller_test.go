package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmobiliaria-api/apperrors"
	"inmobiliaria-api/models"
)

// fakeUserRepo satisfies UserRepositoryInterface; only the methods the
// auth flow touches are wired.
type fakeUserRepo struct {
	getByCorreoFn    func(ctx context.Context, correo string) (*models.User, error)
	updatePasswordFn func(ctx context.Context, correo, hash string) error
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]models.User, error) { return nil, nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetByCorreo(ctx context.Context, correo string) (*models.User, error) {
	return f.getByCorreoFn(ctx, correo)
}
func (f *fakeUserRepo) Create(ctx context.Context, req *models.CreateUserRequest, hash string) (*models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, id int64, patch *models.UserPatch) (*models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, correo, hash string) error {
	return f.updatePasswordFn(ctx, correo, hash)
}
func (f *fakeUserRepo) Delete(ctx context.Context, id int64) (*models.User, error) {
	return nil, nil
}

// fakeAuthStore keeps everything in maps, mirroring the TTL store contract
type fakeAuthStore struct {
	otps        map[string]string
	resetTokens map[string]string
	attempts    map[string]int
	locked      map[string]bool
}

func newFakeAuthStore() *fakeAuthStore {
	return &fakeAuthStore{
		otps:        map[string]string{},
		resetTokens: map[string]string{},
		attempts:    map[string]int{},
		locked:      map[string]bool{},
	}
}

func (s *fakeAuthStore) SetOTP(ctx context.Context, correo, otp string) error {
	s.otps[correo] = otp
	return nil
}
func (s *fakeAuthStore) GetOTP(ctx context.Context, correo string) (string, error) {
	return s.otps[correo], nil
}
func (s *fakeAuthStore) DeleteOTP(ctx context.Context, correo string) error {
	delete(s.otps, correo)
	return nil
}
func (s *fakeAuthStore) RegisterFailedLogin(ctx context.Context, correo string) (bool, error) {
	s.attempts[correo]++
	if s.attempts[correo] >= 5 {
		s.locked[correo] = true
		s.attempts[correo] = 0
		return true, nil
	}
	return false, nil
}
func (s *fakeAuthStore) IsLockedOut(ctx context.Context, correo string) (bool, error) {
	return s.locked[correo], nil
}
func (s *fakeAuthStore) ClearAttempts(ctx context.Context, correo string) error {
	delete(s.attempts, correo)
	return nil
}
func (s *fakeAuthStore) SetResetToken(ctx context.Context, token, correo string) error {
	s.resetTokens[token] = correo
	return nil
}
func (s *fakeAuthStore) GetResetToken(ctx context.Context, token string) (string, error) {
	return s.resetTokens[token], nil
}
func (s *fakeAuthStore) DeleteResetToken(ctx context.Context, token string) error {
	delete(s.resetTokens, token)
	return nil
}

// fakeMailService records outbound messages instead of sending them
type fakeMailService struct {
	otps   []string
	resets []string
}

func (m *fakeMailService) SendOTP(ctx context.Context, destinatario, otp string) error {
	m.otps = append(m.otps, otp)
	return nil
}
func (m *fakeMailService) SendPasswordReset(ctx context.Context, destinatario, token string) error {
	m.resets = append(m.resets, token)
	return nil
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		IDUsuario: 1,
		Nombre:    "Admin",
		Correo:    "admin@example.com",
		Password:  string(hash),
		Rol:       models.RolAdmin,
	}
}

func postJSON(handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestLoginEnviaOTP(t *testing.T) {
	user := testUser(t, "secreta123")
	users := &fakeUserRepo{
		getByCorreoFn: func(ctx context.Context, correo string) (*models.User, error) {
			assert.Equal(t, "admin@example.com", correo)
			return user, nil
		},
	}
	store := newFakeAuthStore()
	mail := &fakeMailService{}
	c := NewAuthController(users, store, mail)

	rec := postJSON(c.Login, "/api/auth/login", `{"correo": "admin@example.com", "password": "secreta123"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Código 2FA enviado al correo", resp.Mensaje)

	// The emailed code and the stored code must match.
	require.Len(t, mail.otps, 1)
	assert.Len(t, mail.otps[0], 6)
	assert.Equal(t, mail.otps[0], store.otps["admin@example.com"])
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	user := testUser(t, "secreta123")
	users := &fakeUserRepo{
		getByCorreoFn: func(ctx context.Context, correo string) (*models.User, error) {
			return user, nil
		},
	}
	store := newFakeAuthStore()
	c := NewAuthController(users, store, &fakeMailService{})

	rec := postJSON(c.Login, "/api/auth/login", `{"correo": "admin@example.com", "password": "otra"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "fail", resp.Status)
	assert.Equal(t, "Contraseña incorrecta", resp.Mensaje)
	assert.Equal(t, 1, store.attempts["admin@example.com"])
}

func TestLoginBloqueoPorIntentos(t *testing.T) {
	user := testUser(t, "secreta123")
	users := &fakeUserRepo{
		getByCorreoFn: func(ctx context.Context, correo string) (*models.User, error) {
			return user, nil
		},
	}
	store := newFakeAuthStore()
	c := NewAuthController(users, store, &fakeMailService{})

	body := `{"correo": "admin@example.com", "password": "otra"}`
	var rec *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		rec = postJSON(c.Login, "/api/auth/login", body)
	}

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Usuario bloqueado por intentos fallidos", resp.Mensaje)

	// Even the right password is rejected while the lockout holds.
	rec = postJSON(c.Login, "/api/auth/login", `{"correo": "admin@example.com", "password": "secreta123"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Usuario bloqueado temporalmente", resp.Mensaje)
}

func TestLoginUsuarioNoEncontrado(t *testing.T) {
	users := &fakeUserRepo{
		getByCorreoFn: func(ctx context.Context, correo string) (*models.User, error) {
			return nil, apperrors.New(apperrors.CodeNotFound, "Usuario no encontrado")
		},
	}
	c := NewAuthController(users, newFakeAuthStore(), &fakeMailService{})

	rec := postJSON(c.Login, "/api/auth/login", `{"correo": "nadie@example.com", "password": "secreta123"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVerifyOTPEmiteToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "prueba-secreta")

	user := testUser(t, "secreta123")
	users := &fakeUserRepo{
		getByCorreoFn: func(ctx context.Context, correo string) (*models.User, error) {
			return user, nil
		},
	}
	store := newFakeAuthStore()
	store.otps["admin@example.com"] = "123456"
	c := NewAuthController(users, store, &fakeMailService{})

	rec := postJSON(c.VerifyOTP, "/api/auth/verify-otp", `{"correo": "admin@example.com", "otp": "123456"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "admin@example.com", resp.User.Correo)

	// The OTP is single use.
	assert.Empty(t, store.otps["admin@example.com"])
}

func TestVerifyOTPIncorrecto(t *testing.T) {
	store := newFakeAuthStore()
	store.otps["admin@example.com"] = "123456"
	c := NewAuthController(&fakeUserRepo{}, store, &fakeMailService{})

	rec := postJSON(c.VerifyOTP, "/api/auth/verify-otp", `{"correo": "admin@example.com", "otp": "654321"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OTP incorrecto", resp.Mensaje)
}

func TestVerifyOTPExpirado(t *testing.T) {
	c := NewAuthController(&fakeUserRepo{}, newFakeAuthStore(), &fakeMailService{})

	rec := postJSON(c.VerifyOTP, "/api/auth/verify-otp", `{"correo": "admin@example.com", "otp": "123456"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OTP no generado o expirado", resp.Mensaje)
}

func TestRecoverYReset(t *testing.T) {
	user := testUser(t, "secreta123")
	var nuevaHash string
	users := &fakeUserRepo{
		getByCorreoFn: func(ctx context.Context, correo string) (*models.User, error) {
			return user, nil
		},
		updatePasswordFn: func(ctx context.Context, correo, hash string) error {
			assert.Equal(t, "admin@example.com", correo)
			nuevaHash = hash
			return nil
		},
	}
	store := newFakeAuthStore()
	mail := &fakeMailService{}
	c := NewAuthController(users, store, mail)

	rec := postJSON(c.Recover, "/api/auth/recover", `{"correo": "admin@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, mail.resets, 1)

	token := mail.resets[0]
	assert.Equal(t, "admin@example.com", store.resetTokens[token])

	body := `{"token": "` + token + `", "password": "nuevaclave123"}`
	rec = postJSON(c.ResetPassword, "/api/auth/reset-password", body)
	require.Equal(t, http.StatusOK, rec.Code)

	// The stored hash must verify against the new password.
	require.NotEmpty(t, nuevaHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(nuevaHash), []byte("nuevaclave123")))

	// The token is single use.
	assert.Empty(t, store.resetTokens[token])
}

func TestResetPasswordTokenInvalido(t *testing.T) {
	c := NewAuthController(&fakeUserRepo{}, newFakeAuthStore(), &fakeMailService{})

	rec := postJSON(c.ResetPassword, "/api/auth/reset-password", `{"token": "inexistente", "password": "nuevaclave123"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Token inválido o expirado", resp.Mensaje)
}
