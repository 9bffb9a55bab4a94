package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "Lote no encontrado")))
	assert.Equal(t, CodeBusinessRule, CodeOf(Newf(CodeBusinessRule, "Lote no disponible (estado actual: %s)", "vendida")))

	// Plain errors count as persistence failures.
	assert.Equal(t, CodePersistence, CodeOf(errors.New("connection refused")))
}

func TestCodeOfWrapped(t *testing.T) {
	inner := New(CodeValidation, "Error de validación")
	wrapped := fmt.Errorf("handling request: %w", inner)

	assert.Equal(t, CodeValidation, CodeOf(wrapped))
	assert.True(t, Is(wrapped, CodeValidation))
	assert.False(t, Is(wrapped, CodeNotFound))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("pq: deadlock detected")
	err := Wrap(CodePersistence, "Error al crear contrato", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Error al crear contrato")
	assert.Contains(t, err.Error(), "deadlock")
}

func TestValidationDetalles(t *testing.T) {
	detalles := []string{"El ID del lote es obligatorio.", "Correo inválido."}
	err := Validation(detalles)

	assert.Equal(t, CodeValidation, CodeOf(err))
	assert.Equal(t, detalles, DetallesOf(err))
	assert.Equal(t, "Error de validación", err.Message)

	assert.Nil(t, DetallesOf(errors.New("otro")))
}
