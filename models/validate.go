package models

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate

// mensajes maps "json_field.tag" to the Spanish message returned to clients.
var mensajes = map[string]string{
	"id_lote.required":                 "El ID del lote es obligatorio.",
	"id_lote.gt":                       "El ID del lote debe ser un número entero positivo.",
	"id_cliente.gt":                    "El ID del cliente debe ser un número entero positivo.",
	"correo_cliente.required_without":  "Debe proporcionar id_cliente o correo_cliente.",
	"correo_cliente.email":             "Correo inválido.",
	"plazo_meses.required":             "El plazo en meses es obligatorio.",
	"plazo_meses.min":                  "El plazo debe ser de al menos 1 mes.",
	"estado_contrato.oneof":            "El estado del contrato debe ser activo, cancelado o pagado.",
	"nombre.excluded_with":             "No debe enviar nombre cuando proporciona un ID de cliente.",
	"nombre.required":                  "El nombre es obligatorio.",
	"nombre.max":                       "El nombre no debe exceder los 100 caracteres.",
	"apellido_paterno.excluded_with":   "No debe enviar apellido_paterno cuando proporciona un ID de cliente.",
	"apellido_paterno.required":        "El apellido paterno es obligatorio.",
	"apellido_paterno.max":             "El apellido paterno no debe exceder los 50 caracteres.",
	"apellido_materno.max":             "El apellido materno no debe exceder los 50 caracteres.",
	"correo.required":                  "El correo es obligatorio.",
	"correo.email":                     "Correo inválido.",
	"telefono.max":                     "El teléfono no debe exceder los 20 caracteres.",
	"telefono.len":                     "El teléfono debe contener exactamente 10 dígitos.",
	"telefono.numeric":                 "El teléfono debe contener sólo dígitos.",
	"curp.required":                    "La CURP es obligatoria.",
	"curp.len":                         "La CURP debe tener 18 caracteres.",
	"clave_elector.len":                "La Clave de Elector debe tener 20 caracteres.",
	"tipo.required":                    "El tipo de propiedad es obligatorio.",
	"tipo.oneof":                       "El tipo debe ser casa, departamento, terreno, comercial u otro.",
	"numlote.required":                 "El número de lote es obligatorio.",
	"estado_propiedad.oneof":           "El estado de la propiedad no es válido.",
	"password.required":                "La contraseña es obligatoria.",
	"password.min":                     "La contraseña debe tener al menos 8 caracteres.",
	"rol.oneof":                        "El rol debe ser admin o vendedor.",
	"otp.required":                     "El OTP es obligatorio.",
	"otp.numeric":                      "El OTP debe contener sólo dígitos.",
	"otp.len":                          "El OTP debe tener 6 dígitos.",
	"token.required":                   "El token es obligatorio.",
}

func init() {
	// Decimal money values serialize as JSON numbers, matching the API's
	// historical wire format.
	decimal.MarshalJSONWithoutQuotes = true

	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report field names by their json tag so messages match the payload.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})
}

// CheckStruct runs tag validation over s and returns the Spanish
// per-field messages, or nil when the value passes.
func CheckStruct(s interface{}) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	var detalles []string
	for _, e := range errs {
		key := e.Field() + "." + e.Tag()
		if msg, found := mensajes[key]; found {
			detalles = append(detalles, msg)
			continue
		}
		detalles = append(detalles, fmt.Sprintf("El campo %s no es válido.", e.Field()))
	}
	return detalles
}
