package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/plm-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar los campos con su nombre JSON.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct aplica los tags validate del DTO. Devuelve un error que envuelve domain.ErrInvalidInput.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " es requerido"
	case "email":
		return fe.Field() + " no es un email válido"
	case "max":
		return fmt.Sprintf("%s supera el máximo de %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s no alcanza el mínimo de %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s no cumple %s", fe.Field(), fe.Tag())
	}
}
