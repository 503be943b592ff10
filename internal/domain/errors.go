package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidStatus        = errors.New("estado de producto inválido")
	ErrDuplicateUsername    = errors.New("el nombre de usuario ya existe")
	ErrDuplicateEmail       = errors.New("el email ya está registrado")
	ErrDuplicateProductCode = errors.New("el código de producto ya existe")
	ErrInvalidCredentials   = errors.New("credenciales inválidas")
	ErrConfiguration        = errors.New("configuración incompleta")
	ErrNoNextStatus         = errors.New("el estado actual no tiene siguiente estado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
)

// IsValidation indica si el error corresponde a una entrada mal formada (400).
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidStatus)
}

// IsDuplicate indica si el error es una violación de unicidad de negocio.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateUsername) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrDuplicateProductCode)
}
