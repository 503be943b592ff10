package entity

import (
	"fmt"
	"strings"

	"github.com/jhoicas/plm-api/internal/domain"
)

// ProductStatus estado del ciclo de vida de un producto.
type ProductStatus string

// Estados en su orden lógico; DISCONTINUED es terminal y alcanzable desde cualquiera.
const (
	StatusDesign       ProductStatus = "DESIGN"
	StatusPrototype    ProductStatus = "PROTOTYPE"
	StatusApproved     ProductStatus = "APPROVED"
	StatusProduction   ProductStatus = "PRODUCTION"
	StatusMarket       ProductStatus = "MARKET"
	StatusDiscontinued ProductStatus = "DISCONTINUED"
)

// DefaultProductStatus estado con el que nace un producto si no se indica otro.
const DefaultProductStatus = StatusDesign

var statusDescriptions = map[ProductStatus]string{
	StatusDesign:       "Design Phase",
	StatusPrototype:    "Prototype Development",
	StatusApproved:     "Approved for Production",
	StatusProduction:   "In Production",
	StatusMarket:       "Available in Market",
	StatusDiscontinued: "Discontinued",
}

// ProductStatuses devuelve todos los estados en orden lógico.
func ProductStatuses() []ProductStatus {
	return []ProductStatus{
		StatusDesign, StatusPrototype, StatusApproved,
		StatusProduction, StatusMarket, StatusDiscontinued,
	}
}

// ParseProductStatus interpreta s sin distinguir mayúsculas. Devuelve ErrInvalidStatus si no es un estado conocido.
func ParseProductStatus(s string) (ProductStatus, error) {
	st := ProductStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, s)
	}
	return st, nil
}

// IsValid indica si el estado pertenece al enum.
func (s ProductStatus) IsValid() bool {
	_, ok := statusDescriptions[s]
	return ok
}

// Description texto legible del estado.
func (s ProductStatus) Description() string {
	return statusDescriptions[s]
}

// NextStatus progresión canónica hacia adelante.
// DISCONTINUED se mapea a sí mismo; MARKET no tiene siguiente y devuelve ErrNoNextStatus.
func (s ProductStatus) NextStatus() (ProductStatus, error) {
	switch s {
	case StatusDesign:
		return StatusPrototype, nil
	case StatusPrototype:
		return StatusApproved, nil
	case StatusApproved:
		return StatusProduction, nil
	case StatusProduction:
		return StatusMarket, nil
	case StatusDiscontinued:
		return StatusDiscontinued, nil
	case StatusMarket:
		return "", domain.ErrNoNextStatus
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, string(s))
	}
}

func (s ProductStatus) String() string { return string(s) }
