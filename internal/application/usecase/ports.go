package usecase

import (
	"context"

	"github.com/jhoicas/plm-api/internal/domain/repository"
)

// ProductTxRunner ejecuta fn dentro de una transacción con el repositorio de productos atado a ella.
type ProductTxRunner interface {
	RunProducts(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error
}
