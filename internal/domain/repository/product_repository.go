package repository

import (
	"context"
	"time"

	"github.com/jhoicas/plm-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando no existe el registro.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByProductCode(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)
	ListByStatus(ctx context.Context, status entity.ProductStatus) ([]*entity.Product, error)
	// UpdateStatus sobrescribe el estado; devuelve false si no existe el producto.
	UpdateStatus(ctx context.Context, id string, status entity.ProductStatus, updatedAt time.Time) (bool, error)
}
