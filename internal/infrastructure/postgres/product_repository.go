package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/plm-api/internal/domain/entity"
	"github.com/jhoicas/plm-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productColumns = []string{"id", "product_id", "name", "description", "category", "status", "created_at", "updated_at"}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query, args, err := psql.Insert("products").
		Columns(productColumns...).
		Values(product.ID, product.ProductCode, product.Name, product.Description, product.Category,
			string(product.Status), product.CreatedAt, product.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert product: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if dup := duplicateError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Un id que no es UUID se trata como inexistente.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByProductCode obtiene un producto por su código de negocio.
func (r *ProductRepo) GetByProductCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.getOne(ctx, squirrel.Eq{"product_id": code})
}

// List lista productos, más recientes primero. Category es exacta; Search busca en nombre y descripción.
func (r *ProductRepo) List(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, error) {
	sb := psql.Select(productColumns...).From("products")
	if f.Category != "" {
		sb = sb.Where(squirrel.Eq{"category": f.Category})
	}
	if f.Search != "" {
		pattern := containsPattern(f.Search)
		sb = sb.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	return r.selectMany(ctx, sb)
}

// ListByStatus lista productos en un estado.
func (r *ProductRepo) ListByStatus(ctx context.Context, status entity.ProductStatus) ([]*entity.Product, error) {
	return r.selectMany(ctx, psql.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"status": string(status)}))
}

// UpdateStatus sobrescribe el estado; devuelve false si ninguna fila coincide.
func (r *ProductRepo) UpdateStatus(ctx context.Context, id string, status entity.ProductStatus, updatedAt time.Time) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	query, args, err := psql.Update("products").
		Set("status", string(status)).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update product status: %w", err)
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update product status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProductRepo) getOne(ctx context.Context, where squirrel.Eq) (*entity.Product, error) {
	query, args, err := psql.Select(productColumns...).From("products").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build product query: %w", err)
	}
	var p entity.Product
	if err := pgxscan.Get(ctx, r.q, &p, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) selectMany(ctx context.Context, sb squirrel.SelectBuilder) ([]*entity.Product, error) {
	query, args, err := sb.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build products query: %w", err)
	}
	products := []*entity.Product{}
	if err := pgxscan.Select(ctx, r.q, &products, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
