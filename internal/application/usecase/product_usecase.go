package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/plm-api/internal/application/dto"
	"github.com/jhoicas/plm-api/internal/domain"
	"github.com/jhoicas/plm-api/internal/domain/entity"
	"github.com/jhoicas/plm-api/internal/domain/repository"
)

// ProductUseCase casos de uso del ciclo de vida de productos.
// El estado solo cambia vía UpdateStatus (override administrativo) o AdvanceStatus (progresión canónica).
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner ProductTxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner ProductTxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un nuevo producto. Sin status explícito nace en DESIGN.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.TrimSpace(in.ProductID)
	name := strings.TrimSpace(in.Name)
	if code == "" {
		return nil, fmt.Errorf("%w: productId es requerido", domain.ErrInvalidInput)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	status := entity.DefaultProductStatus
	if strings.TrimSpace(in.Status) != "" {
		st, err := entity.ParseProductStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	existing, err := uc.repo.GetByProductCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateProductCode
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		ProductCode: code,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().
		Str("product_id", product.ProductCode).
		Str("status", product.Status.String()).
		Msg("producto creado")
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID interno.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// GetByProductCode obtiene un producto por su código de negocio.
func (uc *ProductUseCase) GetByProductCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByProductCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos, opcionalmente filtrados por categoría y texto libre.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, entity.ProductFilter{
		Category: strings.TrimSpace(q.Category),
		Search:   strings.TrimSpace(q.Search),
	})
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ListByStatus lista productos en el estado indicado. Un estado desconocido es ErrInvalidStatus, nunca una lista vacía.
func (uc *ProductUseCase) ListByStatus(ctx context.Context, status string) ([]dto.ProductResponse, error) {
	st, err := entity.ParseProductStatus(status)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByStatus(ctx, st)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// UpdateStatus sobrescribe el estado sin validar el orden del ciclo de vida (se permite retroceder).
// No hay tabla de historial: la transición queda solo en el log.
func (uc *ProductUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.ProductResponse, error) {
	st, err := entity.ParseProductStatus(status)
	if err != nil {
		return nil, err
	}
	return uc.transition(ctx, id, func(*entity.Product) (entity.ProductStatus, error) {
		return st, nil
	})
}

// AdvanceStatus mueve el producto a su siguiente estado canónico. MARKET devuelve ErrNoNextStatus.
func (uc *ProductUseCase) AdvanceStatus(ctx context.Context, id string) (*dto.ProductResponse, error) {
	return uc.transition(ctx, id, func(p *entity.Product) (entity.ProductStatus, error) {
		return p.Status.NextStatus()
	})
}

func (uc *ProductUseCase) transition(ctx context.Context, id string, target func(*entity.Product) (entity.ProductStatus, error)) (*dto.ProductResponse, error) {
	log := zerolog.Ctx(ctx)
	var updated *entity.Product
	var oldStatus entity.ProductStatus
	err := uc.txRunner.RunProducts(ctx, func(productRepo repository.ProductRepository) error {
		product, err := productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newStatus, err := target(product)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		found, err := productRepo.UpdateStatus(ctx, id, newStatus, now)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrNotFound
		}
		oldStatus = product.Status
		product.Status = newStatus
		product.UpdatedAt = now
		updated = product
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("id", id).Msg("cambio de estado de producto rechazado")
		return nil, err
	}
	log.Info().
		Str("product_id", updated.ProductCode).
		Str("old_status", oldStatus.String()).
		Str("new_status", updated.Status.String()).
		Msg("estado de producto actualizado")
	return toProductResponse(updated), nil
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:                p.ID,
		ProductID:         p.ProductCode,
		Name:              p.Name,
		Description:       p.Description,
		Category:          p.Category,
		Status:            p.Status.String(),
		StatusDescription: p.Status.Description(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if next, err := p.Status.NextStatus(); err == nil && next != p.Status {
		out.NextStatus = next.String()
	}
	return out
}
