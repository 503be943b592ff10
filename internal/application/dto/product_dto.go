package dto

import "time"

// CreateProductRequest entrada para crear un producto. Status es opcional (DESIGN por defecto).
type CreateProductRequest struct {
	ProductID   string `json:"productId" validate:"required,max=100"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Category    string `json:"category" validate:"omitempty,max=100"`
	Status      string `json:"status" validate:"omitempty"`
}

// UpdateStatusRequest entrada para cambiar el estado de un producto.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"productId"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Status            string    `json:"status"`
	StatusDescription string    `json:"statusDescription"`
	NextStatus        string    `json:"nextStatus,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ProductListQuery filtros de listado (query string).
type ProductListQuery struct {
	Category string `query:"category"`
	Search   string `query:"q"`
}
