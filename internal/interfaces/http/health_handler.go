package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/plm-api/internal/application/dto"
)

// Pinger lo cumplen *pgxpool.Pool y el almacén en memoria.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler expone /health con el estado de la base de datos.
type HealthHandler struct {
	db      Pinger
	service string
}

// NewHealthHandler construye el handler de salud.
func NewHealthHandler(db Pinger, service string) *HealthHandler {
	return &HealthHandler{db: db, service: service}
}

// Check godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "degraded", Service: h.service, DB: "down"})
		}
	}
	return c.JSON(dto.HealthResponse{Status: "ok", Service: h.service, DB: "up"})
}
