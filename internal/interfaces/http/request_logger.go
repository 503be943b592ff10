package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// localRequestID key que usa el middleware requestid de Fiber.
const localRequestID = "requestid"

// RequestLogger adjunta al contexto de la petición un sublogger con request id, método y ruta,
// y emite una línea de acceso con status y latencia.
func RequestLogger(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid, _ := c.Locals(localRequestID).(string)
		l := base.With().
			Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Logger()
		c.SetUserContext(l.WithContext(c.UserContext()))

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error()
		}
		ev.Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición atendida")
		return nil
	}
}
