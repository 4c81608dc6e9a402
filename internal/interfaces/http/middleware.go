package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const localLogger = "logger"

// RequestID asigna un X-Request-ID (uuid) a cada petición que no lo traiga.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{Generator: uuid.NewString})
}

// RequestLogger registra cada petición y deja un sublogger con el request id en los locals.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqLog := log.With().Str("request_id", requestIDOf(c)).Logger()
		c.Locals(localLogger, reqLog)

		err := c.Next()

		status := c.Response().StatusCode()
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Warn()
		}
		ev.Str("method", c.Method()).Str("path", c.Path()).Int("status", status).
			Dur("latency", time.Since(start)).Msg("petición HTTP")
		return err
	}
}

func requestIDOf(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}

func logFrom(c *fiber.Ctx) *zerolog.Logger {
	if l, ok := c.Locals(localLogger).(zerolog.Logger); ok {
		return &l
	}
	nop := zerolog.Nop()
	return &nop
}
