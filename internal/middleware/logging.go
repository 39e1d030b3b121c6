package middleware

import (
	"log/slog"
	"time"

	"tastebook/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// StructuredLogger logs each request with method, path, status, and latency.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", c.Response().StatusCode()),
			slog.Duration("latency", time.Since(start)),
			slog.String("request_id", requestID(c)),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
			observability.GlobalLogger.Error("request failed", attrs...)
			return err
		}
		observability.GlobalLogger.Info("request", attrs...)
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
