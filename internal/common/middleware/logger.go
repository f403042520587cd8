package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger returns a request logger tagged with the service name.
func Logger(tag string) fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[" + tag + "] [${time}] ${status} - ${latency} ${method} ${path}?${queryParams} | ${bytesSent}B\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
