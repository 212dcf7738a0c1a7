package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tenderdesk/procurement-service/internal/config"
)

// NewApp builds the fiber application with the shared error renderer.
func NewApp(cfg config.AppConfig, logger *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               cfg.Name,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(logger),
	})
}
