package http

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tenderdesk/procurement-service/internal/api/dto"
	"github.com/tenderdesk/procurement-service/internal/observability"
	apperrors "github.com/tenderdesk/procurement-service/pkg/util"
)

// MiddlewareConfig bundles inputs for the global middleware chain.
type MiddlewareConfig struct {
	Logger      *zap.Logger
	Metrics     *observability.Metrics
	Timeout     time.Duration
	CORSOrigins string
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
// The request logger sits outside the error handler so it sees the rendered status.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(errorHandlingMiddleware(cfg.Logger, cfg.Metrics))
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
}

// ErrorHandler renders errors that escape the middleware chain.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body, _ := envelopeFor(err)
		if status >= fiber.StatusInternalServerError {
			logger.Error("unhandled error", zap.Error(err))
		}
		return c.Status(status).JSON(body)
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				status, body, code := envelopeFor(err)
				metrics.RecordError(c.Route().Path, c.Method(), code)
				if status >= fiber.StatusInternalServerError {
					logger.Error("request failed",
						zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
						zap.Error(err))
				}
				c.Status(status)
				_ = c.JSON(body)
				err = nil
			}
		}()
		return c.Next()
	}
}

// envelopeFor maps err to its HTTP status, response body and error code.
// Internal errors carry their cause in the message.
func envelopeFor(err error) (int, dto.Response, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.NewResponse(fe.Code, fe.Message, nil), httpCode(fe.Code)
	}

	domainErr := apperrors.ToDomainError(err)
	message := domainErr.Message
	if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
		message = domainErr.Error()
	}
	body := dto.NewResponse(domainErr.HTTPStatus, message, nil)
	if len(domainErr.Details) > 0 {
		body.Data = domainErr.Details
	}
	return domainErr.HTTPStatus, body, domainErr.Code
}

func httpCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "ROUTE_NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "HTTP_ERROR"
	}
}
