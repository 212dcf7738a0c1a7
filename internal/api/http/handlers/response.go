package handlers

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tenderdesk/procurement-service/internal/api/dto"
	apperrors "github.com/tenderdesk/procurement-service/pkg/util"
)

const msgBadID = "ID params must be filled"

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.NewResponse(status, message, data))
}

// respondList answers 200 with the list, or 200 carrying status "204" and
// emptyMessage when there is nothing to show.
func respondList[T any](c *fiber.Ctx, list []T, emptyMessage string) error {
	if len(list) == 0 {
		return c.Status(fiber.StatusOK).JSON(dto.NewResponse(fiber.StatusNoContent, emptyMessage, nil))
	}
	return respond(c, fiber.StatusOK, "", list)
}

// parseID reads a positive integer route parameter.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(msgBadID, nil)
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out any, message string) error {
	if err := c.BodyParser(out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" && isInteger(typeErr.Type) {
			return apperrors.NewValidationError(typeErr.Field+" must be a positive whole number",
				map[string]any{"fields": []string{typeErr.Field}})
		}
		return apperrors.NewValidationError(message, map[string]any{"body": err.Error()})
	}
	return dto.Validate(out, message)
}

func isInteger(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
