package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/tenderdesk/procurement-service/pkg/util"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks req's validate tags. Failures become a VALIDATION_FAILED
// error carrying message and the offending fields.
func Validate(req any, message string) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError(message, nil)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()[:1])+fe.Field()[1:])
	}
	return apperrors.NewValidationError(message, map[string]any{"fields": fields})
}
