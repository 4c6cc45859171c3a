package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"ai-voiceshop-be/internal/apperr"
)

var validate = validator.New()

// ValidateRequest checks struct tags and reports all failing fields at once.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Wrap(apperr.KindInvalidInput, "invalid request", err)
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return apperr.New(apperr.KindInvalidInput, "validation failed: "+strings.Join(fields, ", "))
}
