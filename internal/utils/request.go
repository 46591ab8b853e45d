package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	apperrors "github.com/mdsweden/storefront-backend/internal/errors"
	"github.com/mdsweden/storefront-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func DecodeJSONBody(r *http.Request, dest any) error {

	if r.Body == nil {
		return errors.New("request body is empty")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}

		return fmt.Errorf("invalid request body: %w", err)
	}

	return nil
}

func ValidateStruct(validate *validator.Validate, dest any) error {
	return validate.Struct(dest)
}

// ParseAndValidate decodes the body into dest and runs struct validation.
// On failure it writes the error response itself and returns false.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, apperrors.BadRequestError(err.Error()))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
			return false
		}

		slog.Warn("Validation failed", slog.String("error", err.Error()))
		response.Error(w, apperrors.ValidationError("invalid input data"))
		return false
	}

	return true
}

// ParseID reads a UUID path value from the request.
func ParseID(r *http.Request, name string) (uuid.UUID, error) {

	raw := r.PathValue(name)
	if raw == "" {
		return uuid.Nil, apperrors.BadRequestError(fmt.Sprintf("%s is required", name))
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.BadRequestError(fmt.Sprintf("%s must be a valid UUID", name)).WithError(err)
	}

	return id, nil
}
