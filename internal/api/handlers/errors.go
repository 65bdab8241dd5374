package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
	"github.com/donaldgifford/ebay-lister/internal/publish"
)

// toHTTPError maps an error category onto an API error. Validation is 422,
// auth 401, local rate limiting 429 with the cooldown in seconds, transient
// remote failures 503 and missing records 404.
func toHTTPError(err error) error {
	var details []error

	var se *publish.StageError
	if errors.As(err, &se) {
		details = append(details,
			&huma.ErrorDetail{Location: "stage", Value: string(se.Stage)},
			&huma.ErrorDetail{Location: "sku", Value: se.SKU},
		)
	}

	var (
		ve *apperror.ValidationError
		rl *apperror.RateLimitedError
	)
	switch {
	case errors.As(err, &ve):
		details = append(details, &huma.ErrorDetail{Location: ve.Field, Message: ve.Message})
		return huma.Error422UnprocessableEntity(err.Error(), details...)
	case errors.Is(err, apperror.ErrValidation):
		return huma.Error422UnprocessableEntity(err.Error(), details...)
	case errors.As(err, &rl):
		secs := int(math.Ceil(rl.RetryAfter.Seconds()))
		details = append(details, &huma.ErrorDetail{Location: "retry_after_seconds", Value: secs})
		h := http.Header{}
		h.Set("Retry-After", strconv.Itoa(secs))
		return huma.ErrorWithHeaders(huma.Error429TooManyRequests(err.Error(), details...), h)
	case errors.Is(err, apperror.ErrAuth):
		return huma.Error401Unauthorized(err.Error(), details...)
	case errors.Is(err, apperror.ErrNotFound):
		return huma.Error404NotFound(err.Error(), details...)
	case errors.Is(err, apperror.ErrTransient):
		return huma.Error503ServiceUnavailable(err.Error(), details...)
	default:
		return huma.Error500InternalServerError(err.Error(), details...)
	}
}
