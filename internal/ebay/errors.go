package ebay

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
)

// Trading API error codes with a known category.
var (
	tradingAuthCodes      = []string{"931", "932", "16110", "17470", "21916984"}
	tradingTransientCodes = []string{"518", "10007", "21919144"}
)

// ErrorDetail is one entry of an eBay error response. REST APIs return
// these as JSON; Trading API errors are mapped into the same shape.
type ErrorDetail struct {
	ErrorID     int    `json:"errorId"`
	Domain      string `json:"domain"`
	Category    string `json:"category"`
	Message     string `json:"message"`
	LongMessage string `json:"longMessage"`
	Code        string `json:"-"`
}

// APIError is a rejected eBay call. Its Unwrap result places it in one of
// the apperror categories: 401 is auth, 408/429/5xx are transient, any
// other 4xx is validation.
type APIError struct {
	Call       string
	StatusCode int
	Errors     []ErrorDetail
	Body       string
	RetryAfter time.Duration

	category error
}

func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("eBay API error (status %d): %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("eBay API error (status %d): %s", e.StatusCode, e.Body)
}

// Message returns the marketplace's own error text, unmodified.
func (e *APIError) Message() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, d := range e.Errors {
		m := d.LongMessage
		if m == "" {
			m = d.Message
		}
		if m == "" {
			continue
		}
		if d.ErrorID != 0 {
			m = fmt.Sprintf("[%d] %s", d.ErrorID, m)
		} else if d.Code != "" {
			m = fmt.Sprintf("[%s] %s", d.Code, m)
		}
		msgs = append(msgs, m)
	}
	return strings.Join(msgs, "; ")
}

func (e *APIError) Unwrap() error { return e.category }

// RetryDelay is the wait requested by a Retry-After header, zero when the
// response carried none.
func (e *APIError) RetryDelay() time.Duration { return e.RetryAfter }

type restErrorResponse struct {
	Errors []ErrorDetail `json:"errors"`
}

func newAPIError(call string, status int, body []byte) *APIError {
	e := &APIError{
		Call:       call,
		StatusCode: status,
		Body:       truncate(string(body), maxErrorBody),
		category:   categoryForStatus(status),
	}

	var parsed restErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		e.Errors = parsed.Errors
	} else {
		var oauthErr struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		if json.Unmarshal(body, &oauthErr) == nil && oauthErr.Error != "" {
			e.Errors = []ErrorDetail{{Message: oauthErr.Error + ": " + oauthErr.ErrorDescription}}
		}
	}

	return e
}

// newTradingError builds an APIError from Trading API <Errors> elements.
// The HTTP status of a failed Trading call is usually 200.
func newTradingError(call string, status int, details []ErrorDetail) *APIError {
	e := &APIError{
		Call:       call,
		StatusCode: status,
		Errors:     details,
		category:   apperror.ErrValidation,
	}
	for _, d := range details {
		switch {
		case slices.Contains(tradingAuthCodes, d.Code):
			e.category = apperror.ErrAuth
			return e
		case slices.Contains(tradingTransientCodes, d.Code):
			e.category = apperror.ErrTransient
		}
	}
	return e
}

func categoryForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return apperror.ErrAuth
	case status == http.StatusRequestTimeout,
		status == http.StatusTooManyRequests,
		status >= 500:
		return apperror.ErrTransient
	default:
		return apperror.ErrValidation
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
