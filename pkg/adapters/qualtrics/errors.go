package qualtrics

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/qflow/pkg/domain"
)

// APIError is a non-2xx response from the platform.
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("qualtrics: %s %s: %d %s", e.Method, e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("qualtrics: %s %s: %d %s", e.Method, e.Endpoint, e.StatusCode, e.Message)
}

// Is makes a 404 match domain.ErrSurveyNotFound.
func (e *APIError) Is(target error) bool {
	return e.StatusCode == http.StatusNotFound && target == domain.ErrSurveyNotFound
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
