package sundhed

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Step names one of the three requests of a flow.
type Step string

const (
	StepBootstrap         Step = "bootstrap"
	StepAdditionalFilters Step = "additional_filters"
	StepSearch            Step = "search"
)

var ErrInvalidMunicipalityId = errors.New("municipality id must not be empty")
var ErrEmptyCategory = errors.New("category must not be empty")

// HttpError is returned when a step gets a non-2xx response.
type HttpError struct {
	Step       Step
	StatusCode int
	Status     string
}

func (e *HttpError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprint(e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected http status %s", e.Step, status)
}

// TimeoutError is returned when a step does not complete within the request timeout.
type TimeoutError struct {
	Step Step
	Err  error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: request timed out: %s", e.Step, e.Err.Error())
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when the search response is not valid JSON.
type DecodeError struct {
	Step Step
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: invalid json response: %s", e.Step, e.Err.Error())
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// wrapRequestError turns a transport error from resty into the error
// returned to callers of a step.
func wrapRequestError(step Step, err error) error {
	if isTimeout(err) {
		return &TimeoutError{Step: step, Err: err}
	}
	return fmt.Errorf("%s: %w", step, err)
}

func validateInput(municipalityId, category string) error {
	if strings.TrimSpace(municipalityId) == "" {
		return ErrInvalidMunicipalityId
	}
	if strings.TrimSpace(category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
