package failure

import (
	"errors"
	"net/http"
)

// Summaries shared by every error of the same class, mirrored in the
// {summary, detail} error body.
const (
	SummaryNotFound   = "The requested object was not found."
	SummaryValidation = "Validation error in request data."
	SummaryConflict   = "The value already exists."
	SummaryForbidden  = "Access denied."
	SummaryInternal   = "Internal server error."
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"-"`
	Summary string `json:"summary"`
	Detail  string `json:"detail"`
}

// Error returns the error detail.
func (e *Failure) Error() string {
	return e.Detail
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Summary: SummaryValidation,
			Detail:  err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with detail set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Summary: SummaryValidation,
		Detail:  msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Summary: SummaryInternal,
			Detail:  err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(detail string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Summary: SummaryNotFound,
		Detail:  detail,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(detail string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Summary: SummaryConflict,
		Detail:  detail,
	}
}

// Forbidden returns a new Failure with code for access violations.
func Forbidden(detail string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Summary: SummaryForbidden,
		Detail:  detail,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetSummary returns the summary of an error interface.
func GetSummary(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Summary
	}

	return SummaryInternal
}
