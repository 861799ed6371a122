package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"shareit/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Summary: failure.SummaryValidation,
		Detail:  "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error detail to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		summary string
	}{
		{
			name:    "NotFound",
			err:     failure.NotFound("user with id=abc not found"),
			code:    http.StatusNotFound,
			summary: failure.SummaryNotFound,
		},
		{
			name:    "Conflict",
			err:     failure.Conflict("email is already registered"),
			code:    http.StatusConflict,
			summary: failure.SummaryConflict,
		},
		{
			name:    "Forbidden",
			err:     failure.Forbidden("not the owner"),
			code:    http.StatusForbidden,
			summary: failure.SummaryForbidden,
		},
		{
			name:    "BadRequestFromString",
			err:     failure.BadRequestFromString("start must be before end"),
			code:    http.StatusBadRequest,
			summary: failure.SummaryValidation,
		},
		{
			name:    "BadRequest",
			err:     failure.BadRequest(errors.New("bad payload")),
			code:    http.StatusBadRequest,
			summary: failure.SummaryValidation,
		},
		{
			name:    "InternalError",
			err:     failure.InternalError(errors.New("boom")),
			code:    http.StatusInternalServerError,
			summary: failure.SummaryInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, got)
			}

			if got := failure.GetSummary(tt.err); got != tt.summary {
				t.Errorf("expected summary to be %s, got %s", tt.summary, got)
			}
		})
	}
}

func TestNilErrors(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected BadRequest(nil) to be nil")
	}

	if failure.InternalError(nil) != nil {
		t.Error("expected InternalError(nil) to be nil")
	}
}

func TestGetCode_WrappedAndForeignErrors(t *testing.T) {
	wrapped := fmt.Errorf("failed to get user: %w", failure.NotFound("user with id=abc not found"))

	if got := failure.GetCode(wrapped); got != http.StatusNotFound {
		t.Errorf("expected wrapped failure to keep its code, got %d", got)
	}

	if got := failure.GetCode(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("expected plain error to map to 500, got %d", got)
	}

	if got := failure.GetSummary(errors.New("plain")); got != failure.SummaryInternal {
		t.Errorf("expected plain error summary to be internal, got %s", got)
	}
}
