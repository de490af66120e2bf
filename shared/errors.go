package shared

import (
	"errors"
	"net/http"
)

// Reason codes returned to clients. Callers switch on these, never on messages.
const (
	ReasonNotFound            = "not_found"
	ReasonStateConflict       = "state_conflict"
	ReasonValidationError     = "validation_error"
	ReasonUpstreamFailure     = "upstream_failure"
	ReasonOrderSetMismatch    = "order_set_mismatch"
	ReasonQuestionNotFinished = "question_not_finished"
	ReasonPhraseNotPublished  = "phrase_not_published"
	ReasonPhraseNotInLesson   = "phrase_not_in_lesson"
	ReasonLanguageMismatch    = "language_mismatch"
	ReasonUnauthorized        = "unauthorized"
	ReasonForbidden           = "forbidden"
	ReasonInternal            = "internal_error"
)

type AppError struct {
	StatusCode int         `json:"code"`
	Reason     string      `json:"reason"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Err        error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// NewNotFoundError covers both genuinely missing entities and scope violations.
// Tutors probing outside their language partition get the same answer as for an
// entity that never existed.
func NewNotFoundError(entity string) *AppError {
	return &AppError{
		StatusCode: http.StatusNotFound,
		Reason:     ReasonNotFound,
		Message:    entity + " not found",
	}
}

func NewStateConflictError(reason, message string) *AppError {
	return &AppError{
		StatusCode: http.StatusConflict,
		Reason:     reason,
		Message:    message,
	}
}

func NewValidationError(err error, message string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Reason:     ReasonValidationError,
		Message:    message,
		Err:        err,
	}
}

func NewBadRequestError(err error, message string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Reason:     ReasonValidationError,
		Message:    message,
		Err:        err,
	}
}

func NewUpstreamError(err error, message string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadGateway,
		Reason:     ReasonUpstreamFailure,
		Message:    message,
		Err:        err,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusUnauthorized,
		Reason:     ReasonUnauthorized,
		Message:    message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusForbidden,
		Reason:     ReasonForbidden,
		Message:    message,
	}
}

func NewInternalError(err error, message string) *AppError {
	return &AppError{
		StatusCode: http.StatusInternalServerError,
		Reason:     ReasonInternal,
		Message:    message,
		Err:        err,
	}
}
