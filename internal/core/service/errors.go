package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/storeldb/storeapi/internal/core/repository"
)

// ServiceError carries the HTTP status a failure should be reported with
type ServiceError struct {
	Code    int
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewServiceError(code int, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}

func notFound(format string, args ...interface{}) *ServiceError {
	return NewServiceError(http.StatusNotFound, fmt.Sprintf(format, args...))
}

func badRequest(format string, args ...interface{}) *ServiceError {
	return NewServiceError(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// notFoundOr maps repository.ErrNotFound onto a 404 and passes anything
// else through unchanged.
func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(format, args...)
	}
	return err
}

// notFoundAs replaces repository.ErrNotFound with svcErr.
func notFoundAs(err error, svcErr *ServiceError) error {
	if errors.Is(err, repository.ErrNotFound) {
		return svcErr
	}
	return err
}
