// Package services provides the analysis layer between the command line and
// the statistics toolkit. Services validate requests, apply configured
// defaults, run the toolkit and shape the results into reports.
package services

import (
	"errors"

	"github.com/soltixdb/quant/pkg/quant"
)

// Service error codes
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInvalidMethod     = "INVALID_METHOD"
	CodeInsufficientData  = "INSUFFICIENT_DATA"
	CodeComputationFailed = "COMPUTATION_FAILED"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`

	cause error
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Unwrap exposes the toolkit error behind the service error
func (e *ServiceError) Unwrap() error {
	return e.cause
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// fromToolkitError maps a toolkit sentinel onto a service error code
func fromToolkitError(operation string, err error) *ServiceError {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr
	}

	code := CodeComputationFailed
	switch {
	case errors.Is(err, quant.ErrInsufficientData):
		code = CodeInsufficientData
	case errors.Is(err, quant.ErrInvalidParameter):
		code = CodeInvalidInput
	}

	return &ServiceError{
		Code:    code,
		Message: operation + ": " + err.Error(),
		Details: map[string]interface{}{"operation": operation},
		cause:   err,
	}
}

// insufficientData reports a series shorter than an operation needs
func insufficientData(operation string, need, have int) *ServiceError {
	return NewServiceErrorWithDetails(CodeInsufficientData,
		operation+": not enough data points",
		map[string]interface{}{"required": need, "available": have})
}

// invalidMethod reports an unknown method along with the available ones
func invalidMethod(err error, available []string) *ServiceError {
	return NewServiceErrorWithDetails(CodeInvalidMethod, err.Error(),
		map[string]interface{}{"available_methods": available})
}

// CodeOf returns the service error code of err, or "" for other errors
func CodeOf(err error) string {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Code
	}
	return ""
}
