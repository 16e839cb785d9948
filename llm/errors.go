package llm

import (
	"errors"
	"fmt"
)

// ErrorType classifies pipeline errors.
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeConfig marks a missing credential or invalid model
	// selection. Never retried; propagates to the host.
	ErrorTypeConfig
	// ErrorTypeInvalidInput marks empty text handed to the metrics
	// calculator. Caught per attempt by the controller.
	ErrorTypeInvalidInput
	// ErrorTypeEnrichment marks a remote failure during enrichment.
	ErrorTypeEnrichment
	// ErrorTypeEvaluation marks a remote failure during judging.
	ErrorTypeEvaluation
	ErrorTypeRequest
	ErrorTypeResponse
	ErrorTypeAPI
)

// PipelineError is the error type used across the pipeline packages.
type PipelineError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.TypeString(), e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.TypeString(), e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func (e *PipelineError) TypeString() string {
	switch e.Type {
	case ErrorTypeConfig:
		return "ConfigError"
	case ErrorTypeInvalidInput:
		return "InvalidInputError"
	case ErrorTypeEnrichment:
		return "EnrichmentError"
	case ErrorTypeEvaluation:
		return "EvaluationError"
	case ErrorTypeRequest:
		return "RequestError"
	case ErrorTypeResponse:
		return "ResponseError"
	case ErrorTypeAPI:
		return "APIError"
	default:
		return "UnknownError"
	}
}

// NewPipelineError creates a new PipelineError.
func NewPipelineError(errType ErrorType, message string, err error) *PipelineError {
	return &PipelineError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// IsErrorType reports whether err is a PipelineError of the given type.
func IsErrorType(err error, errType ErrorType) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Type == errType
	}
	return false
}

// IsConfigError reports whether err is a configuration error.
func IsConfigError(err error) bool {
	return IsErrorType(err, ErrorTypeConfig)
}

// IsInvalidInput reports whether err is an invalid-input error.
func IsInvalidInput(err error) bool {
	return IsErrorType(err, ErrorTypeInvalidInput)
}
