package apperr

import (
	"fmt"
)

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// CorpusFormatError describes a malformed corpus record. The loader skips the
// record and keeps going.
type CorpusFormatError struct {
	Line   int
	Reason string
}

func (e *CorpusFormatError) Error() string {
	return fmt.Sprintf("corpus line %d: %s", e.Line, e.Reason)
}

type ProviderErrorKind string

const (
	// ProviderCommunication covers transport, status and decode failures. The batch is aborted.
	ProviderCommunication ProviderErrorKind = "communication"
	// ProviderSemantic is an error reported by the provider inside a well-formed response.
	ProviderSemantic ProviderErrorKind = "semantic"
)

type ProviderError struct {
	Kind   ProviderErrorKind
	Reason string
	Err    error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("provider %s error: %s", e.Kind, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Fatal() bool {
	return e.Kind == ProviderCommunication
}

func NewCommunication(reason string, err error) *ProviderError {
	return &ProviderError{Kind: ProviderCommunication, Reason: reason, Err: err}
}

func NewSemantic(reason string) *ProviderError {
	return &ProviderError{Kind: ProviderSemantic, Reason: reason}
}
