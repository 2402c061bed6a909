package domain

import (
	"errors"
	"fmt"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Domain error codes
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeFileNotFound      = "FILE_NOT_FOUND"
	ErrCodeSyntaxError       = "SYNTAX_ERROR"
	ErrCodeStructuralError   = "STRUCTURAL_ERROR"
	ErrCodeInputFormatError  = "INPUT_FORMAT_ERROR"
	ErrCodeDivisionError     = "DIVISION_ERROR"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewSyntaxError reports a source file that does not parse as Python.
func NewSyntaxError(file string, cause error) error {
	return NewDomainError(ErrCodeSyntaxError, fmt.Sprintf("failed to parse file: %s", file), cause)
}

// NewStructuralError reports a syntax tree whose shape the canonicalizer
// cannot rewrite, such as a function definition without a body.
func NewStructuralError(message string, cause error) error {
	return NewDomainError(ErrCodeStructuralError, message, cause)
}

// NewInputFormatError reports a malformed line in a pair list.
func NewInputFormatError(source string, line int, message string) error {
	return NewDomainError(ErrCodeInputFormatError, fmt.Sprintf("%s:%d: %s", source, line, message), nil)
}

// NewDivisionError reports a similarity score requested for two empty strings.
func NewDivisionError(message string) error {
	return NewDomainError(ErrCodeDivisionError, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// NewValidationError creates a validation error
func NewValidationError(message string) error {
	return NewDomainError(ErrCodeInvalidInput, message, nil)
}

// ErrorCode returns the code of the first DomainError in err's chain,
// or an empty string when there is none.
func ErrorCode(err error) string {
	var de DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsErrorCode reports whether err carries a DomainError with the given code.
func IsErrorCode(err error, code string) bool {
	return ErrorCode(err) == code
}
