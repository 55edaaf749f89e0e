// Package businessflow contains the core business logic and use cases for the phone catalog
package businessflow

import (
	"errors"
	"fmt"
	"strings"
)

// Business flow error constants
var (
	// Catalog-related errors
	ErrPhoneNotFound = errors.New("phone not found")

	// Import-related errors
	ErrEmptySource = errors.New("import source is empty")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// SourceError reports an import source that could not be opened or
// read at all. It is fatal for the whole import: nothing is processed.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("import source %q unavailable: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("import source unavailable: %v", e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// SchemaMismatchError reports required columns absent from the source
// header. Fatal for the whole import; carries both the missing and the
// found column names for the operator.
type SchemaMismatchError struct {
	Missing []string
	Found   []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("source is missing required columns: %s (found columns: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

func IsPhoneNotFound(err error) bool {
	return errors.Is(err, ErrPhoneNotFound)
}

func IsSourceUnavailable(err error) bool {
	var se *SourceError
	return errors.As(err, &se)
}

func IsSchemaMismatch(err error) bool {
	var se *SchemaMismatchError
	return errors.As(err, &se)
}
