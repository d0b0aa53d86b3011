// Package errors defines the error types the pipeline returns: typed
// failures for validation, configuration, parsing, and I/O, plus the
// strict-mode articul abort. Callers branch on them with errors.Is and
// errors.As rather than string matching.
package errors

import (
	"errors"
	"fmt"
)

// New is the standard library errors.New, re-exported so callers need
// only one errors import.
var New = errors.New

// Sentinel errors for errors.Is checks across wrapped chains.
var (
	// ErrNotFound reports a missing file, sheet, or column.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput reports input that failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyTable reports a source that produced no rows.
	ErrEmptyTable = errors.New("empty table")
)

// NotFoundError names the resource that was looked up and missed.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError returns a NotFoundError for the given resource.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError reports a rejected input value.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError returns a ValidationError for the given field.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// InvalidArticulsError aborts a strict-mode run: a source file yielded
// rows whose product code could not be canonicalized.
type InvalidArticulsError struct {
	File    string
	Count   int
	Samples []string // original cell values, capped by the caller
}

func (e *InvalidArticulsError) Error() string {
	if len(e.Samples) > 0 {
		return fmt.Sprintf("%d invalid articuls in file %s (e.g. %v)", e.Count, e.File, e.Samples)
	}
	return fmt.Sprintf("%d invalid articuls in file %s", e.Count, e.File)
}

// Is matches ErrInvalidInput.
func (e *InvalidArticulsError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidArticulsError describes the offending file, how many rows
// failed, and a sample of the raw values.
func NewInvalidArticulsError(file string, count int, samples []string) *InvalidArticulsError {
	return &InvalidArticulsError{File: file, Count: count, Samples: samples}
}

// ConfigError reports a bad or missing configuration setting.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError returns a ConfigError for the given component.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError reports undecodable content in a known format.
type ParseError struct {
	Format  string // csv, xlsx, yaml, parquet
	File    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError returns a ParseError for file in the given format.
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError reports a failed filesystem operation.
type IOError struct {
	Operation string // read, write, create, open, close
	Path      string
	Message   string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError returns an IOError carrying err's message.
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// ResourceError reports a failed operation on a named store, such as
// the history workbook or the column registry.
type ResourceError struct {
	Operation string // load, flush, write, append
	Resource  string // history, registry, report, products
	ID        string
	Message   string
	Err       error
}

func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError returns a ResourceError carrying err's message.
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Message: message, Err: err}
}

// IsNotFound reports whether err is a missing-resource error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError reports whether err is a rejected-input error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInvalidArticuls reports whether err is a strict-mode articul abort.
func IsInvalidArticuls(err error) bool {
	var target *InvalidArticulsError
	return errors.As(err, &target)
}

// WrapIO wraps err as an IOError, passing nil through.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps err as a ResourceError, passing nil through.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps err as a ParseError, passing nil through.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
