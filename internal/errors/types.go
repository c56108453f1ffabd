package errors

import (
	stderrors "errors"
	"fmt"
)

// ImplementorError defines the base interface for all implementor errors
type ImplementorError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the type of error that occurred
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// Target errors, raised before any generation work begins
	InvalidTargetCode
	ResolutionFailureCode
	SyntaxFailureCode

	// Generation errors
	PathConstructionFailureCode
	WriteFailureCode

	// Packaged mode errors
	WorkspaceFailureCode
	CompileFailureCode
	PackagingFailureCode

	// Runtime errors
	ConfigurationFailureCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case InvalidTargetCode:
		return "InvalidTarget"
	case ResolutionFailureCode:
		return "ResolutionFailure"
	case SyntaxFailureCode:
		return "SyntaxFailure"
	case PathConstructionFailureCode:
		return "PathConstructionFailure"
	case WriteFailureCode:
		return "WriteFailure"
	case WorkspaceFailureCode:
		return "WorkspaceFailure"
	case CompileFailureCode:
		return "CompileFailure"
	case PackagingFailureCode:
		return "PackagingFailure"
	case ConfigurationFailureCode:
		return "ConfigurationFailure"
	default:
		return "UnknownError"
	}
}

// SourceLocation represents where an error occurred in source code
type SourceLocation struct {
	File   string // file path where error occurred
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}

// String returns a formatted string representation of the location
func (s SourceLocation) String() string {
	if s.File == "" {
		return "unknown location"
	}
	if s.Line == 0 {
		return s.File
	}
	if s.Column == 0 {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty returns true if the location has no useful information
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError provides a common implementation of the ImplementorError interface
type BaseError struct {
	Code        ErrorCode              // type of error
	Message     string                 // error message
	Loc         SourceLocation         // where the error occurred
	Cause       error                  // underlying error cause
	ContextData map[string]interface{} // additional context information
	Hints       []string               // helpful suggestions for fixing the error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	message := e.Message
	if !e.Loc.IsEmpty() {
		message = fmt.Sprintf("%s: %s", e.Loc.String(), message)
	}
	if e.Cause != nil {
		message = fmt.Sprintf("%s: %v", message, e.Cause)
	}
	return message
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// Location returns the source location where the error occurred
func (e *BaseError) Location() SourceLocation {
	return e.Loc
}

// Context returns the error context data
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return make(map[string]interface{})
	}
	return e.ContextData
}

// Suggestions returns helpful suggestions for fixing the error
func (e *BaseError) Suggestions() []string {
	return e.Hints
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// WithLocation adds location information to the error
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithContext adds context data to the error
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion adds a helpful suggestion for fixing the error
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// WithSuggestions adds multiple helpful suggestions
func (e *BaseError) WithSuggestions(suggestions ...string) *BaseError {
	e.Hints = append(e.Hints, suggestions...)
	return e
}

// New creates a new BaseError with the specified code and message
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Hints:   make([]string, 0),
	}
}

// Newf creates a new BaseError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new error that wraps another error
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Hints:   make([]string, 0),
	}
}

// CodeOf returns the code of the outermost ImplementorError in err's chain
func CodeOf(err error) ErrorCode {
	var implErr ImplementorError
	if stderrors.As(err, &implErr) {
		return implErr.ErrorCode()
	}
	return UnknownErrorCode
}

// IsCode reports whether any ImplementorError in err's chain carries code
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		if implErr, ok := err.(ImplementorError); ok && implErr.ErrorCode() == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// As finds the first ImplementorError in err's chain
func As(err error) (ImplementorError, bool) {
	var implErr ImplementorError
	if stderrors.As(err, &implErr) {
		return implErr, true
	}
	return nil, false
}
