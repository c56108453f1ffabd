package fileops

import (
	"github.com/toyz/implementor/internal/errors"
)

// ErrorWrapper provides consistent error wrapping for file operations
type ErrorWrapper struct{}

// NewErrorWrapper creates a new ErrorWrapper instance
func NewErrorWrapper() *ErrorWrapper {
	return &ErrorWrapper{}
}

// WrapDirectoryError wraps directory creation errors with context
func (ew *ErrorWrapper) WrapDirectoryError(path string, err error) error {
	return errors.WrapPathError(path, err)
}

// WrapFileWriteError wraps file writing errors with context
func (ew *ErrorWrapper) WrapFileWriteError(path string, err error) error {
	return errors.WrapWriteError(path, err)
}

// WrapWorkspaceError wraps workspace creation errors with context
func (ew *ErrorWrapper) WrapWorkspaceError(parent string, err error) error {
	return errors.WrapWorkspaceError(parent, err)
}
