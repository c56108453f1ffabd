// Package fileops bundles the file system operations of the generation pipeline
// with path validation and error wrapping.
package fileops

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Default permissions for created directories and files
const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)

// FileOps provides a unified interface for common file operations
// combining path validation and error handling
type FileOps struct {
	pathValidator *PathValidator
	errorWrapper  *ErrorWrapper
}

// NewFileOps creates a new FileOps instance with all components
func NewFileOps() *FileOps {
	return &FileOps{
		pathValidator: NewPathValidator(),
		errorWrapper:  NewErrorWrapper(),
	}
}

// PathValidator returns the path validator instance
func (fo *FileOps) PathValidator() *PathValidator {
	return fo.pathValidator
}

// EnsureParent creates every missing directory above filePath
func (fo *FileOps) EnsureParent(filePath string) error {
	cleanPath, err := fo.pathValidator.Clean(filePath)
	if err != nil {
		return fo.errorWrapper.WrapDirectoryError(filePath, err)
	}

	if err := os.MkdirAll(filepath.Dir(cleanPath), DirPerm); err != nil {
		return fo.errorWrapper.WrapDirectoryError(cleanPath, err)
	}
	return nil
}

// WriteFile writes content to filePath, creating or truncating it
func (fo *FileOps) WriteFile(filePath string, content []byte) error {
	cleanPath, err := fo.pathValidator.Clean(filePath)
	if err != nil {
		return fo.errorWrapper.WrapFileWriteError(filePath, err)
	}

	if err := os.WriteFile(cleanPath, content, FilePerm); err != nil {
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	return nil
}

// CreateWorkspace creates a fresh, uniquely named directory inside parent.
// The name is prefix followed by a random UUID.
func (fo *FileOps) CreateWorkspace(parent, prefix string) (string, error) {
	cleanParent, err := fo.pathValidator.Clean(parent)
	if err != nil {
		return "", fo.errorWrapper.WrapWorkspaceError(parent, err)
	}

	dir := filepath.Join(cleanParent, prefix+uuid.NewString())
	if err := os.Mkdir(dir, DirPerm); err != nil {
		return "", fo.errorWrapper.WrapWorkspaceError(cleanParent, err)
	}
	return dir, nil
}

// RemoveAll removes path and everything below it
func (fo *FileOps) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// Exists checks if a path exists using the path validator
func (fo *FileOps) Exists(path string) bool {
	return fo.pathValidator.Exists(path)
}

// IsDir checks if a path is a directory using the path validator
func (fo *FileOps) IsDir(path string) bool {
	return fo.pathValidator.IsDir(path)
}

// IsFile checks if a path is a regular file using the path validator
func (fo *FileOps) IsFile(path string) bool {
	return fo.pathValidator.IsFile(path)
}
