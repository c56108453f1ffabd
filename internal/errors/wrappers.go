package errors

import "fmt"

// Common error wrapping patterns for the failure domains of the pipeline

// InvalidTarget creates an error for a type that cannot be implemented
func InvalidTarget(typeName, reason string) *BaseError {
	return Newf(InvalidTargetCode, "cannot implement %s: %s", typeName, reason).
		WithContext("type", typeName)
}

// WrapResolutionError wraps a failure to locate the requested type
func WrapResolutionError(typeName string, cause error) *BaseError {
	return Wrap(ResolutionFailureCode, fmt.Sprintf("type %q not found", typeName), cause).
		WithContext("type", typeName)
}

// WrapSyntaxError wraps a parse failure of interface source
func WrapSyntaxError(file string, loc SourceLocation, cause error) *BaseError {
	return Wrap(SyntaxFailureCode, fmt.Sprintf("failed to parse %s", file), cause).
		WithLocation(loc).
		WithContext("file", file)
}

// WrapPathError wraps a failure to create destination directories
func WrapPathError(path string, cause error) *BaseError {
	return Wrap(PathConstructionFailureCode, fmt.Sprintf("failed to create path to '%s'", path), cause).
		WithContext("path", path)
}

// WrapWriteError wraps a failure to write a generated file
func WrapWriteError(path string, cause error) *BaseError {
	return Wrap(WriteFailureCode, fmt.Sprintf("failed to write file '%s'", path), cause).
		WithContext("operation", "write").
		WithContext("path", path)
}

// WrapWorkspaceError wraps a failure to create the scratch workspace
func WrapWorkspaceError(parent string, cause error) *BaseError {
	return Wrap(WorkspaceFailureCode, fmt.Sprintf("failed to create workspace in '%s'", parent), cause).
		WithContext("parent", parent)
}

// WrapCompileError wraps a compiler failure for the given interface
func WrapCompileError(typeName string, cause error) *BaseError {
	return Wrap(CompileFailureCode, fmt.Sprintf("failed to compile implementation of %s", typeName), cause).
		WithContext("type", typeName)
}

// WrapPackagingError wraps a failure to assemble the destination archive
func WrapPackagingError(archive string, cause error) *BaseError {
	return Wrap(PackagingFailureCode, fmt.Sprintf("failed to generate jar in '%s'", archive), cause).
		WithContext("archive", archive)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(source, operation string, cause error) *BaseError {
	return Wrap(ConfigurationFailureCode, fmt.Sprintf("failed to %s configuration '%s'", operation, source), cause).
		WithContext("config_source", source).
		WithContext("operation", operation)
}
