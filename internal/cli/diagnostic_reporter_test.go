package cli

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/toyz/implementor/internal/errors"
)

func newTestReporter(verbose bool) (*DiagnosticReporter, *bytes.Buffer) {
	color.NoColor = true
	var buf bytes.Buffer
	return NewDiagnosticReporterTo(&buf, verbose), &buf
}

func TestDiagnosticReporter_ReportWarning(t *testing.T) {
	reporter, buf := newTestReporter(false)

	reporter.ReportWarning("Superinterface java.util.Iterator not found")

	assert.Equal(t, "! Superinterface java.util.Iterator not found\n", buf.String())
}

func TestDiagnosticReporter_ReportError(t *testing.T) {
	reporter, buf := newTestReporter(false)

	err := errors.WrapCompileError("com.example.Greeter", stderrors.New("javac exited with status 1")).
		WithContext("stage", "SourceWritten").
		WithContext("workspace", "/tmp/impl-1").
		WithContext("compiler", "javac").
		WithSuggestion("Check that every type the interface uses is on the classpath\nor the source path")

	reporter.ReportError(err)
	output := buf.String()

	assert.Contains(t, output, "Type: CompileFailure")
	assert.Contains(t, output, "Message: failed to compile implementation of com.example.Greeter\n")
	assert.NotContains(t, output, "javac exited")
	assert.Contains(t, output, "   Type: com.example.Greeter\n   Stage: SourceWritten\n   Workspace: /tmp/impl-1\n   Compiler: javac\n")
	assert.Contains(t, output, "   1. Check that every type the interface uses is on the classpath\n      or the source path\n")
	assert.Contains(t, output, "Run with -verbose")
}

func TestDiagnosticReporter_ReportErrorVerbose(t *testing.T) {
	reporter, buf := newTestReporter(true)

	cause := stderrors.New("permission denied")
	reporter.ReportError(errors.WrapWriteError("/out/AImpl.java", cause))
	output := buf.String()

	assert.Contains(t, output, "Type: WriteFailure")
	assert.Contains(t, output, "Message: failed to write file '/out/AImpl.java': permission denied")
	assert.Contains(t, output, "Error Chain:\n   1. permission denied\n")
	assert.NotContains(t, output, "Run with -verbose")
}

func TestDiagnosticReporter_ReportErrorWithLocation(t *testing.T) {
	reporter, buf := newTestReporter(false)

	err := errors.WrapSyntaxError("Broken.java", errors.SourceLocation{File: "Broken.java", Line: 4, Column: 14}, stderrors.New("unexpected token"))
	reporter.ReportError(err)

	assert.Contains(t, buf.String(), "Type: SyntaxFailure")
	assert.Contains(t, buf.String(), "Location: Broken.java:4")
}

func TestDiagnosticReporter_ReportPlainError(t *testing.T) {
	reporter, buf := newTestReporter(false)

	reporter.ReportError(stderrors.New("something broke"))

	assert.Contains(t, buf.String(), "Message: something broke\n")
	assert.NotContains(t, buf.String(), "Type:")
}

func TestFormatContextKey(t *testing.T) {
	assert.Equal(t, "Config Source", formatContextKey("config_source"))
	assert.Equal(t, "Type", formatContextKey("type"))
}
