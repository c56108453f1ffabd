package server

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/toyz/implementor/internal/models"
	"github.com/toyz/implementor/internal/parser"
	"github.com/toyz/implementor/internal/templates"
)

const (
	// HeaderImplPath carries the conventional relative path of the generated source
	HeaderImplPath = "X-Impl-Path"

	// MIMEJavaSource is the content type of generated source responses
	MIMEJavaSource = "text/x-java-source; charset=utf-8"

	// MIMEJavaArchive is the content type of jar responses
	MIMEJavaArchive = "application/java-archive"

	// requestSourceName names posted sources in diagnostics
	requestSourceName = "request.java"

	scratchPrefix = "implementor-"
)

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// handleImplement returns the implementation source of the interface posted
// as the request body. With ?escape=false the \uXXXX escapes are decoded for
// display.
func (s *Server) handleImplement(c echo.Context) error {
	escape := true
	if err := echo.QueryParamsBinder(c).Bool("escape", &escape).BindError(); err != nil {
		return err
	}

	_, desc, err := s.parseBody(c)
	if err != nil {
		return err
	}

	artifact, err := s.emitter.Generate(desc)
	if err != nil {
		return err
	}

	content := artifact.Content
	if !escape {
		content = templates.Unescape(content)
	}

	setImplPath(c, artifact.RelativePath)
	return c.Blob(http.StatusOK, MIMEJavaSource, []byte(content))
}

// setImplPath sets HeaderImplPath, escaping non-ASCII package or type names
// since header values must be ASCII
func setImplPath(c echo.Context, path string) {
	if !templates.IsASCII(path) {
		path = templates.Escape(path)
	}
	c.Response().Header().Set(HeaderImplPath, path)
}

// handleImplementJar compiles the implementation of the posted interface and
// returns the resulting archive. The source is laid out on a private source
// path that also serves as the type's classpath origin.
func (s *Server) handleImplementJar(c echo.Context) error {
	body, parsed, err := s.parseBody(c)
	if err != nil {
		return err
	}

	scratch, err := s.fileOps.CreateWorkspace(s.options.ScratchRoot, scratchPrefix)
	if err != nil {
		return err
	}
	sourceRoot := filepath.Join(scratch, "src")
	sourceFile := filepath.Join(sourceRoot, filepath.FromSlash(parsed.PackagePath()), parser.SourceName(parsed.SimpleName))
	defer func() {
		if err := s.fileOps.RemoveAll(scratch); err != nil {
			s.diagnostics.Warn("Failed to remove scratch directory %s: %v", scratch, err)
		}
	}()

	if err := s.fileOps.EnsureParent(sourceFile); err != nil {
		return err
	}
	if err := s.fileOps.WriteFile(sourceFile, body); err != nil {
		return err
	}

	resolver := parser.NewResolver([]string{sourceRoot}, parser.WithDiagnostics(s.diagnostics))
	desc, err := resolver.Resolve(parsed.QualifiedName())
	if err != nil {
		return err
	}

	archive := filepath.Join(scratch, desc.ImplName()+".jar")
	if err := s.implementor.ImplementJar(c.Request().Context(), desc, archive); err != nil {
		return err
	}

	data, err := os.ReadFile(archive)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": desc.ImplName() + ".jar"}))
	setImplPath(c, models.ClassEntryName(desc))
	return c.Blob(http.StatusOK, MIMEJavaArchive, data)
}

// parseBody reads the request body as Java source and describes its primary type
func (s *Server) parseBody(c echo.Context) ([]byte, *models.TypeDescriptor, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, nil, err
	}
	if len(body) == 0 {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "request body must contain Java interface source")
	}

	desc, err := parser.ParseSource(requestSourceName, body)
	if err != nil {
		return nil, nil, err
	}
	if err := desc.Validate(); err != nil {
		return nil, nil, err
	}
	s.diagnostics.Debug("Parsed %s with %d methods", desc.QualifiedName(), len(desc.Methods))
	return body, desc, nil
}
