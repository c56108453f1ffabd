package server

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toyz/implementor/internal/errors"
)

// ErrorResponse is the JSON body of every error response
type ErrorResponse struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// StatusFor maps an error code to an HTTP status. Problems with the posted
// source are the client's; a compiler rejection is a failed upstream tool.
func StatusFor(code errors.ErrorCode) int {
	switch code {
	case errors.InvalidTargetCode, errors.SyntaxFailureCode, errors.ResolutionFailureCode:
		return http.StatusUnprocessableEntity
	case errors.CompileFailureCode:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(err error) (int, ErrorResponse) {
	var he *echo.HTTPError
	var be *echo.BindingError
	if stderrors.As(err, &be) {
		he = be.HTTPError
	}
	if he != nil || stderrors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		} else if he.Message != nil {
			message = fmt.Sprint(he.Message)
		}
		return he.Code, ErrorResponse{Code: "HTTPError", Message: message}
	}

	if implErr, ok := errors.As(err); ok {
		return StatusFor(implErr.ErrorCode()), ErrorResponse{
			Code:        implErr.ErrorCode().String(),
			Message:     implErr.Error(),
			Suggestions: implErr.Suggestions(),
		}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Code:    errors.UnknownErrorCode.String(),
		Message: err.Error(),
	}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		s.diagnostics.Error("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		s.diagnostics.Error("Failed to write error response: %v", err)
	}
}
