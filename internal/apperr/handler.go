package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
}

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := toResponse(err)
		if status >= http.StatusInternalServerError {
			slog.Error("Request failed", "path", c.Path(), "status", status, "error", err)
		}
		_ = c.JSON(status, body)
	}
}

func toResponse(err error) (int, ErrorResponse) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ErrorResponse{Error: ve.Error(), Title: "validation error"}
	}

	// a semantic error comes with usable fingerprints and never fails a request
	var pe *ProviderError
	if errors.As(err, &pe) && pe.Fatal() {
		return http.StatusBadGateway, ErrorResponse{Error: pe.Error(), Title: "provider error"}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, ErrorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}
