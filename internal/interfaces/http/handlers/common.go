// Package handlers implements the HTTP endpoints of the API server: the HTML
// converter page, the JSON conversion and drug-likeness API, and the health
// checks.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molforge/internal/application/conversion"
	"github.com/turtacn/molforge/internal/domain/druglike"
	"github.com/turtacn/molforge/internal/domain/molecule"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/pkg/errors"
)

// ConversionService is what the handlers need from the application layer.
type ConversionService interface {
	Convert(ctx context.Context, smiles string) (*conversion.Report, error)
	Evaluate(d molecule.Descriptors) (druglike.Assessment, error)
	Structure(ctx context.Context, key string) (*molecule.Structure, error)
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// errorResponse builds the body for err. Server-side failures are masked with
// the default message of their code.
func errorResponse(err error) (int, ErrorResponse) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)
	resp := ErrorResponse{Code: code.String()}

	var ae *errors.AppError
	switch {
	case status >= http.StatusInternalServerError:
		resp.Message = errors.DefaultMessageForCode(code)
	case errors.As(err, &ae):
		resp.Message = ae.Message
		resp.Detail = ae.Detail
	default:
		resp.Message = err.Error()
	}
	return status, resp
}

// writeAppError maps err to its HTTP status and aborts the request.
func writeAppError(c *gin.Context, logger logging.Logger, err error) {
	status, resp := errorResponse(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context(), logger).Error("request failed",
			logging.String("code", resp.Code),
			logging.Err(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

// writeBindError reports a malformed request body.
func writeBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Code:    errors.ErrCodeBadRequest.String(),
		Message: "malformed request body",
		Detail:  err.Error(),
	})
}

//Personal.AI order the ending
