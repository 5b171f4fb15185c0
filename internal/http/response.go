package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/packaging-service/internal/domain/dto"
	"github.com/guttosm/packaging-service/internal/i18n"
	"github.com/guttosm/packaging-service/internal/middleware"
)

// ResponseBuilder writes the service's JSON envelopes for one request.
// Error responses abort the handler chain and record the cause on the context
// so the error handler and request logger can report it.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a response builder for c.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success writes data in a SuccessResponse envelope.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.c.JSON(statusCode, dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now().UTC(),
	})
}

// SuccessOK writes data with 200 OK.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated writes data with 201 Created.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error replies with the message for messageKey in the request's locale.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.ErrorWithMessage(statusCode, i18n.TranslateRequest(b.c, messageKey), err)
}

// ErrorWithMessage replies with message as is.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.abort(statusCode, dto.NewError(dto.ErrCodeFromStatus(statusCode), message), err)
}

// BindError replies 400 to a body that failed binding or validation.
// Validation errors keep their field path in the message and in details;
// anything else gets the translated invalid body message.
func (b *ResponseBuilder) BindError(err error) {
	var validationErr *dto.ValidationError
	if !errors.As(err, &validationErr) {
		b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	resp := dto.NewError(dto.ErrCodeInvalidRequest, validationErr.Error())
	resp.Details = map[string]string{validationErr.Field: validationErr.Message}
	b.abort(http.StatusBadRequest, resp, err)
}

func (b *ResponseBuilder) abort(statusCode int, resp dto.ErrorResponse, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}
	b.c.AbortWithStatusJSON(statusCode, resp.WithRequestID(middleware.GetRequestID(b.c)))
}
