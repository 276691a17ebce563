package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/housebill/backend/internal/interfaces/http/dto"
	"github.com/housebill/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides the response helpers shared by all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// Success writes a 200 response with the standard envelope
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta writes a 200 response with pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created writes a 201 response
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes an error response using the transport error code mapping
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BindError writes a 400 response for a failed request binding,
// listing the failed fields when the validator produced them
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]dto.ValidationDetail, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, dto.ValidationDetail{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: fe.Error(),
			})
		}
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Request validation failed", getRequestID(c), details))
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, err.Error(), getRequestID(c)))
}

// HandleError translates service errors into HTTP responses. Domain
// errors keep their code and message; anything else becomes a 500
// without leaking internals.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.DomainErrorHTTPStatus(domainErr.Code)
		if status == http.StatusInternalServerError && h.logger != nil {
			h.logger.Error("unmapped domain error",
				zap.String("code", domainErr.Code),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
		}
		c.JSON(status, dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, getRequestID(c)))
		return
	}

	if h.logger != nil {
		h.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", getRequestID(c)),
			zap.Error(err))
	}
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An internal error occurred", getRequestID(c)))
}

// bindID parses the :id path parameter, writing the error response
// itself on failure
func (h *BaseHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BindError(c, err)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.Error(c, dto.ErrCodeInvalidInput, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

func getRequestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// currentUser returns the authenticated user, or nil outside the JWT
// middleware
func currentUser(c *gin.Context) *identity.User {
	return middleware.GetCurrentUser(c)
}
