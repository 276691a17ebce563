package handler

import (
	"github.com/gin-gonic/gin"
	appbilling "github.com/housebill/backend/internal/application/billing"
	"github.com/housebill/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// ReadingHandler serves the electricity meter reading endpoints
type ReadingHandler struct {
	BaseHandler
	readingService *appbilling.ReadingService
}

// NewReadingHandler creates a reading handler
func NewReadingHandler(readingService *appbilling.ReadingService, logger *zap.Logger) *ReadingHandler {
	return &ReadingHandler{
		BaseHandler:    NewBaseHandler(logger),
		readingService: readingService,
	}
}

// RegisterRoutes registers reading routes
func (h *ReadingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	readings := rg.Group("/electricity-readings")
	{
		readings.GET("", h.List)
		readings.POST("", h.Create)
		readings.GET("/by-month-year", h.ByMonthYear)
		readings.GET("/:id", h.Get)
		readings.PUT("/:id", h.Update)
		readings.DELETE("/:id", h.Delete)
	}
}

// List returns every reading, newest slot first
func (h *ReadingHandler) List(c *gin.Context) {
	readings, err := h.readingService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewReadingResponseList(readings))
}

// Create records a reading; one per month and year slot, admin only
func (h *ReadingHandler) Create(c *gin.Context) {
	var req dto.CreateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	reading, err := h.readingService.Create(c.Request.Context(), currentUser(c), appbilling.CreateReadingInput{
		Month:     req.Month,
		Year:      req.Year,
		StartUnit: req.StartUnit,
		EndUnit:   req.EndUnit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewReadingResponse(reading))
}

// ByMonthYear returns the reading for one slot, or null data when the
// slot has no reading yet
func (h *ReadingHandler) ByMonthYear(c *gin.Context) {
	var req dto.ByMonthYearRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	reading, err := h.readingService.ByMonthYear(c.Request.Context(), req.Month, req.Year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if reading == nil {
		h.Success(c, nil)
		return
	}
	h.Success(c, dto.NewReadingResponse(reading))
}

// Get returns one reading
func (h *ReadingHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	reading, err := h.readingService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewReadingResponse(reading))
}

// Update patches a reading, admin only
func (h *ReadingHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req dto.UpdateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	reading, err := h.readingService.Update(c.Request.Context(), currentUser(c), id, appbilling.UpdateReadingInput{
		Month:     req.Month,
		Year:      req.Year,
		StartUnit: req.StartUnit,
		EndUnit:   req.EndUnit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewReadingResponse(reading))
}

// Delete removes a reading, admin only
func (h *ReadingHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.readingService.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
