package availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/marketplace-api/internal/handler"
	"github.com/jwalitptl/marketplace-api/internal/middleware"
	"github.com/jwalitptl/marketplace-api/internal/model"
	"github.com/jwalitptl/marketplace-api/internal/service/availability"
)

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) AddWeeklyRule(c *gin.Context) {
	providerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user"))
		return
	}

	var req model.CreateWeeklyAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rule, err := h.service.AddWeeklyRule(c.Request.Context(), providerID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(rule))
}

func (h *Handler) ListWeeklyRules(c *gin.Context) {
	providerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user"))
		return
	}

	rules, err := h.service.ListWeeklyRules(c.Request.Context(), providerID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rules))
}

func (h *Handler) DeleteWeeklyRule(c *gin.Context) {
	providerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid rule ID"))
		return
	}

	if err := h.service.RemoveWeeklyRule(c.Request.Context(), providerID, id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) AddTimeOff(c *gin.Context) {
	providerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user"))
		return
	}

	var req model.CreateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rule, err := h.service.AddTimeOff(c.Request.Context(), providerID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(rule))
}

func (h *Handler) ListTimeOff(c *gin.Context) {
	providerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user"))
		return
	}

	rules, err := h.service.ListTimeOff(c.Request.Context(), providerID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rules))
}

func (h *Handler) DeleteTimeOff(c *gin.Context) {
	providerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid rule ID"))
		return
	}

	if err := h.service.RemoveTimeOff(c.Request.Context(), providerID, id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

// GetSlots lists available booking start times for a provider on a date.
// Unknown providers yield an empty list rather than an error; this endpoint
// is read-only, so lenient is fine.
func (h *Handler) GetSlots(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid provider ID"))
		return
	}

	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
		return
	}

	date, err := time.Parse(model.DateOnly, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date format, use YYYY-MM-DD"))
		return
	}

	intervalMinutes := availability.DefaultSlotInterval
	if v := c.Query("interval_minutes"); v != "" {
		intervalMinutes, err = strconv.Atoi(v)
		if err != nil || intervalMinutes <= 0 {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid interval_minutes"))
			return
		}
	}

	slots, err := h.service.GenerateSlots(c.Request.Context(), providerID, serviceID, date, intervalMinutes)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}

// RegisterRoutes wires provider-facing rule management; requires the
// provider role.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	rules := r.Group("/availability")
	{
		rules.POST("/weekly", h.AddWeeklyRule)
		rules.GET("/weekly", h.ListWeeklyRules)
		rules.DELETE("/weekly/:id", h.DeleteWeeklyRule)
		rules.POST("/timeoff", h.AddTimeOff)
		rules.GET("/timeoff", h.ListTimeOff)
		rules.DELETE("/timeoff/:id", h.DeleteTimeOff)
	}
}

// RegisterPublicRoutes wires the unauthenticated slot listing.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup, slotCache *middleware.SlotCache) {
	if slotCache != nil {
		r.GET("/providers/:id/slots", slotCache.Cache(), h.GetSlots)
		return
	}
	r.GET("/providers/:id/slots", h.GetSlots)
}
