package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/buildbooks/construction_gl/internal/apperrors"
	"github.com/buildbooks/construction_gl/internal/core/domain"
	portssvc "github.com/buildbooks/construction_gl/internal/core/ports/services"
	"github.com/buildbooks/construction_gl/internal/middleware"
	"github.com/gin-gonic/gin"
)

// producerHandler exposes registration of the records the generators consume.
type producerHandler struct {
	producerService portssvc.ProducerSvcFacade
}

func newProducerHandler(producerService portssvc.ProducerSvcFacade) *producerHandler {
	return &producerHandler{producerService: producerService}
}

func (h *producerHandler) registerLease(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var lease domain.Lease
	if err := c.ShouldBindJSON(&lease); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	saved, err := h.producerService.RegisterLease(c.Request.Context(), lease)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Lease already exists"})
			return
		}
		logger.Error("Lease registration failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lease registration failed"})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *producerHandler) registerEquipment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var equipment domain.Equipment
	if err := c.ShouldBindJSON(&equipment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	saved, err := h.producerService.RegisterEquipment(c.Request.Context(), equipment)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Equipment already exists"})
			return
		}
		logger.Error("Equipment registration failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Equipment registration failed"})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func registerProducerRoutes(rg *gin.RouterGroup, producerService portssvc.ProducerSvcFacade) {
	h := newProducerHandler(producerService)

	producers := rg.Group("/producers")
	{
		producers.POST("/leases", h.registerLease)
		producers.POST("/equipment", h.registerEquipment)
	}
}
