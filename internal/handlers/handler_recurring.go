package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/buildbooks/construction_gl/internal/apperrors"
	"github.com/buildbooks/construction_gl/internal/core/domain"
	portssvc "github.com/buildbooks/construction_gl/internal/core/ports/services"
	"github.com/buildbooks/construction_gl/internal/dto"
	"github.com/buildbooks/construction_gl/internal/middleware"
	"github.com/buildbooks/construction_gl/internal/utils/dates"
	"github.com/gin-gonic/gin"
)

// recurringHandler exposes the idempotent generators and the business-event
// posting endpoints.
type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
	postingService   portssvc.PostingSvcFacade
}

func newRecurringHandler(recurringService portssvc.RecurringSvcFacade, postingService portssvc.PostingSvcFacade) *recurringHandler {
	return &recurringHandler{recurringService: recurringService, postingService: postingService}
}

// bindGenerateRequest binds the common generator payload and resolves its
// optional as-of date, defaulting to today.
func bindGenerateRequest(c *gin.Context) (companyID string, asOf time.Time, ok bool) {
	var req dto.GenerateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return "", time.Time{}, false
	}
	asOf = time.Now().UTC()
	if req.AsOf != "" {
		parsed, err := time.Parse(dates.DayKeyFormat, req.AsOf)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be formatted as YYYY-MM-DD"})
			return "", time.Time{}, false
		}
		asOf = parsed
	}
	return req.CompanyID, asOf, true
}

func (h *recurringHandler) generateRentAccruals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companyID, asOf, ok := bindGenerateRequest(c)
	if !ok {
		return
	}

	result, err := h.recurringService.GenerateRentAccruals(c.Request.Context(), companyID, asOf, actorID(c))
	if err != nil {
		logger.Error("Rent accrual generation failed", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rent accrual generation failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *recurringHandler) generateRentRecognition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companyID, asOf, ok := bindGenerateRequest(c)
	if !ok {
		return
	}

	result, err := h.recurringService.GenerateRentRecognition(c.Request.Context(), companyID, asOf, actorID(c))
	if err != nil {
		logger.Error("Rent recognition generation failed", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rent recognition generation failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *recurringHandler) generateDepreciation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companyID, asOf, ok := bindGenerateRequest(c)
	if !ok {
		return
	}

	result, err := h.recurringService.GenerateDepreciation(c.Request.Context(), companyID, asOf, actorID(c))
	if err != nil {
		logger.Error("Depreciation generation failed", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Depreciation generation failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *recurringHandler) generateLaborAccruals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GenerateLaborRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	from, err := time.Parse(dates.DayKeyFormat, req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be formatted as YYYY-MM-DD"})
		return
	}
	to, err := time.Parse(dates.DayKeyFormat, req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be formatted as YYYY-MM-DD"})
		return
	}

	result, err := h.recurringService.GenerateLaborAccruals(c.Request.Context(), req.CompanyID, from, to, actorID(c))
	if err != nil {
		logger.Error("Labor accrual generation failed", slog.String("error", err.Error()), slog.String("company_id", req.CompanyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Labor accrual generation failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *recurringHandler) adjustAllowance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companyID, asOf, ok := bindGenerateRequest(c)
	if !ok {
		return
	}

	entry, err := h.recurringService.AdjustBadDebtAllowance(c.Request.Context(), companyID, asOf, actorID(c))
	if err != nil {
		logger.Error("Allowance adjustment failed", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Allowance adjustment failed"})
		return
	}
	if entry == nil {
		// Below materiality or roles unresolved, nothing was booked.
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *recurringHandler) postInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var invoice domain.Invoice
	if err := c.ShouldBindJSON(&invoice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.postingService.PostInvoice(c.Request.Context(), invoice, actorID(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "This invoice has already been posted"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Invoice posting failed", slog.String("error", err.Error()), slog.String("invoice_id", invoice.InvoiceID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invoice posting failed"})
		}
		return
	}
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *recurringHandler) postPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var payment domain.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.postingService.PostPayment(c.Request.Context(), payment, actorID(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Referenced invoice not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "This payment has already been posted"})
		default:
			logger.Error("Payment posting failed", slog.String("error", err.Error()), slog.String("payment_id", payment.PaymentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment posting failed"})
		}
		return
	}
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *recurringHandler) postPayrollRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var run domain.PayrollRunSummary
	if err := c.ShouldBindJSON(&run); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.postingService.PostPayrollRun(c.Request.Context(), run, actorID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "This payroll run has already been posted"})
			return
		}
		logger.Error("Payroll posting failed", slog.String("error", err.Error()), slog.String("payroll_run_id", run.PayrollRunID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payroll posting failed"})
		return
	}
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *recurringHandler) upsertLaborDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var day domain.TimeclockDay
	if err := c.ShouldBindJSON(&day); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.recurringService.UpsertLaborAccrual(c.Request.Context(), day, actorID(c))
	if err != nil {
		logger.Error("Labor accrual upsert failed", slog.String("error", err.Error()), slog.String("employee_id", day.EmployeeID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Labor accrual upsert failed"})
		return
	}
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func registerRecurringRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringSvcFacade, postingService portssvc.PostingSvcFacade) {
	h := newRecurringHandler(recurringService, postingService)

	recurring := rg.Group("/recurring")
	{
		recurring.POST("/rent-accruals", h.generateRentAccruals)
		recurring.POST("/rent-recognition", h.generateRentRecognition)
		recurring.POST("/depreciation", h.generateDepreciation)
		recurring.POST("/labor-accruals", h.generateLaborAccruals)
		recurring.POST("/allowance-adjustment", h.adjustAllowance)
		recurring.POST("/labor-day", h.upsertLaborDay)
	}

	postings := rg.Group("/postings")
	{
		postings.POST("/invoices", h.postInvoice)
		postings.POST("/payments", h.postPayment)
		postings.POST("/payroll-runs", h.postPayrollRun)
	}
}
