package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/buildbooks/construction_gl/internal/core/ports/services"
	"github.com/buildbooks/construction_gl/internal/dto"
	"github.com/buildbooks/construction_gl/internal/middleware"
	"github.com/buildbooks/construction_gl/internal/utils/dates"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// reportsHandler handles HTTP requests for derived financial statements.
type reportsHandler struct {
	statementService portssvc.StatementSvcFacade
	agingService     portssvc.AgingSvcFacade
}

func newReportsHandler(statementService portssvc.StatementSvcFacade, agingService portssvc.AgingSvcFacade) *reportsHandler {
	return &reportsHandler{statementService: statementService, agingService: agingService}
}

// parseDateParam parses an optional YYYY-MM-DD query parameter.
func parseDateParam(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(dates.DayKeyFormat, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be formatted as YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}

// parsePeriod binds and parses the required from/to range parameters.
func parsePeriod(c *gin.Context) (from, to time.Time, ok bool) {
	var req dto.PeriodReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required (YYYY-MM-DD)"})
		return from, to, false
	}
	from, err := time.Parse(dates.DayKeyFormat, req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be formatted as YYYY-MM-DD"})
		return from, to, false
	}
	to, err = time.Parse(dates.DayKeyFormat, req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be formatted as YYYY-MM-DD"})
		return from, to, false
	}
	return from, to, true
}

func (h *reportsHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	asOf, ok := parseDateParam(c, "asOf")
	if !ok {
		return
	}

	rows, err := h.statementService.TrialBalance(c.Request.Context(), companyID, asOf)
	if err != nil {
		logger.Error("Failed to generate trial balance", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate trial balance"})
		return
	}

	resp := dto.TrialBalanceResponse{Rows: rows, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	if asOf != nil {
		resp.AsOf = asOf.Format(dates.DayKeyFormat)
	}
	for _, row := range rows {
		resp.TotalDebit = resp.TotalDebit.Add(row.Debit)
		resp.TotalCredit = resp.TotalCredit.Add(row.Credit)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *reportsHandler) incomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	data, err := h.statementService.IncomeStatement(c.Request.Context(), companyID, from, to)
	if err != nil {
		logger.Error("Failed to generate income statement", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate income statement"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *reportsHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	asOf, ok := parseDateParam(c, "asOf")
	if !ok {
		return
	}
	effective := time.Now().UTC()
	if asOf != nil {
		effective = *asOf
	}

	data, err := h.statementService.BalanceSheet(c.Request.Context(), companyID, effective)
	if err != nil {
		logger.Error("Failed to generate balance sheet", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate balance sheet"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *reportsHandler) cashFlowStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	data, err := h.statementService.CashFlowStatement(c.Request.Context(), companyID, from, to)
	if err != nil {
		logger.Error("Failed to generate cash flow statement", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate cash flow statement"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *reportsHandler) agingAnalysis(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	asOf, ok := parseDateParam(c, "asOf")
	if !ok {
		return
	}
	effective := time.Now().UTC()
	if asOf != nil {
		effective = *asOf
	}

	analysis, err := h.agingService.Analyze(c.Request.Context(), companyID, effective)
	if err != nil {
		logger.Error("Failed to generate aging analysis", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate aging analysis"})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func registerReportRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvcFacade, agingService portssvc.AgingSvcFacade) {
	h := newReportsHandler(statementService, agingService)

	reports := rg.Group("/companies/:companyID/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/cash-flow", h.cashFlowStatement)
		reports.GET("/receivables-aging", h.agingAnalysis)
	}
}
