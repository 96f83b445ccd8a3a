package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cashbook_app/internal/core/ports/services"
	"github.com/SscSPs/cashbook_app/internal/dto"
	"github.com/SscSPs/cashbook_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// analyticsHandler serves the read-only derived views of a business ledger.
type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvcFacade
	exportService    portssvc.ExportSvc
}

// RegisterAnalyticsRoutes registers analytics, reconciliation and export below a single business.
// rg must carry the :business_id parameter.
func RegisterAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvcFacade, exportService portssvc.ExportSvc) {
	h := &analyticsHandler{analyticsService: analyticsService, exportService: exportService}

	rg.GET("/analytics/monthly", h.getMonthlyAnalytics)
	rg.GET("/balances/verify", h.verifyBalances)
	rg.GET("/export", h.getExport)
}

// getMonthlyAnalytics godoc
// @Summary Monthly analytics
// @Description Per-month IN and OUT totals (UTC calendar months), oldest first
// @Tags analytics
// @Produce  json
// @Param   business_id path string true "Business ID"
// @Success 200 {object} dto.ListMonthlyAnalyticsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Business not found"
// @Failure 500 {object} map[string]string "Failed to compute analytics"
// @Security BearerAuth
// @Router /businesses/{business_id}/analytics/monthly [get]
func (h *analyticsHandler) getMonthlyAnalytics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("business_id", businessID))

	months, err := h.analyticsService.GetMonthlyAnalytics(c.Request.Context(), businessID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Business", "compute analytics")
		return
	}

	c.JSON(http.StatusOK, dto.ToListMonthlyAnalyticsResponse(businessID, months))
}

// verifyBalances godoc
// @Summary Reconcile counterparty balances
// @Description Recomputes every balance from transactions and lists the counterparties whose stored balance differs
// @Tags analytics
// @Produce  json
// @Param   business_id path string true "Business ID"
// @Success 200 {object} dto.VerifyBalancesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Business not found"
// @Failure 500 {object} map[string]string "Failed to verify balances"
// @Security BearerAuth
// @Router /businesses/{business_id}/balances/verify [get]
func (h *analyticsHandler) verifyBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("business_id", businessID))

	mismatches, err := h.analyticsService.VerifyBalances(c.Request.Context(), businessID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Business", "verify balances")
		return
	}
	if len(mismatches) > 0 {
		logger.Warn("Balance drift detected", slog.Int("mismatches", len(mismatches)))
	}

	c.JSON(http.StatusOK, dto.ToVerifyBalancesResponse(mismatches))
}

// getExport godoc
// @Summary Export a business ledger
// @Description Business, all transactions oldest first and counterparty name lookups for external renderers
// @Tags analytics
// @Produce  json
// @Param   business_id path string true "Business ID"
// @Success 200 {object} dto.LedgerExportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Business not found"
// @Failure 500 {object} map[string]string "Failed to export ledger"
// @Security BearerAuth
// @Router /businesses/{business_id}/export [get]
func (h *analyticsHandler) getExport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("business_id", businessID))

	export, err := h.exportService.GetLedgerExport(c.Request.Context(), businessID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Business", "export ledger")
		return
	}

	logger.Info("Ledger exported", slog.Int("transactions", len(export.Transactions)))
	c.JSON(http.StatusOK, dto.ToLedgerExportResponse(export))
}
