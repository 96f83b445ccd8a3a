package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portssvc "github.com/SscSPs/cashbook_app/internal/core/ports/services"
	"github.com/SscSPs/cashbook_app/internal/dto"
	"github.com/SscSPs/cashbook_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// counterpartyHandler serves one role. Customers and suppliers are mounted as
// two instances so every route is scoped to its role.
type counterpartyHandler struct {
	role                domain.CounterpartyRole
	entity              string // capitalised, for error messages
	noun                string
	counterpartyService portssvc.CounterpartySvcFacade
}

// RegisterCounterpartyRoutes registers /customers and /suppliers below a single business.
// rg must carry the :business_id parameter.
func RegisterCounterpartyRoutes(rg *gin.RouterGroup, counterpartyService portssvc.CounterpartySvcFacade) {
	RegisterValidators()

	for _, h := range []*counterpartyHandler{
		{role: domain.RoleCustomer, entity: "Customer", noun: "customer", counterpartyService: counterpartyService},
		{role: domain.RoleSupplier, entity: "Supplier", noun: "supplier", counterpartyService: counterpartyService},
	} {
		group := rg.Group(pathForRole(h.role))
		{
			group.POST("", h.createCounterparty)
			group.GET("", h.listCounterparties)
			group.GET("/:counterparty_id", h.getCounterparty)
			group.PUT("/:counterparty_id", h.updateCounterparty)
			group.DELETE("/:counterparty_id", h.deleteCounterparty)
			group.GET("/:counterparty_id/statement", h.getStatement)
		}
	}
}

func pathForRole(role domain.CounterpartyRole) string {
	if role == domain.RoleSupplier {
		return "/suppliers"
	}
	return "/customers"
}

// createCounterparty godoc
// @Summary Create a customer or supplier
// @Description The same contract is served under /customers and /suppliers. Balances start at zero.
// @Tags counterparties
// @Accept  json
// @Produce  json
// @Param   business_id path string true "Business ID"
// @Param   counterparty body dto.CreateCounterpartyRequest true "Name and 10-digit phone number"
// @Success 201 {object} dto.CounterpartyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Business not found"
// @Failure 500 {object} map[string]string "Failed to create counterparty"
// @Security BearerAuth
// @Router /businesses/{business_id}/customers [post]
// @Router /businesses/{business_id}/suppliers [post]
func (h *counterpartyHandler) createCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("role", string(h.role)))
	businessID := c.Param("business_id")
	var req dto.CreateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCounterparty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("business_id", businessID))

	cp, err := h.counterpartyService.CreateCounterparty(c.Request.Context(), businessID, h.role, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Business", "create "+h.noun)
		return
	}

	logger.Info("Counterparty created successfully", slog.String("counterparty_id", cp.CounterpartyID))
	c.JSON(http.StatusCreated, dto.ToCounterpartyResponse(cp))
}

// listCounterparties godoc
// @Summary List customers or suppliers of a business
// @Description Ordered by name. search matches name or phone number, case-insensitively.
// @Tags counterparties
// @Produce  json
// @Param   business_id path string true "Business ID"
// @Param   search query string false "Name or phone fragment"
// @Success 200 {object} dto.ListCounterpartiesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Business not found"
// @Failure 500 {object} map[string]string "Failed to list counterparties"
// @Security BearerAuth
// @Router /businesses/{business_id}/customers [get]
// @Router /businesses/{business_id}/suppliers [get]
func (h *counterpartyHandler) listCounterparties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("role", string(h.role)))
	businessID := c.Param("business_id")
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ListCounterpartiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListCounterparties", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	cps, err := h.counterpartyService.ListCounterparties(c.Request.Context(), businessID, h.role, params, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Business", "list "+h.noun+"s")
		return
	}

	logger.Info("Counterparties listed successfully", slog.Int("count", len(cps)))
	c.JSON(http.StatusOK, dto.ToListCounterpartiesResponse(cps))
}

// getCounterparty godoc
// @Summary Get a customer or supplier
// @Tags counterparties
// @Produce  json
// @Param   business_id path string true "Business ID"
// @Param   counterparty_id path string true "Customer or supplier ID"
// @Success 200 {object} dto.CounterpartyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 500 {object} map[string]string "Failed to retrieve counterparty"
// @Security BearerAuth
// @Router /businesses/{business_id}/customers/{counterparty_id} [get]
// @Router /businesses/{business_id}/suppliers/{counterparty_id} [get]
func (h *counterpartyHandler) getCounterparty(c *gin.Context) {
	logger := h.scopedLogger(c)
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	cp, err := h.counterpartyService.GetCounterparty(c.Request.Context(), c.Param("business_id"), h.role, c.Param("counterparty_id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, h.entity, "retrieve "+h.noun)
		return
	}

	c.JSON(http.StatusOK, dto.ToCounterpartyResponse(cp))
}

// updateCounterparty godoc
// @Summary Edit a customer or supplier profile
// @Description Only name and phone number can change. The balance is maintained by transactions.
// @Tags counterparties
// @Accept  json
// @Produce  json
// @Param   business_id path string true "Business ID"
// @Param   counterparty_id path string true "Customer or supplier ID"
// @Param   counterparty body dto.UpdateCounterpartyRequest true "Fields to change"
// @Success 200 {object} dto.CounterpartyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 500 {object} map[string]string "Failed to update counterparty"
// @Security BearerAuth
// @Router /businesses/{business_id}/customers/{counterparty_id} [put]
// @Router /businesses/{business_id}/suppliers/{counterparty_id} [put]
func (h *counterpartyHandler) updateCounterparty(c *gin.Context) {
	logger := h.scopedLogger(c)
	var req dto.UpdateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCounterparty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	cp, err := h.counterpartyService.UpdateCounterparty(c.Request.Context(), c.Param("business_id"), h.role, c.Param("counterparty_id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, h.entity, "update "+h.noun)
		return
	}

	logger.Info("Counterparty updated successfully")
	c.JSON(http.StatusOK, dto.ToCounterpartyResponse(cp))
}

// deleteCounterparty godoc
// @Summary Delete a customer or supplier
// @Description Deletes the counterparty and every transaction that references it
// @Tags counterparties
// @Produce  json
// @Param   business_id path string true "Business ID"
// @Param   counterparty_id path string true "Customer or supplier ID"
// @Success 200 {object} dto.DeleteCounterpartyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 500 {object} map[string]string "Failed to delete counterparty"
// @Security BearerAuth
// @Router /businesses/{business_id}/customers/{counterparty_id} [delete]
// @Router /businesses/{business_id}/suppliers/{counterparty_id} [delete]
func (h *counterpartyHandler) deleteCounterparty(c *gin.Context) {
	logger := h.scopedLogger(c)
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger.Info("Received request to delete counterparty")

	removed, err := h.counterpartyService.DeleteCounterparty(c.Request.Context(), c.Param("business_id"), h.role, c.Param("counterparty_id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, h.entity, "delete "+h.noun)
		return
	}

	logger.Info("Counterparty deleted successfully", slog.Int64("deleted_transactions", removed))
	c.JSON(http.StatusOK, dto.DeleteCounterpartyResponse{DeletedTransactions: removed})
}

// getStatement godoc
// @Summary Statement of a customer or supplier
// @Description Transactions oldest first with the running balance after each one
// @Tags counterparties
// @Produce  json
// @Param   business_id path string true "Business ID"
// @Param   counterparty_id path string true "Customer or supplier ID"
// @Success 200 {object} dto.CounterpartyStatementResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 500 {object} map[string]string "Failed to build statement"
// @Security BearerAuth
// @Router /businesses/{business_id}/customers/{counterparty_id}/statement [get]
// @Router /businesses/{business_id}/suppliers/{counterparty_id}/statement [get]
func (h *counterpartyHandler) getStatement(c *gin.Context) {
	logger := h.scopedLogger(c)
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	st, err := h.counterpartyService.GetCounterpartyStatement(c.Request.Context(), c.Param("business_id"), h.role, c.Param("counterparty_id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, h.entity, "build statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToCounterpartyStatementResponse(st))
}

func (h *counterpartyHandler) scopedLogger(c *gin.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("role", string(h.role)),
		slog.String("business_id", c.Param("business_id")),
		slog.String("counterparty_id", c.Param("counterparty_id")),
	)
}
