package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/dto"
	"github.com/teaminfinity/expense_management/internal/middleware"
)

// ruleHandler handles HTTP requests related to approval rules.
type ruleHandler struct {
	ruleService portssvc.ApprovalRuleSvcFacade
}

// newRuleHandler creates a new ruleHandler.
func newRuleHandler(rs portssvc.ApprovalRuleSvcFacade) *ruleHandler {
	return &ruleHandler{
		ruleService: rs,
	}
}

// registerRuleRoutes registers all approval rule routes.
func registerRuleRoutes(rg *gin.RouterGroup, ruleService portssvc.ApprovalRuleSvcFacade) {
	h := newRuleHandler(ruleService)

	rules := rg.Group("/approval-rules")
	{
		rules.POST("", h.createRule) // Admin only
		rules.GET("", h.listRules)
		rules.PATCH("/:id", h.updateRule) // Admin only
	}
}

// createRule godoc
// @Summary Create an approval rule
// @Description Adds an approval rule to the acting admin's company. Rules contribute approvers to new expenses in sequence order.
// @Tags approval-rules
// @Accept json
// @Produce json
// @Param rule body dto.CreateApprovalRuleRequest true "Rule definition"
// @Success 201 {object} dto.ApprovalRuleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /approval-rules [post]
func (h *ruleHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateApprovalRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rule, err := h.ruleService.CreateRule(c.Request.Context(), req, actingUserID)
	if err != nil {
		logger.Error("Failed to create approval rule", slog.String("error", err.Error()))
		respondError(c, err, "Failed to create approval rule")
		return
	}

	c.JSON(http.StatusCreated, dto.ToApprovalRuleResponse(rule))
}

// listRules godoc
// @Summary List approval rules
// @Description Lists all approval rules of the acting user's company ordered by sequence.
// @Tags approval-rules
// @Produce json
// @Success 200 {array} dto.ApprovalRuleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /approval-rules [get]
func (h *ruleHandler) listRules(c *gin.Context) {
	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rules, err := h.ruleService.ListRules(c.Request.Context(), actingUserID)
	if err != nil {
		respondError(c, err, "Failed to list approval rules")
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalRuleResponses(rules))
}

// updateRule godoc
// @Summary Update an approval rule
// @Description Changes thresholds, sequence or active flag of an existing rule. Admin only.
// @Tags approval-rules
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param rule body dto.UpdateApprovalRuleRequest true "Fields to change"
// @Success 200 {object} dto.ApprovalRuleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /approval-rules/{id} [patch]
func (h *ruleHandler) updateRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ruleID := c.Param("id")

	var req dto.UpdateApprovalRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rule, err := h.ruleService.UpdateRule(c.Request.Context(), ruleID, req, actingUserID)
	if err != nil {
		logger.Error("Failed to update approval rule", slog.String("error", err.Error()), slog.String("rule_id", ruleID))
		respondError(c, err, "Failed to update approval rule")
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalRuleResponse(rule))
}
