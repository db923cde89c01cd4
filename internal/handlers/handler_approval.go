package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/dto"
	"github.com/teaminfinity/expense_management/internal/middleware"
)

// approvalHandler handles HTTP requests related to approval decisions.
type approvalHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

// newApprovalHandler creates a new approvalHandler.
func newApprovalHandler(as portssvc.ApprovalSvcFacade) *approvalHandler {
	return &approvalHandler{
		approvalService: as,
	}
}

// registerApprovalRoutes registers all approval decision routes.
func registerApprovalRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade) {
	h := newApprovalHandler(approvalService)

	approvals := rg.Group("/approvals")
	{
		approvals.GET("/pending", h.listPendingSteps)
		approvals.POST("/:stepID/decision", h.decideStep)
	}
}

// listPendingSteps godoc
// @Summary List pending approval steps
// @Description Lists the acting user's undecided approval steps, newest first.
// @Tags approvals
// @Produce json
// @Success 200 {array} dto.ApprovalStepResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /approvals/pending [get]
func (h *approvalHandler) listPendingSteps(c *gin.Context) {
	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	steps, err := h.approvalService.ListPendingStepsForApprover(c.Request.Context(), actingUserID)
	if err != nil {
		respondError(c, err, "Failed to list pending approvals")
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalStepResponses(steps))
}

// decideStep godoc
// @Summary Decide an approval step
// @Description Records an APPROVED or REJECTED decision on a step assigned to the acting user. Decisions are final; the expense status is recomputed atomically.
// @Tags approvals
// @Accept json
// @Produce json
// @Param stepID path string true "Approval step ID"
// @Param decision body dto.ApprovalDecisionRequest true "Decision"
// @Success 200 {object} dto.ApprovalStepResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Acting user is not the assigned approver"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Step already decided"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /approvals/{stepID}/decision [post]
func (h *approvalHandler) decideStep(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stepID := c.Param("stepID")

	var req dto.ApprovalDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	step, err := h.approvalService.ProcessDecision(c.Request.Context(), stepID, req, actingUserID)
	if err != nil {
		logger.Warn("Approval decision rejected", slog.String("error", err.Error()), slog.String("step_id", stepID))
		respondError(c, err, "Failed to process decision")
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalStepResponse(step))
}
