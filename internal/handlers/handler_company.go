package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/dto"
	"github.com/teaminfinity/expense_management/internal/middleware"
)

// companyHandler handles HTTP requests related to company settings.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

// newCompanyHandler creates a new companyHandler.
func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{
		companyService: cs,
	}
}

// registerCompanyRoutes registers all company-related routes.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := newCompanyHandler(companyService)

	company := rg.Group("/company")
	{
		company.GET("", h.getCompany)
		company.PATCH("", h.updateCompany) // Admin only
	}
}

// getCompany godoc
// @Summary Get company settings
// @Description Retrieves the acting user's company.
// @Tags company
// @Produce json
// @Success 200 {object} dto.CompanyResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /company [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), actingUserID)
	if err != nil {
		respondError(c, err, "Failed to retrieve company")
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// updateCompany godoc
// @Summary Update company settings
// @Description Changes mutable company settings such as the manager-approver flag. Admin only.
// @Tags company
// @Accept json
// @Produce json
// @Param company body dto.UpdateCompanyRequest true "Settings to change"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /company [patch]
func (h *companyHandler) updateCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), req, actingUserID)
	if err != nil {
		logger.Error("Failed to update company", slog.String("error", err.Error()))
		respondError(c, err, "Failed to update company")
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}
