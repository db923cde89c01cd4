package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/dto"
)

// integrationHandler handles currency lookup and OCR requests.
type integrationHandler struct {
	integrationService portssvc.IntegrationSvcFacade
	ocrService         portssvc.OcrSvcFacade
}

// newIntegrationHandler creates a new integrationHandler.
func newIntegrationHandler(is portssvc.IntegrationSvcFacade, os portssvc.OcrSvcFacade) *integrationHandler {
	return &integrationHandler{
		integrationService: is,
		ocrService:         os,
	}
}

// registerIntegrationRoutes registers currency and OCR routes.
func registerIntegrationRoutes(rg *gin.RouterGroup, integrationService portssvc.IntegrationSvcFacade, ocrService portssvc.OcrSvcFacade) {
	h := newIntegrationHandler(integrationService, ocrService)

	rg.GET("/currencies/:country", h.getCountryCurrency)
	rg.GET("/exchange-rates/:base", h.getExchangeRates)
	rg.POST("/ocr/receipt", h.extractReceipt)
}

// getCountryCurrency godoc
// @Summary Get a country's default currency
// @Description Resolves the primary currency code of a country.
// @Tags integrations
// @Produce json
// @Param country path string true "Country name"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /currencies/{country} [get]
func (h *integrationHandler) getCountryCurrency(c *gin.Context) {
	country := c.Param("country")

	currency, err := h.integrationService.GetDefaultCurrencyForCountry(c.Request.Context(), country)
	if err != nil {
		respondError(c, err, "Failed to resolve currency")
		return
	}

	c.JSON(http.StatusOK, gin.H{"country": country, "currencyCode": currency})
}

// getExchangeRates godoc
// @Summary Get exchange rates
// @Description Returns exchange rates for a base currency.
// @Tags integrations
// @Produce json
// @Param base path string true "Base currency code"
// @Success 200 {object} dto.CurrencyRateResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/{base} [get]
func (h *integrationHandler) getExchangeRates(c *gin.Context) {
	base := c.Param("base")

	rates, err := h.integrationService.GetExchangeRates(c.Request.Context(), base)
	if err != nil {
		respondError(c, err, "Failed to retrieve exchange rates")
		return
	}

	c.JSON(http.StatusOK, rates)
}

// extractReceipt godoc
// @Summary Extract expense fields from a receipt
// @Description Runs OCR over a receipt image and returns the extracted expense fields.
// @Tags integrations
// @Accept json
// @Produce json
// @Param receipt body dto.OcrRequest true "Receipt image reference"
// @Success 200 {object} dto.OcrResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ocr/receipt [post]
func (h *integrationHandler) extractReceipt(c *gin.Context) {
	var req dto.OcrRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.ocrService.ExtractReceipt(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to extract receipt")
		return
	}

	c.JSON(http.StatusOK, resp)
}
