package services

import (
	"context"

	"github.com/teaminfinity/expense_management/internal/dto"
)

// IntegrationSvcFacade defines lookups against external country and currency
// rate providers; implementations fall back to static data when the provider
// is disabled or unreachable.
type IntegrationSvcFacade interface {
	// GetDefaultCurrencyForCountry returns the primary currency code of a country.
	GetDefaultCurrencyForCountry(ctx context.Context, country string) (string, error)

	// GetExchangeRates returns exchange rates for a base currency.
	GetExchangeRates(ctx context.Context, baseCurrency string) (*dto.CurrencyRateResponse, error)
}

// OcrSvcFacade defines receipt field extraction.
type OcrSvcFacade interface {
	// ExtractReceipt extracts expense fields from a receipt image.
	ExtractReceipt(ctx context.Context, req dto.OcrRequest) (*dto.OcrResponse, error)
}
