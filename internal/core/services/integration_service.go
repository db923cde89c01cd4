package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teaminfinity/expense_management/internal/apperrors"
	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/dto"
	"github.com/teaminfinity/expense_management/internal/middleware"
	"github.com/teaminfinity/expense_management/internal/platform/config"
)

// fallbackCurrencies covers common countries when the external country API is
// disabled or unreachable.
var fallbackCurrencies = map[string]string{
	"united states":  "USD",
	"india":          "INR",
	"united kingdom": "GBP",
	"germany":        "EUR",
	"france":         "EUR",
	"japan":          "JPY",
	"canada":         "CAD",
	"australia":      "AUD",
}

// fallbackRates is a static USD-based rate table used when the external rates
// API is disabled or unreachable.
var fallbackRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"EUR": decimal.RequireFromString("0.92"),
	"GBP": decimal.RequireFromString("0.79"),
	"INR": decimal.RequireFromString("83.10"),
	"JPY": decimal.RequireFromString("149.50"),
	"CAD": decimal.RequireFromString("1.36"),
	"AUD": decimal.RequireFromString("1.53"),
}

// integrationService looks up country currencies and exchange rates from
// external providers, falling back to static data when they are unavailable.
type integrationService struct {
	cfg        *config.Config
	httpClient *http.Client
}

// NewIntegrationService creates a new IntegrationService.
func NewIntegrationService(cfg *config.Config) portssvc.IntegrationSvcFacade {
	return &integrationService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Ensure integrationService implements the IntegrationSvcFacade interface.
var _ portssvc.IntegrationSvcFacade = (*integrationService)(nil)

// countryAPIEntry matches the restcountries response shape; only the
// currencies map is read.
type countryAPIEntry struct {
	Currencies map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
}

// ratesAPIResponse matches the open.er-api.com response shape.
type ratesAPIResponse struct {
	Result   string                     `json:"result"`
	BaseCode string                     `json:"base_code"`
	Rates    map[string]decimal.Decimal `json:"rates"`
}

// GetDefaultCurrencyForCountry returns the primary currency code of a country.
func (s *integrationService) GetDefaultCurrencyForCountry(ctx context.Context, country string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cfg.ExternalAPIEnabled {
		currency, err := s.fetchCurrencyFromAPI(ctx, country)
		if err == nil {
			return currency, nil
		}
		logger.Warn("Country API lookup failed, using fallback table", slog.String("country", country), slog.String("error", err.Error()))
	}

	if currency, ok := fallbackCurrencies[strings.ToLower(strings.TrimSpace(country))]; ok {
		return currency, nil
	}
	return "", fmt.Errorf("%w: no currency known for country %q", apperrors.ErrNotFound, country)
}

// GetExchangeRates returns exchange rates for a base currency.
func (s *integrationService) GetExchangeRates(ctx context.Context, baseCurrency string) (*dto.CurrencyRateResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	base := strings.ToUpper(strings.TrimSpace(baseCurrency))
	if base == "" {
		return nil, fmt.Errorf("%w: base currency is required", apperrors.ErrValidation)
	}

	if s.cfg.ExternalAPIEnabled {
		rates, err := s.fetchRatesFromAPI(ctx, base)
		if err == nil {
			return rates, nil
		}
		logger.Warn("Rates API lookup failed, using fallback table", slog.String("base", base), slog.String("error", err.Error()))
	}

	baseRate, ok := fallbackRates[base]
	if !ok {
		return nil, fmt.Errorf("%w: no rates known for base currency %q", apperrors.ErrNotFound, base)
	}

	// Rebase the static USD table onto the requested currency.
	rates := make(map[string]decimal.Decimal, len(fallbackRates))
	for code, usdRate := range fallbackRates {
		rates[code] = usdRate.Div(baseRate).Round(6)
	}
	return &dto.CurrencyRateResponse{BaseCurrency: base, Rates: rates}, nil
}

func (s *integrationService) fetchCurrencyFromAPI(ctx context.Context, country string) (string, error) {
	reqURL := fmt.Sprintf("%s/name/%s?fields=currencies", s.cfg.CountryAPIURL, url.PathEscape(country))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build country API request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("country API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: country %q not found", apperrors.ErrNotFound, country)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("country API returned status %d", resp.StatusCode)
	}

	var entries []countryAPIEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return "", fmt.Errorf("failed to decode country API response: %w", err)
	}

	for _, entry := range entries {
		for code := range entry.Currencies {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: country %q has no currency data", apperrors.ErrNotFound, country)
}

func (s *integrationService) fetchRatesFromAPI(ctx context.Context, base string) (*dto.CurrencyRateResponse, error) {
	reqURL := fmt.Sprintf("%s/%s", s.cfg.CurrencyRatesAPIURL, url.PathEscape(base))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates API request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates API returned status %d", resp.StatusCode)
	}

	var payload ratesAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rates API response: %w", err)
	}
	if payload.Result != "success" {
		return nil, fmt.Errorf("rates API reported result %q", payload.Result)
	}

	return &dto.CurrencyRateResponse{BaseCurrency: payload.BaseCode, Rates: payload.Rates}, nil
}
