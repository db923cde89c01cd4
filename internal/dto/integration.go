package dto

import "github.com/shopspring/decimal"

// CountryResponse describes a country and its currencies as returned by the
// countries lookup.
type CountryResponse struct {
	Name       string   `json:"name"`
	Currencies []string `json:"currencies"`
}

// CurrencyRateResponse holds exchange rates for a base currency.
type CurrencyRateResponse struct {
	BaseCurrency string                     `json:"baseCurrency"`
	Rates        map[string]decimal.Decimal `json:"rates"`
}
