package dto

import "time"

// TargetCurrencyDetail holds one resolved target rate within a conversion.
type TargetCurrencyDetail struct {
	CurrencyCode string  `json:"currency_code"`
	ExchangeRate float64 `json:"exchange_rate"`
}

type ConvertResponse struct {
	BaseCurrency     string                 `json:"base_currency"`
	TargetCurrencies []TargetCurrencyDetail `json:"target_currencies"`
	Timestamp        time.Time              `json:"timestamp"`
}

type BatchConvertRequest struct {
	BaseCurrency     string   `json:"base_currency"`
	TargetCurrencies []string `json:"target_currencies"`
}

type ConversionResult struct {
	TargetCurrency string    `json:"target_currency"`
	ExchangeRate   float64   `json:"exchange_rate"`
	Timestamp      time.Time `json:"timestamp"`
	Status         string    `json:"status"`
}

type BatchConversionResponse struct {
	BaseCurrency string             `json:"base_currency"`
	Conversions  []ConversionResult `json:"conversions"`
}

// HistoryRecord mirrors one stored conversion; the timestamp is rendered
// as "2006-01-02 15:04:05" to match the documented history format.
type HistoryRecord struct {
	BaseCurrency   string  `json:"base_currency"`
	TargetCurrency string  `json:"target_currency"`
	ExchangeRate   float64 `json:"exchange_rate"`
	Timestamp      string  `json:"timestamp"`
}

type HistoryResponse struct {
	History []HistoryRecord `json:"history"`
}
