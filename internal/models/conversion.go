package models

import "time"

// ConversionRecord is one row of a user's conversion history: a single
// rate lookup from base to target at a point in time.
type ConversionRecord struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	BaseCurrency   string    `json:"base_currency"`
	TargetCurrency string    `json:"target_currency"`
	ExchangeRate   float64   `json:"exchange_rate"`
	CreatedAt      time.Time `json:"created_at"`
}
