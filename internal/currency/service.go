// Package currency implements the conversion endpoints' thin service layer:
// fetch rates from the source, shape responses, record history.
package currency

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aarushi-rai/currency-exchange-be/internal/models"
	"github.com/aarushi-rai/currency-exchange-be/internal/models/dto"
	"github.com/aarushi-rai/currency-exchange-be/internal/rates"
	"github.com/aarushi-rai/currency-exchange-be/internal/storage"
)

// historyTimeFormat is the documented rendering of history timestamps.
const historyTimeFormat = "2006-01-02 15:04:05"

// allTargets is what the special keyword "all" expands to.
var allTargets = []string{"EUR", "JPY", "GBP", "AUD", "CAD", "CHF", "CNH", "SEK", "NZD"}

// Service wraps the rate source and history store.
type Service struct {
	source  rates.Source
	history storage.HistoryStore
	log     *slog.Logger
	now     func() time.Time
}

func NewService(source rates.Source, history storage.HistoryStore, log *slog.Logger) *Service {
	return &Service{
		source:  source,
		history: history,
		log:     log,
		now:     time.Now,
	}
}

// ParseTargets turns a comma-separated target list (or the keyword "all")
// into normalized currency codes.
func ParseTargets(targets string) []string {
	targets = strings.TrimSpace(targets)
	if strings.EqualFold(targets, "all") {
		out := make([]string, len(allTargets))
		copy(out, allTargets)
		return out
	}
	var out []string
	for _, part := range strings.Split(targets, ",") {
		code := strings.ToUpper(strings.TrimSpace(part))
		if code != "" {
			out = append(out, code)
		}
	}
	return out
}

// Convert resolves the base currency against the targets. Targets the
// provider does not return are omitted. When userID is non-empty, each
// resolved target is recorded in the user's history; a failed history write
// does not fail the conversion.
func (s *Service) Convert(ctx context.Context, userID, base string, targets []string) (dto.ConvertResponse, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	rateMap, err := s.source.Latest(ctx, base, targets)
	if err != nil {
		return dto.ConvertResponse{}, err
	}

	now := s.now()
	details := make([]dto.TargetCurrencyDetail, 0, len(targets))
	for _, target := range targets {
		rate, ok := rateMap[target]
		if !ok {
			continue
		}
		details = append(details, dto.TargetCurrencyDetail{CurrencyCode: target, ExchangeRate: rate})
		if userID == "" {
			continue
		}
		record := models.ConversionRecord{
			UserID:         userID,
			BaseCurrency:   base,
			TargetCurrency: target,
			ExchangeRate:   rate,
			CreatedAt:      now,
		}
		if err := s.history.AddConversion(ctx, record); err != nil {
			s.log.Warn("record conversion", "user_id", userID, "error", err)
		}
	}

	return dto.ConvertResponse{
		BaseCurrency:     base,
		TargetCurrencies: details,
		Timestamp:        now,
	}, nil
}

// BatchConvert resolves the base against every target, reporting a
// per-target status instead of omitting unknown codes. Targets are
// normalized before the provider call so lowercase input resolves too.
func (s *Service) BatchConvert(ctx context.Context, base string, targets []string) (dto.BatchConversionResponse, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	normalized := make([]string, len(targets))
	for i, raw := range targets {
		normalized[i] = strings.ToUpper(strings.TrimSpace(raw))
	}

	rateMap, err := s.source.Latest(ctx, base, normalized)
	if err != nil {
		return dto.BatchConversionResponse{}, err
	}

	now := s.now()
	conversions := make([]dto.ConversionResult, 0, len(normalized))
	for _, target := range normalized {
		result := dto.ConversionResult{
			TargetCurrency: target,
			Timestamp:      now,
			Status:         "unavailable",
		}
		if rate, ok := rateMap[target]; ok {
			result.ExchangeRate = rate
			result.Status = "success"
		}
		conversions = append(conversions, result)
	}

	return dto.BatchConversionResponse{
		BaseCurrency: base,
		Conversions:  conversions,
	}, nil
}

// History returns the user's conversion records, newest first.
func (s *Service) History(ctx context.Context, userID string) (dto.HistoryResponse, error) {
	records, err := s.history.ListConversions(ctx, userID)
	if err != nil {
		return dto.HistoryResponse{}, err
	}
	out := make([]dto.HistoryRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, dto.HistoryRecord{
			BaseCurrency:   rec.BaseCurrency,
			TargetCurrency: rec.TargetCurrency,
			ExchangeRate:   rec.ExchangeRate,
			Timestamp:      rec.CreatedAt.Format(historyTimeFormat),
		})
	}
	return dto.HistoryResponse{History: out}, nil
}
