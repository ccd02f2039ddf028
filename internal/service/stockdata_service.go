package service

import (
	"context"
	"errors"
	"time"

	"github.com/phuslu/log"

	"github.com/ndewijer/Stock-AI-Report/internal/api/request"
	"github.com/ndewijer/Stock-AI-Report/internal/apperrors"
	"github.com/ndewijer/Stock-AI-Report/internal/eodhd"
)

// StockDataService handles the data-proxy business logic: it owns the
// market-data client (and with it the provider token) and logs provider
// failures that are not forwarded to callers.
type StockDataService struct {
	client eodhd.Fetcher
	logger *log.Logger
}

// NewStockDataService creates a new StockDataService with the provided client.
func NewStockDataService(client eodhd.Fetcher, logger *log.Logger) *StockDataService {
	return &StockDataService{
		client: client,
		logger: logger,
	}
}

// Configured reports whether the provider token is set.
func (s *StockDataService) Configured() bool {
	return s.client.HasAPIKey()
}

// PriceHistory fetches the provider's raw JSON for the requested range.
// Errors are the client's typed errors, or apperrors.ErrMissingAPIKey when
// the server has no token.
func (s *StockDataService) PriceHistory(ctx context.Context, req request.StockDataRequest) ([]byte, error) {
	if !s.client.HasAPIKey() {
		s.logger.Error().Str("provider", "eodhd").Msg("API key not configured")
		return nil, apperrors.ErrMissingAPIKey
	}

	start := time.Now()
	data, err := s.client.FetchPriceHistory(ctx, req.Code, req.Exchange, req.StartDate, req.EndDate)
	duration := time.Since(start)

	if err != nil {
		var upstreamErr *apperrors.UpstreamError
		if errors.As(err, &upstreamErr) {
			s.logger.Warn().
				Str("provider", "eodhd").
				Str("code", req.Code).
				Str("exchange", req.Exchange).
				Int("status", upstreamErr.Status).
				Str("upstream_message", upstreamErr.Message).
				Dur("duration", duration).
				Msg("price history request rejected")
			return nil, err
		}
		s.logger.Error().
			Err(err).
			Str("provider", "eodhd").
			Str("code", req.Code).
			Str("exchange", req.Exchange).
			Dur("duration", duration).
			Msg("price history request failed")
		return nil, err
	}

	s.logger.Debug().
		Str("provider", "eodhd").
		Str("code", req.Code).
		Str("exchange", req.Exchange).
		Int("bytes", len(data)).
		Dur("duration", duration).
		Msg("price history fetched")

	return data, nil
}
