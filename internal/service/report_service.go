package service

import (
	"context"
	"errors"
	"time"

	"github.com/phuslu/log"

	"github.com/ndewijer/Stock-AI-Report/internal/apperrors"
	"github.com/ndewijer/Stock-AI-Report/internal/mistral"
	"github.com/ndewijer/Stock-AI-Report/internal/model"
)

// ReportService handles the report-proxy business logic: it owns the
// language-model client and its key.
type ReportService struct {
	client mistral.Generator
	logger *log.Logger
}

// NewReportService creates a new ReportService with the provided client.
func NewReportService(client mistral.Generator, logger *log.Logger) *ReportService {
	return &ReportService{
		client: client,
		logger: logger,
	}
}

// Configured reports whether the provider key is set.
func (s *ReportService) Configured() bool {
	return s.client.HasAPIKey()
}

// Generate produces a report for an already validated request.
func (s *ReportService) Generate(ctx context.Context, req model.ReportRequest) (string, error) {
	if !s.client.HasAPIKey() {
		s.logger.Error().Str("provider", "mistral").Msg("API key not configured")
		return "", apperrors.ErrMissingAPIKey
	}

	start := time.Now()
	content, err := s.client.GenerateReport(ctx, req)
	duration := time.Since(start)

	if err != nil {
		var upstreamErr *apperrors.UpstreamError
		if errors.As(err, &upstreamErr) {
			s.logger.Warn().
				Str("provider", "mistral").
				Str("code", req.Code).
				Int("status", upstreamErr.Status).
				Str("upstream_message", upstreamErr.Message).
				Dur("duration", duration).
				Msg("report request rejected")
			return "", err
		}
		s.logger.Error().
			Err(err).
			Str("provider", "mistral").
			Str("code", req.Code).
			Dur("duration", duration).
			Msg("report request failed")
		return "", err
	}

	s.logger.Debug().
		Str("provider", "mistral").
		Str("code", req.Code).
		Int("chars", len(content)).
		Dur("duration", duration).
		Msg("report generated")

	return content, nil
}
