package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ziadkadry99/pod-search/internal/archive"
)

// Remote is the part of Client the Service depends on.
type Remote interface {
	Query(ctx context.Context, q string) ([]Result, error)
}

// Service runs searches against the remote service and falls back to
// matching episode names when the service cannot answer.
type Service struct {
	remote Remote
	series *archive.SeriesMap
	logger *slog.Logger
}

// NewService creates a Service. series is used only for the fallback.
func NewService(remote Remote, series *archive.SeriesMap) *Service {
	return &Service{remote: remote, series: series, logger: slog.Default()}
}

// Outcome tells where a result set came from.
type Outcome string

const (
	OutcomeEmpty    Outcome = "empty"
	OutcomeRemote   Outcome = "remote"
	OutcomeFallback Outcome = "fallback"
)

// Search returns the results for query. A blank query returns nothing and
// makes no request. Remote failures are logged and answered locally, so
// Search itself never fails.
func (s *Service) Search(ctx context.Context, query string) ([]Result, Outcome) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, OutcomeEmpty
	}

	if s.remote != nil {
		results, err := s.remote.Query(ctx, q)
		if err == nil {
			return results, OutcomeRemote
		}
		s.logger.Warn("search service unavailable, matching episode names", "query", q, "err", err)
	}
	return LocalMatch(s.series, q), OutcomeFallback
}
