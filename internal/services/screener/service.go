// Package screener runs the two-stage fundamental screen over stored data.
// The first stage aggregates multi-year quality averages per symbol; the
// second stage enriches finalists with latest-period detail. Neither stage
// touches the provider.
package screener

import (
	"context"

	"github.com/kestrelhq/kestrel/internal/common"
	"github.com/kestrelhq/kestrel/internal/interfaces"
	"github.com/kestrelhq/kestrel/internal/models"
)

type Service struct {
	storage interfaces.Storage
	logger  *common.Logger
}

var _ interfaces.ScreenerService = (*Service)(nil)

func NewService(storage interfaces.Storage, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Screen runs the aggregate first stage with the given filters
func (s *Service) Screen(ctx context.Context, filters models.ScreenFilters) ([]models.ScreenResult, error) {
	results, err := s.storage.ScreenInitial(ctx, filters)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("results", len(results)).
		Msg("screen complete")

	return results, nil
}

// ScreenDetails returns latest-period detail for screen finalists, in the
// order the symbols were given
func (s *Service) ScreenDetails(ctx context.Context, symbols []string) ([]models.ScreenDetail, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	details, err := s.storage.ScreenDetails(ctx, symbols)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("requested", len(symbols)).
		Int("found", len(details)).
		Msg("screen details complete")

	return details, nil
}
