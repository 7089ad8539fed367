package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/example/tavola/internal/models"
	"github.com/example/tavola/internal/repository"
)

// ErrReorderOutOfRange reports reorder indexes outside the current list.
var ErrReorderOutOfRange = errors.New("reorder indexes out of range")

// PartnerService layers display ordering and logo upload on top of the
// partner repository.
type PartnerService struct {
	repo    repository.PartnerRepository
	storage LogoStorage
	log     zerolog.Logger
}

func NewPartnerService(repo repository.PartnerRepository, storage LogoStorage, log zerolog.Logger) *PartnerService {
	return &PartnerService{repo: repo, storage: storage, log: log}
}

// NextDisplayOrder returns the display_order a newly created partner should
// take to land at the end of the list.
func (s *PartnerService) NextDisplayOrder(ctx context.Context) (int, error) {
	return s.repo.NextDisplayOrder(ctx)
}

// UploadLogo stores the image bytes and returns the public URL.
func (s *PartnerService) UploadLogo(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	return s.storage.Upload(ctx, filename, contentType, data)
}

// Reorder moves the partner at source to destination in the ordered list,
// re-assigns display_order to the positional index for every item, and
// persists each changed row sequentially. If any row write fails midway,
// the list is re-fetched so callers see the state actually stored; a
// partial reorder may remain applied.
func (s *PartnerService) Reorder(ctx context.Context, source, destination int) ([]models.Partner, error) {
	partners, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	n := len(partners)
	if source < 0 || source >= n || destination < 0 || destination >= n {
		return nil, fmt.Errorf("%w: source=%d destination=%d len=%d", ErrReorderOutOfRange, source, destination, n)
	}

	moved := partners[source]
	partners = append(partners[:source], partners[source+1:]...)
	partners = append(partners[:destination], append([]models.Partner{moved}, partners[destination:]...)...)

	for i := range partners {
		if partners[i].DisplayOrder == i {
			continue
		}
		if err := s.repo.SetDisplayOrder(ctx, partners[i].ID, i); err != nil {
			s.log.Error().Err(err).
				Str("partner_id", partners[i].ID.String()).
				Msg("partner reorder aborted midway")
			fresh, fetchErr := s.repo.GetAll(ctx)
			if fetchErr != nil {
				return nil, fetchErr
			}
			return fresh, err
		}
		partners[i].DisplayOrder = i
	}

	return partners, nil
}
