package service

import (
	"context"
	"errors"
	"fmt"

	"cleaning-marketplace-api/internal/common"
	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/metrics"
	"cleaning-marketplace-api/internal/repo"
	"cleaning-marketplace-api/internal/repo/repo_errors"
)

type JanitorService struct {
	janitorRepo repo.Janitor
}

func NewJanitorService(janitorRepo repo.Janitor) *JanitorService {
	return &JanitorService{
		janitorRepo: janitorRepo,
	}
}

func (s *JanitorService) RegisterJanitor(ctx context.Context, input *entity.CreateJanitorInput) (out *entity.JanitorOutputModel, err error) {
	defer func() { metrics.ObserveOperation("janitor.register", err) }()

	if input.HourlyRateCents < 0 {
		return nil, ErrNegativeAmount
	}

	id, err := s.janitorRepo.CreateJanitor(ctx, input)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrJanitorAlreadyRegistered
		}
		return nil, fmt.Errorf("JanitorService.RegisterJanitor - janitorRepo.CreateJanitor: %w", err)
	}

	janitor, err := s.janitorRepo.GetJanitorById(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("JanitorService.RegisterJanitor - janitorRepo.GetJanitorById: %w", err)
	}

	return mapJanitor(janitor), nil
}

func (s *JanitorService) GetJanitor(ctx context.Context, janitorId string) (*entity.JanitorOutputModel, error) {
	janitor, err := s.janitorRepo.GetJanitorById(ctx, janitorId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJanitorNotFound
		}
		return nil, fmt.Errorf("JanitorService.GetJanitor - janitorRepo.GetJanitorById: %w", err)
	}

	return mapJanitor(janitor), nil
}

// GetJanitorProfile looks up the janitor profile of the calling user.
func (s *JanitorService) GetJanitorProfile(ctx context.Context, userId string) (*entity.JanitorOutputModel, error) {
	janitor, err := s.janitorRepo.GetJanitorByUserId(ctx, userId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJanitorNotFound
		}
		return nil, fmt.Errorf("JanitorService.GetJanitorProfile - janitorRepo.GetJanitorByUserId: %w", err)
	}

	return mapJanitor(janitor), nil
}

// UpdateJanitorProfile applies a partial profile edit for the calling user
// and returns the refreshed profile.
func (s *JanitorService) UpdateJanitorProfile(ctx context.Context, userId string, patch *entity.UpdateJanitorProfileInput) (out *entity.JanitorOutputModel, err error) {
	defer func() { metrics.ObserveOperation("janitor.update_profile", err) }()

	if patch.HourlyRateCents != nil && *patch.HourlyRateCents < 0 {
		return nil, ErrNegativeAmount
	}

	err = s.janitorRepo.UpdateJanitorProfile(ctx, userId, patch)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJanitorNotFound
		}
		return nil, fmt.Errorf("JanitorService.UpdateJanitorProfile - janitorRepo.UpdateJanitorProfile: %w", err)
	}

	janitor, err := s.janitorRepo.GetJanitorByUserId(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("JanitorService.UpdateJanitorProfile - janitorRepo.GetJanitorByUserId: %w", err)
	}

	return mapJanitor(janitor), nil
}

func (s *JanitorService) ListJanitors(ctx context.Context, statuses []string, pg *entity.PaginationInput) ([]entity.JanitorOutputModel, error) {
	janitors, err := s.janitorRepo.ListJanitors(ctx, statuses, pg)
	if err != nil {
		return nil, fmt.Errorf("JanitorService.ListJanitors - janitorRepo.ListJanitors: %w", err)
	}

	return mapJanitors(janitors), nil
}

func (s *JanitorService) ApproveJanitor(ctx context.Context, janitorId string) error {
	return s.setStatus(ctx, janitorId, common.JanitorActive, "ApproveJanitor", "janitor.approve")
}

func (s *JanitorService) SuspendJanitor(ctx context.Context, janitorId string) error {
	return s.setStatus(ctx, janitorId, common.JanitorSuspended, "SuspendJanitor", "janitor.suspend")
}

func (s *JanitorService) DeactivateJanitor(ctx context.Context, janitorId string) error {
	return s.setStatus(ctx, janitorId, common.JanitorInactive, "DeactivateJanitor", "janitor.deactivate")
}

func (s *JanitorService) setStatus(ctx context.Context, janitorId string, newStatus string, op string, metric string) (err error) {
	defer func() { metrics.ObserveOperation(metric, err) }()

	err = s.janitorRepo.UpdateJanitorStatus(ctx, janitorId, newStatus)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrJanitorNotFound
		}
		return fmt.Errorf("JanitorService.%s - janitorRepo.UpdateJanitorStatus: %w", op, err)
	}

	return nil
}
