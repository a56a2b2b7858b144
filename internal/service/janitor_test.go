package service_test

import (
	"context"
	"testing"
	"time"

	"cleaning-marketplace-api/internal/common"
	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/repo/repo_errors"
	"cleaning-marketplace-api/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type mockJanitorRepo struct {
	CreateJanitorFunc        func(ctx context.Context, input *entity.CreateJanitorInput) (uuid.UUID, error)
	GetJanitorByIdFunc       func(ctx context.Context, janitorId string) (*entity.Janitor, error)
	GetJanitorByUserIdFunc   func(ctx context.Context, userId string) (*entity.Janitor, error)
	ListJanitorsFunc         func(ctx context.Context, statuses []string, pg *entity.PaginationInput) ([]entity.Janitor, error)
	UpdateJanitorStatusFunc  func(ctx context.Context, janitorId string, newStatus string) error
	UpdateJanitorProfileFunc func(ctx context.Context, userId string, patch *entity.UpdateJanitorProfileInput) error
}

func (m *mockJanitorRepo) CreateJanitor(ctx context.Context, input *entity.CreateJanitorInput) (uuid.UUID, error) {
	if m.CreateJanitorFunc == nil {
		return uuid.Nil, errNoMock
	}
	return m.CreateJanitorFunc(ctx, input)
}

func (m *mockJanitorRepo) GetJanitorById(ctx context.Context, janitorId string) (*entity.Janitor, error) {
	if m.GetJanitorByIdFunc == nil {
		return nil, errNoMock
	}
	return m.GetJanitorByIdFunc(ctx, janitorId)
}

func (m *mockJanitorRepo) GetJanitorByUserId(ctx context.Context, userId string) (*entity.Janitor, error) {
	if m.GetJanitorByUserIdFunc == nil {
		return nil, errNoMock
	}
	return m.GetJanitorByUserIdFunc(ctx, userId)
}

func (m *mockJanitorRepo) ListJanitors(ctx context.Context, statuses []string, pg *entity.PaginationInput) ([]entity.Janitor, error) {
	if m.ListJanitorsFunc == nil {
		return nil, errNoMock
	}
	return m.ListJanitorsFunc(ctx, statuses, pg)
}

func (m *mockJanitorRepo) UpdateJanitorStatus(ctx context.Context, janitorId string, newStatus string) error {
	if m.UpdateJanitorStatusFunc == nil {
		return errNoMock
	}
	return m.UpdateJanitorStatusFunc(ctx, janitorId, newStatus)
}

func (m *mockJanitorRepo) UpdateJanitorProfile(ctx context.Context, userId string, patch *entity.UpdateJanitorProfileInput) error {
	if m.UpdateJanitorProfileFunc == nil {
		return errNoMock
	}
	return m.UpdateJanitorProfileFunc(ctx, userId, patch)
}

func TestRegisterJanitor(t *testing.T) {
	id := uuid.New()
	janitorRepo := &mockJanitorRepo{
		CreateJanitorFunc: func(ctx context.Context, input *entity.CreateJanitorInput) (uuid.UUID, error) {
			return id, nil
		},
		GetJanitorByIdFunc: func(ctx context.Context, janitorId string) (*entity.Janitor, error) {
			return &entity.Janitor{
				Id: id, UserId: "u-1", FirstName: "Dana", LastName: "Kim",
				Email: "dana@example.com", Phone: "+15550100",
				Status: common.JanitorPendingVerification, JoinedAt: time.Now(),
			}, nil
		},
	}
	s := service.NewJanitorService(janitorRepo)

	out, err := s.RegisterJanitor(context.Background(), &entity.CreateJanitorInput{
		UserId: "u-1", FirstName: "Dana", LastName: "Kim",
		Email: "dana@example.com", Phone: "+15550100",
	})
	require.NoError(t, err)
	require.Equal(t, common.JanitorPendingVerification, out.Status)
}

func TestRegisterJanitorTwice(t *testing.T) {
	janitorRepo := &mockJanitorRepo{
		CreateJanitorFunc: func(ctx context.Context, input *entity.CreateJanitorInput) (uuid.UUID, error) {
			return uuid.Nil, repo_errors.ErrConflict
		},
	}
	s := service.NewJanitorService(janitorRepo)

	_, err := s.RegisterJanitor(context.Background(), &entity.CreateJanitorInput{
		UserId: "u-1", FirstName: "Dana", LastName: "Kim",
		Email: "dana@example.com", Phone: "+15550100",
	})
	require.ErrorIs(t, err, service.ErrJanitorAlreadyRegistered)
}

func TestGetJanitorProfile(t *testing.T) {
	janitorRepo := &mockJanitorRepo{
		GetJanitorByUserIdFunc: func(ctx context.Context, userId string) (*entity.Janitor, error) {
			if userId != "u-1" {
				return nil, repo_errors.ErrNotFound
			}
			return &entity.Janitor{
				Id: uuid.New(), UserId: "u-1", FirstName: "Dana", LastName: "Kim",
				Email: "dana@example.com", Phone: "+15550100",
				Status: common.JanitorActive, JoinedAt: time.Now(),
			}, nil
		},
	}
	s := service.NewJanitorService(janitorRepo)

	out, err := s.GetJanitorProfile(context.Background(), "u-1")
	require.NoError(t, err)
	require.Equal(t, "u-1", out.UserId)

	_, err = s.GetJanitorProfile(context.Background(), "u-2")
	require.ErrorIs(t, err, service.ErrJanitorNotFound)
}

func TestUpdateJanitorProfile(t *testing.T) {
	bio := "Ten years of commercial cleaning."
	rate := 3200

	var gotPatch *entity.UpdateJanitorProfileInput
	janitorRepo := &mockJanitorRepo{
		UpdateJanitorProfileFunc: func(ctx context.Context, userId string, patch *entity.UpdateJanitorProfileInput) error {
			require.Equal(t, "u-1", userId)
			gotPatch = patch
			return nil
		},
		GetJanitorByUserIdFunc: func(ctx context.Context, userId string) (*entity.Janitor, error) {
			return &entity.Janitor{
				Id: uuid.New(), UserId: "u-1", FirstName: "Dana", LastName: "Kim",
				Email: "dana@example.com", Phone: "+15550100", Bio: &bio, HourlyRateCents: rate,
				Status: common.JanitorActive, JoinedAt: time.Now(),
			}, nil
		},
	}
	s := service.NewJanitorService(janitorRepo)

	out, err := s.UpdateJanitorProfile(context.Background(), "u-1", &entity.UpdateJanitorProfileInput{
		Bio: &bio, HourlyRateCents: &rate,
	})
	require.NoError(t, err)
	require.Equal(t, &bio, gotPatch.Bio)
	require.Nil(t, gotPatch.Phone)
	require.Equal(t, rate, out.HourlyRateCents)
}

func TestUpdateJanitorProfileErrors(t *testing.T) {
	janitorRepo := &mockJanitorRepo{
		UpdateJanitorProfileFunc: func(ctx context.Context, userId string, patch *entity.UpdateJanitorProfileInput) error {
			return repo_errors.ErrNotFound
		},
	}
	s := service.NewJanitorService(janitorRepo)

	negative := -100
	_, err := s.UpdateJanitorProfile(context.Background(), "u-1", &entity.UpdateJanitorProfileInput{HourlyRateCents: &negative})
	require.ErrorIs(t, err, service.ErrNegativeAmount)

	_, err = s.UpdateJanitorProfile(context.Background(), "u-unknown", &entity.UpdateJanitorProfileInput{})
	require.ErrorIs(t, err, service.ErrJanitorNotFound)
}

func TestJanitorStatusChanges(t *testing.T) {
	var gotStatus string
	janitorRepo := &mockJanitorRepo{
		UpdateJanitorStatusFunc: func(ctx context.Context, janitorId string, newStatus string) error {
			gotStatus = newStatus
			return nil
		},
	}
	s := service.NewJanitorService(janitorRepo)
	id := uuid.NewString()

	require.NoError(t, s.ApproveJanitor(context.Background(), id))
	require.Equal(t, common.JanitorActive, gotStatus)

	require.NoError(t, s.SuspendJanitor(context.Background(), id))
	require.Equal(t, common.JanitorSuspended, gotStatus)

	require.NoError(t, s.DeactivateJanitor(context.Background(), id))
	require.Equal(t, common.JanitorInactive, gotStatus)
}

func TestJanitorStatusChangeMissing(t *testing.T) {
	janitorRepo := &mockJanitorRepo{
		UpdateJanitorStatusFunc: func(ctx context.Context, janitorId string, newStatus string) error {
			return repo_errors.ErrNotFound
		},
	}
	s := service.NewJanitorService(janitorRepo)

	err := s.ApproveJanitor(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, service.ErrJanitorNotFound)
}
