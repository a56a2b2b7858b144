package service_test

import (
	"context"
	"testing"
	"time"

	"cleaning-marketplace-api/internal/common"
	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/realtime"
	"cleaning-marketplace-api/internal/repo/repo_errors"
	"cleaning-marketplace-api/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func storedAssignment(workerId string, status string) *entity.Assignment {
	return &entity.Assignment{
		Id: uuid.New(), JobId: uuid.New(), WorkerId: workerId, QuoteId: uuid.New(),
		Status:           status,
		FinalAmountCents: 38000, WorkerEarningsCents: 32300, PlatformFeeCents: 5700,
		AssignedAt: time.Now(), UpdatedAt: time.Now(),
	}
}

func TestCompleteAssignment(t *testing.T) {
	assignment := storedAssignment("worker-1", common.AssignmentCompleted)
	hours := 6
	assignment.ReportedHours = &hours

	assignmentRepo := &mockAssignmentRepo{
		CompleteAssignmentFunc: func(ctx context.Context, workerId string, assignmentId string, reportedHours int, notes *string) (*entity.Assignment, error) {
			require.Equal(t, "worker-1", workerId)
			require.Equal(t, 6, reportedHours)
			return assignment, nil
		},
	}
	jobRepo := &mockJobRepo{
		GetJobOwnerFunc: func(ctx context.Context, jobId uuid.UUID) (string, string, error) {
			return "org-1", "owner-1", nil
		},
	}
	emitter, bus := newTestEmitter()
	s := service.NewAssignmentService(assignmentRepo, jobRepo, emitter)

	out, err := s.CompleteAssignment(context.Background(), "worker-1", assignment.Id.String(), 6, nil)
	require.NoError(t, err)
	require.Equal(t, common.AssignmentCompleted, out.Status)
	require.Equal(t, &hours, out.ReportedHours)

	events := bus.Events(realtime.CompanyJobsChannel("org-1"))
	require.Len(t, events, 1)
	require.Equal(t, "job.completed", events[0].Type)
}

func TestCompleteAssignmentRejectsBadHours(t *testing.T) {
	emitter, _ := newTestEmitter()
	s := service.NewAssignmentService(&mockAssignmentRepo{}, &mockJobRepo{}, emitter)

	for _, hours := range []int{0, -3} {
		_, err := s.CompleteAssignment(context.Background(), "worker-1", uuid.NewString(), hours, nil)
		require.ErrorIs(t, err, service.ErrInvalidHours)
	}
}

func TestAssignmentTransitionErrors(t *testing.T) {
	cases := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"wrong status", repo_errors.ErrInvalidState, service.ErrInvalidAssignmentTransition},
		{"not the assignee", repo_errors.ErrNotFound, service.ErrAssignmentNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assignmentRepo := &mockAssignmentRepo{
				StartAssignmentFunc: func(ctx context.Context, workerId string, assignmentId string) (*entity.Assignment, error) {
					return nil, tc.repoErr
				},
			}
			emitter, _ := newTestEmitter()
			s := service.NewAssignmentService(assignmentRepo, &mockJobRepo{}, emitter)

			_, err := s.StartAssignment(context.Background(), "worker-1", uuid.NewString())
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestGetAssignmentHidesOtherWorkers(t *testing.T) {
	assignment := storedAssignment("worker-1", common.AssignmentAccepted)
	assignmentRepo := &mockAssignmentRepo{
		GetAssignmentByIdFunc: func(ctx context.Context, assignmentId string) (*entity.Assignment, error) {
			return assignment, nil
		},
	}
	emitter, _ := newTestEmitter()
	s := service.NewAssignmentService(assignmentRepo, &mockJobRepo{}, emitter)

	_, err := s.GetAssignment(context.Background(), "worker-2", assignment.Id.String())
	require.ErrorIs(t, err, service.ErrAssignmentNotFound)

	out, err := s.GetAssignment(context.Background(), "worker-1", assignment.Id.String())
	require.NoError(t, err)
	require.Equal(t, assignment.Id.String(), out.Id)
}

func TestRateAssignment(t *testing.T) {
	assignment := storedAssignment("worker-1", common.AssignmentCompleted)

	t.Run("rating out of range", func(t *testing.T) {
		emitter, _ := newTestEmitter()
		s := service.NewAssignmentService(&mockAssignmentRepo{}, &mockJobRepo{}, emitter)

		for _, rating := range []int{0, 6, -1} {
			err := s.RateAssignmentByWorker(context.Background(), "worker-1", assignment.Id.String(), rating)
			require.ErrorIs(t, err, service.ErrInvalidRating)
		}
	})

	t.Run("company rates completed work", func(t *testing.T) {
		var gotByWorker *bool
		assignmentRepo := &mockAssignmentRepo{
			GetAssignmentByIdFunc: func(ctx context.Context, assignmentId string) (*entity.Assignment, error) {
				return assignment, nil
			},
			RateAssignmentFunc: func(ctx context.Context, assignmentId string, byWorker bool, rating int) error {
				gotByWorker = &byWorker
				return nil
			},
		}
		jobRepo := &mockJobRepo{
			GetJobOwnerFunc: func(ctx context.Context, jobId uuid.UUID) (string, string, error) {
				return "org-1", "owner-1", nil
			},
		}
		emitter, _ := newTestEmitter()
		s := service.NewAssignmentService(assignmentRepo, jobRepo, emitter)

		require.NoError(t, s.RateAssignmentByCompany(context.Background(), "org-1", assignment.Id.String(), 5))
		require.NotNil(t, gotByWorker)
		require.False(t, *gotByWorker)
	})

	t.Run("foreign org cannot rate", func(t *testing.T) {
		assignmentRepo := &mockAssignmentRepo{
			GetAssignmentByIdFunc: func(ctx context.Context, assignmentId string) (*entity.Assignment, error) {
				return assignment, nil
			},
		}
		jobRepo := &mockJobRepo{
			GetJobOwnerFunc: func(ctx context.Context, jobId uuid.UUID) (string, string, error) {
				return "org-1", "owner-1", nil
			},
		}
		emitter, _ := newTestEmitter()
		s := service.NewAssignmentService(assignmentRepo, jobRepo, emitter)

		err := s.RateAssignmentByCompany(context.Background(), "org-2", assignment.Id.String(), 4)
		require.ErrorIs(t, err, service.ErrAssignmentNotFound)
	})

	t.Run("not completed yet", func(t *testing.T) {
		assignmentRepo := &mockAssignmentRepo{
			GetAssignmentByIdFunc: func(ctx context.Context, assignmentId string) (*entity.Assignment, error) {
				return assignment, nil
			},
			RateAssignmentFunc: func(ctx context.Context, assignmentId string, byWorker bool, rating int) error {
				return repo_errors.ErrInvalidState
			},
		}
		emitter, _ := newTestEmitter()
		s := service.NewAssignmentService(assignmentRepo, &mockJobRepo{}, emitter)

		err := s.RateAssignmentByWorker(context.Background(), "worker-1", assignment.Id.String(), 4)
		require.ErrorIs(t, err, service.ErrAssignmentNotCompleted)
	})
}
