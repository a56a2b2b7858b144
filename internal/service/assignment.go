package service

import (
	"context"
	"errors"
	"fmt"

	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/metrics"
	"cleaning-marketplace-api/internal/realtime"
	"cleaning-marketplace-api/internal/repo"
	"cleaning-marketplace-api/internal/repo/repo_errors"
)

type AssignmentService struct {
	assignmentRepo repo.Assignment
	jobRepo        repo.Job
	emitter        *realtime.Emitter
}

func NewAssignmentService(assignmentRepo repo.Assignment, jobRepo repo.Job, emitter *realtime.Emitter) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		jobRepo:        jobRepo,
		emitter:        emitter,
	}
}

func (s *AssignmentService) GetAssignment(ctx context.Context, workerId string, assignmentId string) (*entity.AssignmentOutputModel, error) {
	assignment, err := s.assignmentRepo.GetAssignmentById(ctx, assignmentId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("AssignmentService.GetAssignment - assignmentRepo.GetAssignmentById: %w", err)
	}
	if assignment.WorkerId != workerId {
		return nil, ErrAssignmentNotFound
	}

	return mapAssignment(assignment), nil
}

func (s *AssignmentService) ListWorkerAssignments(ctx context.Context, workerId string, pg *entity.PaginationInput) ([]entity.AssignmentOutputModel, error) {
	assignments, err := s.assignmentRepo.ListWorkerAssignments(ctx, workerId, pg)
	if err != nil {
		return nil, fmt.Errorf("AssignmentService.ListWorkerAssignments - assignmentRepo.ListWorkerAssignments: %w", err)
	}

	return mapAssignments(assignments), nil
}

func (s *AssignmentService) AcceptAssignment(ctx context.Context, workerId string, assignmentId string) (out *entity.AssignmentOutputModel, err error) {
	defer func() { metrics.ObserveOperation("assignment.accept", err) }()

	assignment, err := s.assignmentRepo.AcceptAssignment(ctx, workerId, assignmentId)
	if err != nil {
		return nil, s.mapTransitionError("AcceptAssignment", err)
	}

	s.emitToJobOwner(ctx, assignment, "assignment.accepted")

	return mapAssignment(assignment), nil
}

func (s *AssignmentService) StartAssignment(ctx context.Context, workerId string, assignmentId string) (out *entity.AssignmentOutputModel, err error) {
	defer func() { metrics.ObserveOperation("assignment.start", err) }()

	assignment, err := s.assignmentRepo.StartAssignment(ctx, workerId, assignmentId)
	if err != nil {
		return nil, s.mapTransitionError("StartAssignment", err)
	}

	s.emitToJobOwner(ctx, assignment, "job.started")

	return mapAssignment(assignment), nil
}

func (s *AssignmentService) CompleteAssignment(ctx context.Context, workerId string, assignmentId string, reportedHours int, notes *string) (out *entity.AssignmentOutputModel, err error) {
	defer func() { metrics.ObserveOperation("assignment.complete", err) }()

	if reportedHours <= 0 {
		return nil, ErrInvalidHours
	}

	assignment, err := s.assignmentRepo.CompleteAssignment(ctx, workerId, assignmentId, reportedHours, notes)
	if err != nil {
		return nil, s.mapTransitionError("CompleteAssignment", err)
	}

	s.emitToJobOwner(ctx, assignment, "job.completed")

	return mapAssignment(assignment), nil
}

func (s *AssignmentService) CancelAssignment(ctx context.Context, workerId string, assignmentId string) (out *entity.AssignmentOutputModel, err error) {
	defer func() { metrics.ObserveOperation("assignment.cancel", err) }()

	assignment, err := s.assignmentRepo.CancelAssignment(ctx, workerId, assignmentId)
	if err != nil {
		return nil, s.mapTransitionError("CancelAssignment", err)
	}

	s.emitToJobOwner(ctx, assignment, "assignment.canceled")

	return mapAssignment(assignment), nil
}

func (s *AssignmentService) RateAssignmentByCompany(ctx context.Context, orgId string, assignmentId string, rating int) (err error) {
	defer func() { metrics.ObserveOperation("assignment.rate_company", err) }()

	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	assignment, err := s.assignmentRepo.GetAssignmentById(ctx, assignmentId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("AssignmentService.RateAssignmentByCompany - assignmentRepo.GetAssignmentById: %w", err)
	}

	ownerOrg, _, err := s.jobRepo.GetJobOwner(ctx, assignment.JobId)
	if err != nil || ownerOrg != orgId {
		return ErrAssignmentNotFound
	}

	return s.rate(ctx, assignmentId, false, rating, "RateAssignmentByCompany")
}

func (s *AssignmentService) RateAssignmentByWorker(ctx context.Context, workerId string, assignmentId string, rating int) (err error) {
	defer func() { metrics.ObserveOperation("assignment.rate_worker", err) }()

	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	assignment, err := s.assignmentRepo.GetAssignmentById(ctx, assignmentId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("AssignmentService.RateAssignmentByWorker - assignmentRepo.GetAssignmentById: %w", err)
	}
	if assignment.WorkerId != workerId {
		return ErrAssignmentNotFound
	}

	return s.rate(ctx, assignmentId, true, rating, "RateAssignmentByWorker")
}

func (s *AssignmentService) rate(ctx context.Context, assignmentId string, byWorker bool, rating int, op string) error {
	err := s.assignmentRepo.RateAssignment(ctx, assignmentId, byWorker, rating)
	if err != nil {
		switch {
		case errors.Is(err, repo_errors.ErrNotFound):
			return ErrAssignmentNotFound
		case errors.Is(err, repo_errors.ErrInvalidState):
			return ErrAssignmentNotCompleted
		}
		return fmt.Errorf("AssignmentService.%s - assignmentRepo.RateAssignment: %w", op, err)
	}

	return nil
}

func (s *AssignmentService) mapTransitionError(op string, err error) error {
	switch {
	case errors.Is(err, repo_errors.ErrNotFound):
		return ErrAssignmentNotFound
	case errors.Is(err, repo_errors.ErrInvalidState):
		return ErrInvalidAssignmentTransition
	}

	return fmt.Errorf("AssignmentService.%s: %w", op, err)
}

// emitToJobOwner notifies the company that owns the assignment's job. The
// lookup is best-effort: a failed lookup only costs the event.
func (s *AssignmentService) emitToJobOwner(ctx context.Context, assignment *entity.Assignment, eventType string) {
	orgId, _, err := s.jobRepo.GetJobOwner(ctx, assignment.JobId)
	if err != nil {
		return
	}

	s.emitter.Emit(realtime.CompanyJobsChannel(orgId), realtime.Event{
		Type: eventType,
		Data: map[string]any{
			"jobId":        assignment.JobId.String(),
			"assignmentId": assignment.Id.String(),
			"workerId":     assignment.WorkerId,
			"status":       assignment.Status,
		},
	})
}
