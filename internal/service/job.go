package service

import (
	"context"
	"errors"
	"fmt"

	"cleaning-marketplace-api/internal/common"
	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/metrics"
	"cleaning-marketplace-api/internal/realtime"
	"cleaning-marketplace-api/internal/repo"
	"cleaning-marketplace-api/internal/repo/repo_errors"
)

type JobService struct {
	jobRepo       repo.Job
	emitter       *realtime.Emitter
	defaultFeeBps int
}

func NewJobService(jobRepo repo.Job, emitter *realtime.Emitter, defaultFeeBps int) *JobService {
	if defaultFeeBps <= 0 {
		defaultFeeBps = common.DefaultFeeBps
	}

	return &JobService{
		jobRepo:       jobRepo,
		emitter:       emitter,
		defaultFeeBps: defaultFeeBps,
	}
}

func (s *JobService) CreateJob(ctx context.Context, input *entity.CreateJobInput) (out *entity.JobOutputModel, err error) {
	defer func() { metrics.ObserveOperation("job.create", err) }()

	if input.StartTime != nil && input.EndTime != nil && !input.EndTime.After(*input.StartTime) {
		return nil, ErrInvalidSchedule
	}
	if input.BudgetCents < 0 {
		return nil, ErrNegativeAmount
	}
	if input.PlatformFeeBps <= 0 {
		input.PlatformFeeBps = s.defaultFeeBps
	}
	if input.Currency == "" {
		input.Currency = "USD"
	}
	if input.Status != common.JobOpen {
		input.Status = common.JobDraft
	}

	id, err := s.jobRepo.CreateJob(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("JobService.CreateJob - jobRepo.CreateJob: %w", err)
	}

	job, err := s.jobRepo.GetJobById(ctx, input.OrgId, id.String())
	if err != nil {
		return nil, fmt.Errorf("JobService.CreateJob - jobRepo.GetJobById: %w", err)
	}

	s.emitter.Emit(realtime.CompanyJobsChannel(job.OrgId), realtime.Event{
		Type: "job.created",
		Data: map[string]any{"jobId": job.Id.String(), "status": job.Status},
	})
	if job.Status == common.JobOpen {
		s.emitter.Emit(realtime.MarketplaceChannel, realtime.Event{
			Type: "job.posted",
			Data: map[string]any{"jobId": job.Id.String(), "serviceType": derefString(job.ServiceType)},
		})
	}

	return mapJob(job), nil
}

func (s *JobService) GetJob(ctx context.Context, orgId string, jobId string) (*entity.JobOutputModel, error) {
	job, err := s.jobRepo.GetJobById(ctx, orgId, jobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("JobService.GetJob - jobRepo.GetJobById: %w", err)
	}

	return mapJob(job), nil
}

func (s *JobService) ListJobs(ctx context.Context, orgId string, statuses []string, search string, pg *entity.PaginationInput) ([]entity.JobOutputModel, error) {
	jobs, err := s.jobRepo.ListOrgJobs(ctx, orgId, statuses, search, pg)
	if err != nil {
		return nil, fmt.Errorf("JobService.ListJobs - jobRepo.ListOrgJobs: %w", err)
	}

	return mapJobs(jobs), nil
}

func (s *JobService) BrowseJobs(ctx context.Context, workerId string, filter *entity.BrowseJobsInput, pg *entity.PaginationInput) ([]entity.JobOutputModel, error) {
	jobs, err := s.jobRepo.BrowseOpenJobs(ctx, workerId, filter, pg)
	if err != nil {
		return nil, fmt.Errorf("JobService.BrowseJobs - jobRepo.BrowseOpenJobs: %w", err)
	}

	return mapJobs(jobs), nil
}

func (s *JobService) UpdateJob(ctx context.Context, orgId string, jobId string, patch *entity.UpdateJobInput) (out *entity.JobOutputModel, err error) {
	defer func() { metrics.ObserveOperation("job.update", err) }()

	if patch.StartTime != nil && patch.EndTime != nil && !patch.EndTime.After(*patch.StartTime) {
		return nil, ErrInvalidSchedule
	}
	if patch.BudgetCents != nil && *patch.BudgetCents < 0 {
		return nil, ErrNegativeAmount
	}

	err = s.jobRepo.UpdateJob(ctx, orgId, jobId, patch)
	if err != nil {
		switch {
		case errors.Is(err, repo_errors.ErrNotFound):
			return nil, ErrJobNotFound
		case errors.Is(err, repo_errors.ErrTerminalState):
			return nil, ErrJobClosed
		case errors.Is(err, repo_errors.ErrInvalidState):
			return nil, ErrJobLocked
		}
		return nil, fmt.Errorf("JobService.UpdateJob - jobRepo.UpdateJob: %w", err)
	}

	job, err := s.jobRepo.GetJobById(ctx, orgId, jobId)
	if err != nil {
		return nil, fmt.Errorf("JobService.UpdateJob - jobRepo.GetJobById: %w", err)
	}

	s.emitter.Emit(realtime.CompanyJobsChannel(orgId), realtime.Event{
		Type: "job.updated",
		Data: map[string]any{"jobId": job.Id.String()},
	})

	return mapJob(job), nil
}

func (s *JobService) DeleteJob(ctx context.Context, orgId string, jobId string) (err error) {
	defer func() { metrics.ObserveOperation("job.delete", err) }()

	err = s.jobRepo.DeleteJob(ctx, orgId, jobId)
	if err != nil {
		switch {
		case errors.Is(err, repo_errors.ErrNotFound):
			return ErrJobNotFound
		case errors.Is(err, repo_errors.ErrInvalidState):
			return ErrJobNotDeletable
		case errors.Is(err, repo_errors.ErrConflict):
			return ErrJobHasQuotes
		}
		return fmt.Errorf("JobService.DeleteJob - jobRepo.DeleteJob: %w", err)
	}

	return nil
}

func (s *JobService) CancelJob(ctx context.Context, orgId string, jobId string, reason *string) (out *entity.JobOutputModel, err error) {
	defer func() { metrics.ObserveOperation("job.cancel", err) }()

	job, err := s.jobRepo.CancelJob(ctx, orgId, jobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("JobService.CancelJob - jobRepo.CancelJob: %w", err)
	}

	// the cancellation reason is carried on the events, not persisted
	data := map[string]any{"jobId": job.Id.String()}
	if reason != nil {
		data["reason"] = *reason
	}

	s.emitter.Emit(realtime.CompanyJobsChannel(orgId), realtime.Event{
		Type: "job.canceled",
		Data: data,
	})
	if job.AssignedWorkerId != nil {
		s.emitter.Emit(realtime.WorkerAssignmentsChannel(*job.AssignedWorkerId), realtime.Event{
			Type: "job.canceled",
			Data: data,
		})
	}

	return mapJob(job), nil
}

func (s *JobService) RequestQuotes(ctx context.Context, orgId string, jobId string, workerIds []string, broadcast bool) (err error) {
	defer func() { metrics.ObserveOperation("job.request_quotes", err) }()

	if len(workerIds) == 0 && !broadcast {
		return ErrNoQuoteRecipients
	}

	err = s.jobRepo.RequestQuotes(ctx, orgId, jobId, workerIds, broadcast)
	if err != nil {
		switch {
		case errors.Is(err, repo_errors.ErrNotFound):
			return ErrJobNotFound
		case errors.Is(err, repo_errors.ErrInvalidState):
			return ErrJobNotAvailableForRFQ
		}
		return fmt.Errorf("JobService.RequestQuotes - jobRepo.RequestQuotes: %w", err)
	}

	if broadcast {
		s.emitter.Emit(realtime.MarketplaceChannel, realtime.Event{
			Type: "job.quotes_requested",
			Data: map[string]any{"jobId": jobId},
		})
	}
	for _, workerId := range workerIds {
		s.emitter.Emit(realtime.WorkerAssignmentsChannel(workerId), realtime.Event{
			Type: "quote.requested",
			Data: map[string]any{"jobId": jobId},
		})
	}

	return nil
}
