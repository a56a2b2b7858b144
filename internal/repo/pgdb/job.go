package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cleaning-marketplace-api/internal/common"
	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/repo/repo_errors"
	"cleaning-marketplace-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const jobColumns = "id, org_id, created_by, title, description, service_type, location, latitude, longitude, " +
	"start_time, end_time, budget_cents, currency, bidding_ends_at, auto_assign, is_broadcast, platform_fee_bps, " +
	"status, assigned_worker_id, accepted_quote_id, final_amount_cents, platform_fee_cents, created_at, updated_at, completed_at"

type JobRepo struct {
	*postgres.Postgres
}

func NewJobRepo(pgdb *postgres.Postgres) *JobRepo {
	return &JobRepo{pgdb}
}

func (r *JobRepo) CreateJob(ctx context.Context, input *entity.CreateJobInput) (uuid.UUID, error) {
	createJobSql, args, _ := r.SqlBuilder.
		Insert("jobs").
		Columns("org_id", "created_by", "title", "description", "service_type", "location", "latitude", "longitude",
			"start_time", "end_time", "budget_cents", "currency", "bidding_ends_at", "auto_assign", "platform_fee_bps", "status").
		Values(input.OrgId, input.CreatedBy, input.Title, input.Description, input.ServiceType, input.Location,
			input.Latitude, input.Longitude, input.StartTime, input.EndTime, input.BudgetCents, input.Currency,
			input.BiddingEndsAt, input.AutoAssign, input.PlatformFeeBps, input.Status).
		Suffix("RETURNING id").
		ToSql()

	var jobId uuid.UUID
	if err := r.Database.GetContext(ctx, &jobId, createJobSql, args...); err != nil {
		return uuid.Nil, err
	}

	return jobId, nil
}

func (r *JobRepo) GetJobById(ctx context.Context, orgId string, jobId string) (*entity.Job, error) {
	uuidForm, err := uuid.Parse(jobId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getJobSql, args, _ := r.SqlBuilder.
		Select(jobColumns).
		From("jobs").
		Where("id = ?", uuidForm).
		Where("org_id = ?", orgId).
		ToSql()

	var job entity.Job
	if err := r.Database.GetContext(ctx, &job, getJobSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &job, nil
}

// GetJobOwner is an internal, tenant-unscoped lookup used to route events and
// authorize cross-party access. Never expose it through an API path directly.
func (r *JobRepo) GetJobOwner(ctx context.Context, jobId uuid.UUID) (string, string, error) {
	getSql, args, _ := r.SqlBuilder.
		Select("org_id", "created_by").
		From("jobs").
		Where("id = ?", jobId).
		ToSql()

	var owner struct {
		OrgId     string `db:"org_id"`
		CreatedBy string `db:"created_by"`
	}
	if err := r.Database.GetContext(ctx, &owner, getSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", repo_errors.ErrNotFound
		}

		return "", "", err
	}

	return owner.OrgId, owner.CreatedBy, nil
}

func (r *JobRepo) ListOrgJobs(ctx context.Context, orgId string, statuses []string, search string, pg *entity.PaginationInput) ([]entity.Job, error) {
	builder := r.SqlBuilder.
		Select(jobColumns).
		From("jobs").
		Where("org_id = ?", orgId)

	if len(statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"status": statuses})
	}
	if search != "" {
		builder = builder.Where("title ILIKE ?", "%"+search+"%")
	}

	listSql, args, _ := builder.
		OrderBy("updated_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	jobs := make([]entity.Job, 0)
	if err := r.Database.SelectContext(ctx, &jobs, listSql, args...); err != nil {
		return nil, err
	}

	return jobs, nil
}

// BrowseOpenJobs returns jobs a worker may quote on: every open job, broadcast
// RFQs, and RFQs targeted at this worker.
func (r *JobRepo) BrowseOpenJobs(ctx context.Context, workerId string, filter *entity.BrowseJobsInput, pg *entity.PaginationInput) ([]entity.Job, error) {
	builder := r.SqlBuilder.
		Select(jobColumns).
		From("jobs").
		Where(squirrel.Or{
			squirrel.Eq{"status": common.JobOpen},
			squirrel.And{
				squirrel.Eq{"status": common.JobRFQ},
				squirrel.Or{
					squirrel.Eq{"is_broadcast": true},
					squirrel.Expr("EXISTS (SELECT 1 FROM rfq_targets WHERE rfq_targets.job_id = jobs.id AND rfq_targets.worker_id = ?)", workerId),
				},
			},
		})

	if filter != nil {
		if filter.ServiceType != nil {
			builder = builder.Where("service_type = ?", *filter.ServiceType)
		}
		if filter.MinBudgetCents != nil {
			builder = builder.Where("budget_cents >= ?", *filter.MinBudgetCents)
		}
		if filter.MaxBudgetCents != nil {
			builder = builder.Where("budget_cents <= ?", *filter.MaxBudgetCents)
		}
	}

	listSql, args, _ := builder.
		OrderBy("created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	jobs := make([]entity.Job, 0)
	if err := r.Database.SelectContext(ctx, &jobs, listSql, args...); err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *JobRepo) UpdateJob(ctx context.Context, orgId string, jobId string, patch *entity.UpdateJobInput) error {
	uuidForm, err := uuid.Parse(jobId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	lockSql, args, _ := r.SqlBuilder.
		Select("status").
		From("jobs").
		Where("id = ?", uuidForm).
		Where("org_id = ?", orgId).
		Suffix("FOR UPDATE").
		ToSql()

	var status string
	if err = tx.GetContext(ctx, &status, lockSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repo_errors.ErrNotFound
		}

		return err
	}

	if common.JobTerminal(status) {
		return repo_errors.ErrTerminalState
	}
	// schedule and budget freeze once the job is assigned
	if common.JobFieldsFrozen(status) && (patch.TouchesSchedule() || patch.TouchesBudget()) {
		return repo_errors.ErrInvalidState
	}

	builder := r.SqlBuilder.
		Update("jobs").
		Set("updated_at", time.Now().UTC())

	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		builder = builder.Set("description", *patch.Description)
	}
	if patch.ServiceType != nil {
		builder = builder.Set("service_type", *patch.ServiceType)
	}
	if patch.Location != nil {
		builder = builder.Set("location", *patch.Location)
	}
	if patch.Latitude != nil {
		builder = builder.Set("latitude", *patch.Latitude)
	}
	if patch.Longitude != nil {
		builder = builder.Set("longitude", *patch.Longitude)
	}
	if patch.StartTime != nil {
		builder = builder.Set("start_time", *patch.StartTime)
	}
	if patch.EndTime != nil {
		builder = builder.Set("end_time", *patch.EndTime)
	}
	if patch.BudgetCents != nil {
		builder = builder.Set("budget_cents", *patch.BudgetCents)
	}
	if patch.Currency != nil {
		builder = builder.Set("currency", *patch.Currency)
	}
	if patch.BiddingEndsAt != nil {
		builder = builder.Set("bidding_ends_at", *patch.BiddingEndsAt)
	}

	updateSql, args, _ := builder.
		Where("id = ?", uuidForm).
		ToSql()

	if _, err = tx.ExecContext(ctx, updateSql, args...); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteJob hard-deletes a job, permitted only while it is a quote-free draft.
func (r *JobRepo) DeleteJob(ctx context.Context, orgId string, jobId string) error {
	uuidForm, err := uuid.Parse(jobId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	lockSql, args, _ := r.SqlBuilder.
		Select("status").
		From("jobs").
		Where("id = ?", uuidForm).
		Where("org_id = ?", orgId).
		Suffix("FOR UPDATE").
		ToSql()

	var status string
	if err = tx.GetContext(ctx, &status, lockSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repo_errors.ErrNotFound
		}

		return err
	}

	if status != common.JobDraft {
		return repo_errors.ErrInvalidState
	}

	countSql, args, _ := r.SqlBuilder.
		Select("COUNT(*)").
		From("job_quotes").
		Where("job_id = ?", uuidForm).
		ToSql()

	var quoteCount int
	if err = tx.GetContext(ctx, &quoteCount, countSql, args...); err != nil {
		return err
	}
	if quoteCount > 0 {
		return repo_errors.ErrConflict
	}

	deleteSql, args, _ := r.SqlBuilder.
		Delete("jobs").
		Where("id = ?", uuidForm).
		ToSql()

	if _, err = tx.ExecContext(ctx, deleteSql, args...); err != nil {
		return err
	}

	return tx.Commit()
}

// CancelJob moves a non-terminal job to canceled and cancels its live
// assignment in the same transaction. Canceling an already terminal job is a
// no-op that returns the current row.
func (r *JobRepo) CancelJob(ctx context.Context, orgId string, jobId string) (*entity.Job, error) {
	uuidForm, err := uuid.Parse(jobId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	lockSql, args, _ := r.SqlBuilder.
		Select(jobColumns).
		From("jobs").
		Where("id = ?", uuidForm).
		Where("org_id = ?", orgId).
		Suffix("FOR UPDATE").
		ToSql()

	var job entity.Job
	if err = tx.GetContext(ctx, &job, lockSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	if common.JobTerminal(job.Status) {
		return &job, nil
	}

	now := time.Now().UTC()

	cancelSql, args, _ := r.SqlBuilder.
		Update("jobs").
		Set("status", common.JobCanceled).
		Set("updated_at", now).
		Where("id = ?", uuidForm).
		ToSql()

	if _, err = tx.ExecContext(ctx, cancelSql, args...); err != nil {
		return nil, err
	}

	cancelAssignmentSql, args, _ := r.SqlBuilder.
		Update("job_assignments").
		Set("status", common.AssignmentCanceled).
		Set("canceled_at", now).
		Set("updated_at", now).
		Where("job_id = ?", uuidForm).
		Where(squirrel.NotEq{"status": []string{common.AssignmentCompleted, common.AssignmentCanceled}}).
		ToSql()

	if _, err = tx.ExecContext(ctx, cancelAssignmentSql, args...); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	job.Status = common.JobCanceled
	job.UpdatedAt = now

	return &job, nil
}

func (r *JobRepo) RequestQuotes(ctx context.Context, orgId string, jobId string, workerIds []string, broadcast bool) error {
	uuidForm, err := uuid.Parse(jobId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	lockSql, args, _ := r.SqlBuilder.
		Select("status").
		From("jobs").
		Where("id = ?", uuidForm).
		Where("org_id = ?", orgId).
		Suffix("FOR UPDATE").
		ToSql()

	var status string
	if err = tx.GetContext(ctx, &status, lockSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repo_errors.ErrNotFound
		}

		return err
	}

	if !common.JobAllowsRFQ(status) {
		return repo_errors.ErrInvalidState
	}

	if !broadcast {
		builder := r.SqlBuilder.
			Insert("rfq_targets").
			Columns("job_id", "worker_id")
		for _, workerId := range workerIds {
			builder = builder.Values(uuidForm, workerId)
		}
		insertTargetsSql, args, _ := builder.
			Suffix("ON CONFLICT (job_id, worker_id) DO NOTHING").
			ToSql()

		if _, err = tx.ExecContext(ctx, insertTargetsSql, args...); err != nil {
			return err
		}
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("jobs").
		Set("status", common.JobRFQ).
		Set("is_broadcast", broadcast).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", uuidForm).
		ToSql()

	if _, err = tx.ExecContext(ctx, updateSql, args...); err != nil {
		return err
	}

	return tx.Commit()
}
