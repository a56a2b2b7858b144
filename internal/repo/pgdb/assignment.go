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
	"github.com/jmoiron/sqlx"
)

const assignmentColumns = "id, job_id, worker_id, quote_id, status, final_amount_cents, worker_earnings_cents, " +
	"platform_fee_cents, started_at, completed_at, canceled_at, reported_hours, completion_notes, " +
	"company_rating, worker_rating, assigned_at, updated_at"

type AssignmentRepo struct {
	*postgres.Postgres
}

func NewAssignmentRepo(pgdb *postgres.Postgres) *AssignmentRepo {
	return &AssignmentRepo{pgdb}
}

func (r *AssignmentRepo) GetAssignmentById(ctx context.Context, assignmentId string) (*entity.Assignment, error) {
	uuidForm, err := uuid.Parse(assignmentId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getSql, args, _ := r.SqlBuilder.
		Select(assignmentColumns).
		From("job_assignments").
		Where("id = ?", uuidForm).
		ToSql()

	var assignment entity.Assignment
	if err := r.Database.GetContext(ctx, &assignment, getSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &assignment, nil
}

func (r *AssignmentRepo) ListWorkerAssignments(ctx context.Context, workerId string, pg *entity.PaginationInput) ([]entity.Assignment, error) {
	listSql, args, _ := r.SqlBuilder.
		Select(assignmentColumns).
		From("job_assignments").
		Where("worker_id = ?", workerId).
		OrderBy("assigned_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	assignments := make([]entity.Assignment, 0)
	if err := r.Database.SelectContext(ctx, &assignments, listSql, args...); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *AssignmentRepo) AcceptAssignment(ctx context.Context, workerId string, assignmentId string) (*entity.Assignment, error) {
	return r.transition(ctx, workerId, assignmentId, common.AssignmentAccepted, nil)
}

// StartAssignment records the start instant and advances the parent job to
// in_progress in the same transaction.
func (r *AssignmentRepo) StartAssignment(ctx context.Context, workerId string, assignmentId string) (*entity.Assignment, error) {
	return r.transition(ctx, workerId, assignmentId, common.AssignmentStarted, func(tx *sqlx.Tx, a *entity.Assignment, now time.Time) error {
		startJobSql, args, _ := r.SqlBuilder.
			Update("jobs").
			Set("status", common.JobInProgress).
			Set("updated_at", now).
			Where("id = ?", a.JobId).
			Where("status = ?", common.JobAssigned).
			ToSql()

		_, err := tx.ExecContext(ctx, startJobSql, args...)
		return err
	})
}

// CompleteAssignment is terminal for both the assignment and its job: the job
// moves to completed inside the same transaction so no observer can see a
// completed assignment on a still-assigned job. The worker's completed-job
// counter is bumped alongside.
func (r *AssignmentRepo) CompleteAssignment(ctx context.Context, workerId string, assignmentId string, reportedHours int, notes *string) (*entity.Assignment, error) {
	return r.transition(ctx, workerId, assignmentId, common.AssignmentCompleted, func(tx *sqlx.Tx, a *entity.Assignment, now time.Time) error {
		updateAssignmentSql, args, _ := r.SqlBuilder.
			Update("job_assignments").
			Set("reported_hours", reportedHours).
			Set("completion_notes", notes).
			Where("id = ?", a.Id).
			ToSql()

		if _, err := tx.ExecContext(ctx, updateAssignmentSql, args...); err != nil {
			return err
		}

		completeJobSql, args, _ := r.SqlBuilder.
			Update("jobs").
			Set("status", common.JobCompleted).
			Set("completed_at", now).
			Set("updated_at", now).
			Where("id = ?", a.JobId).
			ToSql()

		if _, err := tx.ExecContext(ctx, completeJobSql, args...); err != nil {
			return err
		}

		bumpJanitorSql, args, _ := r.SqlBuilder.
			Update("janitors").
			Set("completed_jobs", squirrel.Expr("completed_jobs + 1")).
			Set("last_active_at", now).
			Where("user_id = ?", workerId).
			ToSql()

		if _, err := tx.ExecContext(ctx, bumpJanitorSql, args...); err != nil {
			return err
		}

		a.ReportedHours = &reportedHours
		a.CompletionNotes = notes
		return nil
	})
}

func (r *AssignmentRepo) CancelAssignment(ctx context.Context, workerId string, assignmentId string) (*entity.Assignment, error) {
	return r.transition(ctx, workerId, assignmentId, common.AssignmentCanceled, nil)
}

// transition locks the worker's assignment, validates the status graph, applies
// the new status with its timing column, and runs any extra statements inside
// the same transaction.
func (r *AssignmentRepo) transition(ctx context.Context, workerId string, assignmentId string, newStatus string, extra func(*sqlx.Tx, *entity.Assignment, time.Time) error) (*entity.Assignment, error) {
	uuidForm, err := uuid.Parse(assignmentId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	lockSql, args, _ := r.SqlBuilder.
		Select(assignmentColumns).
		From("job_assignments").
		Where("id = ?", uuidForm).
		Where("worker_id = ?", workerId).
		Suffix("FOR UPDATE").
		ToSql()

	var assignment entity.Assignment
	if err = tx.GetContext(ctx, &assignment, lockSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	if !common.AssignmentCanTransition(assignment.Status, newStatus) {
		return nil, repo_errors.ErrInvalidState
	}

	now := time.Now().UTC()

	builder := r.SqlBuilder.
		Update("job_assignments").
		Set("status", newStatus).
		Set("updated_at", now)

	switch newStatus {
	case common.AssignmentStarted:
		builder = builder.Set("started_at", now)
	case common.AssignmentCompleted:
		builder = builder.Set("completed_at", now)
	case common.AssignmentCanceled:
		builder = builder.Set("canceled_at", now)
	}

	updateSql, args, _ := builder.
		Where("id = ?", uuidForm).
		ToSql()

	if _, err = tx.ExecContext(ctx, updateSql, args...); err != nil {
		return nil, err
	}

	if extra != nil {
		if err = extra(tx, &assignment, now); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	assignment.Status = newStatus
	assignment.UpdatedAt = now
	switch newStatus {
	case common.AssignmentStarted:
		assignment.StartedAt = &now
	case common.AssignmentCompleted:
		assignment.CompletedAt = &now
	case common.AssignmentCanceled:
		assignment.CanceledAt = &now
	}

	return &assignment, nil
}

// RateAssignment stores a satisfaction rating on a completed assignment.
func (r *AssignmentRepo) RateAssignment(ctx context.Context, assignmentId string, byWorker bool, rating int) error {
	uuidForm, err := uuid.Parse(assignmentId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	column := "company_rating"
	if byWorker {
		column = "worker_rating"
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("job_assignments").
		Set(column, rating).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", uuidForm).
		Where("status = ?", common.AssignmentCompleted).
		ToSql()

	result, err := r.Database.ExecContext(ctx, updateSql, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrInvalidState
	}

	return nil
}
