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
	"github.com/lib/pq"
)

const janitorColumns = "id, user_id, first_name, last_name, email, phone, bio, hourly_rate_cents, status, " +
	"completed_jobs, joined_at, last_active_at"

const uniqueViolation = "23505"

type JanitorRepo struct {
	*postgres.Postgres
}

func NewJanitorRepo(pgdb *postgres.Postgres) *JanitorRepo {
	return &JanitorRepo{pgdb}
}

func (r *JanitorRepo) CreateJanitor(ctx context.Context, input *entity.CreateJanitorInput) (uuid.UUID, error) {
	createSql, args, _ := r.SqlBuilder.
		Insert("janitors").
		Columns("user_id", "first_name", "last_name", "email", "phone", "bio", "hourly_rate_cents", "status").
		Values(input.UserId, input.FirstName, input.LastName, input.Email, input.Phone, input.Bio,
			input.HourlyRateCents, common.JanitorPendingVerification).
		Suffix("RETURNING id").
		ToSql()

	var janitorId uuid.UUID
	if err := r.Database.GetContext(ctx, &janitorId, createSql, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return uuid.Nil, repo_errors.ErrConflict
		}

		return uuid.Nil, err
	}

	return janitorId, nil
}

func (r *JanitorRepo) GetJanitorById(ctx context.Context, janitorId string) (*entity.Janitor, error) {
	uuidForm, err := uuid.Parse(janitorId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	return r.getJanitor(ctx, squirrel.Eq{"id": uuidForm})
}

func (r *JanitorRepo) GetJanitorByUserId(ctx context.Context, userId string) (*entity.Janitor, error) {
	return r.getJanitor(ctx, squirrel.Eq{"user_id": userId})
}

func (r *JanitorRepo) getJanitor(ctx context.Context, where squirrel.Eq) (*entity.Janitor, error) {
	getSql, args, _ := r.SqlBuilder.
		Select(janitorColumns).
		From("janitors").
		Where(where).
		ToSql()

	var janitor entity.Janitor
	if err := r.Database.GetContext(ctx, &janitor, getSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &janitor, nil
}

func (r *JanitorRepo) ListJanitors(ctx context.Context, statuses []string, pg *entity.PaginationInput) ([]entity.Janitor, error) {
	builder := r.SqlBuilder.
		Select(janitorColumns).
		From("janitors")

	if len(statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"status": statuses})
	}

	listSql, args, _ := builder.
		OrderBy("joined_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	janitors := make([]entity.Janitor, 0)
	if err := r.Database.SelectContext(ctx, &janitors, listSql, args...); err != nil {
		return nil, err
	}

	return janitors, nil
}

// UpdateJanitorProfile is keyed by user id: janitors edit their own profile.
// Any profile write also refreshes last_active_at.
func (r *JanitorRepo) UpdateJanitorProfile(ctx context.Context, userId string, patch *entity.UpdateJanitorProfileInput) error {
	builder := r.SqlBuilder.
		Update("janitors").
		Set("last_active_at", time.Now().UTC())

	if patch.Phone != nil {
		builder = builder.Set("phone", *patch.Phone)
	}
	if patch.Bio != nil {
		builder = builder.Set("bio", *patch.Bio)
	}
	if patch.HourlyRateCents != nil {
		builder = builder.Set("hourly_rate_cents", *patch.HourlyRateCents)
	}

	updateSql, args, _ := builder.
		Where("user_id = ?", userId).
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
		return repo_errors.ErrNotFound
	}

	return nil
}

func (r *JanitorRepo) UpdateJanitorStatus(ctx context.Context, janitorId string, newStatus string) error {
	uuidForm, err := uuid.Parse(janitorId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("janitors").
		Set("status", newStatus).
		Set("last_active_at", time.Now().UTC()).
		Where("id = ?", uuidForm).
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
		return repo_errors.ErrNotFound
	}

	return nil
}
