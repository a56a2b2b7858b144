package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/repo/repo_errors"
	"cleaning-marketplace-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const messageColumns = "id, assignment_id, sender_id, sender_type, body, attachments, read_at, created_at"

type MessageRepo struct {
	*postgres.Postgres
}

func NewMessageRepo(pgdb *postgres.Postgres) *MessageRepo {
	return &MessageRepo{pgdb}
}

func (r *MessageRepo) CreateMessage(ctx context.Context, assignmentId string, senderId string, senderType string, body string, attachments *string) (*entity.Message, error) {
	uuidForm, err := uuid.Parse(assignmentId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	createSql, args, _ := r.SqlBuilder.
		Insert("assignment_messages").
		Columns("assignment_id", "sender_id", "sender_type", "body", "attachments").
		Values(uuidForm, senderId, senderType, body, attachments).
		Suffix("RETURNING " + messageColumns).
		ToSql()

	var message entity.Message
	if err := r.Database.GetContext(ctx, &message, createSql, args...); err != nil {
		return nil, err
	}

	return &message, nil
}

func (r *MessageRepo) GetMessageById(ctx context.Context, messageId string) (*entity.Message, error) {
	uuidForm, err := uuid.Parse(messageId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getSql, args, _ := r.SqlBuilder.
		Select(messageColumns).
		From("assignment_messages").
		Where("id = ?", uuidForm).
		ToSql()

	var message entity.Message
	if err := r.Database.GetContext(ctx, &message, getSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &message, nil
}

func (r *MessageRepo) MarkMessageRead(ctx context.Context, messageId string) error {
	uuidForm, err := uuid.Parse(messageId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("assignment_messages").
		Set("read_at", time.Now().UTC()).
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

// CountUnreadMessages counts messages addressed to the user (sent by the other
// side of a conversation the user participates in) that have not been read.
func (r *MessageRepo) CountUnreadMessages(ctx context.Context, userId string) (int, error) {
	countSql, args, _ := r.SqlBuilder.
		Select("COUNT(*)").
		From("assignment_messages m").
		Join("job_assignments a ON a.id = m.assignment_id").
		Join("jobs j ON j.id = a.job_id").
		Where("m.read_at IS NULL").
		Where("m.sender_id <> ?", userId).
		Where(squirrel.Or{
			squirrel.Eq{"a.worker_id": userId},
			squirrel.Eq{"j.created_by": userId},
		}).
		ToSql()

	var count int
	if err := r.Database.GetContext(ctx, &count, countSql, args...); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *MessageRepo) ListAssignmentMessages(ctx context.Context, assignmentId string, pg *entity.PaginationInput) ([]entity.Message, error) {
	uuidForm, err := uuid.Parse(assignmentId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	listSql, args, _ := r.SqlBuilder.
		Select(messageColumns).
		From("assignment_messages").
		Where("assignment_id = ?", uuidForm).
		OrderBy("created_at ASC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	messages := make([]entity.Message, 0)
	if err := r.Database.SelectContext(ctx, &messages, listSql, args...); err != nil {
		return nil, err
	}

	return messages, nil
}
