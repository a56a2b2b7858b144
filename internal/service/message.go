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

const (
	senderWorker  = "worker"
	senderCompany = "company"
)

type MessageService struct {
	messageRepo    repo.Message
	assignmentRepo repo.Assignment
	jobRepo        repo.Job
	emitter        *realtime.Emitter
}

func NewMessageService(messageRepo repo.Message, assignmentRepo repo.Assignment, jobRepo repo.Job, emitter *realtime.Emitter) *MessageService {
	return &MessageService{
		messageRepo:    messageRepo,
		assignmentRepo: assignmentRepo,
		jobRepo:        jobRepo,
		emitter:        emitter,
	}
}

func (s *MessageService) SendMessage(ctx context.Context, callerId string, callerOrgId string, assignmentId string, body string, attachments *string) (out *entity.MessageOutputModel, err error) {
	defer func() { metrics.ObserveOperation("message.send", err) }()

	senderType, recipientId, err := s.resolveParticipants(ctx, callerId, callerOrgId, assignmentId)
	if err != nil {
		return nil, err
	}

	message, err := s.messageRepo.CreateMessage(ctx, assignmentId, callerId, senderType, body, attachments)
	if err != nil {
		return nil, fmt.Errorf("MessageService.SendMessage - messageRepo.CreateMessage: %w", err)
	}

	s.emitter.Emit(realtime.UserMessagesChannel(recipientId), realtime.Event{
		Type: "message.received",
		Data: map[string]any{
			"assignmentId": assignmentId,
			"messageId":    message.Id.String(),
			"senderId":     callerId,
		},
	})

	return mapMessage(message), nil
}

func (s *MessageService) ListMessages(ctx context.Context, callerId string, callerOrgId string, assignmentId string, pg *entity.PaginationInput) ([]entity.MessageOutputModel, error) {
	if _, _, err := s.resolveParticipants(ctx, callerId, callerOrgId, assignmentId); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListAssignmentMessages(ctx, assignmentId, pg)
	if err != nil {
		return nil, fmt.Errorf("MessageService.ListMessages - messageRepo.ListAssignmentMessages: %w", err)
	}

	return mapMessages(messages), nil
}

// MarkMessageRead stamps the read time on a message in a conversation the
// caller participates in. Outsiders get the same answer as a missing message.
func (s *MessageService) MarkMessageRead(ctx context.Context, callerId string, callerOrgId string, messageId string) (err error) {
	defer func() { metrics.ObserveOperation("message.mark_read", err) }()

	message, err := s.messageRepo.GetMessageById(ctx, messageId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("MessageService.MarkMessageRead - messageRepo.GetMessageById: %w", err)
	}

	if _, _, err := s.resolveParticipants(ctx, callerId, callerOrgId, message.AssignmentId.String()); err != nil {
		if errors.Is(err, ErrAssignmentNotFound) {
			return ErrMessageNotFound
		}
		return err
	}

	if err := s.messageRepo.MarkMessageRead(ctx, messageId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("MessageService.MarkMessageRead - messageRepo.MarkMessageRead: %w", err)
	}

	return nil
}

// UnreadMessageCount reports how many messages addressed to the user are
// still unread across all their conversations.
func (s *MessageService) UnreadMessageCount(ctx context.Context, userId string) (int, error) {
	count, err := s.messageRepo.CountUnreadMessages(ctx, userId)
	if err != nil {
		return 0, fmt.Errorf("MessageService.UnreadMessageCount - messageRepo.CountUnreadMessages: %w", err)
	}

	return count, nil
}

// resolveParticipants checks that the caller is one side of the assignment's
// conversation and returns the caller's role plus the other side's user id.
// Outsiders get the same answer as a missing assignment.
func (s *MessageService) resolveParticipants(ctx context.Context, callerId string, callerOrgId string, assignmentId string) (senderType string, recipientId string, err error) {
	assignment, err := s.assignmentRepo.GetAssignmentById(ctx, assignmentId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return "", "", ErrAssignmentNotFound
		}
		return "", "", fmt.Errorf("MessageService.resolveParticipants - assignmentRepo.GetAssignmentById: %w", err)
	}

	ownerOrg, ownerUser, err := s.jobRepo.GetJobOwner(ctx, assignment.JobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return "", "", ErrAssignmentNotFound
		}
		return "", "", fmt.Errorf("MessageService.resolveParticipants - jobRepo.GetJobOwner: %w", err)
	}

	switch {
	case callerId == assignment.WorkerId:
		return senderWorker, ownerUser, nil
	case callerOrgId != "" && callerOrgId == ownerOrg:
		return senderCompany, assignment.WorkerId, nil
	}

	return "", "", ErrAssignmentNotFound
}
