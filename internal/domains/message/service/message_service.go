package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"viewtech-backend/internal/domains/message"
	"viewtech-backend/internal/shared"
	"viewtech-backend/internal/shared/pagination"
	"viewtech-backend/pkg/logger"
)

// taskEnqueuer is the slice of the queue client this service needs.
type taskEnqueuer interface {
	Enqueue(taskType string, payload interface{}, opts ...asynq.Option) error
}

type messageService struct {
	repo  message.Repository
	queue taskEnqueuer
}

func NewMessageService(repo message.Repository, queue taskEnqueuer) message.Service {
	return &messageService{repo: repo, queue: queue}
}

func (s *messageService) Create(ctx context.Context, req *message.CreateMessageReq) (*message.MessageResp, error) {
	m := &message.Message{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Body:      req.Message,
		Status:    message.StatusUnread,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, err
	}

	return message.MessageToResp(created), nil
}

func (s *messageService) Get(ctx context.Context, id uuid.UUID) (*message.MessageResp, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// opening an unread message marks it read
	if m.Status == message.StatusUnread {
		if err := s.repo.UpdateStatus(ctx, id, message.StatusRead); err != nil {
			return nil, err
		}
		m.Status = message.StatusRead
	}

	return message.MessageToResp(m), nil
}

func (s *messageService) List(ctx context.Context, q message.ListQuery) ([]message.MessageResp, pagination.Envelope, error) {
	filter := message.Filter{
		Limit:  q.Page.Limit,
		Offset: q.Page.Offset(),
	}
	if q.Status != "" {
		status := message.Status(q.Status)
		if !status.Valid() {
			return nil, pagination.Envelope{}, message.ErrInvalidStatus
		}
		filter.Status = &status
	}

	messages, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pagination.Envelope{}, err
	}

	return message.MessagesToResp(messages), pagination.NewEnvelope(q.Page, total), nil
}

func (s *messageService) UpdateStatus(ctx context.Context, id uuid.UUID, req *message.UpdateStatusReq) (*message.MessageResp, error) {
	status := message.Status(req.Status)
	if !status.Valid() {
		return nil, message.ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return message.MessageToResp(m), nil
}

func (s *messageService) Respond(ctx context.Context, id uuid.UUID, req *message.RespondReq) (*message.MessageResp, error) {
	m, err := s.repo.Respond(ctx, id, req.ResponseText, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	// the reply email goes out asynchronously; a queue failure must not roll
	// back the stored response
	payload := shared.SendMessageResponsePayload{MessageID: m.ID.String()}
	if err := s.queue.Enqueue(shared.TypeSendMessageResponse, payload, asynq.Queue("default"), asynq.MaxRetry(5)); err != nil {
		logger.Error("failed to enqueue response email", err)
	}

	return message.MessageToResp(m), nil
}

func (s *messageService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
