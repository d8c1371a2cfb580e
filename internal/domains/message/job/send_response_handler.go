package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"viewtech-backend/internal/domains/message"
	"viewtech-backend/internal/infrastructure/email"
	"viewtech-backend/internal/shared"
	"viewtech-backend/pkg/logger"
)

// SendResponseHandler emails an admin response to the contact-message sender.
type SendResponseHandler struct {
	repo  message.Repository
	email email.EmailService
}

func NewSendResponseHandler(repo message.Repository, emailSvc email.EmailService) *SendResponseHandler {
	return &SendResponseHandler{repo: repo, email: emailSvc}
}

func (h *SendResponseHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload shared.SendMessageResponsePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	id, err := uuid.Parse(payload.MessageID)
	if err != nil {
		return fmt.Errorf("invalid message id %q: %w", payload.MessageID, asynq.SkipRetry)
	}

	m, err := h.repo.GetByID(ctx, id)
	if err != nil {
		// the message may have been deleted between enqueue and processing
		if err == message.ErrMessageNotFound {
			logger.Info("response email skipped, message gone", map[string]interface{}{"messageId": payload.MessageID})
			return nil
		}
		return err
	}

	if m.ResponseText == nil || *m.ResponseText == "" {
		logger.Info("response email skipped, no response text", map[string]interface{}{"messageId": payload.MessageID})
		return nil
	}

	data := email.ContactResponseData{
		ToEmail:      m.Email,
		ToName:       m.Name,
		Subject:      m.Subject,
		ResponseText: *m.ResponseText,
	}
	if err := h.email.SendContactResponse(ctx, data); err != nil {
		return fmt.Errorf("failed to send response email: %w", err)
	}

	logger.Info("response email sent", map[string]interface{}{"messageId": payload.MessageID})
	return nil
}
