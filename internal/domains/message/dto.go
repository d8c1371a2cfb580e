package message

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

type CreateMessageReq struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

func (r CreateMessageReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email,
		),
		validation.Field(&r.Phone, validation.Length(0, 30)),
		validation.Field(&r.Subject,
			validation.Required.Error("subject is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.Length(1, 5000),
		),
	)
}

type UpdateStatusReq struct {
	Status string `json:"status"`
}

func (r UpdateStatusReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
			validation.In("unread", "read", "responded").Error("status must be unread, read or responded"),
		),
	)
}

type RespondReq struct {
	ResponseText string `json:"responseText"`
}

func (r RespondReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ResponseText,
			validation.Required.Error("responseText is required"),
			validation.Length(1, 10000),
		),
	)
}

type MessageResp struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        *string    `json:"phone"`
	Subject      string     `json:"subject"`
	Message      string     `json:"message"`
	Status       Status     `json:"status"`
	ResponseText *string    `json:"responseText"`
	RespondedAt  *time.Time `json:"respondedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func MessageToResp(m *Message) *MessageResp {
	if m == nil {
		return nil
	}
	return &MessageResp{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		Subject:      m.Subject,
		Message:      m.Body,
		Status:       m.Status,
		ResponseText: m.ResponseText,
		RespondedAt:  m.RespondedAt,
		CreatedAt:    m.CreatedAt,
	}
}

func MessagesToResp(messages []Message) []MessageResp {
	out := make([]MessageResp, 0, len(messages))
	for i := range messages {
		out = append(out, *MessageToResp(&messages[i]))
	}
	return out
}
