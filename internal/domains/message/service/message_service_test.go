package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewtech-backend/internal/domains/message"
	"viewtech-backend/internal/shared"
	"viewtech-backend/internal/shared/pagination"
)

type fakeRepo struct {
	messages map[uuid.UUID]*message.Message

	lastFilter message.Filter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{messages: map[uuid.UUID]*message.Message{}}
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*message.Message, error) {
	m, ok := f.messages[id]
	if !ok {
		return nil, message.ErrMessageNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, filter message.Filter) ([]message.Message, int, error) {
	f.lastFilter = filter
	out := make([]message.Message, 0, len(f.messages))
	for _, m := range f.messages {
		out = append(out, *m)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Create(ctx context.Context, m *message.Message) (*message.Message, error) {
	cp := *m
	f.messages[m.ID] = &cp
	return m, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status message.Status) error {
	m, ok := f.messages[id]
	if !ok {
		return message.ErrMessageNotFound
	}
	m.Status = status
	return nil
}

func (f *fakeRepo) Respond(ctx context.Context, id uuid.UUID, responseText string, respondedAt time.Time) (*message.Message, error) {
	m, ok := f.messages[id]
	if !ok {
		return nil, message.ErrMessageNotFound
	}
	m.Status = message.StatusResponded
	m.ResponseText = &responseText
	m.RespondedAt = &respondedAt
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.messages[id]; !ok {
		return message.ErrMessageNotFound
	}
	delete(f.messages, id)
	return nil
}

func (f *fakeRepo) DeleteRespondedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, m := range f.messages {
		if m.Status == message.StatusResponded && m.CreatedAt.Before(cutoff) {
			delete(f.messages, id)
			n++
		}
	}
	return n, nil
}

type fakeEnqueuer struct {
	taskTypes []string
	payloads  []interface{}
	err       error
}

func (f *fakeEnqueuer) Enqueue(taskType string, payload interface{}, opts ...asynq.Option) error {
	f.taskTypes = append(f.taskTypes, taskType)
	f.payloads = append(f.payloads, payload)
	return f.err
}

func seedMessage(f *fakeRepo, status message.Status) *message.Message {
	m := &message.Message{
		ID:        uuid.New(),
		Name:      "Jordan",
		Email:     "jordan@example.com",
		Subject:   "Alarm quote",
		Body:      "How much for a home alarm system?",
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	f.messages[m.ID] = m
	return m
}

func TestCreateStartsUnread(t *testing.T) {
	repo := newFakeRepo()
	svc := NewMessageService(repo, &fakeEnqueuer{})

	resp, err := svc.Create(context.Background(), &message.CreateMessageReq{
		Name:    "Jordan",
		Email:   "jordan@example.com",
		Subject: "Quote",
		Message: "Details please",
	})

	require.NoError(t, err)
	assert.Equal(t, message.StatusUnread, resp.Status)
	assert.NotEqual(t, uuid.Nil, resp.ID)
}

func TestGetMarksUnreadAsRead(t *testing.T) {
	repo := newFakeRepo()
	m := seedMessage(repo, message.StatusUnread)
	svc := NewMessageService(repo, &fakeEnqueuer{})

	resp, err := svc.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, message.StatusRead, resp.Status)
	assert.Equal(t, message.StatusRead, repo.messages[m.ID].Status)
}

func TestGetLeavesRespondedAlone(t *testing.T) {
	repo := newFakeRepo()
	m := seedMessage(repo, message.StatusResponded)
	svc := NewMessageService(repo, &fakeEnqueuer{})

	resp, err := svc.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, message.StatusResponded, resp.Status)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := NewMessageService(repo, &fakeEnqueuer{})

	_, _, err := svc.List(context.Background(), message.ListQuery{Status: "archived"})
	assert.ErrorIs(t, err, message.ErrInvalidStatus)
}

func TestListFiltersByStatus(t *testing.T) {
	repo := newFakeRepo()
	seedMessage(repo, message.StatusUnread)
	svc := NewMessageService(repo, &fakeEnqueuer{})

	_, _, err := svc.List(context.Background(), message.ListQuery{
		Status: "unread",
		Page:   pagination.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, message.StatusUnread, *repo.lastFilter.Status)
	assert.Equal(t, 10, repo.lastFilter.Limit)
}

func TestRespondEnqueuesEmail(t *testing.T) {
	repo := newFakeRepo()
	m := seedMessage(repo, message.StatusRead)
	q := &fakeEnqueuer{}
	svc := NewMessageService(repo, q)

	resp, err := svc.Respond(context.Background(), m.ID, &message.RespondReq{
		ResponseText: "Thanks, we will call you tomorrow.",
	})

	require.NoError(t, err)
	assert.Equal(t, message.StatusResponded, resp.Status)
	require.NotNil(t, resp.RespondedAt)

	require.Len(t, q.taskTypes, 1)
	assert.Equal(t, shared.TypeSendMessageResponse, q.taskTypes[0])
	payload, ok := q.payloads[0].(shared.SendMessageResponsePayload)
	require.True(t, ok)
	assert.Equal(t, m.ID.String(), payload.MessageID)
}

func TestRespondSurvivesQueueFailure(t *testing.T) {
	repo := newFakeRepo()
	m := seedMessage(repo, message.StatusRead)
	q := &fakeEnqueuer{err: asynq.ErrDuplicateTask}
	svc := NewMessageService(repo, q)

	resp, err := svc.Respond(context.Background(), m.ID, &message.RespondReq{
		ResponseText: "Stored even if the email job never queued.",
	})

	require.NoError(t, err)
	assert.Equal(t, message.StatusResponded, resp.Status)
	assert.Equal(t, message.StatusResponded, repo.messages[m.ID].Status)
}

func TestUpdateStatusValidates(t *testing.T) {
	repo := newFakeRepo()
	m := seedMessage(repo, message.StatusUnread)
	svc := NewMessageService(repo, &fakeEnqueuer{})

	_, err := svc.UpdateStatus(context.Background(), m.ID, &message.UpdateStatusReq{Status: "spam"})
	assert.ErrorIs(t, err, message.ErrInvalidStatus)

	resp, err := svc.UpdateStatus(context.Background(), m.ID, &message.UpdateStatusReq{Status: "read"})
	require.NoError(t, err)
	assert.Equal(t, message.StatusRead, resp.Status)
}

func TestDeleteMissingMessage(t *testing.T) {
	repo := newFakeRepo()
	svc := NewMessageService(repo, &fakeEnqueuer{})

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, message.ErrMessageNotFound)
}
