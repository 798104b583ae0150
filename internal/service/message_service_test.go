package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadhub/faculty-timetable-api/internal/models"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
	"github.com/acadhub/faculty-timetable-api/pkg/jobs"
)

type mockMessageRepo struct {
	messages       []models.Message
	deliveredIDs   []string
	failedIDs      []string
	deliverErr     error
	nextID         int
	unread         int
	markReadCalls  int
	lastReadID     string
	lastReadEmail  string
	createFailures int
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *models.Message) error {
	if m.createFailures > 0 {
		m.createFailures--
		return errors.New("insert failed")
	}
	m.nextID++
	msg.ID = fmt.Sprintf("msg-%d", m.nextID)
	msg.Status = models.MessageQueued
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *mockMessageRepo) ListByRecipient(ctx context.Context, filter models.MessageFilter) ([]models.Message, int, error) {
	var out []models.Message
	for _, msg := range m.messages {
		if msg.RecipientEmail == filter.RecipientEmail {
			out = append(out, msg)
		}
	}
	return out, len(out), nil
}

func (m *mockMessageRepo) UnreadCount(ctx context.Context, recipientEmail string) (int, error) {
	return m.unread, nil
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, id, recipientEmail string) error {
	m.markReadCalls++
	m.lastReadID = id
	m.lastReadEmail = recipientEmail
	return nil
}

func (m *mockMessageRepo) MarkDelivered(ctx context.Context, id string, deliveredAt time.Time) error {
	if m.deliverErr != nil {
		return m.deliverErr
	}
	m.deliveredIDs = append(m.deliveredIDs, id)
	return nil
}

func (m *mockMessageRepo) MarkFailed(ctx context.Context, id string) error {
	m.failedIDs = append(m.failedIDs, id)
	return nil
}

type mockMessageUsers struct {
	facultyEmails []string
	known         map[string]bool
}

func (m *mockMessageUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.known[email] {
		return &models.User{Email: email}, nil
	}
	return nil, errors.New("not found")
}

func (m *mockMessageUsers) ListActiveFacultyEmails(ctx context.Context) ([]string, error) {
	return m.facultyEmails, nil
}

type recordingQueue struct {
	jobs []jobs.Job
	err  error
}

func (q *recordingQueue) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func TestMessageSendToSingleRecipient(t *testing.T) {
	repo := &mockMessageRepo{}
	users := &mockMessageUsers{known: map[string]bool{"asha@college.edu": true}}
	queue := &recordingQueue{}
	svc := NewMessageService(repo, users, nil, zap.NewNop(), 3)
	svc.AttachQueue(queue)

	sent, err := svc.Send(context.Background(), "admin@college.edu", SendMessageRequest{
		RecipientEmail: "Asha@College.EDU",
		Subject:        "Roster change",
		Body:           "Your Monday lecture moved to R102.",
	})
	require.NoError(t, err)

	require.Len(t, sent, 1)
	assert.Equal(t, "asha@college.edu", sent[0].RecipientEmail)
	assert.Equal(t, models.MessageQueued, sent[0].Status)

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, DeliverMessageJobType, queue.jobs[0].Type)
	assert.Equal(t, sent[0].ID, queue.jobs[0].Payload)
}

func TestMessageSendUnknownRecipient(t *testing.T) {
	svc := NewMessageService(&mockMessageRepo{}, &mockMessageUsers{}, nil, zap.NewNop(), 3)

	_, err := svc.Send(context.Background(), "admin@college.edu", SendMessageRequest{
		RecipientEmail: "ghost@college.edu",
		Subject:        "Hello",
		Body:           "anyone there?",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestMessageBroadcastFansOutAndSkipsSender(t *testing.T) {
	repo := &mockMessageRepo{}
	users := &mockMessageUsers{facultyEmails: []string{
		"asha@college.edu", "vikram@college.edu", "admin@college.edu",
	}}
	queue := &recordingQueue{}
	svc := NewMessageService(repo, users, nil, zap.NewNop(), 3)
	svc.AttachQueue(queue)

	sent, err := svc.Send(context.Background(), "admin@college.edu", SendMessageRequest{
		Subject: "Semester dates",
		Body:    "Exams begin 2026-04-06.",
	})
	require.NoError(t, err)

	assert.Len(t, sent, 2)
	assert.Len(t, queue.jobs, 2)
	for _, msg := range sent {
		assert.NotEqual(t, "admin@college.edu", msg.RecipientEmail)
	}
}

func TestMessageDeliveryMarksDelivered(t *testing.T) {
	repo := &mockMessageRepo{}
	svc := NewMessageService(repo, &mockMessageUsers{}, nil, zap.NewNop(), 3)

	err := svc.HandleDelivery(context.Background(), jobs.Job{ID: "job-1", Payload: "msg-9"})
	require.NoError(t, err)
	assert.Equal(t, []string{"msg-9"}, repo.deliveredIDs)
}

func TestMessageDeliveryRetriesThenFails(t *testing.T) {
	repo := &mockMessageRepo{deliverErr: errors.New("db down")}
	svc := NewMessageService(repo, &mockMessageUsers{}, nil, zap.NewNop(), 3)

	// Early attempts propagate the error so the queue retries.
	err := svc.HandleDelivery(context.Background(), jobs.Job{ID: "job-1", Payload: "msg-9", Attempt: 0})
	require.Error(t, err)
	assert.Empty(t, repo.failedIDs)

	// The final attempt marks the message FAILED and swallows the error.
	err = svc.HandleDelivery(context.Background(), jobs.Job{ID: "job-1", Payload: "msg-9", Attempt: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"msg-9"}, repo.failedIDs)
}

func TestMessageMarkReadLowersEmail(t *testing.T) {
	repo := &mockMessageRepo{}
	svc := NewMessageService(repo, &mockMessageUsers{}, nil, zap.NewNop(), 3)

	require.NoError(t, svc.MarkRead(context.Background(), "msg-1", "Asha@College.EDU"))
	assert.Equal(t, "msg-1", repo.lastReadID)
	assert.Equal(t, "asha@college.edu", repo.lastReadEmail)
}
