package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acadhub/faculty-timetable-api/internal/models"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
	"github.com/acadhub/faculty-timetable-api/pkg/jobs"
)

// DeliverMessageJobType labels delivery jobs on the messaging queue.
const DeliverMessageJobType = "deliver_message"

type messageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	ListByRecipient(ctx context.Context, filter models.MessageFilter) ([]models.Message, int, error)
	UnreadCount(ctx context.Context, recipientEmail string) (int, error)
	MarkRead(ctx context.Context, id, recipientEmail string) error
	MarkDelivered(ctx context.Context, id string, deliveredAt time.Time) error
	MarkFailed(ctx context.Context, id string) error
}

type messageUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListActiveFacultyEmails(ctx context.Context) ([]string, error)
}

type messageEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// SendMessageRequest describes the payload for sending a message. Leaving the
// recipient empty broadcasts to every active faculty account.
type SendMessageRequest struct {
	RecipientEmail string `json:"recipient_email" validate:"omitempty,email"`
	Subject        string `json:"subject" validate:"required,max=200"`
	Body           string `json:"body" validate:"required,max=5000"`
}

// MessageService manages the inbox. Messages are persisted QUEUED, then a
// background worker marks them DELIVERED (or FAILED once retries run out).
type MessageService struct {
	repo       messageRepository
	users      messageUserRepository
	queue      messageEnqueuer
	validator  *validator.Validate
	logger     *zap.Logger
	maxRetries int
	now        func() time.Time
}

// NewMessageService constructs the service. Attach the delivery queue with
// AttachQueue once it has been built around HandleDelivery.
func NewMessageService(repo messageRepository, users messageUserRepository, validate *validator.Validate, logger *zap.Logger, maxRetries int) *MessageService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &MessageService{
		repo:       repo,
		users:      users,
		validator:  validate,
		logger:     logger,
		maxRetries: maxRetries,
		now:        time.Now,
	}
}

// AttachQueue wires the delivery queue. The queue's handler must be
// HandleDelivery, which is why it cannot be passed to the constructor.
func (s *MessageService) AttachQueue(queue messageEnqueuer) {
	s.queue = queue
}

// Send persists the message(s) and enqueues delivery. A broadcast returns one
// message per active faculty recipient.
func (s *MessageService) Send(ctx context.Context, senderEmail string, req SendMessageRequest) ([]models.Message, error) {
	senderEmail = strings.ToLower(strings.TrimSpace(senderEmail))
	if senderEmail == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "sender email is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid message payload")
	}

	recipients, err := s.resolveRecipients(ctx, req.RecipientEmail)
	if err != nil {
		return nil, err
	}

	subject := strings.TrimSpace(req.Subject)
	body := strings.TrimSpace(req.Body)

	messages := make([]models.Message, 0, len(recipients))
	for _, recipient := range recipients {
		if recipient == senderEmail {
			continue
		}
		msg := models.Message{
			SenderEmail:    senderEmail,
			RecipientEmail: recipient,
			Subject:        subject,
			Body:           body,
		}
		if err := s.repo.Create(ctx, &msg); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist message")
		}
		s.enqueueDelivery(msg.ID)
		messages = append(messages, msg)
	}
	if len(messages) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "message has no recipients")
	}
	return messages, nil
}

// Inbox lists a recipient's messages with pagination metadata.
func (s *MessageService) Inbox(ctx context.Context, recipientEmail string, filter models.MessageFilter) ([]models.Message, *models.Pagination, error) {
	filter.RecipientEmail = strings.ToLower(strings.TrimSpace(recipientEmail))
	if filter.RecipientEmail == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "recipient email is required")
	}
	messages, total, err := s.repo.ListByRecipient(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list messages")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	return messages, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// MarkRead flags one of the recipient's messages as read.
func (s *MessageService) MarkRead(ctx context.Context, id, recipientEmail string) error {
	recipientEmail = strings.ToLower(strings.TrimSpace(recipientEmail))
	if err := s.repo.MarkRead(ctx, id, recipientEmail); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark message read")
	}
	return nil
}

// UnreadCount returns the number of unread messages for the recipient.
func (s *MessageService) UnreadCount(ctx context.Context, recipientEmail string) (int, error) {
	count, err := s.repo.UnreadCount(ctx, strings.ToLower(strings.TrimSpace(recipientEmail)))
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count unread messages")
	}
	return count, nil
}

// HandleDelivery is the queue worker handler. On the final failed attempt the
// message is marked FAILED instead of being retried again.
func (s *MessageService) HandleDelivery(ctx context.Context, job jobs.Job) error {
	messageID, ok := job.Payload.(string)
	if !ok || messageID == "" {
		s.logger.Error("delivery job carries no message id", zap.String("job_id", job.ID))
		return nil
	}

	if err := s.repo.MarkDelivered(ctx, messageID, s.now()); err != nil {
		if job.Attempt >= s.maxRetries-1 {
			if failErr := s.repo.MarkFailed(ctx, messageID); failErr != nil {
				s.logger.Error("failed to mark message failed",
					zap.String("message_id", messageID), zap.Error(failErr))
			}
			return nil
		}
		return err
	}
	return nil
}

func (s *MessageService) resolveRecipients(ctx context.Context, recipientEmail string) ([]string, error) {
	recipientEmail = strings.ToLower(strings.TrimSpace(recipientEmail))
	if recipientEmail == "" {
		emails, err := s.users.ListActiveFacultyEmails(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve broadcast recipients")
		}
		return emails, nil
	}
	if _, err := s.users.FindByEmail(ctx, recipientEmail); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "recipient not found")
	}
	return []string{recipientEmail}, nil
}

func (s *MessageService) enqueueDelivery(messageID string) {
	if s.queue == nil {
		return
	}
	job := jobs.Job{
		ID:      uuid.NewString(),
		Type:    DeliverMessageJobType,
		Payload: messageID,
	}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("failed to enqueue message delivery",
			zap.String("message_id", messageID), zap.Error(err))
	}
}
