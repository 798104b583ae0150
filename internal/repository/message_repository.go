package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acadhub/faculty-timetable-api/internal/models"
)

const messageColumns = `id, sender_email, recipient_email, subject, body, status, "read", delivered_at, created_at`

// MessageRepository provides persistence for inbox messages.
type MessageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message in QUEUED state.
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.Status = models.MessageQueued
	msg.CreatedAt = time.Now().UTC()

	const query = `INSERT INTO messages (id, sender_email, recipient_email, subject, body, status, "read", created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)`
	if _, err := r.db.ExecContext(ctx, query, msg.ID, msg.SenderEmail, msg.RecipientEmail, msg.Subject, msg.Body, msg.Status, msg.CreatedAt); err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

// ListByRecipient returns a recipient's messages, newest first.
func (r *MessageRepository) ListByRecipient(ctx context.Context, filter models.MessageFilter) ([]models.Message, int, error) {
	base := "FROM messages WHERE LOWER(recipient_email) = LOWER($1)"
	args := []interface{}{filter.RecipientEmail}
	if filter.UnreadOnly {
		base += ` AND "read" = FALSE`
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", messageColumns, base, size, offset)
	var messages []models.Message
	if err := r.db.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list messages: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count messages: %w", err)
	}

	return messages, total, nil
}

// UnreadCount returns the number of unread messages for a recipient.
func (r *MessageRepository) UnreadCount(ctx context.Context, recipientEmail string) (int, error) {
	const query = `SELECT COUNT(*) FROM messages WHERE LOWER(recipient_email) = LOWER($1) AND "read" = FALSE`
	var count int
	if err := r.db.GetContext(ctx, &count, query, recipientEmail); err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return count, nil
}

// MarkRead flags a message as read by its recipient.
func (r *MessageRepository) MarkRead(ctx context.Context, id, recipientEmail string) error {
	const query = `UPDATE messages SET "read" = TRUE WHERE id = $1 AND LOWER(recipient_email) = LOWER($2)`
	if _, err := r.db.ExecContext(ctx, query, id, recipientEmail); err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	return nil
}

// MarkDelivered records successful asynchronous delivery.
func (r *MessageRepository) MarkDelivered(ctx context.Context, id string, deliveredAt time.Time) error {
	const query = `UPDATE messages SET status = $2, delivered_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.MessageDelivered, deliveredAt); err != nil {
		return fmt.Errorf("mark message delivered: %w", err)
	}
	return nil
}

// MarkFailed records a delivery failure after retries were exhausted.
func (r *MessageRepository) MarkFailed(ctx context.Context, id string) error {
	const query = `UPDATE messages SET status = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.MessageFailed); err != nil {
		return fmt.Errorf("mark message failed: %w", err)
	}
	return nil
}
