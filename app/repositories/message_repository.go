package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/popays/backend/app/models"
)

// MessageRepository handles database operations for contact messages.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create persists a new contact message with status "new".
func (r *MessageRepository) Create(msg *models.ContactMessage) error {
	if msg.Status == "" {
		msg.Status = models.MessageStatusNew
	}
	if err := r.db.Create(msg).Error; err != nil {
		return fmt.Errorf("store: create contact message: %w", err)
	}
	return nil
}

// List returns contact messages newest-first, optionally filtered by an
// exact status value.
func (r *MessageRepository) List(status string) ([]models.ContactMessage, error) {
	q := r.db.Model(&models.ContactMessage{}).Order("created_at DESC, id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var msgs []models.ContactMessage
	if err := q.Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("store: list contact messages: %w", err)
	}
	return msgs, nil
}

// Recent returns the newest n contact messages.
func (r *MessageRepository) Recent(n int) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	err := r.db.Model(&models.ContactMessage{}).
		Order("created_at DESC, id DESC").
		Limit(n).
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("store: recent contact messages: %w", err)
	}
	return msgs, nil
}

// UpdateStatus moves a message between new/read/replied.
func (r *MessageRepository) UpdateStatus(id uint, status string) error {
	res := r.db.Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("store: update message status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkNotified records that the admin alert for this message went out.
func (r *MessageRepository) MarkNotified(id uint, at time.Time) error {
	err := r.db.Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("notified_at", at).Error
	if err != nil {
		return fmt.Errorf("store: mark message notified: %w", err)
	}
	return nil
}

// Unnotified returns persisted messages whose admin alert never went out.
func (r *MessageRepository) Unnotified() ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	err := r.db.Where("notified_at IS NULL").
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("store: unnotified messages: %w", err)
	}
	return msgs, nil
}

// Count returns the total number of contact messages.
func (r *MessageRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.ContactMessage{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("store: count messages: %w", err)
	}
	return n, nil
}

// CountByStatus returns the number of messages with the given status.
func (r *MessageRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.db.Model(&models.ContactMessage{}).
		Where("status = ?", status).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("store: count messages by status: %w", err)
	}
	return n, nil
}
