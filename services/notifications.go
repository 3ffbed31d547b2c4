package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"mentorlink-backend/models/notify"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// send appends one entry to the recipient's inbox using the given handle,
// which may be a transaction when the entry is part of a state transition.
func send(db *gorm.DB, recipientID uint, senderID *uint, kind, message string) error {
	notification := notify.Notification{
		UserID:   recipientID,
		SenderID: senderID,
		Type:     kind,
		Message:  message,
	}
	return db.Create(&notification).Error
}

// sendBestEffort is for secondary recipients: a failed append is logged and
// never aborts the transition that triggered it.
func sendBestEffort(db *gorm.DB, recipientID uint, senderID *uint, kind, message string) {
	if err := send(db, recipientID, senderID, kind, message); err != nil {
		log.Printf("notification to user %d dropped: %v", recipientID, err)
	}
}

// List returns the actor's inbox, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]notify.Notification, error) {
	var notifications []notify.Notification
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, ErrUnavailable
	}
	return notifications, nil
}

// MarkRead flips the read flag on the actor's own entries. Ids that belong
// to another user are silently skipped; matching on id alone would let any
// authenticated user mark arbitrary inboxes read.
func (s *NotificationService) MarkRead(ctx context.Context, userID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.DB.WithContext(ctx).
		Model(&notify.Notification{}).
		Where("id IN ? AND user_id = ?", ids, userID).
		Update("is_read", true).Error
	if err != nil {
		return ErrUnavailable
	}
	return nil
}

// translateStorage maps GORM lookup errors into the service taxonomy.
func translateStorage(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return ErrUnavailable
}
