package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mentorlink-backend/models/notify"
	"mentorlink-backend/models/sessions"
	"mentorlink-backend/models/users"
)

const dateLayout = "2006-01-02"

// errAlreadyCancelled marks a double cancel inside a transaction; callers
// turn it into a no-op success since UI double-submits are expected.
var errAlreadyCancelled = errors.New("session already cancelled")

type SchedulingService struct {
	DB *gorm.DB
}

func NewSchedulingService(db *gorm.DB) *SchedulingService {
	return &SchedulingService{DB: db}
}

// Book creates a scheduled session for the acting mentee with the given
// mentor and slot. The slot conflict check is the insert itself: the partial
// unique index on (mentor, date, time) rejects a second scheduled row, so two
// concurrent bookings can never both land. An optional idempotency key makes
// client retries return the original session instead of SlotTaken.
func (s *SchedulingService) Book(ctx context.Context, menteeID, mentorID uint, date, timeSlot, idempotencyKey string) (*sessions.Session, error) {
	if mentorID == 0 || date == "" || timeSlot == "" {
		return nil, ErrMissingFields
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrMissingFields
	}

	db := s.DB.WithContext(ctx)

	mentee, err := users.GetByID(db, menteeID)
	if err != nil {
		return nil, translateStorage(err)
	}
	mentor, err := users.GetByID(db, mentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidMentor
		}
		return nil, ErrUnavailable
	}
	if mentor.Role != users.RoleMentor || mentorID == menteeID {
		return nil, ErrInvalidMentor
	}

	if idempotencyKey != "" {
		if prior, ok := s.replay(db, idempotencyKey, menteeID); ok {
			return prior, nil
		}
	}

	session := sessions.Session{
		MentorID:       mentorID,
		MenteeID:       menteeID,
		Date:           date,
		Time:           timeSlot,
		Status:         sessions.StatusScheduled,
		IdempotencyKey: idempotencyKey,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if createErr := tx.Create(&session).Error; createErr != nil {
			return createErr
		}
		message := fmt.Sprintf("%s booked a session for %s at %s", mentee.Name, date, timeSlot)
		if notifyErr := send(tx, mentorID, &menteeID, notify.TypeSessionScheduled, message); notifyErr != nil {
			return ErrUnavailable
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Either a retry of the same booking or a lost slot race.
		if idempotencyKey != "" {
			if prior, ok := s.replay(db, idempotencyKey, menteeID); ok {
				return prior, nil
			}
		}
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, normalize(err)
	}
	return &session, nil
}

func (s *SchedulingService) replay(db *gorm.DB, key string, menteeID uint) (*sessions.Session, bool) {
	var prior sessions.Session
	if err := db.Where("idempotency_key = ?", key).First(&prior).Error; err != nil {
		return nil, false
	}
	if prior.MenteeID != menteeID {
		return nil, false
	}
	return &prior, true
}

// Cancel moves a scheduled session to cancelled and notifies both
// participants in the same transaction. Cancelling twice is a no-op success;
// the conditional status update guarantees only the first cancel fans out,
// so neither participant ever sees two cancellation entries.
func (s *SchedulingService) Cancel(ctx context.Context, actorID, sessionID uint) error {
	db := s.DB.WithContext(ctx)

	err := db.Transaction(func(tx *gorm.DB) error {
		var session sessions.Session
		lookupErr := tx.First(&session, sessionID).Error
		if lookupErr != nil {
			return translateStorage(lookupErr)
		}
		if !session.IsParticipant(actorID) {
			return ErrForbidden
		}
		switch session.Status {
		case sessions.StatusCancelled:
			return errAlreadyCancelled
		case sessions.StatusCompleted:
			return ErrSessionDone
		}

		result := tx.Model(&sessions.Session{}).
			Where("id = ? AND status = ?", sessionID, sessions.StatusScheduled).
			Update("status", sessions.StatusCancelled)
		if result.Error != nil {
			return ErrUnavailable
		}
		if result.RowsAffected == 0 {
			// a concurrent cancel won; its transaction carries the fan-out
			return errAlreadyCancelled
		}

		message := fmt.Sprintf("Session on %s at %s has been cancelled", session.Date, session.Time)
		if notifyErr := send(tx, session.MentorID, &actorID, notify.TypeSessionCancelled, message); notifyErr != nil {
			return ErrUnavailable
		}
		if notifyErr := send(tx, session.MenteeID, &actorID, notify.TypeSessionCancelled, message); notifyErr != nil {
			return ErrUnavailable
		}
		return nil
	})
	if errors.Is(err, errAlreadyCancelled) {
		return nil
	}
	return normalize(err)
}

type Participant struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type SessionView struct {
	ID     uint        `json:"id"`
	Mentor Participant `json:"mentor"`
	Mentee Participant `json:"mentee"`
	Date   string      `json:"date"`
	Time   string      `json:"time"`
	Status string      `json:"status"`
}

// List returns the actor's sessions on either side of the table, soonest
// first, with participant names resolved for display.
func (s *SchedulingService) List(ctx context.Context, userID uint) ([]SessionView, error) {
	db := s.DB.WithContext(ctx)

	var records []sessions.Session
	if err := db.Where("mentor_id = ? OR mentee_id = ?", userID, userID).
		Order("date, time").Find(&records).Error; err != nil {
		return nil, ErrUnavailable
	}

	ids := make([]uint, 0, len(records)*2)
	for _, record := range records {
		ids = append(ids, record.MentorID, record.MenteeID)
	}
	names, err := userNames(db, ids)
	if err != nil {
		return nil, err
	}

	views := make([]SessionView, 0, len(records))
	for _, record := range records {
		views = append(views, SessionView{
			ID:     record.ID,
			Mentor: Participant{ID: record.MentorID, Name: names[record.MentorID]},
			Mentee: Participant{ID: record.MenteeID, Name: names[record.MenteeID]},
			Date:   record.Date,
			Time:   record.Time,
			Status: record.Status,
		})
	}
	return views, nil
}

func userNames(db *gorm.DB, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var records []users.User
	if err := db.Select("id", "name").Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, ErrUnavailable
	}
	for _, record := range records {
		names[record.ID] = record.Name
	}
	return names, nil
}
