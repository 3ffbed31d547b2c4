package sessions

import "time"

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Session is one booked mentoring slot. The partial unique index covers only
// scheduled rows, so a cancelled booking frees its slot while the conflict
// check stays a single conditional insert.
type Session struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	MentorID       uint   `gorm:"not null;index:idx_mentor_slot,unique,where:status = 'scheduled'" json:"mentorId"`
	MenteeID       uint   `gorm:"not null;index" json:"menteeId"`
	Date           string `gorm:"size:10;not null;index:idx_mentor_slot" json:"date"`
	Time           string `gorm:"size:20;not null;index:idx_mentor_slot" json:"time"`
	Status         string `gorm:"size:20;not null;default:scheduled" json:"status"`
	IdempotencyKey string `gorm:"size:64;uniqueIndex:idx_session_idem,where:idempotency_key <> ''" json:"-"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (s *Session) IsParticipant(userID uint) bool {
	return s.MentorID == userID || s.MenteeID == userID
}
