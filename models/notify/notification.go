package notify

import "time"

const (
	TypeConnectionRequest  = "connection_request"
	TypeConnectionAccepted = "connection_accepted"
	TypeConnectionDeclined = "connection_declined"
	TypeSessionScheduled   = "session_scheduled"
	TypeSessionCancelled   = "session_cancelled"
)

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	SenderID  *uint     `gorm:"index" json:"from,omitempty"`
	Type      string    `gorm:"size:40;not null" json:"type"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
