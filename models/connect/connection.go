package connect

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
)

// Connection is the single record describing the state of one user pair.
// The pair is stored sorted so that (A,B) and (B,A) land on the same row,
// and the unique index makes the insert itself the duplicate check: a pair
// can never hold two pendings or a pending next to an accepted.
type Connection struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserLowID   uint   `gorm:"not null;uniqueIndex:idx_connection_pair" json:"-"`
	UserHighID  uint   `gorm:"not null;uniqueIndex:idx_connection_pair" json:"-"`
	RequesterID uint   `gorm:"not null" json:"requesterId"`
	Status      Status `gorm:"size:20;not null;default:pending" json:"status"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PairKey returns the sorted ids for a relationship pair.
func PairKey(a, b uint) (low, high uint) {
	if a < b {
		return a, b
	}
	return b, a
}

// OtherSide returns the counterpart of userID within the pair.
func (c *Connection) OtherSide(userID uint) uint {
	if c.UserLowID == userID {
		return c.UserHighID
	}
	return c.UserLowID
}
