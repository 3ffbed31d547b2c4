package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"mentorlink-backend/models/connect"
	"mentorlink-backend/models/notify"
	"mentorlink-backend/models/users"
)

// RelationshipService runs the connection state machine between two users.
// TargetRole restricts who may receive requests; empty allows any-to-any.
type RelationshipService struct {
	DB         *gorm.DB
	TargetRole string
}

func NewRelationshipService(db *gorm.DB, targetRole string) *RelationshipService {
	return &RelationshipService{DB: db, TargetRole: targetRole}
}

// Request records a pending connection from the actor to the target and
// notifies the target. The pending row and the notification commit together.
func (s *RelationshipService) Request(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return ErrInvalidTarget
	}

	db := s.DB.WithContext(ctx)

	actor, err := users.GetByID(db, actorID)
	if err != nil {
		return translateStorage(err)
	}
	target, err := users.GetByID(db, targetID)
	if err != nil {
		return translateStorage(err)
	}

	low, high := connect.PairKey(actorID, targetID)

	err = db.Transaction(func(tx *gorm.DB) error {
		var existing connect.Connection
		lookupErr := tx.Where("user_low_id = ? AND user_high_id = ?", low, high).
			First(&existing).Error
		if lookupErr == nil {
			if existing.Status == connect.StatusAccepted {
				return ErrAlreadyConnected
			}
			return ErrRequestPending
		}
		if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			return ErrUnavailable
		}

		// the eligibility policy only gates new requests; the state of an
		// existing pair outranks it
		if s.TargetRole != "" && target.Role != s.TargetRole {
			return ErrInvalidTarget
		}

		conn := connect.Connection{
			UserLowID:   low,
			UserHighID:  high,
			RequesterID: actorID,
			Status:      connect.StatusPending,
		}
		if createErr := tx.Create(&conn).Error; createErr != nil {
			return createErr
		}

		message := fmt.Sprintf("%s sent you a connection request", actor.Name)
		if notifyErr := send(tx, targetID, &actorID, notify.TypeConnectionRequest, message); notifyErr != nil {
			return ErrUnavailable
		}
		return nil
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race against a concurrent request for the same pair.
		// The row that won decides which conflict this is.
		var existing connect.Connection
		if lookupErr := db.Where("user_low_id = ? AND user_high_id = ?", low, high).
			First(&existing).Error; lookupErr == nil && existing.Status == connect.StatusAccepted {
			return ErrAlreadyConnected
		}
		return ErrRequestPending
	}
	return normalize(err)
}

// Respond lets the recipient of a pending request accept or decline it. On
// accept the pair becomes connected and the requester is notified inside the
// same transaction; on decline the pending row is removed so the pair can
// start over, with a best-effort notice to the requester.
func (s *RelationshipService) Respond(ctx context.Context, actorID, requesterID uint, accept bool) error {
	if actorID == requesterID {
		return ErrForbidden
	}

	db := s.DB.WithContext(ctx)

	if _, err := users.GetByID(db, requesterID); err != nil {
		return translateStorage(err)
	}
	actor, err := users.GetByID(db, actorID)
	if err != nil {
		return translateStorage(err)
	}

	low, high := connect.PairKey(actorID, requesterID)

	err = db.Transaction(func(tx *gorm.DB) error {
		var conn connect.Connection
		lookupErr := tx.Where("user_low_id = ? AND user_high_id = ?", low, high).
			First(&conn).Error
		if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			return ErrNoSuchPending
		}
		if lookupErr != nil {
			return ErrUnavailable
		}
		if conn.Status != connect.StatusPending {
			return ErrNoSuchPending
		}
		if conn.RequesterID == actorID {
			// the requester cannot accept their own request
			return ErrForbidden
		}

		if accept {
			if updateErr := tx.Model(&conn).Update("status", connect.StatusAccepted).Error; updateErr != nil {
				return ErrUnavailable
			}
			message := fmt.Sprintf("%s accepted your connection request", actor.Name)
			if notifyErr := send(tx, requesterID, &actorID, notify.TypeConnectionAccepted, message); notifyErr != nil {
				return ErrUnavailable
			}
			return nil
		}

		if deleteErr := tx.Delete(&conn).Error; deleteErr != nil {
			return ErrUnavailable
		}
		return nil
	})
	if err != nil {
		return normalize(err)
	}

	if !accept {
		message := fmt.Sprintf("%s declined your connection request", actor.Name)
		sendBestEffort(db, requesterID, &actorID, notify.TypeConnectionDeclined, message)
	}
	return nil
}

// ConnectionList is the actor's view of their relationships: established
// connections plus inbound requests still waiting for a response.
type ConnectionList struct {
	Connections     []users.Public `json:"connections"`
	PendingRequests []users.Public `json:"pendingRequests"`
}

func (s *RelationshipService) Connections(ctx context.Context, userID uint) (*ConnectionList, error) {
	db := s.DB.WithContext(ctx)

	var rows []connect.Connection
	if err := db.Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Order("created_at").Find(&rows).Error; err != nil {
		return nil, ErrUnavailable
	}

	var connectedIDs, inboundIDs []uint
	for _, row := range rows {
		switch {
		case row.Status == connect.StatusAccepted:
			connectedIDs = append(connectedIDs, row.OtherSide(userID))
		case row.RequesterID != userID:
			inboundIDs = append(inboundIDs, row.RequesterID)
		}
	}

	profiles, err := publicProfiles(db, append(append([]uint{}, connectedIDs...), inboundIDs...))
	if err != nil {
		return nil, err
	}

	list := &ConnectionList{
		Connections:     make([]users.Public, 0, len(connectedIDs)),
		PendingRequests: make([]users.Public, 0, len(inboundIDs)),
	}
	for _, id := range connectedIDs {
		if p, ok := profiles[id]; ok {
			list.Connections = append(list.Connections, p)
		}
	}
	for _, id := range inboundIDs {
		if p, ok := profiles[id]; ok {
			list.PendingRequests = append(list.PendingRequests, p)
		}
	}
	return list, nil
}

func publicProfiles(db *gorm.DB, ids []uint) (map[uint]users.Public, error) {
	profiles := make(map[uint]users.Public, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}
	var records []users.User
	if err := db.Preload("Skills").Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, ErrUnavailable
	}
	for i := range records {
		profiles[records[i].ID] = records[i].Public()
	}
	return profiles, nil
}
