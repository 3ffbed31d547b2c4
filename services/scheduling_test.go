package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorlink-backend/models/notify"
	"mentorlink-backend/models/sessions"
	"mentorlink-backend/models/users"
)

func TestBookSession_CreatesScheduledAndNotifiesMentor(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchedulingService(db)
	mentee := createUser(t, db, "maria", users.RoleUser)
	mentor := createUser(t, db, "tom", users.RoleMentor)

	session, err := svc.Book(context.Background(), mentee.ID, mentor.ID, "2025-03-10", "14:00", "")
	require.NoError(t, err)
	assert.Equal(t, sessions.StatusScheduled, session.Status)
	assert.Equal(t, mentor.ID, session.MentorID)
	assert.Equal(t, mentee.ID, session.MenteeID)

	entries := inboxOf(t, db, mentor.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, notify.TypeSessionScheduled, entries[0].Type)
	assert.Equal(t, "maria booked a session for 2025-03-10 at 14:00", entries[0].Message)
}

func TestBookSession_SlotTaken(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchedulingService(db)
	mentee := createUser(t, db, "maria", users.RoleUser)
	other := createUser(t, db, "nina", users.RoleUser)
	mentor := createUser(t, db, "tom", users.RoleMentor)

	_, err := svc.Book(context.Background(), mentee.ID, mentor.ID, "2025-03-10", "14:00", "")
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), other.ID, mentor.ID, "2025-03-10", "14:00", "")
	assert.ErrorIs(t, err, ErrSlotTaken)

	// exactly one scheduled row, and the failed booking wrote nothing
	var count int64
	require.NoError(t, db.Model(&sessions.Session{}).
		Where("status = ?", sessions.StatusScheduled).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.Len(t, inboxOf(t, db, mentor.ID), 1)

	// same slot label on another date is fine
	_, err = svc.Book(context.Background(), other.ID, mentor.ID, "2025-03-11", "14:00", "")
	assert.NoError(t, err)
}

func TestBookSession_CancelledSlotIsBookableAgain(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchedulingService(db)
	mentee := createUser(t, db, "maria", users.RoleUser)
	mentor := createUser(t, db, "tom", users.RoleMentor)

	session, err := svc.Book(context.Background(), mentee.ID, mentor.ID, "2025-03-10", "14:00", "")
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(context.Background(), mentee.ID, session.ID))

	_, err = svc.Book(context.Background(), mentee.ID, mentor.ID, "2025-03-10", "14:00", "")
	assert.NoError(t, err)
}

func TestBookSession_MissingFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchedulingService(db)
	mentee := createUser(t, db, "maria", users.RoleUser)
	mentor := createUser(t, db, "tom", users.RoleMentor)

	_, err := svc.Book(context.Background(), mentee.ID, mentor.ID, "", "14:00", "")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Book(context.Background(), mentee.ID, mentor.ID, "2025-03-10", "", "")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Book(context.Background(), mentee.ID, mentor.ID, "March 10th", "14:00", "")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Book(context.Background(), mentee.ID, 0, "2025-03-10", "14:00", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestBookSession_InvalidMentor(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchedulingService(db)
	mentee := createUser(t, db, "maria", users.RoleUser)
	plain := createUser(t, db, "paul", users.RoleUser)
	mentor := createUser(t, db, "tom", users.RoleMentor)

	_, err := svc.Book(context.Background(), mentee.ID, 999, "2025-03-10", "14:00", "")
	assert.ErrorIs(t, err, ErrInvalidMentor)

	_, err = svc.Book(context.Background(), mentee.ID, plain.ID, "2025-03-10", "14:00", "")
	assert.ErrorIs(t, err, ErrInvalidMentor)

	_, err = svc.Book(context.Background(), mentor.ID, mentor.ID, "2025-03-10", "14:00", "")
	assert.ErrorIs(t, err, ErrInvalidMentor)
}

func TestBookSession_IdempotentReplay(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchedulingService(db)
	mentee := createUser(t, db, "maria", users.RoleUser)
	mentor := createUser(t, db, "tom", users.RoleMentor)

	first, err := svc.Book(context.Background(), mentee.ID, mentor.ID, "2025-03-10", "14:00", "retry-key-1")
	require.NoError(t, err)

	replay, err := svc.Book(context.Background(), mentee.ID, mentor.ID, "2025-03-10", "14:00", "retry-key-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, replay.ID)

	// the retry created neither a second session nor a second notification
	var count int64
	require.NoError(t, db.Model(&sessions.Session{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.Len(t, inboxOf(t, db, mentor.ID), 1)

	// someone else's key does not hand them the session
	other := createUser(t, db, "nina", users.RoleUser)
	_, err = svc.Book(context.Background(), other.ID, mentor.ID, "2025-03-10", "14:00", "retry-key-1")
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCancelSession_NotifiesBothParticipants(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchedulingService(db)
	mentee := createUser(t, db, "maria", users.RoleUser)
	mentor := createUser(t, db, "tom", users.RoleMentor)

	session, err := svc.Book(context.Background(), mentee.ID, mentor.ID, "2025-03-10", "14:00", "")
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), mentor.ID, session.ID))

	var reloaded sessions.Session
	require.NoError(t, db.First(&reloaded, session.ID).Error)
	assert.Equal(t, sessions.StatusCancelled, reloaded.Status)

	for _, userID := range []uint{mentor.ID, mentee.ID} {
		cancelled := inboxOfType(t, db, userID, notify.TypeSessionCancelled)
		require.Len(t, cancelled, 1)
		assert.Equal(t, "Session on 2025-03-10 at 14:00 has been cancelled", cancelled[0].Message)
	}
}

func TestCancelSession_DoubleCancelIsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchedulingService(db)
	mentee := createUser(t, db, "maria", users.RoleUser)
	mentor := createUser(t, db, "tom", users.RoleMentor)

	session, err := svc.Book(context.Background(), mentee.ID, mentor.ID, "2025-03-10", "14:00", "")
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), mentee.ID, session.ID))
	require.NoError(t, svc.Cancel(context.Background(), mentee.ID, session.ID))

	// no second round of cancellation entries
	assert.Len(t, inboxOfType(t, db, mentor.ID, notify.TypeSessionCancelled), 1)
	assert.Len(t, inboxOfType(t, db, mentee.ID, notify.TypeSessionCancelled), 1)
}

func TestCancelSession_Authorization(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchedulingService(db)
	mentee := createUser(t, db, "maria", users.RoleUser)
	mentor := createUser(t, db, "tom", users.RoleMentor)
	outsider := createUser(t, db, "oscar", users.RoleUser)

	session, err := svc.Book(context.Background(), mentee.ID, mentor.ID, "2025-03-10", "14:00", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Cancel(context.Background(), outsider.ID, session.ID), ErrForbidden)
	assert.ErrorIs(t, svc.Cancel(context.Background(), mentee.ID, 999), ErrNotFound)

	var reloaded sessions.Session
	require.NoError(t, db.First(&reloaded, session.ID).Error)
	assert.Equal(t, sessions.StatusScheduled, reloaded.Status)
}

func TestCancelSession_CompletedIsTerminal(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchedulingService(db)
	mentee := createUser(t, db, "maria", users.RoleUser)
	mentor := createUser(t, db, "tom", users.RoleMentor)

	session, err := svc.Book(context.Background(), mentee.ID, mentor.ID, "2025-03-10", "14:00", "")
	require.NoError(t, err)
	require.NoError(t, db.Model(&sessions.Session{}).Where("id = ?", session.ID).
		Update("status", sessions.StatusCompleted).Error)

	assert.ErrorIs(t, svc.Cancel(context.Background(), mentee.ID, session.ID), ErrSessionDone)
	assert.Empty(t, inboxOfType(t, db, mentor.ID, notify.TypeSessionCancelled))
}

func TestListSessions_BothSidesOrderedByDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchedulingService(db)
	mentee := createUser(t, db, "maria", users.RoleUser)
	mentor := createUser(t, db, "tom", users.RoleMentor)
	otherMentor := createUser(t, db, "vera", users.RoleMentor)

	_, err := svc.Book(context.Background(), mentee.ID, mentor.ID, "2025-04-01", "10:00", "")
	require.NoError(t, err)
	_, err = svc.Book(context.Background(), mentee.ID, otherMentor.ID, "2025-03-15", "09:00", "")
	require.NoError(t, err)

	views, err := svc.List(context.Background(), mentee.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "2025-03-15", views[0].Date)
	assert.Equal(t, "vera", views[0].Mentor.Name)
	assert.Equal(t, "2025-04-01", views[1].Date)
	assert.Equal(t, "maria", views[1].Mentee.Name)

	mentorViews, err := svc.List(context.Background(), mentor.ID)
	require.NoError(t, err)
	require.Len(t, mentorViews, 1)
	assert.Equal(t, mentor.ID, mentorViews[0].Mentor.ID)
}
