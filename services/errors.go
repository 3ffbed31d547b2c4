package services

import "errors"

var (
	// common
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("not authenticated")

	// relationship-specific
	ErrInvalidTarget    = errors.New("invalid connection target")
	ErrAlreadyConnected = errors.New("already connected")
	ErrRequestPending   = errors.New("connection request already pending")
	ErrNoSuchPending    = errors.New("no pending request from this user")

	// scheduling-specific
	ErrInvalidMentor = errors.New("invalid mentor")
	ErrMissingFields = errors.New("missing required fields")
	ErrSlotTaken     = errors.New("time slot already booked")
	ErrSessionDone   = errors.New("session already completed")

	// storage faults surface as one retryable kind, never as a domain
	// conflict (a transaction abort must not look like SlotTaken)
	ErrUnavailable = errors.New("temporarily unavailable")
)

var domainErrors = []error{
	ErrNotFound, ErrForbidden, ErrUnauthenticated,
	ErrInvalidTarget, ErrAlreadyConnected, ErrRequestPending, ErrNoSuchPending,
	ErrInvalidMentor, ErrMissingFields, ErrSlotTaken, ErrSessionDone,
}

// normalize passes domain outcomes through and collapses everything else,
// transaction aborts included, into the retryable ErrUnavailable.
func normalize(err error) error {
	if err == nil {
		return nil
	}
	for _, domain := range domainErrors {
		if errors.Is(err, domain) {
			return domain
		}
	}
	return ErrUnavailable
}
