package sessions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"mentorlink-backend/controllers/authentication"
	"mentorlink-backend/services"
)

// HandleSessions dispatches /sessions: POST books a slot with a mentor,
// GET lists the actor's sessions on either side.
func HandleSessions(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	svc := services.NewSchedulingService(db)

	switch r.Method {
	case http.MethodPost:
		var input struct {
			MentorID uint   `json:"mentorId"`
			Date     string `json:"date"`
			Time     string `json:"time"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid input", http.StatusBadRequest)
			return
		}

		idempotencyKey := r.Header.Get("Idempotency-Key")
		session, err := svc.Book(r.Context(), claims.UserID, input.MentorID, input.Date, input.Time, idempotencyKey)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Session booked successfully",
			"session": session,
		})

	case http.MethodGet:
		views, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"sessions": views})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleCancel handles DELETE /sessions/{id}: a participant cancels a
// scheduled session.
func HandleCancel(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/sessions/")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	svc := services.NewSchedulingService(db)
	if err := svc.Cancel(r.Context(), claims.UserID, uint(id)); err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Session cancelled successfully",
		"sessionId": id,
	})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrInvalidMentor), errors.Is(err, services.ErrMissingFields):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrSlotTaken), errors.Is(err, services.ErrSessionDone):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, services.ErrForbidden):
		http.Error(w, "Unauthorized to cancel this session", http.StatusForbidden)
	case errors.Is(err, services.ErrUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, "Failed to process session request", http.StatusInternalServerError)
	}
}
