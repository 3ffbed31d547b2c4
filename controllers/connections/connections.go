package connections

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"mentorlink-backend/config"
	"mentorlink-backend/controllers/authentication"
	"mentorlink-backend/services"
)

// HandleConnections dispatches /connections: POST sends a request to a
// target user, GET lists the actor's connections and inbound requests.
func HandleConnections(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	svc := services.NewRelationshipService(db, config.ConnectTargetRole())

	switch r.Method {
	case http.MethodPost:
		var input struct {
			TargetID uint `json:"targetId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.TargetID == 0 {
			http.Error(w, "Target user ID is required", http.StatusBadRequest)
			return
		}
		if err := svc.Request(r.Context(), claims.UserID, input.TargetID); err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Connection request sent successfully"})

	case http.MethodGet:
		list, err := svc.Connections(r.Context(), claims.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleRespond handles /connections/respond: the recipient of a pending
// request accepts or declines it.
func HandleRespond(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var input struct {
		RequesterID uint `json:"requesterId"`
		Accept      bool `json:"accept"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.RequesterID == 0 {
		http.Error(w, "Requester ID is required", http.StatusBadRequest)
		return
	}

	svc := services.NewRelationshipService(db, config.ConnectTargetRole())
	if err := svc.Respond(r.Context(), claims.UserID, input.RequesterID, input.Accept); err != nil {
		writeDomainError(w, err)
		return
	}

	message := "Connection request declined"
	if input.Accept {
		message = "Connection request accepted"
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrNoSuchPending):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrInvalidTarget):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrAlreadyConnected), errors.Is(err, services.ErrRequestPending):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, services.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, services.ErrUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, "Failed to process connection request", http.StatusInternalServerError)
	}
}
