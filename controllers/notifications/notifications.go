package notifications

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"mentorlink-backend/controllers/authentication"
	"mentorlink-backend/services"
)

// HandleNotifications dispatches /notifications: GET returns the actor's
// inbox newest first, PATCH marks a set of entries read.
func HandleNotifications(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	svc := services.NewNotificationService(db)

	switch r.Method {
	case http.MethodGet:
		entries, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"notifications": entries})

	case http.MethodPatch, http.MethodPost:
		var input struct {
			NotificationIDs []uint `json:"notificationIds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.NotificationIDs == nil {
			http.Error(w, "Invalid notification IDs", http.StatusBadRequest)
			return
		}
		if err := svc.MarkRead(r.Context(), claims.UserID, input.NotificationIDs); err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Notifications marked as read"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrUnavailable) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	http.Error(w, "Failed to process notifications", http.StatusInternalServerError)
}
