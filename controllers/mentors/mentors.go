package mentors

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"mentorlink-backend/models/users"
)

// ListMentors returns every user with the mentor role for the discovery page
func ListMentors(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var records []users.User
	if err := db.Preload("Skills").Where("role = ?", users.RoleMentor).Find(&records).Error; err != nil {
		http.Error(w, "Failed to fetch mentors", http.StatusInternalServerError)
		return
	}

	mentors := make([]users.Public, 0, len(records))
	for i := range records {
		mentors = append(mentors, records[i].Public())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"mentors": mentors})
}

// GetUser returns the public profile subset for one user by id
func GetUser(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := r.URL.Query().Get("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var user users.User
	if err := db.Preload("Skills").First(&user, id).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user.Public())
}
