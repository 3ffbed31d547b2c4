package authentication

import (
	"encoding/json"
	"net/http"

	"mentorlink-backend/config"
	"mentorlink-backend/models/users"
)

// GetProfile returns the authenticated user's own record
func GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := ValidateToken(r)
	if err != nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var user users.User
	if err := config.DB.Preload("Skills").First(&user, claims.UserID).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// UpdateProfile updates the authenticated user's own record
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, err := ValidateToken(r)
	if err != nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var user users.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	var input struct {
		Name   *string  `json:"name"`
		Title  *string  `json:"title"`
		Bio    *string  `json:"bio"`
		Skills []string `json:"skills"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Title != nil {
		user.Title = *input.Title
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if err := config.DB.Save(&user).Error; err != nil {
		http.Error(w, "Error updating profile", http.StatusInternalServerError)
		return
	}

	if input.Skills != nil {
		skills := make([]users.Skill, 0, len(input.Skills))
		for _, name := range input.Skills {
			var skill users.Skill
			if err := config.DB.Where(users.Skill{Name: name}).FirstOrCreate(&skill).Error; err != nil {
				http.Error(w, "Error updating skills", http.StatusInternalServerError)
				return
			}
			skills = append(skills, skill)
		}
		if err := config.DB.Model(&user).Association("Skills").Replace(skills); err != nil {
			http.Error(w, "Error updating skills", http.StatusInternalServerError)
			return
		}
		user.Skills = skills
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
