package users

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser   = "user"
	RoleMentor = "mentor"
	RoleMentee = "mentee"
	RoleAdmin  = "admin"
)

type User struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email" gorm:"unique;not null"`
	Password          string  `json:"-" gorm:"not null"`
	Title             string  `json:"title"`
	Bio               string  `json:"bio"`
	Role              string  `json:"role" gorm:"not null;default:user"`
	Skills            []Skill `json:"skills" gorm:"many2many:user_skills"`
	Rating            float32 `json:"rating" gorm:"default:0"`
	SessionsCompleted int     `json:"sessionsCompleted" gorm:"default:0"`
	Provider          string  `json:"provider"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

type Skill struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	Name string `gorm:"unique;not null" json:"name"`
}

func GetByID(db *gorm.DB, userID uint) (*User, error) {
	var user User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Public is the profile subset exposed to other users.
type Public struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	Title             string  `json:"title"`
	Bio               string  `json:"bio"`
	Role              string  `json:"role"`
	Skills            []Skill `json:"skills"`
	Rating            float32 `json:"rating"`
	SessionsCompleted int     `json:"sessionsCompleted"`
}

func (u *User) Public() Public {
	return Public{
		ID:                u.ID,
		Name:              u.Name,
		Title:             u.Title,
		Bio:               u.Bio,
		Role:              u.Role,
		Skills:            u.Skills,
		Rating:            u.Rating,
		SessionsCompleted: u.SessionsCompleted,
	}
}
