package model

import "time"

type User struct {
	ID        string `json:"id" gorm:"primaryKey"`
	Email     string `json:"email" gorm:"unique"`
	Username  string `json:"username" gorm:"unique;not null"`
	Password  string `json:"-"`
	Role      string `json:"role" gorm:"default:tutor"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TutorProfile pins a tutor to the single language partition they may author in.
// An inactive profile yields no scope at all.
type TutorProfile struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex"`
	Language  string    `json:"language" gorm:"not null"`
	Bio       string    `json:"bio" gorm:"type:text"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
