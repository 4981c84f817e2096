package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered portal account. Role decides what the account
// can do: students submit complaints, admins process them.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"type:text;not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:text;not null" json:"-"`
	Role         string `gorm:"type:text;not null;default:student" json:"role"` // "student" | "admin"
	Department   string `gorm:"type:text" json:"department,omitempty"`
	StudentID    string `gorm:"type:text" json:"studentId,omitempty"`
}

// BeforeCreate — це хук GORM, який викликається перед створенням запису.
// Він генерує новий UUID для користувача, якщо ID ще не встановлено.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
