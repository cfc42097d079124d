package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User представляє зареєстрованого користувача системи.
// Пароль зберігається лише у вигляді bcrypt-хешу і ніколи не серіалізується у JSON.
type User struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"uniqueIndex" json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"-"` // bcrypt-хеш
	Role      string `json:"role"` // "citizen" або "admin"
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"` // ISO-8601 UTC
}

// BeforeCreate — хук GORM, який генерує UUID, якщо ID ще не встановлено.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
