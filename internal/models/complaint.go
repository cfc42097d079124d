package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq" // Необхідний для pq.StringArray
	"gorm.io/gorm"
)

// Complaint представляє скаргу громадянина з геоприв'язкою.
// Похідна геоколонка geom (geography(Point,4326)) існує лише в SQL-схемі:
// вона заповнюється зі значень Longitude/Latitude і ніколи не повертається клієнту.
type Complaint struct {
	ID              string         `gorm:"primaryKey" json:"id"`
	UserID          string         `gorm:"index" json:"user_id"`
	UserName        string         `json:"user_name"` // знімок імені на момент створення
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Category        string         `json:"category"`
	Status          string         `json:"status"` // "pending", "in_progress", "resolved", ...
	Latitude        float64        `json:"latitude"`
	Longitude       float64        `json:"longitude"`
	Images          pq.StringArray `gorm:"type:text[]" json:"images"` // base64-рядки
	CreatedAt       string         `json:"created_at"` // ISO-8601 UTC
	UpdatedAt       string         `json:"updated_at"`
	AssignedTo      *string        `json:"assigned_to"`
	ResolutionNotes *string        `json:"resolution_notes"`
}

// BeforeCreate — хук GORM, який генерує UUID, якщо ID ще не встановлено.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// CategoryCount — один рядок зведення "категорія → кількість скарг".
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
