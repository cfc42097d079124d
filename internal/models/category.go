package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category — довідкова категорія скарги (тільки читання після засівання).
type Category struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex" json:"name"`
	Icon string `json:"icon"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
