package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Description string
	ProjectID   uint   `gorm:"not null;index"`
	Status      string `gorm:"not null;default:'Pending'"`
	Priority    string `gorm:"not null;default:'Medium'"`
	DueDate     *time.Time
	OwnerID     uint `gorm:"not null;index"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Owner   User    `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
