package model

import (
	"time"

	"gorm.io/gorm"
)

type Sweet struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Category  string         `gorm:"type:varchar(100);not null;index" json:"category"`
	Price     int64          `gorm:"not null" json:"price"`
	Quantity  int64          `gorm:"not null" json:"quantity"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
