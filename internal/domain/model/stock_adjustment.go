package model

import "time"

//在庫変動の履歴（購入・補充が1件ずつ残る）

type AdjustmentKind string

const (
	AdjustmentPurchase AdjustmentKind = "purchase"
	AdjustmentRestock  AdjustmentKind = "restock"
)

type StockAdjustment struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	SweetID     int64          `gorm:"not null;index" json:"sweet_id"`
	ActorUserID int64          `gorm:"not null;index" json:"actor_user_id"`
	Delta       int64          `gorm:"not null" json:"delta"`
	Kind        AdjustmentKind `gorm:"type:varchar(20);not null" json:"kind"`
	Reference   string         `gorm:"type:varchar(36);not null;uniqueIndex" json:"reference"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}
