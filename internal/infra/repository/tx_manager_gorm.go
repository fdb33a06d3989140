package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	sweets      repo.SweetRepository
	adjustments repo.StockAdjustmentRepository
}

func (r *txReposGorm) Sweets() repo.SweetRepository                { return r.sweets }
func (r *txReposGorm) Adjustments() repo.StockAdjustmentRepository { return r.adjustments }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			sweets:      NewSweetGormRepository(tx),
			adjustments: NewStockAdjustmentGormRepository(tx),
		}
		return fn(r)
	})
}
