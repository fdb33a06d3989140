package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 検索条件（nilの条件は適用しない）
type SweetSearchQuery struct {
	Name     string
	Category string
	MinPrice *int64
	MaxPrice *int64
}

// Sweetの永続化だけを約束。
type SweetRepository interface {
	FindByID(ctx context.Context, id int64) (model.Sweet, error)
	List(ctx context.Context) ([]model.Sweet, error)
	Search(ctx context.Context, q SweetSearchQuery) ([]model.Sweet, error)

	Create(ctx context.Context, s model.Sweet) (model.Sweet, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error

	// FindByIDForUpdateは行ロック付きで取得する。
	// トランザクション内（TxRepos経由）でのみ意味を持つ。
	// ロックはトランザクションのcommit/rollbackまで保持される。
	FindByIDForUpdate(ctx context.Context, id int64) (model.Sweet, error)

	// ApplyQuantityDeltaはquantityにdeltaを加算する。
	// FindByIDForUpdateでロックを取った後にだけ呼ぶこと。
	ApplyQuantityDelta(ctx context.Context, id int64, delta int64) error

	SoftDelete(ctx context.Context, id int64) error
}

// 在庫変動履歴の保存
type StockAdjustmentRepository interface {
	Create(ctx context.Context, adj model.StockAdjustment) error
}
