package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Sweets() SweetRepository
	Adjustments() StockAdjustmentRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがエラーを返したらrollback、nilならcommit。
// FindByIDForUpdateで取った行ロックはどちらの経路でも必ず解放される。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
