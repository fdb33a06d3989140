package usecase

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

var (
	// 数量が正の整数でない
	ErrInvalidQuantity = errors.New("invalid quantity")
	// 対象のSweetが存在しない
	ErrSweetNotFound = errors.New("sweet not found")
	// 在庫不足（業務エラーであり内部障害ではない）
	ErrInsufficientStock = errors.New("insufficient stock")
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// StockUsecaseは購入・補充のアトミックな単位。
// quantityを書き換えるのはこのusecaseだけ。
type StockUsecase struct {
	tx    repo.TransactionManager
	idGen IDGenerator
	clock Clock
}

// DI
func NewStockUsecase(tx repo.TransactionManager, idGen IDGenerator, clock Clock) *StockUsecase {
	return &StockUsecase{tx: tx, idGen: idGen, clock: clock}
}

// Purchaseはqty個の購入を1トランザクションで行う。
// 行ロック取得→在庫チェック→減算は他のトランザクションから分割して観測されない。
func (u *StockUsecase) Purchase(ctx context.Context, actorUserID int64, sweetID int64, qty int64) (model.Sweet, error) {
	//ロックを取る前に入力チェック
	if qty <= 0 {
		return model.Sweet{}, ErrInvalidQuantity
	}

	var out model.Sweet

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//行ロック付きで現在値を読む
		s, err := r.Sweets().FindByIDForUpdate(ctx, sweetID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrSweetNotFound
		}
		if err != nil {
			return err
		}

		//在庫チェック（ロック保持中なので他と競合しない）
		if s.Quantity < qty {
			return ErrInsufficientStock
		}

		if err := r.Sweets().ApplyQuantityDelta(ctx, sweetID, -qty); err != nil {
			return err
		}

		//変動履歴を同じトランザクションで残す
		if err := r.Adjustments().Create(ctx, model.StockAdjustment{
			SweetID:     sweetID,
			ActorUserID: actorUserID,
			Delta:       -qty,
			Kind:        model.AdjustmentPurchase,
			Reference:   u.idGen.NewID(),
			CreatedAt:   u.clock.Now(),
		}); err != nil {
			return err
		}

		s.Quantity -= qty
		out = s
		return nil
	})

	if err != nil {
		return model.Sweet{}, err
	}
	return out, nil
}

// Restockはqty個の補充。上限はない。
func (u *StockUsecase) Restock(ctx context.Context, actorUserID int64, sweetID int64, qty int64) (model.Sweet, error) {
	if qty <= 0 {
		return model.Sweet{}, ErrInvalidQuantity
	}

	var out model.Sweet

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Sweets().FindByIDForUpdate(ctx, sweetID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrSweetNotFound
		}
		if err != nil {
			return err
		}

		if err := r.Sweets().ApplyQuantityDelta(ctx, sweetID, qty); err != nil {
			return err
		}

		if err := r.Adjustments().Create(ctx, model.StockAdjustment{
			SweetID:     sweetID,
			ActorUserID: actorUserID,
			Delta:       qty,
			Kind:        model.AdjustmentRestock,
			Reference:   u.idGen.NewID(),
			CreatedAt:   u.clock.Now(),
		}); err != nil {
			return err
		}

		s.Quantity += qty
		out = s
		return nil
	})

	if err != nil {
		return model.Sweet{}, err
	}
	return out, nil
}
