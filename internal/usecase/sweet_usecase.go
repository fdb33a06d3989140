package usecase

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

var (
	ErrMissingFields   = errors.New("missing fields")
	ErrInvalidPrice    = errors.New("price must be >= 0")
	ErrInvalidStock    = errors.New("quantity must be >= 0")
	ErrNothingToUpdate = errors.New("nothing to update")
)

// SweetUsecaseはカタログのCRUDと検索。
// quantityには触らない（在庫変動はStockUsecaseだけ）。
type SweetUsecase struct {
	sweetRepo repo.SweetRepository
	tx        repo.TransactionManager
}

// DI
func NewSweetUsecase(sweetRepo repo.SweetRepository, tx repo.TransactionManager) *SweetUsecase {
	return &SweetUsecase{sweetRepo: sweetRepo, tx: tx}
}

type CreateSweetInput struct {
	Name     string
	Category string
	Price    int64
	Quantity int64
}

func (u *SweetUsecase) Create(ctx context.Context, in CreateSweetInput) (model.Sweet, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		return model.Sweet{}, ErrMissingFields
	}
	if in.Price < 0 {
		return model.Sweet{}, ErrInvalidPrice
	}
	if in.Quantity < 0 {
		return model.Sweet{}, ErrInvalidStock
	}

	return u.sweetRepo.Create(ctx, model.Sweet{
		Name:     strings.TrimSpace(in.Name),
		Category: strings.TrimSpace(in.Category),
		Price:    in.Price,
		Quantity: in.Quantity,
	})
}

// 全件をID昇順で返す
func (u *SweetUsecase) List(ctx context.Context) ([]model.Sweet, error) {
	return u.sweetRepo.List(ctx)
}

type SearchSweetsInput struct {
	Name     string
	Category string
	MinPrice *int64
	MaxPrice *int64
}

// 価格帯はそのまま条件として重ねる。
// min > max のような矛盾した範囲はエラーではなく空の結果になる。
func (u *SweetUsecase) Search(ctx context.Context, in SearchSweetsInput) ([]model.Sweet, error) {
	return u.sweetRepo.Search(ctx, repo.SweetSearchQuery{
		Name:     in.Name,
		Category: in.Category,
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
	})
}

// 部分更新の入力。nilのフィールドは変更しない。
type UpdateSweetInput struct {
	Name     *string
	Category *string
	Price    *int64
}

func (u *SweetUsecase) Update(ctx context.Context, id int64, in UpdateSweetInput) (model.Sweet, error) {
	fields := map[string]interface{}{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return model.Sweet{}, ErrMissingFields
		}
		fields["name"] = name
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			return model.Sweet{}, ErrMissingFields
		}
		fields["category"] = category
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return model.Sweet{}, ErrInvalidPrice
		}
		fields["price"] = *in.Price
	}

	if len(fields) == 0 {
		return model.Sweet{}, ErrNothingToUpdate
	}

	if err := u.sweetRepo.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Sweet{}, ErrSweetNotFound
		}
		return model.Sweet{}, err
	}

	//更新と読み直しの間に削除されることもある
	out, err := u.sweetRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Sweet{}, ErrSweetNotFound
	}
	if err != nil {
		return model.Sweet{}, err
	}
	return out, nil
}

// Deleteは行ロックを取ってから削除する。
// 進行中の購入・補充トランザクションとは直列化される。
func (u *SweetUsecase) Delete(ctx context.Context, id int64) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Sweets().FindByIDForUpdate(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrSweetNotFound
			}
			return err
		}
		return r.Sweets().SoftDelete(ctx, id)
	})
}
