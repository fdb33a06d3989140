package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SweetGormRepository struct {
	db *gorm.DB
}

// DI
func NewSweetGormRepository(db *gorm.DB) *SweetGormRepository {
	return &SweetGormRepository{db: db}
}

// IDでSweetを取得
func (r *SweetGormRepository) FindByID(ctx context.Context, id int64) (model.Sweet, error) {
	var s model.Sweet
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Sweet{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Sweet{}, err
	}
	return s, nil
}

// 全件をID昇順で返す
func (r *SweetGormRepository) List(ctx context.Context) ([]model.Sweet, error) {
	var sweets []model.Sweet
	if err := r.db.WithContext(ctx).Order("id asc").Find(&sweets).Error; err != nil {
		return []model.Sweet{}, err
	}
	return sweets, nil
}

// 条件付き検索。指定された条件だけをANDで重ねる。
func (r *SweetGormRepository) Search(ctx context.Context, q repo.SweetSearchQuery) ([]model.Sweet, error) {
	tx := r.db.WithContext(ctx).Model(&model.Sweet{})

	// name は部分一致（大文字小文字を区別しない）
	if strings.TrimSpace(q.Name) != "" {
		like := "%" + strings.TrimSpace(q.Name) + "%"
		tx = tx.Where("name ILIKE ?", like)
	}

	// category は完全一致
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}

	//価格帯（両端とも含む）
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	var sweets []model.Sweet
	if err := tx.Order("id asc").Find(&sweets).Error; err != nil {
		return []model.Sweet{}, err
	}
	return sweets, nil
}

// Sweetの作成
func (r *SweetGormRepository) Create(ctx context.Context, s model.Sweet) (model.Sweet, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Sweet{}, err
	}
	return s, nil
}

// 指定されたフィールドだけを更新する
func (r *SweetGormRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Sweet{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// SELECT ... FOR UPDATE で行ロック付き取得。
// トランザクション内でのみ呼ぶこと（ロックはcommit/rollbackまで保持）。
func (r *SweetGormRepository) FindByIDForUpdate(ctx context.Context, id int64) (model.Sweet, error) {
	var s model.Sweet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Sweet{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Sweet{}, err
	}
	return s, nil
}

// quantityにdeltaを加算（ロック保持中にだけ呼ぶ）
func (r *SweetGormRepository) ApplyQuantityDelta(ctx context.Context, id int64, delta int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Sweet{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Sweet削除（gormのソフトデリート）
func (r *SweetGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Sweet{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
