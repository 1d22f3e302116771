package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/huynhhaigiang/cadico-api/internal/supply/entity"
)

// MaterialRepository loại vật tư và định mức vật tư phụ
type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// FindAll lists material types. Search filtering happens in the service
// layer where Vietnamese diacritics are folded.
func (r *MaterialRepository) FindAll(ctx context.Context) ([]entity.MaterialType, error) {
	var items []entity.MaterialType
	err := r.db.WithContext(ctx).Order("code ASC").Find(&items).Error
	return items, err
}

func (r *MaterialRepository) FindByID(ctx context.Context, id string) (*entity.MaterialType, error) {
	var item entity.MaterialType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *MaterialRepository) Create(ctx context.Context, item *entity.MaterialType) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *MaterialRepository) Update(ctx context.Context, item *entity.MaterialType) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("main_material_id = ? OR sub_material_id = ?", id, id).
			Delete(&entity.MaterialComposition{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.MaterialType{}).Error
	})
}

func (r *MaterialRepository) GenerateCode(ctx context.Context) (string, error) {
	return nextCode(ctx, r.db, &entity.MaterialType{}, "VT")
}

// FindCompositions lists the sub-material ratios of one main material.
func (r *MaterialRepository) FindCompositions(ctx context.Context, mainMaterialID string) ([]entity.MaterialComposition, error) {
	var items []entity.MaterialComposition
	err := r.db.WithContext(ctx).
		Preload("SubMaterial").
		Where("main_material_id = ?", mainMaterialID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *MaterialRepository) CreateComposition(ctx context.Context, item *entity.MaterialComposition) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *MaterialRepository) UpdateComposition(ctx context.Context, item *entity.MaterialComposition) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *MaterialRepository) FindCompositionByID(ctx context.Context, id string) (*entity.MaterialComposition, error) {
	var item entity.MaterialComposition
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *MaterialRepository) DeleteComposition(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.MaterialComposition{}).Error
}
