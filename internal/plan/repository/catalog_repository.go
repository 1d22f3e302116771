package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/huynhhaigiang/cadico-api/internal/plan/entity"
)

// Catalog repositories back the master-data list pages. Lists are small
// reference data, so search filtering happens in the service layer where
// Vietnamese diacritics can be folded.

// ConstructionRepository công trình
type ConstructionRepository struct {
	db *gorm.DB
}

func NewConstructionRepository(db *gorm.DB) *ConstructionRepository {
	return &ConstructionRepository{db: db}
}

func (r *ConstructionRepository) FindAll(ctx context.Context) ([]entity.Construction, error) {
	var items []entity.Construction
	err := r.db.WithContext(ctx).
		Preload("Investor").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *ConstructionRepository) FindByID(ctx context.Context, id string) (*entity.Construction, error) {
	var item entity.Construction
	err := r.db.WithContext(ctx).Preload("Investor").Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *ConstructionRepository) Create(ctx context.Context, item *entity.Construction) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *ConstructionRepository) Update(ctx context.Context, item *entity.Construction) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *ConstructionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Construction{}).Error
}

func (r *ConstructionRepository) GenerateCode(ctx context.Context) (string, error) {
	return nextCode(ctx, r.db, &entity.Construction{}, "CT")
}

// InvestorRepository chủ đầu tư
type InvestorRepository struct {
	db *gorm.DB
}

func NewInvestorRepository(db *gorm.DB) *InvestorRepository {
	return &InvestorRepository{db: db}
}

func (r *InvestorRepository) FindAll(ctx context.Context) ([]entity.Investor, error) {
	var items []entity.Investor
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *InvestorRepository) FindByID(ctx context.Context, id string) (*entity.Investor, error) {
	var item entity.Investor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *InvestorRepository) Create(ctx context.Context, item *entity.Investor) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *InvestorRepository) Update(ctx context.Context, item *entity.Investor) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *InvestorRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Investor{}).Error
}

func (r *InvestorRepository) GenerateCode(ctx context.Context) (string, error) {
	return nextCode(ctx, r.db, &entity.Investor{}, "CDT")
}

// UnitRepository đơn vị tính
type UnitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

func (r *UnitRepository) FindAll(ctx context.Context) ([]entity.Unit, error) {
	var items []entity.Unit
	err := r.db.WithContext(ctx).Order("code ASC").Find(&items).Error
	return items, err
}

func (r *UnitRepository) FindByID(ctx context.Context, id string) (*entity.Unit, error) {
	var item entity.Unit
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *UnitRepository) Create(ctx context.Context, item *entity.Unit) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *UnitRepository) Update(ctx context.Context, item *entity.Unit) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *UnitRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Unit{}).Error
}

func (r *UnitRepository) GenerateCode(ctx context.Context) (string, error) {
	return nextCode(ctx, r.db, &entity.Unit{}, "DVT")
}

// WorkTypeRepository loại công tác
type WorkTypeRepository struct {
	db *gorm.DB
}

func NewWorkTypeRepository(db *gorm.DB) *WorkTypeRepository {
	return &WorkTypeRepository{db: db}
}

func (r *WorkTypeRepository) FindAll(ctx context.Context) ([]entity.WorkType, error) {
	var items []entity.WorkType
	err := r.db.WithContext(ctx).Order("code ASC").Find(&items).Error
	return items, err
}

func (r *WorkTypeRepository) FindByID(ctx context.Context, id string) (*entity.WorkType, error) {
	var item entity.WorkType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *WorkTypeRepository) Create(ctx context.Context, item *entity.WorkType) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *WorkTypeRepository) Update(ctx context.Context, item *entity.WorkType) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *WorkTypeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.WorkType{}).Error
}

func (r *WorkTypeRepository) GenerateCode(ctx context.Context) (string, error) {
	return nextCode(ctx, r.db, &entity.WorkType{}, "LCT")
}

// WorkItemRepository hạng mục công việc
type WorkItemRepository struct {
	db *gorm.DB
}

func NewWorkItemRepository(db *gorm.DB) *WorkItemRepository {
	return &WorkItemRepository{db: db}
}

func (r *WorkItemRepository) FindAll(ctx context.Context, workTypeID string) ([]entity.WorkItem, error) {
	var items []entity.WorkItem
	query := r.db.WithContext(ctx).Preload("WorkType")
	if workTypeID != "" {
		query = query.Where("work_type_id = ?", workTypeID)
	}
	err := query.Order("code ASC").Find(&items).Error
	return items, err
}

func (r *WorkItemRepository) FindByID(ctx context.Context, id string) (*entity.WorkItem, error) {
	var item entity.WorkItem
	err := r.db.WithContext(ctx).Preload("WorkType").Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *WorkItemRepository) Create(ctx context.Context, item *entity.WorkItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *WorkItemRepository) Update(ctx context.Context, item *entity.WorkItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *WorkItemRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.WorkItem{}).Error
}

func (r *WorkItemRepository) GenerateCode(ctx context.Context) (string, error) {
	return nextCode(ctx, r.db, &entity.WorkItem{}, "HM")
}

// TeamRepository đội thi công
type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) FindAll(ctx context.Context) ([]entity.Team, error) {
	var items []entity.Team
	err := r.db.WithContext(ctx).Preload("Leader").Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (*entity.Team, error) {
	var item entity.Team
	err := r.db.WithContext(ctx).Preload("Leader").Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *TeamRepository) Create(ctx context.Context, item *entity.Team) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *TeamRepository) Update(ctx context.Context, item *entity.Team) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Team{}).Error
}

func (r *TeamRepository) GenerateCode(ctx context.Context) (string, error) {
	return nextCode(ctx, r.db, &entity.Team{}, "DTC")
}
