package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/huynhhaigiang/cadico-api/internal/plan/entity"
)

// PlanRepository phương án thi công và các bảng dòng chi tiết
type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// FindAll lists plans with pagination. Filters: search (code/name ILIKE),
// construction_id, status, approver (plans waiting on that user).
func (r *PlanRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Plan, int64, error) {
	var items []entity.Plan
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Plan{})

	if search := filters["search"]; search != "" {
		query = query.Where("code ILIKE ? OR name ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if cid := filters["construction_id"]; cid != "" {
		query = query.Where("construction_id = ?", cid)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if approver := filters["approver"]; approver != "" {
		query = query.Where("next_approver_id = ?", approver)
	}
	if creator := filters["created_by"]; creator != "" {
		query = query.Where("created_by = ?", creator)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Construction").
		Preload("Construction.Investor").
		Preload("NextApprover").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *PlanRepository) FindByID(ctx context.Context, id string) (*entity.Plan, error) {
	var plan entity.Plan
	err := r.db.WithContext(ctx).
		Preload("Construction").
		Preload("Construction.Investor").
		Preload("NextApprover").
		Where("id = ?", id).
		First(&plan).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &plan, nil
}

func (r *PlanRepository) Create(ctx context.Context, plan *entity.Plan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *PlanRepository) Update(ctx context.Context, plan *entity.Plan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	// line items go with the plan
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&entity.PlanWorkload{},
			&entity.PlanCost{},
			&entity.PlanOtherCost{},
			&entity.PlanMaterial{},
			&entity.ProgressLog{},
		} {
			if err := tx.Where("plan_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&entity.Plan{}).Error
	})
}

func (r *PlanRepository) GenerateCode(ctx context.Context) (string, error) {
	return nextCode(ctx, r.db, &entity.Plan{}, "PA")
}

// FindPendingSince returns plans stuck in an approval queue since before
// the cutoff, for the daily reminder job.
func (r *PlanRepository) FindPendingSince(ctx context.Context, cutoff time.Time) ([]entity.Plan, error) {
	var items []entity.Plan
	err := r.db.WithContext(ctx).
		Where("status IN ?", []entity.PlanStatus{
			entity.PlanStatusPendingLead,
			entity.PlanStatusPendingManager,
			entity.PlanStatusPendingDirector,
		}).
		Where("updated_at < ?", cutoff).
		Where("next_approver_id IS NOT NULL").
		Find(&items).Error
	return items, err
}

// === line items ===

func (r *PlanRepository) FindWorkloads(ctx context.Context, planID string) ([]entity.PlanWorkload, error) {
	var items []entity.PlanWorkload
	err := r.db.WithContext(ctx).
		Preload("WorkType").Preload("WorkItem").Preload("Team").Preload("Unit").
		Where("plan_id = ?", planID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *PlanRepository) CreateWorkload(ctx context.Context, item *entity.PlanWorkload) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PlanRepository) UpdateWorkload(ctx context.Context, item *entity.PlanWorkload) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *PlanRepository) FindWorkloadByID(ctx context.Context, id string) (*entity.PlanWorkload, error) {
	var item entity.PlanWorkload
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *PlanRepository) DeleteWorkload(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.PlanWorkload{}).Error
}

func (r *PlanRepository) FindCosts(ctx context.Context, planID string) ([]entity.PlanCost, error) {
	var items []entity.PlanCost
	err := r.db.WithContext(ctx).
		Preload("WorkType").Preload("WorkItem").Preload("Team").Preload("Unit").
		Where("plan_id = ?", planID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *PlanRepository) CreateCost(ctx context.Context, item *entity.PlanCost) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PlanRepository) UpdateCost(ctx context.Context, item *entity.PlanCost) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *PlanRepository) FindCostByID(ctx context.Context, id string) (*entity.PlanCost, error) {
	var item entity.PlanCost
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *PlanRepository) DeleteCost(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.PlanCost{}).Error
}

func (r *PlanRepository) FindOtherCosts(ctx context.Context, planID string) ([]entity.PlanOtherCost, error) {
	var items []entity.PlanOtherCost
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *PlanRepository) CreateOtherCost(ctx context.Context, item *entity.PlanOtherCost) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PlanRepository) UpdateOtherCost(ctx context.Context, item *entity.PlanOtherCost) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *PlanRepository) FindOtherCostByID(ctx context.Context, id string) (*entity.PlanOtherCost, error) {
	var item entity.PlanOtherCost
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *PlanRepository) DeleteOtherCost(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.PlanOtherCost{}).Error
}

func (r *PlanRepository) FindMaterials(ctx context.Context, planID string) ([]entity.PlanMaterial, error) {
	var items []entity.PlanMaterial
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *PlanRepository) CreateMaterial(ctx context.Context, item *entity.PlanMaterial) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PlanRepository) UpdateMaterial(ctx context.Context, item *entity.PlanMaterial) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *PlanRepository) FindMaterialByID(ctx context.Context, id string) (*entity.PlanMaterial, error) {
	var item entity.PlanMaterial
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *PlanRepository) DeleteMaterial(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.PlanMaterial{}).Error
}

func (r *PlanRepository) FindProgressLogs(ctx context.Context, planID string) ([]entity.ProgressLog, error) {
	var items []entity.ProgressLog
	err := r.db.WithContext(ctx).
		Preload("Team").Preload("WorkItem").
		Where("plan_id = ?", planID).
		Order("log_date DESC").
		Find(&items).Error
	return items, err
}

func (r *PlanRepository) CreateProgressLog(ctx context.Context, item *entity.ProgressLog) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PlanRepository) UpdateProgressLog(ctx context.Context, item *entity.ProgressLog) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *PlanRepository) FindProgressLogByID(ctx context.Context, id string) (*entity.ProgressLog, error) {
	var item entity.ProgressLog
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *PlanRepository) DeleteProgressLog(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.ProgressLog{}).Error
}
