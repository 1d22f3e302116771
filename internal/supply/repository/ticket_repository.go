package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/huynhhaigiang/cadico-api/internal/supply/entity"
)

// TicketRepository phiếu cung ứng vật tư
type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// FindAll lists tickets with pagination. Filters: search (code/content
// ILIKE), construction_id, status, approver, created_by.
func (r *TicketRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.SupplyTicket, int64, error) {
	var items []entity.SupplyTicket
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SupplyTicket{})

	if search := filters["search"]; search != "" {
		query = query.Where("code ILIKE ? OR content ILIKE ?", "%"+search+"%", "%"+search+"%")
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
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *TicketRepository) FindByID(ctx context.Context, id string) (*entity.SupplyTicket, error) {
	var ticket entity.SupplyTicket
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ticket).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &ticket, nil
}

func (r *TicketRepository) Create(ctx context.Context, ticket *entity.SupplyTicket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *TicketRepository) Update(ctx context.Context, ticket *entity.SupplyTicket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", id).Delete(&entity.SupplyTicketItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.SupplyTicket{}).Error
	})
}

func (r *TicketRepository) GenerateCode(ctx context.Context) (string, error) {
	return nextCode(ctx, r.db, &entity.SupplyTicket{}, "PCU")
}

// FindPendingSince returns tickets stuck in an approval queue since before
// the cutoff, for the daily reminder job.
func (r *TicketRepository) FindPendingSince(ctx context.Context, cutoff time.Time) ([]entity.SupplyTicket, error) {
	var items []entity.SupplyTicket
	err := r.db.WithContext(ctx).
		Where("status IN ?", []entity.TicketStatus{
			entity.TicketStatusPendingLead,
			entity.TicketStatusPendingManager,
		}).
		Where("updated_at < ?", cutoff).
		Where("next_approver_id IS NOT NULL").
		Find(&items).Error
	return items, err
}

// === line items ===

func (r *TicketRepository) FindItems(ctx context.Context, ticketID string) ([]entity.SupplyTicketItem, error) {
	var items []entity.SupplyTicketItem
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *TicketRepository) FindItemByID(ctx context.Context, id string) (*entity.SupplyTicketItem, error) {
	var item entity.SupplyTicketItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

// FindDerivedItems lists the sub-material rows generated from one parent
// row.
func (r *TicketRepository) FindDerivedItems(ctx context.Context, parentItemID string) ([]entity.SupplyTicketItem, error) {
	var items []entity.SupplyTicketItem
	err := r.db.WithContext(ctx).
		Where("parent_item_id = ?", parentItemID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *TicketRepository) CreateItem(ctx context.Context, item *entity.SupplyTicketItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *TicketRepository) CreateItems(ctx context.Context, items []entity.SupplyTicketItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *TicketRepository) UpdateItem(ctx context.Context, item *entity.SupplyTicketItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *TicketRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.SupplyTicketItem{}).Error
}

// DeleteDerivedItems removes all sub-material rows of one parent row.
func (r *TicketRepository) DeleteDerivedItems(ctx context.Context, parentItemID string) error {
	return r.db.WithContext(ctx).Where("parent_item_id = ?", parentItemID).Delete(&entity.SupplyTicketItem{}).Error
}
