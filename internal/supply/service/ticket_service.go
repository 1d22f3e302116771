package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/huynhhaigiang/cadico-api/internal/sse"
	"github.com/huynhhaigiang/cadico-api/internal/supply/entity"
	"github.com/huynhhaigiang/cadico-api/internal/supply/repository"
)

// Notifier persists and pushes an in-app notification. Satisfied by the
// plan module's NotificationService.
type Notifier interface {
	Notify(ctx context.Context, userID, title, content, typ, entityType, entityID string)
}

// UserFinder resolves approver ids to accounts.
type UserFinder interface {
	Exists(ctx context.Context, userID string) bool
}

// TicketService phiếu cung ứng vật tư: hồ sơ, dòng vật tư với thuế VAT,
// sinh vật tư phụ theo định mức và luồng phê duyệt hai cấp.
type TicketService struct {
	ticketRepo   *repository.TicketRepository
	materialRepo *repository.MaterialRepository
	notifier     Notifier
	users        UserFinder
	logger       *zap.Logger
}

func NewTicketService(ticketRepo *repository.TicketRepository, materialRepo *repository.MaterialRepository, notifier Notifier, users UserFinder, logger *zap.Logger) *TicketService {
	return &TicketService{
		ticketRepo:   ticketRepo,
		materialRepo: materialRepo,
		notifier:     notifier,
		users:        users,
		logger:       logger,
	}
}

type TicketRequest struct {
	Code           string     `json:"code"`
	ConstructionID string     `json:"construction_id" binding:"required"`
	Location       string     `json:"location"`
	Content        string     `json:"content"`
	RequestDate    *time.Time `json:"request_date"`
	Note           string     `json:"note"`
}

func (s *TicketService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.SupplyTicket, int64, error) {
	items, total, err := s.ticketRepo.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].StatusLabel = items[i].Status.Label()
	}
	return items, total, nil
}

func (s *TicketService) Get(ctx context.Context, id string) (*entity.SupplyTicket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ticket.StatusLabel = ticket.Status.Label()
	return ticket, nil
}

func (s *TicketService) Create(ctx context.Context, userID string, req *TicketRequest) (*entity.SupplyTicket, error) {
	code := req.Code
	if code == "" {
		var err error
		code, err = s.ticketRepo.GenerateCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}
	}
	now := time.Now()
	ticket := &entity.SupplyTicket{
		ID:             uuid.New().String()[:32],
		Code:           code,
		ConstructionID: req.ConstructionID,
		Location:       req.Location,
		Content:        req.Content,
		RequestDate:    req.RequestDate,
		Status:         entity.TicketStatusDraft,
		CreatedBy:      userID,
		Note:           req.Note,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	ticket.StatusLabel = ticket.Status.Label()
	return ticket, nil
}

func (s *TicketService) Update(ctx context.Context, id string, req *TicketRequest) (*entity.SupplyTicket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status == entity.TicketStatusApproved {
		return nil, fmt.Errorf("phiếu đã phê duyệt, không thể chỉnh sửa")
	}
	if req.Code != "" {
		ticket.Code = req.Code
	}
	ticket.ConstructionID = req.ConstructionID
	ticket.Location = req.Location
	ticket.Content = req.Content
	ticket.RequestDate = req.RequestDate
	ticket.Note = req.Note
	ticket.UpdatedAt = time.Now()
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *TicketService) Delete(ctx context.Context, id string) error {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if ticket.Status.IsPending() || ticket.Status == entity.TicketStatusApproved {
		return fmt.Errorf("chỉ xóa được phiếu ở trạng thái nháp hoặc bị từ chối")
	}
	return s.ticketRepo.Delete(ctx, id)
}

// === approval flow ===

type SubmitRequest struct {
	NextApproverID string `json:"next_approver_id" binding:"required"`
}

func (s *TicketService) Submit(ctx context.Context, id, userID string, req *SubmitRequest) (*entity.SupplyTicket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ticket.Status.CanTransition(entity.TicketStatusPendingLead) {
		return nil, fmt.Errorf("không thể trình duyệt từ trạng thái %q", ticket.Status.Label())
	}
	if !s.users.Exists(ctx, req.NextApproverID) {
		return nil, fmt.Errorf("người duyệt không hợp lệ")
	}

	ticket.Status = entity.TicketStatusPendingLead
	ticket.NextApproverID = &req.NextApproverID
	ticket.RejectReason = ""
	ticket.UpdatedAt = time.Now()
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, req.NextApproverID,
		"Phiếu cung ứng chờ duyệt",
		fmt.Sprintf("Phiếu %s đang chờ bạn phê duyệt", ticket.Code),
		"approval", "supply_ticket", ticket.ID)
	sse.PublishTicketUpdate(ticket.ID, int(ticket.Status), "submitted")

	return s.Get(ctx, id)
}

type ApproveRequest struct {
	Approved       bool    `json:"approved"`
	NextApproverID *string `json:"next_approver_id"`
	RejectReason   string  `json:"reject_reason"`
}

// Approve handles both approval and rejection. Same contract as plan
// approval: non-terminal approve needs the next approver, reject needs a
// reason, nothing persists on validation failure.
func (s *TicketService) Approve(ctx context.Context, id, userID string, req *ApproveRequest) (*entity.SupplyTicket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ticket.Status.IsPending() {
		return nil, fmt.Errorf("phiếu không ở trạng thái chờ duyệt")
	}
	if ticket.NextApproverID != nil && *ticket.NextApproverID != userID {
		return nil, fmt.Errorf("bạn không phải người duyệt của phiếu này")
	}

	if !req.Approved {
		if strings.TrimSpace(req.RejectReason) == "" {
			return nil, fmt.Errorf("vui lòng nhập lý do từ chối")
		}
		ticket.Status = entity.TicketStatusRejected
		ticket.RejectReason = req.RejectReason
		ticket.NextApproverID = nil
		ticket.UpdatedAt = time.Now()
		if err := s.ticketRepo.Update(ctx, ticket); err != nil {
			return nil, err
		}
		s.notifier.Notify(ctx, ticket.CreatedBy,
			"Phiếu cung ứng bị từ chối",
			fmt.Sprintf("Phiếu %s bị từ chối: %s", ticket.Code, req.RejectReason),
			"rejected", "supply_ticket", ticket.ID)
		sse.PublishTicketUpdate(ticket.ID, int(ticket.Status), "rejected")
		return s.Get(ctx, id)
	}

	next, needsApprover, ok := ticket.Status.NextOnApprove()
	if !ok {
		return nil, fmt.Errorf("phiếu không ở trạng thái chờ duyệt")
	}

	if needsApprover {
		if req.NextApproverID == nil || *req.NextApproverID == "" {
			return nil, fmt.Errorf("vui lòng chọn người duyệt tiếp theo")
		}
		if !s.users.Exists(ctx, *req.NextApproverID) {
			return nil, fmt.Errorf("người duyệt không hợp lệ")
		}
		ticket.NextApproverID = req.NextApproverID
	} else {
		ticket.NextApproverID = nil
	}

	ticket.Status = next
	ticket.RejectReason = ""
	ticket.UpdatedAt = time.Now()
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	if next == entity.TicketStatusApproved {
		s.notifier.Notify(ctx, ticket.CreatedBy,
			"Phiếu cung ứng đã được phê duyệt",
			fmt.Sprintf("Phiếu %s đã được phê duyệt", ticket.Code),
			"approved", "supply_ticket", ticket.ID)
		sse.PublishTicketUpdate(ticket.ID, int(ticket.Status), "approved")
	} else {
		s.notifier.Notify(ctx, *ticket.NextApproverID,
			"Phiếu cung ứng chờ duyệt",
			fmt.Sprintf("Phiếu %s đang chờ bạn phê duyệt", ticket.Code),
			"approval", "supply_ticket", ticket.ID)
		sse.PublishTicketUpdate(ticket.ID, int(ticket.Status), "forwarded")
	}

	return s.Get(ctx, id)
}

// FindPendingSince exposes overdue pending tickets for the reminder job.
func (s *TicketService) FindPendingSince(ctx context.Context, cutoff time.Time) ([]entity.SupplyTicket, error) {
	return s.ticketRepo.FindPendingSince(ctx, cutoff)
}

// === line items ===

type TicketItemRequest struct {
	MaterialTypeID string   `json:"material_type_id" binding:"required"`
	PlanMaterialID *string  `json:"plan_material_id"`
	Quantity       float64  `json:"quantity"`
	UnitPrice      *float64 `json:"unit_price"`
	VATRate        float64  `json:"vat_rate"`
	SupplierName   string   `json:"supplier_name"`
	Note           string   `json:"note"`
}

// TicketTotals running sums over all lines of a ticket.
type TicketTotals struct {
	Amount        float64 `json:"amount"`
	VATAmount     float64 `json:"vat_amount"`
	AmountWithVAT float64 `json:"amount_with_vat"`
}

func (s *TicketService) ListItems(ctx context.Context, ticketID string) ([]entity.SupplyTicketItem, *TicketTotals, error) {
	items, err := s.ticketRepo.FindItems(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	totals := &TicketTotals{}
	for _, it := range items {
		totals.Amount += it.Amount
		totals.VATAmount += it.VATAmount
		totals.AmountWithVAT += it.AmountWithVAT
	}
	return items, totals, nil
}

// CreateItem adds a material line. When the material is a main material
// its sub-material lines are derived from the composition ratios, priced
// at each sub-material's default price.
func (s *TicketService) CreateItem(ctx context.Context, ticketID string, req *TicketItemRequest) (*entity.SupplyTicketItem, error) {
	if err := s.requireEditable(ctx, ticketID); err != nil {
		return nil, err
	}
	material, err := s.materialRepo.FindByID(ctx, req.MaterialTypeID)
	if err != nil {
		return nil, fmt.Errorf("vật tư không hợp lệ")
	}

	unitPrice := material.DefaultPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}
	amount, vat, total := entity.ComputeAmounts(req.Quantity, unitPrice, req.VATRate)

	now := time.Now()
	item := &entity.SupplyTicketItem{
		ID:             uuid.New().String()[:32],
		TicketID:       ticketID,
		MaterialTypeID: material.ID,
		MaterialCode:   material.Code,
		MaterialName:   material.Name,
		UnitName:       material.UnitName,
		PlanMaterialID: req.PlanMaterialID,
		Quantity:       req.Quantity,
		UnitPrice:      unitPrice,
		VATRate:        req.VATRate,
		Amount:         amount,
		VATAmount:      vat,
		AmountWithVAT:  total,
		SupplierName:   req.SupplierName,
		Note:           req.Note,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.ticketRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	if material.IsMain {
		if err := s.deriveSubItems(ctx, item, req.VATRate); err != nil {
			s.logger.Error("derive sub-material lines", zap.Error(err), zap.String("item_id", item.ID))
		}
	}

	return item, nil
}

func (s *TicketService) UpdateItem(ctx context.Context, ticketID, itemID string, req *TicketItemRequest) (*entity.SupplyTicketItem, error) {
	if err := s.requireEditable(ctx, ticketID); err != nil {
		return nil, err
	}
	item, err := s.ticketRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.TicketID != ticketID {
		return nil, repository.ErrNotFound
	}
	if item.IsDerived {
		return nil, fmt.Errorf("dòng vật tư phụ được sinh tự động, hãy sửa dòng vật tư chính")
	}

	material, err := s.materialRepo.FindByID(ctx, req.MaterialTypeID)
	if err != nil {
		return nil, fmt.Errorf("vật tư không hợp lệ")
	}

	unitPrice := material.DefaultPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}
	amount, vat, total := entity.ComputeAmounts(req.Quantity, unitPrice, req.VATRate)

	item.MaterialTypeID = material.ID
	item.MaterialCode = material.Code
	item.MaterialName = material.Name
	item.UnitName = material.UnitName
	item.PlanMaterialID = req.PlanMaterialID
	item.Quantity = req.Quantity
	item.UnitPrice = unitPrice
	item.VATRate = req.VATRate
	item.Amount = amount
	item.VATAmount = vat
	item.AmountWithVAT = total
	item.SupplierName = req.SupplierName
	item.Note = req.Note
	item.UpdatedAt = time.Now()
	if err := s.ticketRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	// re-derive sub-material lines from the new quantity
	if err := s.ticketRepo.DeleteDerivedItems(ctx, item.ID); err != nil {
		return nil, err
	}
	if material.IsMain {
		if err := s.deriveSubItems(ctx, item, req.VATRate); err != nil {
			s.logger.Error("derive sub-material lines", zap.Error(err), zap.String("item_id", item.ID))
		}
	}

	return item, nil
}

func (s *TicketService) DeleteItem(ctx context.Context, ticketID, itemID string) error {
	if err := s.requireEditable(ctx, ticketID); err != nil {
		return err
	}
	item, err := s.ticketRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.TicketID != ticketID {
		return repository.ErrNotFound
	}
	if item.IsDerived {
		return fmt.Errorf("dòng vật tư phụ được sinh tự động, hãy xóa dòng vật tư chính")
	}
	if err := s.ticketRepo.DeleteDerivedItems(ctx, item.ID); err != nil {
		return err
	}
	return s.ticketRepo.DeleteItem(ctx, itemID)
}

// deriveSubItems creates one line per composition entry of the parent's
// main material: child_qty = parent_qty * ratio.
func (s *TicketService) deriveSubItems(ctx context.Context, parent *entity.SupplyTicketItem, vatRate float64) error {
	comps, err := s.materialRepo.FindCompositions(ctx, parent.MaterialTypeID)
	if err != nil {
		return err
	}
	if len(comps) == 0 {
		return nil
	}

	now := time.Now()
	items := make([]entity.SupplyTicketItem, 0, len(comps))
	for _, comp := range comps {
		sub, err := s.materialRepo.FindByID(ctx, comp.SubMaterialID)
		if err != nil {
			return err
		}
		qty := parent.Quantity * comp.Ratio
		amount, vat, total := entity.ComputeAmounts(qty, sub.DefaultPrice, vatRate)
		items = append(items, entity.SupplyTicketItem{
			ID:             uuid.New().String()[:32],
			TicketID:       parent.TicketID,
			MaterialTypeID: sub.ID,
			MaterialCode:   sub.Code,
			MaterialName:   sub.Name,
			UnitName:       sub.UnitName,
			Quantity:       qty,
			UnitPrice:      sub.DefaultPrice,
			VATRate:        vatRate,
			Amount:         amount,
			VATAmount:      vat,
			AmountWithVAT:  total,
			ParentItemID:   &parent.ID,
			IsDerived:      true,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	return s.ticketRepo.CreateItems(ctx, items)
}

func (s *TicketService) requireEditable(ctx context.Context, ticketID string) error {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.Status.IsPending() {
		return fmt.Errorf("phiếu đang chờ duyệt, không thể chỉnh sửa")
	}
	if ticket.Status == entity.TicketStatusApproved {
		return fmt.Errorf("phiếu đã phê duyệt, không thể chỉnh sửa")
	}
	return nil
}
