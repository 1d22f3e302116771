package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/huynhhaigiang/cadico-api/internal/plan/entity"
	"github.com/huynhhaigiang/cadico-api/internal/plan/repository"
)

// PlanService phương án thi công: hồ sơ, các tab chi tiết và luồng phê duyệt.
// Status transitions are enforced here, not trusted from the client.
type PlanService struct {
	planRepo  *repository.PlanRepository
	userRepo  *repository.UserRepository
	notifySvc *NotificationService
	logger    *zap.Logger
}

func NewPlanService(planRepo *repository.PlanRepository, userRepo *repository.UserRepository, notifySvc *NotificationService, logger *zap.Logger) *PlanService {
	return &PlanService{
		planRepo:  planRepo,
		userRepo:  userRepo,
		notifySvc: notifySvc,
		logger:    logger,
	}
}

type PlanRequest struct {
	Code             string     `json:"code"`
	Name             string     `json:"name" binding:"required"`
	ConstructionID   string     `json:"construction_id" binding:"required"`
	ContractNo       string     `json:"contract_no"`
	ContractValue    float64    `json:"contract_value"`
	ContractSignedAt *time.Time `json:"contract_signed_at"`
	ContractFileURL  string     `json:"contract_file_url"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	Note             string     `json:"note"`
}

func (s *PlanService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Plan, int64, error) {
	items, total, err := s.planRepo.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].StatusLabel = items[i].Status.Label()
	}
	return items, total, nil
}

func (s *PlanService) Get(ctx context.Context, id string) (*entity.Plan, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	plan.StatusLabel = plan.Status.Label()
	return plan, nil
}

func (s *PlanService) Create(ctx context.Context, userID string, req *PlanRequest) (*entity.Plan, error) {
	code := req.Code
	if code == "" {
		var err error
		code, err = s.planRepo.GenerateCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}
	}
	now := time.Now()
	plan := &entity.Plan{
		ID:               uuid.New().String()[:32],
		Code:             code,
		Name:             req.Name,
		ConstructionID:   req.ConstructionID,
		ContractNo:       req.ContractNo,
		ContractValue:    req.ContractValue,
		ContractSignedAt: req.ContractSignedAt,
		ContractFileURL:  req.ContractFileURL,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Status:           entity.PlanStatusDraft,
		CreatedBy:        userID,
		Note:             req.Note,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return s.Get(ctx, plan.ID)
}

func (s *PlanService) Update(ctx context.Context, id string, req *PlanRequest) (*entity.Plan, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.Status == entity.PlanStatusApproved {
		return nil, fmt.Errorf("phương án đã phê duyệt, không thể chỉnh sửa")
	}
	if req.Code != "" {
		plan.Code = req.Code
	}
	plan.Name = req.Name
	plan.ConstructionID = req.ConstructionID
	plan.ContractNo = req.ContractNo
	plan.ContractValue = req.ContractValue
	plan.ContractSignedAt = req.ContractSignedAt
	plan.ContractFileURL = req.ContractFileURL
	plan.StartDate = req.StartDate
	plan.EndDate = req.EndDate
	plan.Note = req.Note
	plan.UpdatedAt = time.Now()
	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *PlanService) Delete(ctx context.Context, id string) error {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if plan.Status.IsPending() || plan.Status == entity.PlanStatusApproved {
		return fmt.Errorf("chỉ xóa được phương án ở trạng thái nháp hoặc bị từ chối")
	}
	return s.planRepo.Delete(ctx, id)
}

// === approval flow ===

type SubmitRequest struct {
	NextApproverID string `json:"next_approver_id" binding:"required"`
}

// Submit moves a draft (or rejected) plan into the first approval queue.
func (s *PlanService) Submit(ctx context.Context, id, userID string, req *SubmitRequest) (*entity.Plan, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !plan.Status.CanTransition(entity.PlanStatusPendingLead) {
		return nil, fmt.Errorf("không thể trình duyệt từ trạng thái %q", plan.Status.Label())
	}

	approver, err := s.userRepo.FindByID(ctx, req.NextApproverID)
	if err != nil {
		return nil, fmt.Errorf("người duyệt không hợp lệ")
	}

	plan.Status = entity.PlanStatusPendingLead
	plan.NextApproverID = &approver.ID
	plan.RejectReason = ""
	plan.UpdatedAt = time.Now()
	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	s.notifySvc.Notify(ctx, approver.ID,
		"Phương án chờ duyệt",
		fmt.Sprintf("Phương án %s - %s đang chờ bạn phê duyệt", plan.Code, plan.Name),
		entity.NotificationTypeApproval, entity.NotificationEntityPlan, plan.ID)
	s.publishUpdate(plan, "submitted")

	return s.Get(ctx, id)
}

type ApproveRequest struct {
	Approved       bool    `json:"approved"`
	NextApproverID *string `json:"next_approver_id"`
	RejectReason   string  `json:"reject_reason"`
}

// Approve handles both approval and rejection of a pending plan. Approving
// a non-terminal tier requires the next approver; rejecting requires a
// reason. On a validation failure nothing is persisted.
func (s *PlanService) Approve(ctx context.Context, id, userID string, req *ApproveRequest) (*entity.Plan, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !plan.Status.IsPending() {
		return nil, fmt.Errorf("phương án không ở trạng thái chờ duyệt")
	}
	if plan.NextApproverID != nil && *plan.NextApproverID != userID {
		return nil, fmt.Errorf("bạn không phải người duyệt của phương án này")
	}

	if !req.Approved {
		if strings.TrimSpace(req.RejectReason) == "" {
			return nil, fmt.Errorf("vui lòng nhập lý do từ chối")
		}
		plan.Status = entity.PlanStatusRejected
		plan.RejectReason = req.RejectReason
		plan.NextApproverID = nil
		plan.UpdatedAt = time.Now()
		if err := s.planRepo.Update(ctx, plan); err != nil {
			return nil, err
		}
		s.notifySvc.Notify(ctx, plan.CreatedBy,
			"Phương án bị từ chối",
			fmt.Sprintf("Phương án %s - %s bị từ chối: %s", plan.Code, plan.Name, req.RejectReason),
			entity.NotificationTypeRejected, entity.NotificationEntityPlan, plan.ID)
		s.publishUpdate(plan, "rejected")
		return s.Get(ctx, id)
	}

	next, needsApprover, ok := plan.Status.NextOnApprove()
	if !ok {
		return nil, fmt.Errorf("phương án không ở trạng thái chờ duyệt")
	}

	if needsApprover {
		if req.NextApproverID == nil || *req.NextApproverID == "" {
			return nil, fmt.Errorf("vui lòng chọn người duyệt tiếp theo")
		}
		approver, err := s.userRepo.FindByID(ctx, *req.NextApproverID)
		if err != nil {
			return nil, fmt.Errorf("người duyệt không hợp lệ")
		}
		plan.NextApproverID = &approver.ID
	} else {
		plan.NextApproverID = nil
	}

	plan.Status = next
	plan.RejectReason = ""
	plan.UpdatedAt = time.Now()
	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	if next == entity.PlanStatusApproved {
		s.notifySvc.Notify(ctx, plan.CreatedBy,
			"Phương án đã được phê duyệt",
			fmt.Sprintf("Phương án %s - %s đã được phê duyệt", plan.Code, plan.Name),
			entity.NotificationTypeApproved, entity.NotificationEntityPlan, plan.ID)
		s.publishUpdate(plan, "approved")
	} else {
		s.notifySvc.Notify(ctx, *plan.NextApproverID,
			"Phương án chờ duyệt",
			fmt.Sprintf("Phương án %s - %s đang chờ bạn phê duyệt", plan.Code, plan.Name),
			entity.NotificationTypeApproval, entity.NotificationEntityPlan, plan.ID)
		s.publishUpdate(plan, "forwarded")
	}

	return s.Get(ctx, id)
}

func (s *PlanService) publishUpdate(plan *entity.Plan, action string) {
	publishPlanEvent(plan.ID, int(plan.Status), action)
}

// === line items ===

type WorkloadRequest struct {
	WorkTypeID *string `json:"work_type_id"`
	WorkItemID *string `json:"work_item_id"`
	TeamID     *string `json:"team_id"`
	UnitID     *string `json:"unit_id"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Note       string  `json:"note"`
}

func (s *PlanService) ListWorkloads(ctx context.Context, planID string) ([]entity.PlanWorkload, float64, error) {
	items, err := s.planRepo.FindWorkloads(ctx, planID)
	if err != nil {
		return nil, 0, err
	}
	var total float64
	for _, it := range items {
		total += it.Amount
	}
	return items, total, nil
}

func (s *PlanService) CreateWorkload(ctx context.Context, planID string, req *WorkloadRequest) (*entity.PlanWorkload, error) {
	if err := s.requireEditable(ctx, planID); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.PlanWorkload{
		ID:         uuid.New().String()[:32],
		PlanID:     planID,
		WorkTypeID: req.WorkTypeID,
		WorkItemID: req.WorkItemID,
		TeamID:     req.TeamID,
		UnitID:     req.UnitID,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		Amount:     req.Quantity * req.UnitPrice,
		Note:       req.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.planRepo.CreateWorkload(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PlanService) UpdateWorkload(ctx context.Context, planID, itemID string, req *WorkloadRequest) (*entity.PlanWorkload, error) {
	if err := s.requireEditable(ctx, planID); err != nil {
		return nil, err
	}
	item, err := s.planRepo.FindWorkloadByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.PlanID != planID {
		return nil, repository.ErrNotFound
	}
	item.WorkTypeID = req.WorkTypeID
	item.WorkItemID = req.WorkItemID
	item.TeamID = req.TeamID
	item.UnitID = req.UnitID
	item.Quantity = req.Quantity
	item.UnitPrice = req.UnitPrice
	item.Amount = req.Quantity * req.UnitPrice
	item.Note = req.Note
	item.UpdatedAt = time.Now()
	if err := s.planRepo.UpdateWorkload(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PlanService) DeleteWorkload(ctx context.Context, planID, itemID string) error {
	if err := s.requireEditable(ctx, planID); err != nil {
		return err
	}
	item, err := s.planRepo.FindWorkloadByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.PlanID != planID {
		return repository.ErrNotFound
	}
	return s.planRepo.DeleteWorkload(ctx, itemID)
}

type CostRequest struct {
	WorkTypeID *string `json:"work_type_id"`
	WorkItemID *string `json:"work_item_id"`
	TeamID     *string `json:"team_id"`
	UnitID     *string `json:"unit_id"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Note       string  `json:"note"`
}

func (s *PlanService) ListCosts(ctx context.Context, planID string) ([]entity.PlanCost, float64, error) {
	items, err := s.planRepo.FindCosts(ctx, planID)
	if err != nil {
		return nil, 0, err
	}
	var total float64
	for _, it := range items {
		total += it.Amount
	}
	return items, total, nil
}

func (s *PlanService) CreateCost(ctx context.Context, planID string, req *CostRequest) (*entity.PlanCost, error) {
	if err := s.requireEditable(ctx, planID); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.PlanCost{
		ID:         uuid.New().String()[:32],
		PlanID:     planID,
		WorkTypeID: req.WorkTypeID,
		WorkItemID: req.WorkItemID,
		TeamID:     req.TeamID,
		UnitID:     req.UnitID,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		Amount:     req.Quantity * req.UnitPrice,
		Note:       req.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.planRepo.CreateCost(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PlanService) UpdateCost(ctx context.Context, planID, itemID string, req *CostRequest) (*entity.PlanCost, error) {
	if err := s.requireEditable(ctx, planID); err != nil {
		return nil, err
	}
	item, err := s.planRepo.FindCostByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.PlanID != planID {
		return nil, repository.ErrNotFound
	}
	item.WorkTypeID = req.WorkTypeID
	item.WorkItemID = req.WorkItemID
	item.TeamID = req.TeamID
	item.UnitID = req.UnitID
	item.Quantity = req.Quantity
	item.UnitPrice = req.UnitPrice
	item.Amount = req.Quantity * req.UnitPrice
	item.Note = req.Note
	item.UpdatedAt = time.Now()
	if err := s.planRepo.UpdateCost(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PlanService) DeleteCost(ctx context.Context, planID, itemID string) error {
	if err := s.requireEditable(ctx, planID); err != nil {
		return err
	}
	item, err := s.planRepo.FindCostByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.PlanID != planID {
		return repository.ErrNotFound
	}
	return s.planRepo.DeleteCost(ctx, itemID)
}

type OtherCostRequest struct {
	Content string  `json:"content" binding:"required"`
	Amount  float64 `json:"amount"`
	Note    string  `json:"note"`
}

func (s *PlanService) ListOtherCosts(ctx context.Context, planID string) ([]entity.PlanOtherCost, float64, error) {
	items, err := s.planRepo.FindOtherCosts(ctx, planID)
	if err != nil {
		return nil, 0, err
	}
	var total float64
	for _, it := range items {
		total += it.Amount
	}
	return items, total, nil
}

func (s *PlanService) CreateOtherCost(ctx context.Context, planID string, req *OtherCostRequest) (*entity.PlanOtherCost, error) {
	if err := s.requireEditable(ctx, planID); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.PlanOtherCost{
		ID:        uuid.New().String()[:32],
		PlanID:    planID,
		Content:   req.Content,
		Amount:    req.Amount,
		Note:      req.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.planRepo.CreateOtherCost(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PlanService) UpdateOtherCost(ctx context.Context, planID, itemID string, req *OtherCostRequest) (*entity.PlanOtherCost, error) {
	if err := s.requireEditable(ctx, planID); err != nil {
		return nil, err
	}
	item, err := s.planRepo.FindOtherCostByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.PlanID != planID {
		return nil, repository.ErrNotFound
	}
	item.Content = req.Content
	item.Amount = req.Amount
	item.Note = req.Note
	item.UpdatedAt = time.Now()
	if err := s.planRepo.UpdateOtherCost(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PlanService) DeleteOtherCost(ctx context.Context, planID, itemID string) error {
	if err := s.requireEditable(ctx, planID); err != nil {
		return err
	}
	item, err := s.planRepo.FindOtherCostByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.PlanID != planID {
		return repository.ErrNotFound
	}
	return s.planRepo.DeleteOtherCost(ctx, itemID)
}

type PlanMaterialRequest struct {
	MaterialTypeID string  `json:"material_type_id" binding:"required"`
	MaterialCode   string  `json:"material_code"`
	MaterialName   string  `json:"material_name" binding:"required"`
	UnitName       string  `json:"unit_name"`
	DesignQty      float64 `json:"design_qty"`
	RequestQty     float64 `json:"request_qty"`
	CumulativeQty  float64 `json:"cumulative_qty"`
	UnitPrice      float64 `json:"unit_price"`
	IsExtra        bool    `json:"is_extra"`
	Note           string  `json:"note"`
}

func (s *PlanService) ListMaterials(ctx context.Context, planID string) ([]entity.PlanMaterial, float64, error) {
	items, err := s.planRepo.FindMaterials(ctx, planID)
	if err != nil {
		return nil, 0, err
	}
	var total float64
	for _, it := range items {
		total += it.Amount
	}
	return items, total, nil
}

func (s *PlanService) CreateMaterial(ctx context.Context, planID string, req *PlanMaterialRequest) (*entity.PlanMaterial, error) {
	if err := s.requireEditable(ctx, planID); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.PlanMaterial{
		ID:             uuid.New().String()[:32],
		PlanID:         planID,
		MaterialTypeID: req.MaterialTypeID,
		MaterialCode:   req.MaterialCode,
		MaterialName:   req.MaterialName,
		UnitName:       req.UnitName,
		DesignQty:      req.DesignQty,
		RequestQty:     req.RequestQty,
		CumulativeQty:  req.CumulativeQty,
		UnitPrice:      req.UnitPrice,
		Amount:         req.RequestQty * req.UnitPrice,
		IsExtra:        req.IsExtra,
		Note:           req.Note,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.planRepo.CreateMaterial(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PlanService) UpdateMaterial(ctx context.Context, planID, itemID string, req *PlanMaterialRequest) (*entity.PlanMaterial, error) {
	if err := s.requireEditable(ctx, planID); err != nil {
		return nil, err
	}
	item, err := s.planRepo.FindMaterialByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.PlanID != planID {
		return nil, repository.ErrNotFound
	}
	item.MaterialTypeID = req.MaterialTypeID
	item.MaterialCode = req.MaterialCode
	item.MaterialName = req.MaterialName
	item.UnitName = req.UnitName
	item.DesignQty = req.DesignQty
	item.RequestQty = req.RequestQty
	item.CumulativeQty = req.CumulativeQty
	item.UnitPrice = req.UnitPrice
	item.Amount = req.RequestQty * req.UnitPrice
	item.IsExtra = req.IsExtra
	item.Note = req.Note
	item.UpdatedAt = time.Now()
	if err := s.planRepo.UpdateMaterial(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PlanService) DeleteMaterial(ctx context.Context, planID, itemID string) error {
	if err := s.requireEditable(ctx, planID); err != nil {
		return err
	}
	item, err := s.planRepo.FindMaterialByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.PlanID != planID {
		return repository.ErrNotFound
	}
	return s.planRepo.DeleteMaterial(ctx, itemID)
}

type ProgressLogRequest struct {
	TeamID     *string    `json:"team_id"`
	WorkItemID *string    `json:"work_item_id"`
	LogDate    *time.Time `json:"log_date"`
	Quantity   float64    `json:"quantity"`
	Note       string     `json:"note"`
}

func (s *PlanService) ListProgressLogs(ctx context.Context, planID string) ([]entity.ProgressLog, error) {
	return s.planRepo.FindProgressLogs(ctx, planID)
}

// CreateProgressLog does not require an editable plan: progress is logged
// against approved plans during execution.
func (s *PlanService) CreateProgressLog(ctx context.Context, planID, userID string, req *ProgressLogRequest) (*entity.ProgressLog, error) {
	if _, err := s.planRepo.FindByID(ctx, planID); err != nil {
		return nil, err
	}
	logDate := time.Now()
	if req.LogDate != nil {
		logDate = *req.LogDate
	}
	now := time.Now()
	item := &entity.ProgressLog{
		ID:         uuid.New().String()[:32],
		PlanID:     planID,
		TeamID:     req.TeamID,
		WorkItemID: req.WorkItemID,
		LogDate:    logDate,
		Quantity:   req.Quantity,
		Note:       req.Note,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.planRepo.CreateProgressLog(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PlanService) UpdateProgressLog(ctx context.Context, planID, itemID string, req *ProgressLogRequest) (*entity.ProgressLog, error) {
	item, err := s.planRepo.FindProgressLogByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.PlanID != planID {
		return nil, repository.ErrNotFound
	}
	item.TeamID = req.TeamID
	item.WorkItemID = req.WorkItemID
	if req.LogDate != nil {
		item.LogDate = *req.LogDate
	}
	item.Quantity = req.Quantity
	item.Note = req.Note
	item.UpdatedAt = time.Now()
	if err := s.planRepo.UpdateProgressLog(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PlanService) DeleteProgressLog(ctx context.Context, planID, itemID string) error {
	item, err := s.planRepo.FindProgressLogByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.PlanID != planID {
		return repository.ErrNotFound
	}
	return s.planRepo.DeleteProgressLog(ctx, itemID)
}

// requireEditable blocks line-item edits while a plan sits in an approval
// queue or is already approved.
func (s *PlanService) requireEditable(ctx context.Context, planID string) error {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return err
	}
	if plan.Status.IsPending() {
		return fmt.Errorf("phương án đang chờ duyệt, không thể chỉnh sửa")
	}
	if plan.Status == entity.PlanStatusApproved {
		return fmt.Errorf("phương án đã phê duyệt, không thể chỉnh sửa")
	}
	return nil
}
