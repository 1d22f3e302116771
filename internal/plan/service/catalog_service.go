package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/huynhhaigiang/cadico-api/internal/plan/entity"
	"github.com/huynhhaigiang/cadico-api/internal/plan/repository"
	"github.com/huynhhaigiang/cadico-api/internal/searchx"
)

// CatalogService danh mục dùng chung: công trình, chủ đầu tư, đơn vị tính,
// loại công tác, hạng mục, đội thi công. Search filters fold Vietnamese
// diacritics so "cong trinh" matches "Công trình".
type CatalogService struct {
	constructionRepo *repository.ConstructionRepository
	investorRepo     *repository.InvestorRepository
	unitRepo         *repository.UnitRepository
	workTypeRepo     *repository.WorkTypeRepository
	workItemRepo     *repository.WorkItemRepository
	teamRepo         *repository.TeamRepository
}

func NewCatalogService(repos *repository.Repositories) *CatalogService {
	return &CatalogService{
		constructionRepo: repos.Construction,
		investorRepo:     repos.Investor,
		unitRepo:         repos.Unit,
		workTypeRepo:     repos.WorkType,
		workItemRepo:     repos.WorkItem,
		teamRepo:         repos.Team,
	}
}

// === công trình ===

type ConstructionRequest struct {
	Code       string  `json:"code"`
	Name       string  `json:"name" binding:"required"`
	Address    string  `json:"address"`
	InvestorID *string `json:"investor_id"`
	Note       string  `json:"note"`
}

func (s *CatalogService) ListConstructions(ctx context.Context, search string) ([]entity.Construction, error) {
	items, err := s.constructionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return items, nil
	}
	filtered := make([]entity.Construction, 0, len(items))
	for _, it := range items {
		if searchx.Match(it.Code, search) || searchx.Match(it.Name, search) || searchx.Match(it.Address, search) {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

func (s *CatalogService) GetConstruction(ctx context.Context, id string) (*entity.Construction, error) {
	return s.constructionRepo.FindByID(ctx, id)
}

func (s *CatalogService) CreateConstruction(ctx context.Context, req *ConstructionRequest) (*entity.Construction, error) {
	code := req.Code
	if code == "" {
		var err error
		code, err = s.constructionRepo.GenerateCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}
	}
	now := time.Now()
	item := &entity.Construction{
		ID:         uuid.New().String()[:32],
		Code:       code,
		Name:       req.Name,
		Address:    req.Address,
		InvestorID: req.InvestorID,
		Note:       req.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.constructionRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return s.constructionRepo.FindByID(ctx, item.ID)
}

func (s *CatalogService) UpdateConstruction(ctx context.Context, id string, req *ConstructionRequest) (*entity.Construction, error) {
	item, err := s.constructionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Code != "" {
		item.Code = req.Code
	}
	item.Name = req.Name
	item.Address = req.Address
	item.InvestorID = req.InvestorID
	item.Note = req.Note
	item.UpdatedAt = time.Now()
	if err := s.constructionRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return s.constructionRepo.FindByID(ctx, id)
}

func (s *CatalogService) DeleteConstruction(ctx context.Context, id string) error {
	if _, err := s.constructionRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.constructionRepo.Delete(ctx, id)
}

// === chủ đầu tư ===

type InvestorRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	TaxCode string `json:"tax_code"`
	Phone   string `json:"phone"`
}

func (s *CatalogService) ListInvestors(ctx context.Context, search string) ([]entity.Investor, error) {
	items, err := s.investorRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return items, nil
	}
	filtered := make([]entity.Investor, 0, len(items))
	for _, it := range items {
		if searchx.Match(it.Code, search) || searchx.Match(it.Name, search) {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

func (s *CatalogService) GetInvestor(ctx context.Context, id string) (*entity.Investor, error) {
	return s.investorRepo.FindByID(ctx, id)
}

func (s *CatalogService) CreateInvestor(ctx context.Context, req *InvestorRequest) (*entity.Investor, error) {
	code := req.Code
	if code == "" {
		var err error
		code, err = s.investorRepo.GenerateCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}
	}
	now := time.Now()
	item := &entity.Investor{
		ID:        uuid.New().String()[:32],
		Code:      code,
		Name:      req.Name,
		Address:   req.Address,
		TaxCode:   req.TaxCode,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.investorRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) UpdateInvestor(ctx context.Context, id string, req *InvestorRequest) (*entity.Investor, error) {
	item, err := s.investorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Code != "" {
		item.Code = req.Code
	}
	item.Name = req.Name
	item.Address = req.Address
	item.TaxCode = req.TaxCode
	item.Phone = req.Phone
	item.UpdatedAt = time.Now()
	if err := s.investorRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) DeleteInvestor(ctx context.Context, id string) error {
	if _, err := s.investorRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.investorRepo.Delete(ctx, id)
}

// === đơn vị tính ===

type UnitRequest struct {
	Code string `json:"code"`
	Name string `json:"name" binding:"required"`
}

func (s *CatalogService) ListUnits(ctx context.Context, search string) ([]entity.Unit, error) {
	items, err := s.unitRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return items, nil
	}
	filtered := make([]entity.Unit, 0, len(items))
	for _, it := range items {
		if searchx.Match(it.Code, search) || searchx.Match(it.Name, search) {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

func (s *CatalogService) GetUnit(ctx context.Context, id string) (*entity.Unit, error) {
	return s.unitRepo.FindByID(ctx, id)
}

func (s *CatalogService) CreateUnit(ctx context.Context, req *UnitRequest) (*entity.Unit, error) {
	code := req.Code
	if code == "" {
		var err error
		code, err = s.unitRepo.GenerateCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}
	}
	now := time.Now()
	item := &entity.Unit{
		ID:        uuid.New().String()[:32],
		Code:      code,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.unitRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) UpdateUnit(ctx context.Context, id string, req *UnitRequest) (*entity.Unit, error) {
	item, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Code != "" {
		item.Code = req.Code
	}
	item.Name = req.Name
	item.UpdatedAt = time.Now()
	if err := s.unitRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) DeleteUnit(ctx context.Context, id string) error {
	if _, err := s.unitRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.unitRepo.Delete(ctx, id)
}

// === loại công tác ===

type WorkTypeRequest struct {
	Code string `json:"code"`
	Name string `json:"name" binding:"required"`
}

func (s *CatalogService) ListWorkTypes(ctx context.Context, search string) ([]entity.WorkType, error) {
	items, err := s.workTypeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return items, nil
	}
	filtered := make([]entity.WorkType, 0, len(items))
	for _, it := range items {
		if searchx.Match(it.Code, search) || searchx.Match(it.Name, search) {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

func (s *CatalogService) GetWorkType(ctx context.Context, id string) (*entity.WorkType, error) {
	return s.workTypeRepo.FindByID(ctx, id)
}

func (s *CatalogService) CreateWorkType(ctx context.Context, req *WorkTypeRequest) (*entity.WorkType, error) {
	code := req.Code
	if code == "" {
		var err error
		code, err = s.workTypeRepo.GenerateCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}
	}
	now := time.Now()
	item := &entity.WorkType{
		ID:        uuid.New().String()[:32],
		Code:      code,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.workTypeRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) UpdateWorkType(ctx context.Context, id string, req *WorkTypeRequest) (*entity.WorkType, error) {
	item, err := s.workTypeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Code != "" {
		item.Code = req.Code
	}
	item.Name = req.Name
	item.UpdatedAt = time.Now()
	if err := s.workTypeRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) DeleteWorkType(ctx context.Context, id string) error {
	if _, err := s.workTypeRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.workTypeRepo.Delete(ctx, id)
}

// === hạng mục công việc ===

type WorkItemRequest struct {
	Code       string  `json:"code"`
	Name       string  `json:"name" binding:"required"`
	WorkTypeID *string `json:"work_type_id"`
}

func (s *CatalogService) ListWorkItems(ctx context.Context, search, workTypeID string) ([]entity.WorkItem, error) {
	items, err := s.workItemRepo.FindAll(ctx, workTypeID)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return items, nil
	}
	filtered := make([]entity.WorkItem, 0, len(items))
	for _, it := range items {
		if searchx.Match(it.Code, search) || searchx.Match(it.Name, search) {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

func (s *CatalogService) GetWorkItem(ctx context.Context, id string) (*entity.WorkItem, error) {
	return s.workItemRepo.FindByID(ctx, id)
}

func (s *CatalogService) CreateWorkItem(ctx context.Context, req *WorkItemRequest) (*entity.WorkItem, error) {
	code := req.Code
	if code == "" {
		var err error
		code, err = s.workItemRepo.GenerateCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}
	}
	now := time.Now()
	item := &entity.WorkItem{
		ID:         uuid.New().String()[:32],
		Code:       code,
		Name:       req.Name,
		WorkTypeID: req.WorkTypeID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.workItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return s.workItemRepo.FindByID(ctx, item.ID)
}

func (s *CatalogService) UpdateWorkItem(ctx context.Context, id string, req *WorkItemRequest) (*entity.WorkItem, error) {
	item, err := s.workItemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Code != "" {
		item.Code = req.Code
	}
	item.Name = req.Name
	item.WorkTypeID = req.WorkTypeID
	item.UpdatedAt = time.Now()
	if err := s.workItemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return s.workItemRepo.FindByID(ctx, id)
}

func (s *CatalogService) DeleteWorkItem(ctx context.Context, id string) error {
	if _, err := s.workItemRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.workItemRepo.Delete(ctx, id)
}

// === đội thi công ===

type TeamRequest struct {
	Code            string  `json:"code"`
	Name            string  `json:"name" binding:"required"`
	LeaderID        *string `json:"leader_id"`
	IsSubcontractor bool    `json:"is_subcontractor"`
	IsInternal      bool    `json:"is_internal"`
	HasInvoice      bool    `json:"has_invoice"`
	Description     string  `json:"description"`
}

func (s *CatalogService) ListTeams(ctx context.Context, search string) ([]entity.Team, error) {
	items, err := s.teamRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return items, nil
	}
	filtered := make([]entity.Team, 0, len(items))
	for _, it := range items {
		if searchx.Match(it.Code, search) || searchx.Match(it.Name, search) {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

func (s *CatalogService) GetTeam(ctx context.Context, id string) (*entity.Team, error) {
	return s.teamRepo.FindByID(ctx, id)
}

func (s *CatalogService) CreateTeam(ctx context.Context, req *TeamRequest) (*entity.Team, error) {
	code := req.Code
	if code == "" {
		var err error
		code, err = s.teamRepo.GenerateCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}
	}
	now := time.Now()
	item := &entity.Team{
		ID:              uuid.New().String()[:32],
		Code:            code,
		Name:            req.Name,
		LeaderID:        req.LeaderID,
		IsSubcontractor: req.IsSubcontractor,
		IsInternal:      req.IsInternal,
		HasInvoice:      req.HasInvoice,
		Description:     req.Description,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.teamRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return s.teamRepo.FindByID(ctx, item.ID)
}

func (s *CatalogService) UpdateTeam(ctx context.Context, id string, req *TeamRequest) (*entity.Team, error) {
	item, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Code != "" {
		item.Code = req.Code
	}
	item.Name = req.Name
	item.LeaderID = req.LeaderID
	item.IsSubcontractor = req.IsSubcontractor
	item.IsInternal = req.IsInternal
	item.HasInvoice = req.HasInvoice
	item.Description = req.Description
	item.UpdatedAt = time.Now()
	if err := s.teamRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return s.teamRepo.FindByID(ctx, id)
}

func (s *CatalogService) DeleteTeam(ctx context.Context, id string) error {
	if _, err := s.teamRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.teamRepo.Delete(ctx, id)
}
