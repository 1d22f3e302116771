package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/huynhhaigiang/cadico-api/internal/searchx"
	"github.com/huynhhaigiang/cadico-api/internal/supply/entity"
	"github.com/huynhhaigiang/cadico-api/internal/supply/repository"
)

// MaterialService loại vật tư và định mức vật tư phụ
type MaterialService struct {
	materialRepo *repository.MaterialRepository
}

func NewMaterialService(materialRepo *repository.MaterialRepository) *MaterialService {
	return &MaterialService{materialRepo: materialRepo}
}

type MaterialRequest struct {
	Code         string  `json:"code"`
	Name         string  `json:"name" binding:"required"`
	UnitID       *string `json:"unit_id"`
	UnitName     string  `json:"unit_name"`
	DefaultPrice float64 `json:"default_price"`
	IsMain       bool    `json:"is_main"`
	Note         string  `json:"note"`
}

func (s *MaterialService) List(ctx context.Context, search string) ([]entity.MaterialType, error) {
	items, err := s.materialRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return items, nil
	}
	filtered := make([]entity.MaterialType, 0, len(items))
	for _, it := range items {
		if searchx.Match(it.Code, search) || searchx.Match(it.Name, search) {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

func (s *MaterialService) Get(ctx context.Context, id string) (*entity.MaterialType, error) {
	return s.materialRepo.FindByID(ctx, id)
}

func (s *MaterialService) Create(ctx context.Context, req *MaterialRequest) (*entity.MaterialType, error) {
	code := req.Code
	if code == "" {
		var err error
		code, err = s.materialRepo.GenerateCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}
	}
	now := time.Now()
	item := &entity.MaterialType{
		ID:           uuid.New().String()[:32],
		Code:         code,
		Name:         req.Name,
		UnitID:       req.UnitID,
		UnitName:     req.UnitName,
		DefaultPrice: req.DefaultPrice,
		IsMain:       req.IsMain,
		Note:         req.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.materialRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MaterialService) Update(ctx context.Context, id string, req *MaterialRequest) (*entity.MaterialType, error) {
	item, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Code != "" {
		item.Code = req.Code
	}
	item.Name = req.Name
	item.UnitID = req.UnitID
	item.UnitName = req.UnitName
	item.DefaultPrice = req.DefaultPrice
	item.IsMain = req.IsMain
	item.Note = req.Note
	item.UpdatedAt = time.Now()
	if err := s.materialRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MaterialService) Delete(ctx context.Context, id string) error {
	if _, err := s.materialRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.materialRepo.Delete(ctx, id)
}

// === định mức vật tư phụ ===

type CompositionRequest struct {
	SubMaterialID string  `json:"sub_material_id" binding:"required"`
	Ratio         float64 `json:"ratio" binding:"required,gt=0"`
}

func (s *MaterialService) ListCompositions(ctx context.Context, mainMaterialID string) ([]entity.MaterialComposition, error) {
	if _, err := s.materialRepo.FindByID(ctx, mainMaterialID); err != nil {
		return nil, err
	}
	return s.materialRepo.FindCompositions(ctx, mainMaterialID)
}

func (s *MaterialService) CreateComposition(ctx context.Context, mainMaterialID string, req *CompositionRequest) (*entity.MaterialComposition, error) {
	main, err := s.materialRepo.FindByID(ctx, mainMaterialID)
	if err != nil {
		return nil, err
	}
	if !main.IsMain {
		return nil, fmt.Errorf("chỉ vật tư chính mới có định mức vật tư phụ")
	}
	if req.SubMaterialID == mainMaterialID {
		return nil, fmt.Errorf("vật tư phụ không được trùng vật tư chính")
	}
	if _, err := s.materialRepo.FindByID(ctx, req.SubMaterialID); err != nil {
		return nil, fmt.Errorf("vật tư phụ không hợp lệ")
	}

	now := time.Now()
	item := &entity.MaterialComposition{
		ID:             uuid.New().String()[:32],
		MainMaterialID: mainMaterialID,
		SubMaterialID:  req.SubMaterialID,
		Ratio:          req.Ratio,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.materialRepo.CreateComposition(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MaterialService) UpdateComposition(ctx context.Context, mainMaterialID, id string, req *CompositionRequest) (*entity.MaterialComposition, error) {
	item, err := s.materialRepo.FindCompositionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.MainMaterialID != mainMaterialID {
		return nil, repository.ErrNotFound
	}
	item.SubMaterialID = req.SubMaterialID
	item.Ratio = req.Ratio
	item.UpdatedAt = time.Now()
	if err := s.materialRepo.UpdateComposition(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MaterialService) DeleteComposition(ctx context.Context, mainMaterialID, id string) error {
	item, err := s.materialRepo.FindCompositionByID(ctx, id)
	if err != nil {
		return err
	}
	if item.MainMaterialID != mainMaterialID {
		return repository.ErrNotFound
	}
	return s.materialRepo.DeleteComposition(ctx, id)
}
