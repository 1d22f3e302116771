package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/huynhhaigiang/cadico-api/internal/supply/service"
)

// MaterialHandler loại vật tư và định mức vật tư phụ
type MaterialHandler struct {
	materialSvc *service.MaterialService
}

func NewMaterialHandler(materialSvc *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialSvc: materialSvc}
}

// List GET /materials?search=
func (h *MaterialHandler) List(c *gin.Context) {
	items, err := h.materialSvc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, items)
}

// Get GET /materials/:id
func (h *MaterialHandler) Get(c *gin.Context) {
	item, err := h.materialSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

// Create POST /materials
func (h *MaterialHandler) Create(c *gin.Context) {
	var req service.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.materialSvc.Create(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, item)
}

// Update PUT /materials/:id
func (h *MaterialHandler) Update(c *gin.Context) {
	var req service.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.materialSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

// Delete DELETE /materials/:id
func (h *MaterialHandler) Delete(c *gin.Context) {
	if err := h.materialSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}

// === định mức vật tư phụ ===

// ListCompositions GET /materials/:id/compositions
func (h *MaterialHandler) ListCompositions(c *gin.Context) {
	items, err := h.materialSvc.ListCompositions(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, items)
}

// CreateComposition POST /materials/:id/compositions
func (h *MaterialHandler) CreateComposition(c *gin.Context) {
	var req service.CompositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.materialSvc.CreateComposition(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, item)
}

// UpdateComposition PUT /materials/:id/compositions/:itemId
func (h *MaterialHandler) UpdateComposition(c *gin.Context) {
	var req service.CompositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.materialSvc.UpdateComposition(c.Request.Context(), c.Param("id"), c.Param("itemId"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

// DeleteComposition DELETE /materials/:id/compositions/:itemId
func (h *MaterialHandler) DeleteComposition(c *gin.Context) {
	if err := h.materialSvc.DeleteComposition(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}
