package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/huynhhaigiang/cadico-api/internal/plan/service"
)

// PlanHandler phương án thi công: hồ sơ, tab chi tiết, trình duyệt và
// phê duyệt
type PlanHandler struct {
	planSvc *service.PlanService
}

func NewPlanHandler(planSvc *service.PlanService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc}
}

// List GET /plans?search=&construction_id=&status=&approver=&created_by=
func (h *PlanHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search":          c.Query("search"),
		"construction_id": c.Query("construction_id"),
		"status":          c.Query("status"),
		"approver":        c.Query("approver"),
		"created_by":      c.Query("created_by"),
	}

	items, total, err := h.planSvc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	Success(c, ListResponse{
		Items: items,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	})
}

// Get GET /plans/:id
func (h *PlanHandler) Get(c *gin.Context) {
	plan, err := h.planSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, plan)
}

// Create POST /plans
func (h *PlanHandler) Create(c *gin.Context) {
	var req service.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	plan, err := h.planSvc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, plan)
}

// Update PUT /plans/:id
func (h *PlanHandler) Update(c *gin.Context) {
	var req service.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	plan, err := h.planSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, plan)
}

// Delete DELETE /plans/:id
func (h *PlanHandler) Delete(c *gin.Context) {
	if err := h.planSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}

// Submit POST /plans/:id/submit
func (h *PlanHandler) Submit(c *gin.Context) {
	var req service.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Vui lòng chọn người duyệt")
		return
	}
	plan, err := h.planSvc.Submit(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, plan)
}

// Approve PUT /plans/:id/approve
func (h *PlanHandler) Approve(c *gin.Context) {
	var req service.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	plan, err := h.planSvc.Approve(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, plan)
}

// === tab khối lượng giao khoán ===

func (h *PlanHandler) ListWorkloads(c *gin.Context) {
	items, total, err := h.planSvc.ListWorkloads(c.Request.Context(), c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": items, "total_amount": total})
}

func (h *PlanHandler) CreateWorkload(c *gin.Context) {
	var req service.WorkloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.planSvc.CreateWorkload(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, item)
}

func (h *PlanHandler) UpdateWorkload(c *gin.Context) {
	var req service.WorkloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.planSvc.UpdateWorkload(c.Request.Context(), c.Param("id"), c.Param("itemId"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *PlanHandler) DeleteWorkload(c *gin.Context) {
	if err := h.planSvc.DeleteWorkload(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}

// === tab chi phí thi công ===

func (h *PlanHandler) ListCosts(c *gin.Context) {
	items, total, err := h.planSvc.ListCosts(c.Request.Context(), c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": items, "total_amount": total})
}

func (h *PlanHandler) CreateCost(c *gin.Context) {
	var req service.CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.planSvc.CreateCost(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, item)
}

func (h *PlanHandler) UpdateCost(c *gin.Context) {
	var req service.CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.planSvc.UpdateCost(c.Request.Context(), c.Param("id"), c.Param("itemId"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *PlanHandler) DeleteCost(c *gin.Context) {
	if err := h.planSvc.DeleteCost(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}

// === tab chi phí khác ===

func (h *PlanHandler) ListOtherCosts(c *gin.Context) {
	items, total, err := h.planSvc.ListOtherCosts(c.Request.Context(), c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": items, "total_amount": total})
}

func (h *PlanHandler) CreateOtherCost(c *gin.Context) {
	var req service.OtherCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.planSvc.CreateOtherCost(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, item)
}

func (h *PlanHandler) UpdateOtherCost(c *gin.Context) {
	var req service.OtherCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.planSvc.UpdateOtherCost(c.Request.Context(), c.Param("id"), c.Param("itemId"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *PlanHandler) DeleteOtherCost(c *gin.Context) {
	if err := h.planSvc.DeleteOtherCost(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}

// === tab vật tư ===

func (h *PlanHandler) ListMaterials(c *gin.Context) {
	items, total, err := h.planSvc.ListMaterials(c.Request.Context(), c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": items, "total_amount": total})
}

func (h *PlanHandler) CreateMaterial(c *gin.Context) {
	var req service.PlanMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.planSvc.CreateMaterial(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, item)
}

func (h *PlanHandler) UpdateMaterial(c *gin.Context) {
	var req service.PlanMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.planSvc.UpdateMaterial(c.Request.Context(), c.Param("id"), c.Param("itemId"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *PlanHandler) DeleteMaterial(c *gin.Context) {
	if err := h.planSvc.DeleteMaterial(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}

// === tab tiến độ ===

func (h *PlanHandler) ListProgressLogs(c *gin.Context) {
	items, err := h.planSvc.ListProgressLogs(c.Request.Context(), c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, items)
}

func (h *PlanHandler) CreateProgressLog(c *gin.Context) {
	var req service.ProgressLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.planSvc.CreateProgressLog(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, item)
}

func (h *PlanHandler) UpdateProgressLog(c *gin.Context) {
	var req service.ProgressLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.planSvc.UpdateProgressLog(c.Request.Context(), c.Param("id"), c.Param("itemId"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *PlanHandler) DeleteProgressLog(c *gin.Context) {
	if err := h.planSvc.DeleteProgressLog(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}
