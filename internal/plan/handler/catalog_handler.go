package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/huynhhaigiang/cadico-api/internal/plan/service"
)

// CatalogHandler danh mục dùng chung. All list endpoints take ?search=
// which matches code/name ignoring case and Vietnamese diacritics.
type CatalogHandler struct {
	catalogSvc *service.CatalogService
}

func NewCatalogHandler(catalogSvc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// === công trình ===

func (h *CatalogHandler) ListConstructions(c *gin.Context) {
	items, err := h.catalogSvc.ListConstructions(c.Request.Context(), c.Query("search"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, items)
}

func (h *CatalogHandler) GetConstruction(c *gin.Context) {
	item, err := h.catalogSvc.GetConstruction(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *CatalogHandler) CreateConstruction(c *gin.Context) {
	var req service.ConstructionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.catalogSvc.CreateConstruction(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, item)
}

func (h *CatalogHandler) UpdateConstruction(c *gin.Context) {
	var req service.ConstructionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.catalogSvc.UpdateConstruction(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *CatalogHandler) DeleteConstruction(c *gin.Context) {
	if err := h.catalogSvc.DeleteConstruction(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}

// === chủ đầu tư ===

func (h *CatalogHandler) ListInvestors(c *gin.Context) {
	items, err := h.catalogSvc.ListInvestors(c.Request.Context(), c.Query("search"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, items)
}

func (h *CatalogHandler) GetInvestor(c *gin.Context) {
	item, err := h.catalogSvc.GetInvestor(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *CatalogHandler) CreateInvestor(c *gin.Context) {
	var req service.InvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.catalogSvc.CreateInvestor(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, item)
}

func (h *CatalogHandler) UpdateInvestor(c *gin.Context) {
	var req service.InvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.catalogSvc.UpdateInvestor(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *CatalogHandler) DeleteInvestor(c *gin.Context) {
	if err := h.catalogSvc.DeleteInvestor(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}

// === đơn vị tính ===

func (h *CatalogHandler) ListUnits(c *gin.Context) {
	items, err := h.catalogSvc.ListUnits(c.Request.Context(), c.Query("search"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, items)
}

func (h *CatalogHandler) GetUnit(c *gin.Context) {
	item, err := h.catalogSvc.GetUnit(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *CatalogHandler) CreateUnit(c *gin.Context) {
	var req service.UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.catalogSvc.CreateUnit(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, item)
}

func (h *CatalogHandler) UpdateUnit(c *gin.Context) {
	var req service.UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.catalogSvc.UpdateUnit(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *CatalogHandler) DeleteUnit(c *gin.Context) {
	if err := h.catalogSvc.DeleteUnit(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}

// === loại công tác ===

func (h *CatalogHandler) ListWorkTypes(c *gin.Context) {
	items, err := h.catalogSvc.ListWorkTypes(c.Request.Context(), c.Query("search"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, items)
}

func (h *CatalogHandler) GetWorkType(c *gin.Context) {
	item, err := h.catalogSvc.GetWorkType(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *CatalogHandler) CreateWorkType(c *gin.Context) {
	var req service.WorkTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.catalogSvc.CreateWorkType(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, item)
}

func (h *CatalogHandler) UpdateWorkType(c *gin.Context) {
	var req service.WorkTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.catalogSvc.UpdateWorkType(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *CatalogHandler) DeleteWorkType(c *gin.Context) {
	if err := h.catalogSvc.DeleteWorkType(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}

// === hạng mục công việc ===

func (h *CatalogHandler) ListWorkItems(c *gin.Context) {
	items, err := h.catalogSvc.ListWorkItems(c.Request.Context(), c.Query("search"), c.Query("work_type_id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, items)
}

func (h *CatalogHandler) GetWorkItem(c *gin.Context) {
	item, err := h.catalogSvc.GetWorkItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *CatalogHandler) CreateWorkItem(c *gin.Context) {
	var req service.WorkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.catalogSvc.CreateWorkItem(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, item)
}

func (h *CatalogHandler) UpdateWorkItem(c *gin.Context) {
	var req service.WorkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.catalogSvc.UpdateWorkItem(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *CatalogHandler) DeleteWorkItem(c *gin.Context) {
	if err := h.catalogSvc.DeleteWorkItem(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}

// === đội thi công ===

func (h *CatalogHandler) ListTeams(c *gin.Context) {
	items, err := h.catalogSvc.ListTeams(c.Request.Context(), c.Query("search"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, items)
}

func (h *CatalogHandler) GetTeam(c *gin.Context) {
	item, err := h.catalogSvc.GetTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *CatalogHandler) CreateTeam(c *gin.Context) {
	var req service.TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.catalogSvc.CreateTeam(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, item)
}

func (h *CatalogHandler) UpdateTeam(c *gin.Context) {
	var req service.TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.catalogSvc.UpdateTeam(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

func (h *CatalogHandler) DeleteTeam(c *gin.Context) {
	if err := h.catalogSvc.DeleteTeam(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}
