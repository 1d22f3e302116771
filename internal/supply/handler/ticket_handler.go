package handler

import (
	"fmt"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/huynhhaigiang/cadico-api/internal/supply/service"
)

// TicketHandler phiếu cung ứng vật tư
type TicketHandler struct {
	ticketSvc *service.TicketService
	exportSvc *service.ExportService
}

func NewTicketHandler(ticketSvc *service.TicketService, exportSvc *service.ExportService) *TicketHandler {
	return &TicketHandler{ticketSvc: ticketSvc, exportSvc: exportSvc}
}

// List GET /supply-tickets?search=&construction_id=&status=&approver=&created_by=
func (h *TicketHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search":          c.Query("search"),
		"construction_id": c.Query("construction_id"),
		"status":          c.Query("status"),
		"approver":        c.Query("approver"),
		"created_by":      c.Query("created_by"),
	}

	items, total, err := h.ticketSvc.List(c.Request.Context(), page, pageSize, filters)
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

// Get GET /supply-tickets/:id
func (h *TicketHandler) Get(c *gin.Context) {
	ticket, err := h.ticketSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, ticket)
}

// Create POST /supply-tickets
func (h *TicketHandler) Create(c *gin.Context) {
	var req service.TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	ticket, err := h.ticketSvc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, ticket)
}

// Update PUT /supply-tickets/:id
func (h *TicketHandler) Update(c *gin.Context) {
	var req service.TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	ticket, err := h.ticketSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, ticket)
}

// Delete DELETE /supply-tickets/:id
func (h *TicketHandler) Delete(c *gin.Context) {
	if err := h.ticketSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}

// Submit POST /supply-tickets/:id/submit
func (h *TicketHandler) Submit(c *gin.Context) {
	var req service.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Vui lòng chọn người duyệt")
		return
	}
	ticket, err := h.ticketSvc.Submit(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, ticket)
}

// Approve PUT /supply-tickets/:id/approve
func (h *TicketHandler) Approve(c *gin.Context) {
	var req service.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	ticket, err := h.ticketSvc.Approve(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, ticket)
}

// === dòng vật tư ===

// ListItems GET /supply-tickets/:id/items
func (h *TicketHandler) ListItems(c *gin.Context) {
	items, totals, err := h.ticketSvc.ListItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": items, "totals": totals})
}

// CreateItem POST /supply-tickets/:id/items
func (h *TicketHandler) CreateItem(c *gin.Context) {
	var req service.TicketItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.ticketSvc.CreateItem(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, item)
}

// UpdateItem PUT /supply-tickets/:id/items/:itemId
func (h *TicketHandler) UpdateItem(c *gin.Context) {
	var req service.TicketItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	item, err := h.ticketSvc.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, item)
}

// DeleteItem DELETE /supply-tickets/:id/items/:itemId
func (h *TicketHandler) DeleteItem(c *gin.Context) {
	if err := h.ticketSvc.DeleteItem(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}

// Export GET /supply-tickets/:id/export
func (h *TicketHandler) Export(c *gin.Context) {
	f, filename, err := h.exportSvc.ExportTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "Xuất file thất bại: "+err.Error())
	}
}
