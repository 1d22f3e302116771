package handler

import (
	"fmt"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/huynhhaigiang/cadico-api/internal/plan/service"
)

// ExportHandler xuất phương án ra Excel
type ExportHandler struct {
	exportSvc *service.ExportService
}

func NewExportHandler(exportSvc *service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportPlan GET /plans/:id/export
func (h *ExportHandler) ExportPlan(c *gin.Context) {
	f, filename, err := h.exportSvc.ExportPlan(c.Request.Context(), c.Param("id"))
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
