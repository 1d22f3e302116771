package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/huynhhaigiang/cadico-api/internal/plan/repository"
	"github.com/huynhhaigiang/cadico-api/internal/plan/service"
	"github.com/huynhhaigiang/cadico-api/internal/storage"
)

// Handlers bundles the plan-side HTTP handlers.
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Catalog      *CatalogHandler
	Plan         *PlanHandler
	Export       *ExportHandler
	Notification *NotificationHandler
	SSE          *SSEHandler
	Upload       *UploadHandler
}

func NewHandlers(svcs *service.Services, store *storage.Client) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(svcs.Auth),
		User:         NewUserHandler(svcs.Auth),
		Catalog:      NewCatalogHandler(svcs.Catalog),
		Plan:         NewPlanHandler(svcs.Plan),
		Export:       NewExportHandler(svcs.Export),
		Notification: NewNotificationHandler(svcs.Notification),
		SSE:          NewSSEHandler(),
		Upload:       NewUploadHandler(store),
	}
}

// === response helpers ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

// serviceError maps a service failure to 404 for missing records and 400
// for everything else the service rejected.
func serviceError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		NotFound(c, "Không tìm thấy dữ liệu")
		return
	}
	BadRequest(c, err.Error())
}
