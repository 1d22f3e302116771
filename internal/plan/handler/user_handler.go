package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/huynhhaigiang/cadico-api/internal/plan/service"
)

// UserHandler quản lý tài khoản (admin). The list endpoint also backs the
// next-approver pickers, filtered by role.
type UserHandler struct {
	authSvc *service.AuthService
}

func NewUserHandler(authSvc *service.AuthService) *UserHandler {
	return &UserHandler{authSvc: authSvc}
}

// List GET /users?role=
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.authSvc.ListUsers(c.Request.Context(), c.Query("role"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, users)
}

// Get GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, user)
}

// Create POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}

	user, err := h.authSvc.CreateUser(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, user)
}

// Update PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}

	user, err := h.authSvc.UpdateUser(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, user)
}

// Delete DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.authSvc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, nil)
}
