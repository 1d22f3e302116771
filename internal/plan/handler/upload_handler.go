package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/huynhhaigiang/cadico-api/internal/storage"
)

const maxUploadSize = 20 << 20 // 20MB

// UploadHandler tải file đính kèm (scan hợp đồng, hình ảnh hiện trường)
type UploadHandler struct {
	store *storage.Client
}

func NewUploadHandler(store *storage.Client) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload POST /upload (multipart, field "file")
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.store == nil {
		InternalError(c, "Chưa cấu hình lưu trữ file")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "Thiếu file upload")
		return
	}
	if fileHeader.Size > maxUploadSize {
		BadRequest(c, "File vượt quá kích thước cho phép (20MB)")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "Không đọc được file: "+err.Error())
		return
	}
	defer f.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	objectName, err := h.store.Upload(c.Request.Context(), fileHeader.Filename, f, fileHeader.Size, contentType)
	if err != nil {
		InternalError(c, "Upload thất bại: "+err.Error())
		return
	}

	url, err := h.store.PresignedURL(c.Request.Context(), objectName, fileHeader.Filename, 24*time.Hour)
	if err != nil {
		InternalError(c, "Tạo liên kết tải về thất bại: "+err.Error())
		return
	}

	Created(c, gin.H{
		"object_name": objectName,
		"file_name":   fileHeader.Filename,
		"url":         url,
	})
}
