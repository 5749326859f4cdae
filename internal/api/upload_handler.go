package api

import (
	"MathTutor-Review-Backend/internal/model"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetUpload(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ws.Upload.Snapshot())
}

func (h *Handler) UploadImage(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.badRequest(c, err)
		return
	}
	defer f.Close()
	// 多读一个字节，超限文件由 Upload 的校验拒绝
	data, err := io.ReadAll(io.LimitReader(f, h.maxFileSize+1))
	if err != nil {
		h.badRequest(c, err)
		return
	}

	img := model.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}
	result, err := ws.Upload.Upload(c.Request.Context(), img)
	if err != nil {
		h.handleError(c, err, "图片识别失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "upload": ws.Upload.Snapshot()})
}

func (h *Handler) ResetUpload(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	if err := ws.Upload.Reset(); err != nil {
		h.handleError(c, err, "重置上传失败")
		return
	}
	c.JSON(http.StatusOK, ws.Upload.Snapshot())
}
