package api

import (
	"MathTutor-Review-Backend/internal/model"
	"MathTutor-Review-Backend/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type LoadProblemRequest struct {
	ProblemID string `json:"problem_id" binding:"required"`
}

type ChangeStatusRequest struct {
	Status model.ProblemStatus `json:"status" binding:"required,problem_status"`
}

type reviewResponse struct {
	Canonical *LabeledProblem  `json:"canonical"`
	Draft     *LabeledProblem  `json:"draft"`
	Editing   bool             `json:"editing"`
	Attempt   *model.OCRResult `json:"attempt,omitempty"`
	Quality   any              `json:"attempt_quality,omitempty"`
	Error     string           `json:"error,omitempty"`
}

func (h *Handler) reviewJSON(c *gin.Context, ws *service.Workspace) {
	snap := ws.Review.Snapshot()
	resp := reviewResponse{
		Canonical: h.label(snap.Canonical),
		Draft:     h.label(snap.Draft),
		Editing:   snap.Editing,
		Attempt:   snap.Attempt,
		Error:     snap.Error,
	}
	if snap.Attempt != nil && snap.Attempt.QualityAssessment != nil {
		resp.Quality = h.labels.QualityLabel(model.QualityScore(snap.Attempt.QualityAssessment.Grade))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetReview(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	h.reviewJSON(c, ws)
}

func (h *Handler) LoadProblem(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	var req LoadProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if _, err := ws.Review.Load(c.Request.Context(), req.ProblemID); err != nil {
		h.handleError(c, err, "获取题目详情失败")
		return
	}
	h.reviewJSON(c, ws)
}

func (h *Handler) BeginEdit(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	if err := ws.Review.BeginEdit(); err != nil {
		h.handleError(c, err, "无法进入编辑")
		return
	}
	h.reviewJSON(c, ws)
}

func (h *Handler) CancelEdit(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	ws.Review.CancelEdit()
	h.reviewJSON(c, ws)
}

func (h *Handler) UpdateDraft(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	var patch service.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := ws.Review.UpdateDraft(patch); err != nil {
		h.handleError(c, err, "更新草稿失败")
		return
	}
	h.reviewJSON(c, ws)
}

func (h *Handler) CommitEdit(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	if _, err := ws.Review.CommitEdit(c.Request.Context()); err != nil {
		h.handleError(c, err, "保存题目失败")
		return
	}
	h.reviewJSON(c, ws)
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if _, err := ws.Review.ChangeStatus(c.Request.Context(), req.Status); err != nil {
		h.handleError(c, err, "变更题目状态失败")
		return
	}
	h.reviewJSON(c, ws)
}

func (h *Handler) ReRecognize(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	raw, err := ws.Review.ReRecognize(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "重新识别失败")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func (h *Handler) DeleteProblem(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	if err := ws.Review.Delete(c.Request.Context()); err != nil {
		h.handleError(c, err, "删除题目失败")
		return
	}
	c.Status(http.StatusNoContent)
}
