package api

import (
	"MathTutor-Review-Backend/internal/model"
	"MathTutor-Review-Backend/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PageQuery struct {
	Page   int                 `form:"page" binding:"omitempty,min=1"`
	Size   int                 `form:"size" binding:"omitempty,min=1,max=100"`
	Status model.ProblemStatus `form:"status" binding:"omitempty,problem_status"`
}

type FilterQuery struct {
	Query        string                `form:"q"`
	Difficulty   []int                 `form:"difficulty" binding:"omitempty,dive,min=1,max=5"`
	Source       []string              `form:"source"`
	Status       []model.ProblemStatus `form:"status" binding:"omitempty,dive,problem_status"`
	QuestionType []model.QuestionType  `form:"question_type" binding:"omitempty,dive,question_type"`
}

func (q FilterQuery) Filter() model.ProblemFilter {
	return model.ProblemFilter{
		Query:        q.Query,
		Difficulty:   q.Difficulty,
		Source:       q.Source,
		Status:       q.Status,
		QuestionType: q.QuestionType,
	}
}

func (h *Handler) directoryJSON(c *gin.Context, snap service.DirectorySnapshot) {
	c.JSON(http.StatusOK, gin.H{
		"items":    h.labelAll(snap.Items),
		"page":     snap.Page,
		"status":   snap.Status,
		"has_more": snap.HasMore,
		"loading":  snap.Loading,
		"error":    snap.Error,
	})
}

func (h *Handler) FetchPage(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}
	snap, err := ws.Directory.FetchPage(c.Request.Context(), q.Page, q.Size, q.Status)
	if err != nil {
		h.handleError(c, err, "获取题目列表失败")
		return
	}
	h.directoryJSON(c, snap)
}

func (h *Handler) LoadMore(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	_, snap, err := ws.Directory.LoadMore(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "加载更多失败")
		return
	}
	h.directoryJSON(c, snap)
}

func (h *Handler) FilterProblems(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	var q FilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}
	items := ws.Directory.ApplyFilters(q.Filter())
	c.JSON(http.StatusOK, gin.H{"items": h.labelAll(items), "count": len(items)})
}

func (h *Handler) DirectoryStats(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ws.Directory.Stats())
}
