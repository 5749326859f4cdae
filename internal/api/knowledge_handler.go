package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + name})
		return 0, false
	}
	return id, true
}

func (h *Handler) ListCurriculums(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	list, err := ws.Knowledge.FetchCurriculums(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "获取课程列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"curriculums": list})
}

func (h *Handler) FindCurriculum(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	cur, found := ws.Knowledge.FindCurriculum(c.Query("grade"), c.Query("semester"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "未找到对应的课程"})
		return
	}
	c.JSON(http.StatusOK, cur)
}

// GetCurriculum 在 tree=true 时同时拉取全部模块详情。
func (h *Handler) GetCurriculum(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	id, ok := h.idParam(c, "cid")
	if !ok {
		return
	}
	fetch := ws.Knowledge.FetchCurriculum
	if c.Query("tree") == "true" {
		fetch = ws.Knowledge.FetchCurriculumTree
	}
	cur, err := fetch(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "获取课程详情失败")
		return
	}
	c.JSON(http.StatusOK, cur)
}

func (h *Handler) GetModule(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	id, ok := h.idParam(c, "mid")
	if !ok {
		return
	}
	m, err := ws.Knowledge.FetchModule(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "获取模块详情失败")
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) GetTopic(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	id, ok := h.idParam(c, "tid")
	if !ok {
		return
	}
	t, err := ws.Knowledge.FetchTopic(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "获取专题详情失败")
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) KnowledgeHealth(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	status, err := ws.Knowledge.Health(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "知识库服务不可用")
		return
	}
	c.JSON(http.StatusOK, status)
}
