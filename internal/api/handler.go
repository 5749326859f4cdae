package api

import (
	"MathTutor-Review-Backend/internal/client"
	"MathTutor-Review-Backend/internal/model"
	"MathTutor-Review-Backend/internal/repository"
	"MathTutor-Review-Backend/internal/service"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	workspaces  *service.WorkspaceManager
	labels      *repository.LabelRepository
	maxFileSize int64
}

func NewHandler(workspaces *service.WorkspaceManager, labels *repository.LabelRepository, maxFileSize int64) *Handler {
	if maxFileSize <= 0 {
		maxFileSize = service.DefaultMaxFileSize
	}
	return &Handler{workspaces: workspaces, labels: labels, maxFileSize: maxFileSize}
}

// ErrorStatus 把领域错误映射为 HTTP 状态码。
func ErrorStatus(err error) int {
	var ve *service.ValidationError
	var te *client.TransportError
	var se *client.ServiceError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, client.ErrNotFound),
		errors.Is(err, service.ErrWorkspaceNotFound),
		errors.Is(err, service.ErrWorkspaceClosed):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUploadInFlight),
		errors.Is(err, service.ErrNotEditing),
		errors.Is(err, service.ErrNoProblemLoaded),
		errors.Is(err, service.ErrArchived),
		errors.Is(err, service.ErrSuperseded):
		return http.StatusConflict
	case errors.As(err, &te):
		if te.Timeout() {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case errors.As(err, &se):
		if se.StatusCode == http.StatusBadRequest || se.StatusCode == http.StatusUnprocessableEntity {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) handleError(c *gin.Context, err error, contextMsg string) {
	status := ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[API] %s %s: %s: %v", c.Request.Method, c.FullPath(), contextMsg, err)
	}
	c.JSON(status, gin.H{
		"error":   contextMsg,
		"details": err.Error(),
	})
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + err.Error()})
}

// workspace 取出路径中的工作区；不存在时已写出响应并返回 false。
func (h *Handler) workspace(c *gin.Context) (*service.Workspace, bool) {
	ws, err := h.workspaces.Get(c.Param("id"))
	if err != nil {
		h.handleError(c, err, "工作区不可用")
		return nil, false
	}
	return ws, true
}

type LabeledProblem struct {
	model.ProblemRecord
	QuestionTypeLabel string                  `json:"question_type_label"`
	DifficultyLabel   string                  `json:"difficulty_label"`
	QualityLabel      repository.QualityLabel `json:"quality_label"`
}

func (h *Handler) label(p *model.ProblemRecord) *LabeledProblem {
	if p == nil {
		return nil
	}
	return &LabeledProblem{
		ProblemRecord:     *p,
		QuestionTypeLabel: h.labels.QuestionTypeLabel(p.QuestionType),
		DifficultyLabel:   h.labels.DifficultyLabel(p.DifficultyValue()),
		QualityLabel:      h.labels.QualityLabel(p.QualityScore),
	}
}

func (h *Handler) labelAll(items []model.ProblemRecord) []LabeledProblem {
	out := make([]LabeledProblem, 0, len(items))
	for i := range items {
		out = append(out, *h.label(&items[i]))
	}
	return out
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP", "workspaces": h.workspaces.Len()})
}

func (h *Handler) CreateWorkspace(c *gin.Context) {
	ws := h.workspaces.Create()
	c.JSON(http.StatusCreated, gin.H{"id": ws.ID, "created_at": ws.CreatedAt})
}

func (h *Handler) CloseWorkspace(c *gin.Context) {
	if err := h.workspaces.Remove(c.Param("id")); err != nil {
		h.handleError(c, err, "关闭工作区失败")
		return
	}
	c.Status(http.StatusNoContent)
}
