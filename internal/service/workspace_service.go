package service

import (
	"MathTutor-Review-Backend/internal/model"
	"MathTutor-Review-Backend/internal/repository"
	"context"
	"log"
	"time"

	uuid "github.com/satori/go.uuid"
)

const DefaultWorkspaceTTL = 30 * time.Minute

// Workspace 对应一个浏览器会话：上传、复核、题库目录与课程体系的状态都归属于它。
type Workspace struct {
	ID        string
	CreatedAt time.Time

	Upload    *UploadCoordinator
	Review    *ResultStore
	Directory *ProblemDirectory
	Knowledge *KnowledgeStore
}

// NewWorkspace 组装一个工作区；识别成功后结果会交给 Review。
func NewWorkspace(id string, problems ProblemAPI, knowledge KnowledgeAPI, opts WorkspaceOptions) *Workspace {
	ws := &Workspace{
		ID:        id,
		CreatedAt: time.Now(),
		Review:    NewResultStore(problems),
		Directory: NewProblemDirectory(problems, opts.PageSize),
		Knowledge: NewKnowledgeStore(knowledge),
	}
	ws.Upload = NewUploadCoordinator(problems, opts.Upload, func(problemID string, result model.OCRResult) {
		ws.Review.SetAttempt(result)
		log.Printf("[Workspace] %s 新识别题目: %s", id, problemID)
	})
	ws.Upload.OnReset(ws.Review.ClearAttempt)
	return ws
}

func (w *Workspace) Close() {
	w.Upload.Close()
}

type WorkspaceOptions struct {
	Upload   UploadOptions
	PageSize int
	IdleTTL  time.Duration
}

type WorkspaceManager struct {
	problems  ProblemAPI
	knowledge KnowledgeAPI
	opts      WorkspaceOptions
	sessions  *repository.SessionRepository[*Workspace]
}

func NewWorkspaceManager(problems ProblemAPI, knowledge KnowledgeAPI, opts WorkspaceOptions) *WorkspaceManager {
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = DefaultWorkspaceTTL
	}
	return &WorkspaceManager{
		problems:  problems,
		knowledge: knowledge,
		opts:      opts,
		sessions: repository.NewSessionRepository(opts.IdleTTL, func(id string, ws *Workspace) {
			log.Printf("[Workspace] %s 空闲超时，已关闭。", id)
			ws.Close()
		}),
	}
}

func (m *WorkspaceManager) Create() *Workspace {
	id := uuid.NewV4().String()
	ws := NewWorkspace(id, m.problems, m.knowledge, m.opts)
	m.sessions.Put(id, ws)
	log.Printf("[Workspace] 创建工作区: %s", id)
	return ws
}

func (m *WorkspaceManager) Get(id string) (*Workspace, error) {
	ws, ok := m.sessions.Get(id)
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	return ws, nil
}

// Remove 关闭并移除工作区，进行中的识别请求会被取消。
func (m *WorkspaceManager) Remove(id string) error {
	ws, ok := m.sessions.Delete(id)
	if !ok {
		return ErrWorkspaceNotFound
	}
	ws.Close()
	log.Printf("[Workspace] 关闭工作区: %s", id)
	return nil
}

func (m *WorkspaceManager) Len() int {
	return m.sessions.Len()
}

func (m *WorkspaceManager) EvictIdle() []string {
	return m.sessions.EvictIdle()
}

// SetClock 仅供测试替换时间源。
func (m *WorkspaceManager) SetClock(now func() time.Time) {
	m.sessions.SetClock(now)
}

func (m *WorkspaceManager) RunJanitor(ctx context.Context) {
	interval := m.opts.IdleTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	m.sessions.RunJanitor(ctx, interval)
}
