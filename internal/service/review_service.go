package service

import (
	"MathTutor-Review-Backend/internal/client"
	"MathTutor-Review-Backend/internal/model"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/goccy/go-json"
)

// DraftPatch 只包含允许用户修改的字段，nil 表示不修改。
type DraftPatch struct {
	Content      *string             `json:"content,omitempty"`
	QuestionType *model.QuestionType `json:"question_type,omitempty" binding:"omitempty,question_type"`
	Difficulty   *int                `json:"difficulty,omitempty" binding:"omitempty,min=1,max=5"`
	Tags         *string             `json:"tags,omitempty"`
}

type ReviewSnapshot struct {
	Canonical *model.ProblemRecord `json:"canonical,omitempty"`
	Draft     *model.ProblemRecord `json:"draft,omitempty"`
	Editing   bool                 `json:"editing"`
	Attempt   *model.OCRResult     `json:"attempt,omitempty"`
	Error     string               `json:"error,omitempty"`
}

// ResultStore 持有当前展示的题目（canonical）与编辑中的草稿。
// canonical 只会被服务端成功返回的记录替换，本地编辑只改草稿。
type ResultStore struct {
	api ProblemAPI

	mu        sync.Mutex
	canonical *model.ProblemRecord
	draft     *model.ProblemRecord
	editing   bool
	attempt   *model.OCRResult
	lastErr   string
}

func NewResultStore(api ProblemAPI) *ResultStore {
	return &ResultStore{api: api}
}

func (s *ResultStore) SetAttempt(result model.OCRResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt = &result
}

// ClearAttempt 丢弃上一次的识别结果，已加载的题目与草稿不受影响。
func (s *ResultStore) ClearAttempt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt = nil
}

func (s *ResultStore) Attempt() *model.OCRResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempt == nil {
		return nil
	}
	a := *s.attempt
	return &a
}

func (s *ResultStore) fail(err error) error {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	return err
}

// Load 拉取题目并覆盖未提交的草稿。题目不存在时清空当前记录。
func (s *ResultStore) Load(ctx context.Context, problemID string) (*model.ProblemRecord, error) {
	problemID = strings.TrimSpace(problemID)
	if problemID == "" {
		return nil, s.fail(&ValidationError{Field: "problem_id", Message: "题目ID不能为空"})
	}

	p, err := s.api.GetProblem(ctx, problemID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			s.mu.Lock()
			s.canonical = nil
			s.draft = nil
			s.editing = false
			s.mu.Unlock()
			log.Printf("[Review] 题目不存在: %s", problemID)
		} else {
			log.Printf("[Review] 获取题目详情失败: %s, 错误: %v", problemID, err)
		}
		return nil, s.fail(err)
	}

	rec := p.Clone()
	s.mu.Lock()
	s.canonical = &rec
	s.draft = nil
	s.editing = false
	s.lastErr = ""
	s.mu.Unlock()

	out := rec.Clone()
	return &out, nil
}

// BeginEdit 用 canonical 生成草稿；已在编辑中时不做任何事。
func (s *ResultStore) BeginEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canonical == nil {
		return ErrNoProblemLoaded
	}
	if s.editing {
		return nil
	}
	d := s.canonical.Clone()
	s.draft = &d
	s.editing = true
	return nil
}

func (s *ResultStore) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
	s.editing = false
	s.lastErr = ""
}

func (s *ResultStore) UpdateDraft(patch DraftPatch) error {
	if err := validateDraftPatch(patch); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing || s.draft == nil {
		return ErrNotEditing
	}
	if patch.Content != nil {
		s.draft.Content = *patch.Content
	}
	if patch.QuestionType != nil {
		s.draft.QuestionType = *patch.QuestionType
	}
	if patch.Difficulty != nil {
		d := *patch.Difficulty
		s.draft.Difficulty = &d
	}
	if patch.Tags != nil {
		t := *patch.Tags
		s.draft.Tags = &t
	}
	return nil
}

func draftUpdate(d model.ProblemRecord) model.ProblemUpdate {
	content := d.Content
	upd := model.ProblemUpdate{Content: &content}
	if d.QuestionType != "" {
		qt := d.QuestionType
		upd.QuestionType = &qt
	}
	if d.Difficulty != nil {
		diff := *d.Difficulty
		upd.Difficulty = &diff
	}
	if d.Tags != nil {
		tags := *d.Tags
		upd.Tags = &tags
	}
	return upd
}

// CommitEdit 提交草稿。失败时保留草稿并停留在编辑状态，可直接重试。
func (s *ResultStore) CommitEdit(ctx context.Context) (*model.ProblemRecord, error) {
	s.mu.Lock()
	if !s.editing || s.draft == nil || s.canonical == nil {
		s.mu.Unlock()
		return nil, ErrNotEditing
	}
	problemID := s.canonical.ProblemID
	upd := draftUpdate(*s.draft)
	s.mu.Unlock()

	updated, err := s.api.UpdateProblem(ctx, problemID, upd)
	if err != nil {
		log.Printf("[Review] 保存题目失败: %s, 错误: %v", problemID, err)
		return nil, s.fail(err)
	}

	rec := updated.Clone()
	s.mu.Lock()
	s.canonical = &rec
	s.draft = nil
	s.editing = false
	s.lastErr = ""
	s.mu.Unlock()
	log.Printf("[Review] 题目已保存: %s", problemID)

	out := rec.Clone()
	return &out, nil
}

// ChangeStatus 变更题目状态，archived 之后不可再变更。
func (s *ResultStore) ChangeStatus(ctx context.Context, next model.ProblemStatus) (*model.ProblemRecord, error) {
	if !next.Valid() {
		return nil, s.fail(&ValidationError{Field: "status", Message: fmt.Sprintf("未知的题目状态: %s", next)})
	}
	s.mu.Lock()
	if s.canonical == nil {
		s.mu.Unlock()
		return nil, ErrNoProblemLoaded
	}
	current := s.canonical.Status
	problemID := s.canonical.ProblemID
	s.mu.Unlock()

	if !current.CanTransitionTo(next) {
		return nil, s.fail(ErrArchived)
	}

	updated, err := s.api.UpdateProblem(ctx, problemID, model.ProblemUpdate{Status: &next})
	if err != nil {
		log.Printf("[Review] 变更题目状态失败: %s → %s, 错误: %v", problemID, next, err)
		return nil, s.fail(err)
	}

	rec := updated.Clone()
	s.mu.Lock()
	s.canonical = &rec
	s.lastErr = ""
	s.mu.Unlock()
	log.Printf("[Review] 题目状态已变更: %s %s → %s", problemID, current, rec.Status)

	out := rec.Clone()
	return &out, nil
}

func (s *ResultStore) ReRecognize(ctx context.Context) (json.RawMessage, error) {
	s.mu.Lock()
	if s.canonical == nil {
		s.mu.Unlock()
		return nil, ErrNoProblemLoaded
	}
	ref := s.canonical.OCRRecordID
	problemID := s.canonical.ProblemID
	s.mu.Unlock()

	if ref == nil {
		return nil, s.fail(&ValidationError{Field: "ocr_record_id", Message: "该题目没有关联的 OCR 记录"})
	}
	raw, err := s.api.ReRecognize(ctx, *ref)
	if err != nil {
		log.Printf("[Review] 重新识别失败: %s (OCR记录 %d), 错误: %v", problemID, *ref, err)
		return nil, s.fail(err)
	}
	return raw, nil
}

func (s *ResultStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	if s.canonical == nil {
		s.mu.Unlock()
		return ErrNoProblemLoaded
	}
	problemID := s.canonical.ProblemID
	s.mu.Unlock()

	if err := s.api.DeleteProblem(ctx, problemID); err != nil {
		log.Printf("[Review] 删除题目失败: %s, 错误: %v", problemID, err)
		return s.fail(err)
	}

	s.mu.Lock()
	s.canonical = nil
	s.draft = nil
	s.editing = false
	s.lastErr = ""
	s.mu.Unlock()
	log.Printf("[Review] 题目已删除: %s", problemID)
	return nil
}

func (s *ResultStore) Snapshot() ReviewSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := ReviewSnapshot{Editing: s.editing, Error: s.lastErr}
	if s.canonical != nil {
		c := s.canonical.Clone()
		snap.Canonical = &c
	}
	if s.draft != nil {
		d := s.draft.Clone()
		snap.Draft = &d
	}
	if s.attempt != nil {
		a := *s.attempt
		snap.Attempt = &a
	}
	return snap
}
