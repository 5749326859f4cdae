package service

import (
	"MathTutor-Review-Backend/internal/model"
	"context"
	"log"
	"slices"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

const moduleFetchConcurrency = 4

type KnowledgeSnapshot struct {
	Curriculums       []model.Curriculum `json:"curriculums"`
	CurrentCurriculum *model.Curriculum  `json:"current_curriculum,omitempty"`
	CurrentModule     *model.Module      `json:"current_module,omitempty"`
	CurrentTopic      *model.Topic       `json:"current_topic,omitempty"`
	Loading           bool               `json:"loading"`
	Error             string             `json:"error,omitempty"`
}

// KnowledgeStore 是单个工作区的课程体系缓存，不在工作区之间共享。
type KnowledgeStore struct {
	api KnowledgeAPI

	mu                sync.Mutex
	curriculums       []model.Curriculum
	currentCurriculum *model.Curriculum
	currentModule     *model.Module
	currentTopic      *model.Topic
	loading           bool
	lastErr           string
}

func NewKnowledgeStore(api KnowledgeAPI) *KnowledgeStore {
	return &KnowledgeStore{api: api}
}

func (s *KnowledgeStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

// finish 结束一次加载；err 非空时记录错误并返回它。
func (s *KnowledgeStore) finish(err error, apply func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		log.Printf("[Knowledge] 加载失败: %v", err)
		return err
	}
	apply()
	return nil
}

func (s *KnowledgeStore) FetchCurriculums(ctx context.Context) ([]model.Curriculum, error) {
	s.begin()
	list, err := s.api.ListCurriculums(ctx)
	if err := s.finish(err, func() { s.curriculums = slices.Clone(list) }); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *KnowledgeStore) FetchCurriculum(ctx context.Context, id int64) (*model.Curriculum, error) {
	s.begin()
	cur, err := s.api.GetCurriculum(ctx, id)
	if err := s.finish(err, func() { s.currentCurriculum = cur }); err != nil {
		return nil, err
	}
	return cur, nil
}

func (s *KnowledgeStore) FetchModule(ctx context.Context, id int64) (*model.Module, error) {
	s.begin()
	m, err := s.api.GetModule(ctx, id)
	if err := s.finish(err, func() { s.currentModule = m }); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *KnowledgeStore) FetchTopic(ctx context.Context, id int64) (*model.Topic, error) {
	s.begin()
	t, err := s.api.GetTopic(ctx, id)
	if err := s.finish(err, func() { s.currentTopic = t }); err != nil {
		return nil, err
	}
	return t, nil
}

// FetchCurriculumTree 拉取课程后并发刷新其全部模块（含专题与知识点）。
func (s *KnowledgeStore) FetchCurriculumTree(ctx context.Context, id int64) (*model.Curriculum, error) {
	s.begin()
	cur, err := s.api.GetCurriculum(ctx, id)
	if err != nil {
		return nil, s.finish(err, nil)
	}

	p := pool.NewWithResults[model.Module]().
		WithContext(ctx).
		WithMaxGoroutines(moduleFetchConcurrency).
		WithCancelOnError()
	for _, m := range cur.Modules {
		moduleID := m.ID
		p.Go(func(ctx context.Context) (model.Module, error) {
			mod, err := s.api.GetModule(ctx, moduleID)
			if err != nil {
				return model.Module{}, err
			}
			return *mod, nil
		})
	}
	modules, err := p.Wait()
	if err != nil {
		return nil, s.finish(err, nil)
	}

	byID := make(map[int64]model.Module, len(modules))
	for _, m := range modules {
		byID[m.ID] = m
	}
	for i, m := range cur.Modules {
		if full, ok := byID[m.ID]; ok {
			cur.Modules[i] = full
		}
	}
	log.Printf("[Knowledge] 课程 %d 已加载 %d 个模块。", id, len(modules))

	_ = s.finish(nil, func() { s.currentCurriculum = cur })
	return cur, nil
}

func (s *KnowledgeStore) FindCurriculum(grade, semester string) (*model.Curriculum, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.curriculums {
		c := s.curriculums[i]
		if c.Grade == grade && (semester == "" || c.Semester == semester) {
			return &c, true
		}
	}
	return nil, false
}

func (s *KnowledgeStore) Health(ctx context.Context) (map[string]any, error) {
	return s.api.Health(ctx)
}

func (s *KnowledgeStore) Snapshot() KnowledgeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return KnowledgeSnapshot{
		Curriculums:       slices.Clone(s.curriculums),
		CurrentCurriculum: s.currentCurriculum,
		CurrentModule:     s.currentModule,
		CurrentTopic:      s.currentTopic,
		Loading:           s.loading,
		Error:             s.lastErr,
	}
}
