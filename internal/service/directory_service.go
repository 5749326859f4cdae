package service

import (
	"MathTutor-Review-Backend/internal/model"
	"context"
	"log"
	"slices"
	"strings"
	"sync"
)

const DefaultPageSize = 20

type PageState struct {
	Current  int `json:"current"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

func (p PageState) HasMore() bool {
	return p.Current > 0 && p.Current*p.PageSize < p.Total
}

type DirectoryStats struct {
	Total     int `json:"total"`
	Loaded    int `json:"loaded"`
	OCR       int `json:"ocr"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

type DirectorySnapshot struct {
	Items   []model.ProblemRecord `json:"items"`
	Page    PageState             `json:"page"`
	Status  model.ProblemStatus   `json:"status,omitempty"`
	HasMore bool                  `json:"has_more"`
	Loading bool                  `json:"loading"`
	Error   string                `json:"error,omitempty"`
}

// ProblemDirectory 维护服务端分页窗口，筛选只作用于已加载的条目。
// 每次请求递增 generation，过期的响应被丢弃并返回 ErrSuperseded。
type ProblemDirectory struct {
	api         ProblemAPI
	defaultSize int

	mu         sync.Mutex
	items      []model.ProblemRecord
	page       PageState
	status     model.ProblemStatus
	generation uint64
	loading    bool
	lastErr    string
}

func NewProblemDirectory(api ProblemAPI, defaultSize int) *ProblemDirectory {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	return &ProblemDirectory{api: api, defaultSize: defaultSize}
}

// FetchPage 用服务端返回的第 page 页替换当前条目与分页计数。
func (d *ProblemDirectory) FetchPage(ctx context.Context, page, size int, status model.ProblemStatus) (DirectorySnapshot, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = d.defaultSize
	}

	d.mu.Lock()
	d.generation++
	gen := d.generation
	d.loading = true
	d.mu.Unlock()

	resp, err := d.api.ListProblems(ctx, model.ProblemQuery{Page: page, Size: size, Status: status})

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.generation {
		log.Printf("[Directory] 丢弃过期的第 %d 页响应", page)
		return d.snapshotLocked(), ErrSuperseded
	}
	d.loading = false
	if err != nil {
		d.lastErr = err.Error()
		log.Printf("[Directory] 获取题目列表失败 (page=%d size=%d): %v", page, size, err)
		return d.snapshotLocked(), err
	}

	d.items = slices.Clone(resp.Items)
	d.page = PageState{
		Current:  firstPositive(resp.Page, page),
		PageSize: firstPositive(resp.Size, size),
		Total:    resp.Total,
	}
	d.status = status
	d.lastErr = ""
	log.Printf("[Directory] 已加载第 %d 页，共 %d 条，服务端总数 %d。", d.page.Current, len(d.items), d.page.Total)
	return d.snapshotLocked(), nil
}

// LoadMore 在 current*pageSize < total 时追加下一页，否则不做任何事并返回 false。
func (d *ProblemDirectory) LoadMore(ctx context.Context) (bool, DirectorySnapshot, error) {
	d.mu.Lock()
	if !d.page.HasMore() {
		snap := d.snapshotLocked()
		d.mu.Unlock()
		return false, snap, nil
	}
	next := d.page.Current + 1
	size := d.page.PageSize
	status := d.status
	d.generation++
	gen := d.generation
	d.loading = true
	d.mu.Unlock()

	resp, err := d.api.ListProblems(ctx, model.ProblemQuery{Page: next, Size: size, Status: status})

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.generation {
		log.Printf("[Directory] 丢弃过期的追加页 %d 响应", next)
		return false, d.snapshotLocked(), ErrSuperseded
	}
	d.loading = false
	if err != nil {
		d.lastErr = err.Error()
		log.Printf("[Directory] 加载更多失败 (page=%d): %v", next, err)
		return false, d.snapshotLocked(), err
	}

	d.items = append(d.items, resp.Items...)
	d.page.Current = next
	d.page.Total = resp.Total
	d.lastErr = ""
	return true, d.snapshotLocked(), nil
}

func (d *ProblemDirectory) ApplyFilters(f model.ProblemFilter) []model.ProblemRecord {
	d.mu.Lock()
	items := slices.Clone(d.items)
	d.mu.Unlock()
	return FilterProblems(items, f)
}

func (d *ProblemDirectory) Stats() DirectoryStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	st := DirectoryStats{Total: d.page.Total, Loaded: len(d.items)}
	for _, p := range d.items {
		if p.Source == model.SourceOCR {
			st.OCR++
		}
		switch p.Status {
		case model.StatusPending:
			st.Pending++
		case model.StatusCompleted:
			st.Completed++
		}
	}
	return st
}

func (d *ProblemDirectory) Snapshot() DirectorySnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *ProblemDirectory) snapshotLocked() DirectorySnapshot {
	return DirectorySnapshot{
		Items:   slices.Clone(d.items),
		Page:    d.page,
		Status:  d.status,
		HasMore: d.page.HasMore(),
		Loading: d.loading,
		Error:   d.lastErr,
	}
}

// FilterProblems 纯函数：各维度之间为 AND，维度内为 OR，空维度不做限制，保持原有顺序。
func FilterProblems(items []model.ProblemRecord, f model.ProblemFilter) []model.ProblemRecord {
	query := strings.ToLower(f.Query)
	out := make([]model.ProblemRecord, 0, len(items))
	for _, p := range items {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Content), query) &&
			!strings.Contains(strings.ToLower(p.ProblemID), query) {
			continue
		}
		if len(f.Difficulty) > 0 && (p.Difficulty == nil || !slices.Contains(f.Difficulty, *p.Difficulty)) {
			continue
		}
		if len(f.Source) > 0 && !slices.Contains(f.Source, p.Source) {
			continue
		}
		if len(f.Status) > 0 && !slices.Contains(f.Status, p.Status) {
			continue
		}
		if len(f.QuestionType) > 0 && !slices.Contains(f.QuestionType, p.QuestionType) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
