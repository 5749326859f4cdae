package repository

import (
	"context"
	"log"
	"sync"
	"time"
)

type sessionEntry[T any] struct {
	value      T
	lastAccess time.Time
}

// SessionRepository 按 id 保存会话对象，超过 ttl 未访问的会话由 EvictIdle 清理，
// 清理时调用 onEvict（在锁外）。
type SessionRepository[T any] struct {
	mu      sync.RWMutex
	items   map[string]*sessionEntry[T]
	ttl     time.Duration
	onEvict func(id string, value T)
	now     func() time.Time
}

func NewSessionRepository[T any](ttl time.Duration, onEvict func(id string, value T)) *SessionRepository[T] {
	log.Printf("[Session] 仓库已初始化，空闲超时: %s", ttl)
	return &SessionRepository[T]{
		items:   make(map[string]*sessionEntry[T]),
		ttl:     ttl,
		onEvict: onEvict,
		now:     time.Now,
	}
}

// SetClock 仅供测试替换时间源。
func (r *SessionRepository[T]) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

func (r *SessionRepository[T]) Put(id string, value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id] = &sessionEntry[T]{value: value, lastAccess: r.now()}
}

// Get 返回会话并刷新最后访问时间。
func (r *SessionRepository[T]) Get(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	e.lastAccess = r.now()
	return e.value, true
}

func (r *SessionRepository[T]) Delete(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	delete(r.items, id)
	return e.value, true
}

func (r *SessionRepository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *SessionRepository[T]) EvictIdle() []string {
	if r.ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	cutoff := r.now().Add(-r.ttl)
	type evicted struct {
		id    string
		value T
	}
	var out []evicted
	for id, e := range r.items {
		if e.lastAccess.Before(cutoff) {
			out = append(out, evicted{id: id, value: e.value})
			delete(r.items, id)
		}
	}
	r.mu.Unlock()

	ids := make([]string, 0, len(out))
	for _, ev := range out {
		if r.onEvict != nil {
			r.onEvict(ev.id, ev.value)
		}
		ids = append(ids, ev.id)
	}
	if len(ids) > 0 {
		log.Printf("[Session] 清理了 %d 个空闲会话。", len(ids))
	}
	return ids
}

// RunJanitor 周期性清理空闲会话，直到 ctx 结束。
func (r *SessionRepository[T]) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[Session] 清理协程退出。")
			return
		case <-ticker.C:
			r.EvictIdle()
		}
	}
}
