package client

import (
	"MathTutor-Review-Backend/internal/model"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/parnurzeal/gorequest"
)

// KnowledgeClient 只读访问 /api/knowledge。gorequest 的 SuperAgent 不是并发安全的，
// 每次请求新建一个。
type KnowledgeClient struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func NewKnowledgeClient(baseURL string, timeoutSec int) *KnowledgeClient {
	if timeoutSec <= 0 {
		timeoutSec = DefaultTimeoutSeconds
	}
	return &KnowledgeClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: time.Duration(timeoutSec) * time.Second,
	}
}

func (c *KnowledgeClient) get(ctx context.Context, op, path, fallback string, out any) error {
	if err := ctx.Err(); err != nil {
		return &TransportError{Op: op, Err: err}
	}
	timeout := c.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	agent := gorequest.New().Timeout(timeout).Get(c.BaseURL+path).Set("Accept", "application/json")
	if c.APIKey != "" {
		agent = agent.Set("Authorization", "Bearer "+c.APIKey)
	}
	// SuperAgent 不接受 ctx，请求放到协程里，ctx 结束时直接返回
	done := make(chan agentResult, 1)
	go func() {
		resp, body, errs := agent.EndBytes()
		done <- agentResult{resp: resp, body: body, errs: errs}
	}()

	select {
	case <-ctx.Done():
		return &TransportError{Op: op, Err: ctx.Err()}
	case r := <-done:
		if len(r.errs) > 0 {
			return &TransportError{Op: op, Err: r.errs[0]}
		}
		return decodeResponse(op, r.resp.StatusCode, r.body, fallback, out)
	}
}

type agentResult struct {
	resp gorequest.Response
	body []byte
	errs []error
}

func (c *KnowledgeClient) ListCurriculums(ctx context.Context) ([]model.Curriculum, error) {
	var out []model.Curriculum
	if err := c.get(ctx, "list-curriculums", "/api/knowledge/curriculums", "获取课程体系失败", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *KnowledgeClient) GetCurriculum(ctx context.Context, id int64) (*model.Curriculum, error) {
	var out model.Curriculum
	if err := c.get(ctx, "get-curriculum", fmt.Sprintf("/api/knowledge/curriculums/%d", id), "获取课程失败", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *KnowledgeClient) GetModule(ctx context.Context, id int64) (*model.Module, error) {
	var out model.Module
	if err := c.get(ctx, "get-module", fmt.Sprintf("/api/knowledge/modules/%d", id), "获取模块失败", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *KnowledgeClient) GetTopic(ctx context.Context, id int64) (*model.Topic, error) {
	var out model.Topic
	if err := c.get(ctx, "get-topic", fmt.Sprintf("/api/knowledge/topics/%d", id), "获取专题失败", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *KnowledgeClient) Health(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	if err := c.get(ctx, "knowledge-health", "/api/knowledge/health", "知识服务不可用", &out); err != nil {
		return nil, err
	}
	return out, nil
}
