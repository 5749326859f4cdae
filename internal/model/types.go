package model

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
)

type ProblemListResponse struct {
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
	Items []ProblemRecord `json:"items"`
}

type ProblemQuery struct {
	Page   int
	Size   int
	Status ProblemStatus
}

// ProblemUpdate 是 PUT /api/v1/problems/{id} 的请求体，nil 字段不修改。
type ProblemUpdate struct {
	Content      *string        `json:"content,omitempty"`
	QuestionType *QuestionType  `json:"question_type,omitempty"`
	Difficulty   *int           `json:"difficulty,omitempty"`
	Tags         *string        `json:"tags,omitempty"`
	Status       *ProblemStatus `json:"status,omitempty"`
	QualityScore *QualityScore  `json:"quality_score,omitempty"`
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (u ImageUpload) Size() int64 { return int64(len(u.Data)) }

// ErrorResponse 兼容两种错误格式：{"detail": ...} 与 {success:false, error, error_code}。
type ErrorResponse struct {
	Detail    json.RawMessage `json:"detail,omitempty"`
	Success   *bool           `json:"success,omitempty"`
	Error     string          `json:"error,omitempty"`
	ErrorCode string          `json:"error_code,omitempty"`
}

// Message 优先取字符串 detail，结构化的 detail（校验错误）返回压缩后的 JSON，否则取 error。
func (e ErrorResponse) Message() string {
	if len(e.Detail) > 0 && string(e.Detail) != "null" {
		var s string
		if err := json.Unmarshal(e.Detail, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		} else {
			var buf bytes.Buffer
			if json.Compact(&buf, e.Detail) == nil {
				return buf.String()
			}
		}
	}
	return strings.TrimSpace(e.Error)
}
