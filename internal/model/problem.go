package model

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type QuestionType string

const (
	QuestionChoice    QuestionType = "choice"
	QuestionJudge     QuestionType = "judge"
	QuestionFillBlank QuestionType = "fill_blank"
	QuestionEssay     QuestionType = "essay"
	QuestionOther     QuestionType = "other"
	QuestionUnknown   QuestionType = "unknown"
)

var QuestionTypes = []QuestionType{
	QuestionChoice, QuestionJudge, QuestionFillBlank, QuestionEssay, QuestionOther, QuestionUnknown,
}

func (t QuestionType) Valid() bool {
	for _, v := range QuestionTypes {
		if t == v {
			return true
		}
	}
	return false
}

type ProblemStatus string

const (
	StatusPending   ProblemStatus = "pending"
	StatusCompleted ProblemStatus = "completed"
	StatusArchived  ProblemStatus = "archived"
)

func (s ProblemStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// CanTransitionTo archived 为终态。
func (s ProblemStatus) CanTransitionTo(next ProblemStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == StatusArchived {
		return next == StatusArchived
	}
	return true
}

type QualityScore string

const (
	QualityA QualityScore = "A"
	QualityB QualityScore = "B"
	QualityC QualityScore = "C"
	QualityD QualityScore = "D"
)

func (q QualityScore) Valid() bool {
	switch q {
	case QualityA, QualityB, QualityC, QualityD:
		return true
	}
	return false
}

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

func ValidDifficulty(d int) bool { return d >= MinDifficulty && d <= MaxDifficulty }

// SourceOCR 是服务端为识别录入的题目写入的来源。
const SourceOCR = "OCR识别"

type ProblemRecord struct {
	ID           int64         `json:"id"`
	ProblemID    string        `json:"problem_id"`
	Content      string        `json:"content"`
	QuestionType QuestionType  `json:"question_type,omitempty"`
	Difficulty   *int          `json:"difficulty,omitempty"`
	Source       string        `json:"source"`
	Status       ProblemStatus `json:"status"`
	QualityScore QualityScore  `json:"quality_score,omitempty"`
	Tags         *string       `json:"tags,omitempty"`
	// 仅用于查询 OCR 记录，手动录入的题目没有
	OCRRecordID *int64    `json:"ocr_record_id,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// Clone 深拷贝，指针字段不共享。
func (p ProblemRecord) Clone() ProblemRecord {
	c := p
	if p.Difficulty != nil {
		d := *p.Difficulty
		c.Difficulty = &d
	}
	if p.Tags != nil {
		t := *p.Tags
		c.Tags = &t
	}
	if p.OCRRecordID != nil {
		id := *p.OCRRecordID
		c.OCRRecordID = &id
	}
	return c
}

func (p ProblemRecord) DifficultyValue() int {
	if p.Difficulty == nil {
		return 0
	}
	return *p.Difficulty
}

func (p ProblemRecord) TagList() []string {
	if p.Tags == nil {
		return nil
	}
	var out []string
	for _, t := range strings.Split(*p.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Timestamp 兼容服务端输出的无时区时间 ("2025-03-01T10:20:30.123456") 与 RFC 3339。
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// ProblemFilter 只作用于已加载的条目，空维度不做限制。
type ProblemFilter struct {
	Query        string          `json:"q,omitempty"`
	Difficulty   []int           `json:"difficulty,omitempty"`
	Source       []string        `json:"source,omitempty"`
	Status       []ProblemStatus `json:"status,omitempty"`
	QuestionType []QuestionType  `json:"question_type,omitempty"`
}

func (f ProblemFilter) IsEmpty() bool {
	return f.Query == "" && len(f.Difficulty) == 0 && len(f.Source) == 0 &&
		len(f.Status) == 0 && len(f.QuestionType) == 0
}
