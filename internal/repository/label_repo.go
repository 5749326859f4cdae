package repository

import (
	"MathTutor-Review-Backend/internal/model"
	_ "embed"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/goccy/go-json"
)

//go:embed labels_default.json
var defaultLabels []byte

const unratedLabel = "未评级"

type QualityLabel struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

type LabelRepository struct {
	QuestionTypes map[string]string       `json:"questionTypes"`
	Difficulty    map[string]string       `json:"difficulty"`
	Quality       map[string]QualityLabel `json:"quality"`
}

// NewLabelRepository 从 jsonPath 加载展示文案；jsonPath 为空时使用内置文案。
func NewLabelRepository(jsonPath string) (*LabelRepository, error) {
	byteValue := defaultLabels
	source := "内置文案"
	if jsonPath != "" {
		b, err := os.ReadFile(jsonPath)
		if err != nil {
			return nil, fmt.Errorf("无法读取文案文件 '%s': %w", jsonPath, err)
		}
		byteValue = b
		source = jsonPath
	}
	var repo LabelRepository
	if err := json.Unmarshal(byteValue, &repo); err != nil {
		return nil, fmt.Errorf("解析文案数据失败: %w", err)
	}
	log.Printf("[Labels] 文案加载完成 (%s)，题型 %d 个，难度 %d 级，质量 %d 级。", source, len(repo.QuestionTypes), len(repo.Difficulty), len(repo.Quality))
	return &repo, nil
}

func (r *LabelRepository) QuestionTypeLabel(t model.QuestionType) string {
	if t == "" {
		return r.QuestionTypes[string(model.QuestionUnknown)]
	}
	if label, ok := r.QuestionTypes[string(t)]; ok {
		return label
	}
	return string(t)
}

func (r *LabelRepository) DifficultyLabel(d int) string {
	if !model.ValidDifficulty(d) {
		return unratedLabel
	}
	if label, ok := r.Difficulty[strconv.Itoa(d)]; ok {
		return label
	}
	return unratedLabel
}

func (r *LabelRepository) QualityLabel(q model.QualityScore) QualityLabel {
	if q == "" {
		return QualityLabel{Text: unratedLabel, Color: "default"}
	}
	if label, ok := r.Quality[string(q)]; ok {
		return label
	}
	return QualityLabel{Text: string(q), Color: "default"}
}
