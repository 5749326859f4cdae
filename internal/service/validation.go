package service

import (
	"MathTutor-Review-Backend/internal/model"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const DefaultMaxFileSize int64 = 5 << 20

// ImageContentType 优先使用声明的类型，缺失或为 octet-stream 时按内容嗅探。
func ImageContentType(img model.ImageUpload) string {
	ct := strings.TrimSpace(img.ContentType)
	if (ct == "" || ct == "application/octet-stream") && len(img.Data) > 0 {
		return mimetype.Detect(img.Data).String()
	}
	return ct
}

func ValidateImage(img model.ImageUpload, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if img.Size() > maxSize {
		return &ValidationError{Field: "file", Message: fmt.Sprintf("文件大小不能超过 %s", formatSize(maxSize))}
	}
	if !strings.HasPrefix(strings.ToLower(ImageContentType(img)), "image/") {
		return &ValidationError{Field: "file", Message: "只能上传图片文件"}
	}
	return nil
}

func validateDraftPatch(p DraftPatch) error {
	if p.QuestionType != nil && *p.QuestionType != "" && !p.QuestionType.Valid() {
		return &ValidationError{Field: "question_type", Message: fmt.Sprintf("未知的题目类型: %s", *p.QuestionType)}
	}
	if p.Difficulty != nil && !model.ValidDifficulty(*p.Difficulty) {
		return &ValidationError{Field: "difficulty", Message: "难度必须在 1 到 5 之间"}
	}
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return &ValidationError{Field: "content", Message: "题目内容不能为空"}
	}
	return nil
}

func formatSize(n int64) string {
	if n%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	return fmt.Sprintf("%d 字节", n)
}
