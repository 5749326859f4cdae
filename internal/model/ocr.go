package model

// OCRResult 是 recognize-and-save 的响应，失败时只有 Error 与 ErrorCode 有意义。
type OCRResult struct {
	Success           bool               `json:"success"`
	ProblemID         string             `json:"problem_id,omitempty"`
	Content           string             `json:"content,omitempty"`
	ConfidenceScore   float64            `json:"confidence_score,omitempty"`
	ProcessingTimeMs  int64              `json:"processing_time_ms,omitempty"`
	WordsCount        int                `json:"words_count,omitempty"`
	QualityAssessment *QualityAssessment `json:"quality_assessment,omitempty"`
	OCRRecordID       *int64             `json:"ocr_record_id,omitempty"`
	Error             string             `json:"error,omitempty"`
	ErrorCode         string             `json:"error_code,omitempty"`
}

type QualityAssessment struct {
	Grade  string `json:"grade"`
	Action string `json:"action"`
	Label  string `json:"label"`
	Color  string `json:"color"`
}
