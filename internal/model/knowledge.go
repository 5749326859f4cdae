package model

type LearningStatus string

const (
	LearningNotStarted LearningStatus = "not_started"
	LearningInProgress LearningStatus = "in_progress"
	LearningMastered   LearningStatus = "mastered"
	LearningNeedReview LearningStatus = "need_review"
)

type KnowledgePoint struct {
	ID                    int64          `json:"id"`
	KPID                  string         `json:"kp_id"`
	KPName                string         `json:"kp_name"`
	Detail                string         `json:"detail,omitempty"`
	TopicID               int64          `json:"topic_id"`
	LearningStatus        LearningStatus `json:"learning_status,omitempty"`
	MasteryLevel          *float64       `json:"mastery_level,omitempty"`
	IsFavorite            bool           `json:"is_favorite,omitempty"`
	FirstLearnedAt        *Timestamp     `json:"first_learned_at,omitempty"`
	LastReviewedAt        *Timestamp     `json:"last_reviewed_at,omitempty"`
	RelatedQuestionsCount int            `json:"related_questions_count,omitempty"`
}

type Topic struct {
	ID              int64            `json:"id"`
	TopicID         string           `json:"topic_id"`
	TopicName       string           `json:"topic_name"`
	Alias           string           `json:"alias,omitempty"`
	ModuleID        int64            `json:"module_id"`
	KnowledgePoints []KnowledgePoint `json:"knowledge_points"`
	TotalKPs        int              `json:"total_kps,omitempty"`
	MasteredKPs     int              `json:"mastered_kps,omitempty"`
	InProgressKPs   int              `json:"in_progress_kps,omitempty"`
}

type Module struct {
	ID                 int64    `json:"id"`
	ModuleID           string   `json:"module_id"`
	ModuleName         string   `json:"module_name"`
	ModuleTag          string   `json:"module_tag,omitempty"`
	Overview           string   `json:"overview,omitempty"`
	CurriculumID       int64    `json:"curriculum_id"`
	Topics             []Topic  `json:"topics"`
	TotalTopics        int      `json:"total_topics,omitempty"`
	TotalKPs           int      `json:"total_kps,omitempty"`
	MasteredKPs        int      `json:"mastered_kps,omitempty"`
	ProgressPercentage *float64 `json:"progress_percentage,omitempty"`
}

type Curriculum struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Grade           string   `json:"grade"`
	Semester        string   `json:"semester"`
	Modules         []Module `json:"modules"`
	TotalModules    int      `json:"total_modules,omitempty"`
	TotalTopics     int      `json:"total_topics,omitempty"`
	TotalKPs        int      `json:"total_kps,omitempty"`
	MasteredKPs     int      `json:"mastered_kps,omitempty"`
	OverallProgress *float64 `json:"overall_progress,omitempty"`
}
