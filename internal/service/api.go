package service

import (
	"MathTutor-Review-Backend/internal/model"
	"context"

	"github.com/goccy/go-json"
)

//go:generate mockgen -destination=mocks/mock_api.go -package=mocks . ProblemAPI,KnowledgeAPI

type Recognizer interface {
	RecognizeAndSave(ctx context.Context, img model.ImageUpload) (*model.OCRResult, error)
}

// ProblemAPI 是 MathTutor 题库服务的远端接口，由 client.MathTutorApiClient 实现。
type ProblemAPI interface {
	Recognizer
	ReRecognize(ctx context.Context, ocrRecordID int64) (json.RawMessage, error)
	ListProblems(ctx context.Context, query model.ProblemQuery) (*model.ProblemListResponse, error)
	GetProblem(ctx context.Context, problemID string) (*model.ProblemRecord, error)
	UpdateProblem(ctx context.Context, problemID string, update model.ProblemUpdate) (*model.ProblemRecord, error)
	DeleteProblem(ctx context.Context, problemID string) error
}

type KnowledgeAPI interface {
	ListCurriculums(ctx context.Context) ([]model.Curriculum, error)
	GetCurriculum(ctx context.Context, id int64) (*model.Curriculum, error)
	GetModule(ctx context.Context, id int64) (*model.Module, error)
	GetTopic(ctx context.Context, id int64) (*model.Topic, error)
	Health(ctx context.Context) (map[string]any, error)
}
