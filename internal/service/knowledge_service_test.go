package service_test

import (
	"MathTutor-Review-Backend/internal/model"
	"MathTutor-Review-Backend/internal/service"
	"MathTutor-Review-Backend/internal/service/mocks"
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
)

func TestFetchCurriculumTreeKeepsModuleOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockKnowledgeAPI(ctrl)
	api.EXPECT().GetCurriculum(gomock.Any(), int64(1)).Return(&model.Curriculum{
		ID: 1, Name: "七年级上", Grade: "七年级", Semester: "上",
		Modules: []model.Module{{ID: 30}, {ID: 10}, {ID: 20}},
	}, nil)
	api.EXPECT().GetModule(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id int64) (*model.Module, error) {
			return &model.Module{ID: id, ModuleName: "模块", Topics: []model.Topic{{ID: id * 10}}}, nil
		}).Times(3)

	s := service.NewKnowledgeStore(api)
	cur, err := s.FetchCurriculumTree(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchCurriculumTree: %v", err)
	}
	want := []int64{30, 10, 20}
	for i, m := range cur.Modules {
		if m.ID != want[i] {
			t.Errorf("Expected module %d at %d, got %d", want[i], i, m.ID)
		}
		if len(m.Topics) != 1 || m.Topics[0].ID != m.ID*10 {
			t.Errorf("Expected module %d to be filled, got %+v", m.ID, m.Topics)
		}
	}
	snap := s.Snapshot()
	if snap.CurrentCurriculum == nil || snap.CurrentCurriculum.ID != 1 || snap.Loading {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestFetchCurriculumTreeModuleError(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockKnowledgeAPI(ctrl)
	api.EXPECT().GetCurriculum(gomock.Any(), int64(2)).Return(&model.Curriculum{ID: 2, Modules: []model.Module{{ID: 1}}}, nil)
	boom := errors.New("模块加载失败")
	api.EXPECT().GetModule(gomock.Any(), int64(1)).Return(nil, boom)

	s := service.NewKnowledgeStore(api)
	if _, err := s.FetchCurriculumTree(context.Background(), 2); !errors.Is(err, boom) {
		t.Fatalf("Expected module error, got %v", err)
	}
	if snap := s.Snapshot(); snap.Error != boom.Error() || snap.CurrentCurriculum != nil {
		t.Errorf("Expected error recorded without curriculum, got %+v", snap)
	}
}

func TestFindCurriculum(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockKnowledgeAPI(ctrl)
	api.EXPECT().ListCurriculums(gomock.Any()).Return([]model.Curriculum{
		{ID: 1, Grade: "七年级", Semester: "上"},
		{ID: 2, Grade: "七年级", Semester: "下"},
	}, nil)

	s := service.NewKnowledgeStore(api)
	if _, err := s.FetchCurriculums(context.Background()); err != nil {
		t.Fatalf("FetchCurriculums: %v", err)
	}
	if c, ok := s.FindCurriculum("七年级", "下"); !ok || c.ID != 2 {
		t.Errorf("Expected curriculum 2, got %+v", c)
	}
	if _, ok := s.FindCurriculum("八年级", ""); ok {
		t.Errorf("Expected no curriculum for 八年级")
	}
}
