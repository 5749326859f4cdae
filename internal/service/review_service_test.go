package service_test

import (
	"MathTutor-Review-Backend/internal/client"
	"MathTutor-Review-Backend/internal/model"
	"MathTutor-Review-Backend/internal/service"
	"MathTutor-Review-Backend/internal/service/mocks"
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/goccy/go-json"
	"go.uber.org/mock/gomock"
)

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }
func int64Ptr(v int64) *int64 { return &v }

func sampleProblem(status model.ProblemStatus) *model.ProblemRecord {
	return &model.ProblemRecord{
		ID:           1,
		ProblemID:    "P-1",
		Content:      "求 x: 2x=4",
		QuestionType: model.QuestionFillBlank,
		Difficulty:   intPtr(2),
		Source:       model.SourceOCR,
		Status:       status,
		Tags:         strPtr("方程"),
		OCRRecordID:  int64Ptr(5),
	}
}

func loadedStore(t *testing.T, api *mocks.MockProblemAPI, status model.ProblemStatus) *service.ResultStore {
	t.Helper()
	api.EXPECT().GetProblem(gomock.Any(), "P-1").Return(sampleProblem(status), nil)
	s := service.NewResultStore(api)
	if _, err := s.Load(context.Background(), "P-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestBeginThenCancelLeavesCanonicalUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockProblemAPI(ctrl)
	s := loadedStore(t, api, model.StatusPending)

	if err := s.BeginEdit(); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if err := s.UpdateDraft(service.DraftPatch{Content: strPtr("改过的内容"), Difficulty: intPtr(4)}); err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}
	snap := s.Snapshot()
	if snap.Draft == nil || snap.Draft.Content != "改过的内容" {
		t.Fatalf("Expected draft to carry edit, got %+v", snap.Draft)
	}
	if !reflect.DeepEqual(*snap.Canonical, *sampleProblem(model.StatusPending)) {
		t.Errorf("canonical changed during edit: %+v", snap.Canonical)
	}

	s.CancelEdit()
	s.CancelEdit()
	snap = s.Snapshot()
	if snap.Editing || snap.Draft != nil {
		t.Errorf("Expected no draft after cancel, got editing=%v draft=%+v", snap.Editing, snap.Draft)
	}
	if !reflect.DeepEqual(*snap.Canonical, *sampleProblem(model.StatusPending)) {
		t.Errorf("Expected canonical unchanged, got %+v", snap.Canonical)
	}
}

func TestLoadDiscardsDraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockProblemAPI(ctrl)
	s := loadedStore(t, api, model.StatusPending)

	if err := s.BeginEdit(); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if err := s.UpdateDraft(service.DraftPatch{Content: strPtr("未保存的修改")}); err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}

	fresh := sampleProblem(model.StatusCompleted)
	fresh.Content = "服务端最新内容"
	api.EXPECT().GetProblem(gomock.Any(), "P-1").Return(fresh, nil)
	if _, err := s.Load(context.Background(), "P-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	snap := s.Snapshot()
	if snap.Editing || snap.Draft != nil {
		t.Errorf("Expected draft discarded by Load, got editing=%v draft=%+v", snap.Editing, snap.Draft)
	}
	if snap.Canonical == nil || !reflect.DeepEqual(*snap.Canonical, *fresh) {
		t.Errorf("Expected canonical to be the reloaded record, got %+v", snap.Canonical)
	}
	if err := s.UpdateDraft(service.DraftPatch{Content: strPtr("x")}); !errors.Is(err, service.ErrNotEditing) {
		t.Errorf("Expected ErrNotEditing after Load, got %v", err)
	}
}

func TestUpdateDraftRequiresEditing(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockProblemAPI(ctrl)
	s := loadedStore(t, api, model.StatusPending)

	if err := s.UpdateDraft(service.DraftPatch{Content: strPtr("x")}); !errors.Is(err, service.ErrNotEditing) {
		t.Errorf("Expected ErrNotEditing, got %v", err)
	}
	_ = s.BeginEdit()
	var ve *service.ValidationError
	if err := s.UpdateDraft(service.DraftPatch{Difficulty: intPtr(9)}); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for difficulty 9, got %v", err)
	}
}

func TestCommitFailureKeepsDraftAndRetrySucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockProblemAPI(ctrl)
	s := loadedStore(t, api, model.StatusPending)

	_ = s.BeginEdit()
	_ = s.UpdateDraft(service.DraftPatch{Content: strPtr("新内容")})

	saved := sampleProblem(model.StatusPending)
	saved.Content = "新内容"
	gomock.InOrder(
		api.EXPECT().UpdateProblem(gomock.Any(), "P-1", gomock.Any()).
			Return(nil, &client.ServiceError{Op: "update-problem", StatusCode: 500, Message: "更新题目失败"}),
		api.EXPECT().UpdateProblem(gomock.Any(), "P-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, upd model.ProblemUpdate) (*model.ProblemRecord, error) {
				if upd.Content == nil || *upd.Content != "新内容" {
					t.Errorf("Expected retry to send draft content, got %+v", upd.Content)
				}
				if upd.Status != nil {
					t.Errorf("commit must not send status")
				}
				return saved, nil
			}),
	)

	if _, err := s.CommitEdit(context.Background()); err == nil {
		t.Fatalf("Expected first commit to fail")
	}
	snap := s.Snapshot()
	if !snap.Editing || snap.Draft == nil || snap.Draft.Content != "新内容" {
		t.Fatalf("Expected draft kept after failure, got %+v", snap)
	}
	if snap.Error != "更新题目失败" {
		t.Errorf("Expected error surfaced, got '%s'", snap.Error)
	}

	rec, err := s.CommitEdit(context.Background())
	if err != nil {
		t.Fatalf("retry commit: %v", err)
	}
	if rec.Content != "新内容" {
		t.Errorf("Expected saved content, got '%s'", rec.Content)
	}
	snap = s.Snapshot()
	if snap.Editing || snap.Draft != nil || snap.Canonical.Content != "新内容" || snap.Error != "" {
		t.Errorf("Expected clean committed state, got %+v", snap)
	}
}

func TestArchivedIsTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockProblemAPI(ctrl)
	s := loadedStore(t, api, model.StatusArchived)

	if _, err := s.ChangeStatus(context.Background(), model.StatusPending); !errors.Is(err, service.ErrArchived) {
		t.Errorf("Expected ErrArchived, got %v", err)
	}
	if _, err := s.ChangeStatus(context.Background(), "deleted"); err == nil {
		t.Errorf("Expected unknown status to be rejected")
	}
}

func TestChangeStatusReplacesCanonical(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockProblemAPI(ctrl)
	s := loadedStore(t, api, model.StatusPending)

	api.EXPECT().UpdateProblem(gomock.Any(), "P-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, upd model.ProblemUpdate) (*model.ProblemRecord, error) {
			if upd.Status == nil || *upd.Status != model.StatusCompleted || upd.Content != nil {
				t.Errorf("Expected status-only update, got %+v", upd)
			}
			return sampleProblem(model.StatusCompleted), nil
		})
	rec, err := s.ChangeStatus(context.Background(), model.StatusCompleted)
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if rec.Status != model.StatusCompleted || s.Snapshot().Canonical.Status != model.StatusCompleted {
		t.Errorf("Expected completed, got %s", rec.Status)
	}
}

func TestLoadNotFoundClearsRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockProblemAPI(ctrl)
	s := loadedStore(t, api, model.StatusPending)

	api.EXPECT().GetProblem(gomock.Any(), "P-404").
		Return(nil, &client.ServiceError{Op: "get-problem", StatusCode: 404, Message: "题目不存在"})
	_, err := s.Load(context.Background(), "P-404")
	if !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if s.Snapshot().Canonical != nil {
		t.Errorf("Expected canonical cleared")
	}
	if err := s.BeginEdit(); !errors.Is(err, service.ErrNoProblemLoaded) {
		t.Errorf("Expected ErrNoProblemLoaded, got %v", err)
	}
}

func TestReRecognizeAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockProblemAPI(ctrl)
	s := loadedStore(t, api, model.StatusPending)

	api.EXPECT().ReRecognize(gomock.Any(), int64(5)).Return(json.RawMessage(`{"success":true}`), nil)
	raw, err := s.ReRecognize(context.Background())
	if err != nil || string(raw) != `{"success":true}` {
		t.Errorf("unexpected re-recognize result %s, %v", raw, err)
	}

	api.EXPECT().DeleteProblem(gomock.Any(), "P-1").Return(nil)
	if err := s.Delete(context.Background()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Snapshot().Canonical != nil {
		t.Errorf("Expected no record after delete")
	}
}
