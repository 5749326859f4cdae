package client_test

import (
	"MathTutor-Review-Backend/internal/client"
	"MathTutor-Review-Backend/internal/model"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRecognizeAndSaveSendsMultipartFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/ocr/recognize-and-save" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if string(data) != "png-bytes" {
			t.Errorf("Expected file body 'png-bytes', got '%s'", data)
		}
		if header.Filename != "p.png" {
			t.Errorf("Expected filename 'p.png', got '%s'", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("Expected part content type 'image/png', got '%s'", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"problem_id":"P-1","content":"1+1=?","confidence_score":0.93,
			"processing_time_ms":812,"words_count":4,"ocr_record_id":7,
			"quality_assessment":{"grade":"A","action":"auto","label":"高质量","color":"green"}}`))
	}))
	defer srv.Close()

	c := client.NewMathTutorApiClient(srv.URL, 10, 60)
	res, err := c.RecognizeAndSave(context.Background(), model.ImageUpload{Filename: "p.png", ContentType: "image/png", Data: []byte("png-bytes")})
	if err != nil {
		t.Fatalf("RecognizeAndSave: %v", err)
	}
	if !res.Success || res.ProblemID != "P-1" || res.WordsCount != 4 {
		t.Errorf("unexpected result %+v", res)
	}
	if res.OCRRecordID == nil || *res.OCRRecordID != 7 {
		t.Errorf("Expected ocr_record_id 7, got %v", res.OCRRecordID)
	}
	if res.QualityAssessment == nil || res.QualityAssessment.Grade != "A" {
		t.Errorf("Expected quality grade A, got %+v", res.QualityAssessment)
	}
}

func TestServiceErrorSurfacesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"content must not be empty"}`))
	}))
	defer srv.Close()

	c := client.NewMathTutorApiClient(srv.URL, 10, 60)
	content := ""
	_, err := c.UpdateProblem(context.Background(), "P-1", model.ProblemUpdate{Content: &content})
	var se *client.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("Expected ServiceError, got %v", err)
	}
	if se.Message != "content must not be empty" {
		t.Errorf("Expected detail message, got '%s'", se.Message)
	}
	if errors.Is(err, client.ErrNotFound) {
		t.Errorf("400 must not match ErrNotFound")
	}
}

func TestServiceErrorFallsBackToErrorFieldThenGeneric(t *testing.T) {
	body := `{"success":false,"error":"百度 OCR 服务异常: timeout","error_code":"EXTERNAL_SERVICE_ERROR"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := client.NewMathTutorApiClient(srv.URL, 10, 60)
	_, err := c.RecognizeAndSave(context.Background(), model.ImageUpload{Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8}})
	var se *client.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("Expected ServiceError, got %v", err)
	}
	if se.Message != "百度 OCR 服务异常: timeout" || se.Code != "EXTERNAL_SERVICE_ERROR" {
		t.Errorf("unexpected service error %+v", se)
	}

	body = `not json`
	err = c.DeleteProblem(context.Background(), "P-1")
	if !errors.As(err, &se) || se.Message != "删除题目失败" {
		t.Errorf("Expected generic message, got %v", err)
	}
}

func TestGetProblemNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/problems/missing" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"题目 'missing' 不存在"}`))
			return
		}
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	c := client.NewMathTutorApiClient(srv.URL, 10, 60)
	if _, err := c.GetProblem(context.Background(), "missing"); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for 404, got %v", err)
	}
	if _, err := c.GetProblem(context.Background(), "empty"); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for empty body, got %v", err)
	}
}

func TestGetProblemParsesNaiveTimestamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":3,"problem_id":"P-3","content":"x","source":"manual","status":"pending",
			"created_at":"2025-03-01T10:20:30.123456","updated_at":"2025-03-02T08:00:00"}`))
	}))
	defer srv.Close()

	c := client.NewMathTutorApiClient(srv.URL, 10, 60)
	p, err := c.GetProblem(context.Background(), "P-3")
	if err != nil {
		t.Fatalf("GetProblem: %v", err)
	}
	if p.CreatedAt.Year() != 2025 || p.UpdatedAt.Day() != 2 {
		t.Errorf("unexpected timestamps %v %v", p.CreatedAt, p.UpdatedAt)
	}
	if p.OCRRecordID != nil {
		t.Errorf("Expected no ocr_record_id for manual problem")
	}
}

func TestListProblemsQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/api/v1/problems/" || q.Get("page") != "2" || q.Get("size") != "20" || q.Get("status") != "pending" {
			t.Errorf("unexpected query %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"total":45,"page":2,"size":20,"items":[{"problem_id":"P-21","status":"pending"}]}`))
	}))
	defer srv.Close()

	c := client.NewMathTutorApiClient(srv.URL, 10, 60)
	list, err := c.ListProblems(context.Background(), model.ProblemQuery{Page: 2, Size: 20, Status: model.StatusPending})
	if err != nil {
		t.Fatalf("ListProblems: %v", err)
	}
	if list.Total != 45 || len(list.Items) != 1 || list.Items[0].ProblemID != "P-21" {
		t.Errorf("unexpected list %+v", list)
	}
}

func TestTransportErrorOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := client.NewMathTutorApiClient(srv.URL, 10, 60)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.ListProblems(ctx, model.ProblemQuery{Page: 1, Size: 20})
	var te *client.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Expected TransportError, got %v", err)
	}
	if !te.Timeout() {
		t.Errorf("Expected timeout transport error, got %v", te)
	}
}

func TestAPIKeyHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Expected bearer token, got '%s'", got)
		}
		_, _ = w.Write([]byte(`{"old":"a","new":"b"}`))
	}))
	defer srv.Close()

	c := client.NewMathTutorApiClient(srv.URL, 10, 60)
	c.APIKey = "secret"
	raw, err := c.ReRecognize(context.Background(), 7)
	if err != nil {
		t.Fatalf("ReRecognize: %v", err)
	}
	if !strings.Contains(string(raw), `"new":"b"`) {
		t.Errorf("unexpected raw payload %s", raw)
	}
}
