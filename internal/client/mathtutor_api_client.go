package client

import (
	"MathTutor-Review-Backend/internal/model"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httputil"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	DefaultTimeoutSeconds    = 10
	DefaultOCRTimeoutSeconds = 60
)

type MathTutorApiClient struct {
	BaseURL       string
	APIKey        string
	DebugRequests bool
	HTTPClient    *http.Client
	// OCRClient 只用于 recognize-and-save，超时更长。
	OCRClient *http.Client
}

func NewMathTutorApiClient(baseURL string, timeoutSec, ocrTimeoutSec int) *MathTutorApiClient {
	if timeoutSec <= 0 {
		timeoutSec = DefaultTimeoutSeconds
	}
	if ocrTimeoutSec <= 0 {
		ocrTimeoutSec = DefaultOCRTimeoutSeconds
	}
	return &MathTutorApiClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		OCRClient: &http.Client{
			Timeout: time.Duration(ocrTimeoutSec) * time.Second,
		},
	}
}

func logRequest(req *http.Request, description string, withBody bool) {
	dump, err := httputil.DumpRequestOut(req, withBody)
	if err != nil {
		log.Printf("[Client] 无法导出请求 '%s': %v", description, err)
		return
	}
	log.Printf("--- HTTP Request Sent: %s ---\n%s\n---------------------------------------\n", description, string(dump))
}

func (c *MathTutorApiClient) setCommonHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
}

func (c *MathTutorApiClient) do(httpClient *http.Client, req *http.Request, op, fallback string, out any) error {
	c.setCommonHeaders(req)
	if c.DebugRequests {
		logRequest(req, op, !strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/"))
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		terr := &TransportError{Op: op, Err: err}
		if terr.Timeout() {
			log.Printf("[Client] %s 网络超时 (配置的超时时间为 %s)", op, httpClient.Timeout)
		}
		return terr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: errors.Wrap(err, "读取响应体失败")}
	}
	return decodeResponse(op, resp.StatusCode, body, fallback, out)
}

// decodeResponse 统一处理状态码与错误体，out 为 nil 时忽略成功响应体。
func decodeResponse(op string, status int, body []byte, fallback string, out any) error {
	if status < 200 || status > 299 {
		var er model.ErrorResponse
		msg := ""
		if json.Unmarshal(body, &er) == nil {
			msg = er.Message()
		}
		if msg == "" {
			msg = fallback
		}
		log.Printf("[Client] %s 返回非2xx状态。状态码: %d, 响应体: %s", op, status, truncate(body, 512))
		return &ServiceError{Op: op, StatusCode: status, Code: er.ErrorCode, Message: msg}
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		log.Printf("[Client] 解析 %s 响应JSON失败。原始响应体: %s", op, truncate(body, 512))
		return &ServiceError{Op: op, StatusCode: status, Message: errors.Wrapf(err, "%s: 解析响应失败", fallback).Error()}
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "…"
}

func (c *MathTutorApiClient) RecognizeAndSave(ctx context.Context, img model.ImageUpload) (*model.OCRResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(img.Filename)))
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, errors.Wrap(err, "构建上传表单失败")
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, errors.Wrap(err, "写入上传表单失败")
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Wrap(err, "构建上传表单失败")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/v1/ocr/recognize-and-save", &buf)
	if err != nil {
		return nil, errors.Wrap(err, "创建识别请求失败")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result model.OCRResult
	if err := c.do(c.OCRClient, req, "recognize-and-save", "OCR识别失败", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *MathTutorApiClient) ReRecognize(ctx context.Context, ocrRecordID int64) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("ocr_record_id", strconv.FormatInt(ocrRecordID, 10))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/v1/ocr/re-recognize?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "创建重新识别请求失败")
	}

	var raw json.RawMessage
	if err := c.do(c.OCRClient, req, "re-recognize", "重新识别失败", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *MathTutorApiClient) ListProblems(ctx context.Context, query model.ProblemQuery) (*model.ProblemListResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(query.Page))
	q.Set("size", strconv.Itoa(query.Size))
	if query.Status != "" {
		q.Set("status", string(query.Status))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/v1/problems/?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "创建题目列表请求失败")
	}

	var list model.ProblemListResponse
	if err := c.do(c.HTTPClient, req, "list-problems", "获取题目列表失败", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *MathTutorApiClient) GetProblem(ctx context.Context, problemID string) (*model.ProblemRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.problemURL(problemID), nil)
	if err != nil {
		return nil, errors.Wrap(err, "创建题目详情请求失败")
	}

	var p model.ProblemRecord
	if err := c.do(c.HTTPClient, req, "get-problem", "获取题目详情失败", &p); err != nil {
		return nil, err
	}
	if p.ProblemID == "" {
		return nil, &ServiceError{Op: "get-problem", StatusCode: http.StatusNotFound, Message: fmt.Sprintf("题目 '%s' 不存在", problemID)}
	}
	return &p, nil
}

func (c *MathTutorApiClient) UpdateProblem(ctx context.Context, problemID string, update model.ProblemUpdate) (*model.ProblemRecord, error) {
	payloadBytes, err := json.Marshal(update)
	if err != nil {
		return nil, errors.Wrap(err, "序列化更新内容失败")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.problemURL(problemID), bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, errors.Wrap(err, "创建更新请求失败")
	}
	req.Header.Set("Content-Type", "application/json")

	var p model.ProblemRecord
	if err := c.do(c.HTTPClient, req, "update-problem", "更新题目失败", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *MathTutorApiClient) DeleteProblem(ctx context.Context, problemID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.problemURL(problemID), nil)
	if err != nil {
		return errors.Wrap(err, "创建删除请求失败")
	}
	return c.do(c.HTTPClient, req, "delete-problem", "删除题目失败", nil)
}

func (c *MathTutorApiClient) problemURL(problemID string) string {
	return fmt.Sprintf("%s/api/v1/problems/%s", c.BaseURL, url.PathEscape(problemID))
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}
