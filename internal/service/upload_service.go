package service

import (
	"MathTutor-Review-Backend/internal/client"
	"MathTutor-Review-Backend/internal/model"
	"context"
	"log"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
)

type UploadState string

const (
	StateUpload     UploadState = "upload"
	StateProcessing UploadState = "processing"
	StateSuccess    UploadState = "success"
)

const (
	progressStep = 10
	progressCap  = 90
	progressDone = 100

	DefaultProgressInterval = 200 * time.Millisecond
	DefaultRecognizeTimeout = 60 * time.Second
)

type UploadOptions struct {
	MaxFileSize      int64
	ProgressInterval time.Duration
	RequestTimeout   time.Duration
}

func (o UploadOptions) withDefaults() UploadOptions {
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = DefaultProgressInterval
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = DefaultRecognizeTimeout
	}
	return o
}

type UploadSnapshot struct {
	State    UploadState      `json:"state"`
	Progress int              `json:"progress"`
	Filename string           `json:"filename,omitempty"`
	Attempt  *model.OCRResult `json:"attempt,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// UploadCoordinator 驱动 upload → processing → success 的识别流程，失败时回到 upload。
// 同一时间最多一个识别请求。
type UploadCoordinator struct {
	recognizer Recognizer
	opts       UploadOptions
	onSuccess  func(problemID string, result model.OCRResult)
	onReset    func()

	mu       sync.Mutex
	state    UploadState
	progress int
	filename string
	attempt  *model.OCRResult
	lastErr  string
	cancel   context.CancelFunc
	closed   bool
}

func NewUploadCoordinator(recognizer Recognizer, opts UploadOptions, onSuccess func(problemID string, result model.OCRResult)) *UploadCoordinator {
	return &UploadCoordinator{
		recognizer: recognizer,
		opts:       opts.withDefaults(),
		onSuccess:  onSuccess,
		state:      StateUpload,
	}
}

// Upload 校验并识别一张图片，阻塞直到服务端返回。校验失败时状态不变且不发请求。
func (c *UploadCoordinator) Upload(ctx context.Context, img model.ImageUpload) (*model.OCRResult, error) {
	if err := ValidateImage(img, c.opts.MaxFileSize); err != nil {
		c.mu.Lock()
		if c.state != StateProcessing {
			c.lastErr = err.Error()
		}
		c.mu.Unlock()
		log.Printf("[Upload] 文件校验未通过: %s, %v", img.Filename, err)
		return nil, err
	}
	img.ContentType = ImageContentType(img)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrWorkspaceClosed
	}
	if c.state == StateProcessing {
		c.mu.Unlock()
		return nil, ErrUploadInFlight
	}
	c.state = StateProcessing
	c.progress = 0
	c.attempt = nil
	c.lastErr = ""
	c.filename = img.Filename
	reqCtx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	c.cancel = cancel
	onReset := c.onReset
	c.mu.Unlock()
	if onReset != nil {
		onReset()
	}

	stop := make(chan struct{})
	var wg conc.WaitGroup
	wg.Go(func() { c.advanceProgress(stop) })

	log.Printf("[Upload] 开始 OCR 识别: %s, 大小: %d bytes", img.Filename, img.Size())
	result, err := c.recognizer.RecognizeAndSave(reqCtx, img)
	close(stop)
	wg.Wait()
	cancel()

	c.mu.Lock()
	c.cancel = nil
	if err == nil && result != nil && result.Success {
		stored := *result
		c.attempt = &stored
		c.progress = progressDone
		c.state = StateSuccess
		cb := c.onSuccess
		c.mu.Unlock()

		log.Printf("[Upload] OCR 识别成功: %s → 题目 %s (置信度 %.2f)", img.Filename, result.ProblemID, result.ConfidenceScore)
		if cb != nil {
			cb(result.ProblemID, stored)
		}
		return &stored, nil
	}

	if err == nil {
		err = recognitionFailure(result)
	}
	c.state = StateUpload
	c.attempt = nil
	c.progress = 0
	c.lastErr = err.Error()
	c.mu.Unlock()
	log.Printf("[Upload] OCR 识别失败: %s, 错误: %v", img.Filename, err)
	return nil, err
}

func recognitionFailure(result *model.OCRResult) error {
	se := &client.ServiceError{Op: "recognize-and-save", StatusCode: 200, Message: "OCR识别失败"}
	if result != nil {
		se.Code = result.ErrorCode
		if result.Error != "" {
			se.Message = result.Error
		}
	}
	return se
}

func (c *UploadCoordinator) advanceProgress(stop <-chan struct{}) {
	ticker := time.NewTicker(c.opts.ProgressInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.progress >= progressCap {
				c.mu.Unlock()
				return
			}
			c.progress = min(c.progress+progressStep, progressCap)
			c.mu.Unlock()
		}
	}
}

// OnReset 注册识别结果被丢弃时的回调：开始新的识别或 Reset 时调用（在锁外）。
func (c *UploadCoordinator) OnReset(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReset = fn
}

// Reset 丢弃上一次的识别结果，回到 upload。
func (c *UploadCoordinator) Reset() error {
	c.mu.Lock()
	if c.state == StateProcessing {
		c.mu.Unlock()
		return ErrUploadInFlight
	}
	c.state = StateUpload
	c.progress = 0
	c.filename = ""
	c.attempt = nil
	c.lastErr = ""
	onReset := c.onReset
	c.mu.Unlock()

	if onReset != nil {
		onReset()
	}
	return nil
}

// Close 取消进行中的识别请求，之后的 Upload 返回 ErrWorkspaceClosed。
func (c *UploadCoordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.cancel != nil {
		log.Printf("[Upload] 工作区关闭，取消进行中的识别请求: %s", c.filename)
		c.cancel()
	}
}

func (c *UploadCoordinator) Snapshot() UploadSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := UploadSnapshot{
		State:    c.state,
		Progress: c.progress,
		Filename: c.filename,
		Error:    c.lastErr,
	}
	if c.attempt != nil {
		a := *c.attempt
		s.Attempt = &a
	}
	return s
}
