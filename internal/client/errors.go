package client

import (
	"context"
	"fmt"
	"net"

	"github.com/pkg/errors"
)

// ErrNotFound 对应服务端 404，ServiceError 通过 Is 与之匹配。
var ErrNotFound = errors.New("resource not found")

// TransportError 网络失败或超时，请求没有拿到任何响应。
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// ServiceError 非 2xx 响应或 success=false，Message 为服务端给出的原文。
type ServiceError struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}
