package service

import (
	"errors"
	"fmt"
)

// 问答链路的错误分类。控制器只向用户暴露通用文案，
// 具体种类仅用于日志和测试断言。
var (
	// ErrInvalidResponse 响应体不是JSON或缺少status字段
	ErrInvalidResponse = errors.New("invalid response from RAG service")
	// ErrServiceUnavailable 服务返回了非success的status
	ErrServiceUnavailable = errors.New("RAG service reported failure")
)

// QuestionTooLongError 问题超过配置的最大长度，在外呼前拦截
type QuestionTooLongError struct {
	Max int
}

func (e *QuestionTooLongError) Error() string {
	return fmt.Sprintf("question exceeds maximum length of %d characters", e.Max)
}

// ConnectionError 传输层失败（DNS、连接、超时），保留底层诊断信息
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("RAG service connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ServiceError 服务返回了非200的HTTP状态码
type ServiceError struct {
	StatusCode int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("RAG service returned HTTP %d", e.StatusCode)
}
