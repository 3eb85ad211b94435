package service

import (
	"bytes"
	"context"
	"course_assistant_backend/internal/config"
	"course_assistant_backend/pkg/monitoring"
	"course_assistant_backend/pkg/tracing"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// RAGChunk 一条支撑回答的引用片段
type RAGChunk struct {
	Source string  `json:"source"`
	Text   string  `json:"text,omitempty"`
	Score  float64 `json:"score,omitempty"`
}

// RAGAnswer RAG服务返回的标准化结果
type RAGAnswer struct {
	Answer         string     `json:"answer"`
	ChunksUsed     []RAGChunk `json:"chunks_used,omitempty"`
	ResponseTimeMs *int64     `json:"response_time_ms,omitempty"`
}

type ragRequest struct {
	UserID   uint   `json:"user_id"`
	CourseID uint   `json:"course_id"`
	Question string `json:"question"`
}

// status用指针区分字段缺失和值为空
type ragResponse struct {
	Status         *string    `json:"status"`
	Answer         string     `json:"answer"`
	ChunksUsed     []RAGChunk `json:"chunks_used"`
	ResponseTimeMs *int64     `json:"response_time_ms"`
}

// AnswerClient 问答外呼的抽象，便于在测试中替换
type AnswerClient interface {
	Ask(ctx context.Context, cfg config.AssistantConfig, userID, courseID uint, question string) (*RAGAnswer, error)
}

// RAGClient 每个问题发起一次同步POST，不重试、不做连接复用要求
type RAGClient struct {
	httpClient *http.Client
}

func NewRAGClient() *RAGClient {
	return &RAGClient{httpClient: &http.Client{}}
}

func (c *RAGClient) Ask(ctx context.Context, cfg config.AssistantConfig, userID, courseID uint, question string) (*RAGAnswer, error) {
	url := strings.TrimRight(cfg.ServiceURL, "/") + "/ask"

	payload, err := json.Marshal(ragRequest{
		UserID:   userID,
		CourseID: courseID,
		Question: question,
	})
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.Tracer.Start(ctx, "assistant.rag.ask")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("assistant.user_id", int64(userID)),
		attribute.Int64("assistant.course_id", int64(courseID)),
	)

	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIToken)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	monitoring.RAGRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, &ConnectionError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{StatusCode: resp.StatusCode}
	}

	var wire ragResponse
	if err := json.Unmarshal(body, &wire); err != nil || wire.Status == nil {
		return nil, ErrInvalidResponse
	}

	if *wire.Status != "success" {
		return nil, ErrServiceUnavailable
	}

	return &RAGAnswer{
		Answer:         wire.Answer,
		ChunksUsed:     wire.ChunksUsed,
		ResponseTimeMs: wire.ResponseTimeMs,
	}, nil
}
