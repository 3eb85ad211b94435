package service

import (
	"context"
	"course_assistant_backend/internal/config"
	"course_assistant_backend/internal/model"
	"course_assistant_backend/internal/repository"
	"course_assistant_backend/pkg/logger"
	"course_assistant_backend/pkg/monitoring"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// ConfigProvider 每次请求取一份最新的助手配置快照，
// 管理员的后台改动经配置热更新后立即生效
type ConfigProvider func() config.AssistantConfig

// AskResult 一次成功问答的结果
type AskResult struct {
	Answer         string
	ChunksUsed     []RAGChunk
	ResponseTimeMs *int64
}

// AssistantService 问答请求的核心处理：校验长度、外呼RAG服务、落一条日志
type AssistantService struct {
	logRepo *repository.QuestionLogRepository
	client  AnswerClient
	cfg     ConfigProvider
}

func NewAssistantService(logRepo *repository.QuestionLogRepository, client AnswerClient, cfg ConfigProvider) *AssistantService {
	return &AssistantService{
		logRepo: logRepo,
		client:  client,
		cfg:     cfg,
	}
}

// Ask 处理一个课程问题。调用方已完成认证和课程权限校验。
// 返回的错误属于 errors.go 中的分类，由控制器统一转换为对用户的文案。
// 每次调用至多写一条日志；超长问题在外呼前被拦截且不落日志。
func (s *AssistantService) Ask(ctx context.Context, userID, courseID uint, question string) (*AskResult, error) {
	cfg := s.cfg()

	if utf8.RuneCountInString(question) > cfg.MaxQuestionLength {
		return nil, &QuestionTooLongError{Max: cfg.MaxQuestionLength}
	}

	start := time.Now()
	answer, err := s.client.Ask(ctx, cfg, userID, courseID, question)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		monitoring.QuestionCounter.WithLabelValues(model.LogStatusError).Inc()
		logger.Log.Warn("assistant question failed",
			zap.Uint("user_id", userID),
			zap.Uint("course_id", courseID),
			zap.Error(err),
		)

		if cfg.EnableLogging {
			message := err.Error()
			s.writeLog(&model.QuestionLog{
				UserID:       userID,
				CourseID:     courseID,
				Question:     question,
				Status:       model.LogStatusError,
				ErrorMessage: &message,
			})
		}
		return nil, err
	}

	// 优先采用服务自测的耗时，缺失时用本地测量兜底
	responseTime := answer.ResponseTimeMs
	if responseTime == nil {
		responseTime = &elapsed
	}

	monitoring.QuestionCounter.WithLabelValues(model.LogStatusSuccess).Inc()

	if cfg.EnableLogging {
		answerText := answer.Answer
		s.writeLog(&model.QuestionLog{
			UserID:         userID,
			CourseID:       courseID,
			Question:       question,
			Answer:         &answerText,
			ResponseTimeMs: responseTime,
			Status:         model.LogStatusSuccess,
		})
	}

	return &AskResult{
		Answer:         answer.Answer,
		ChunksUsed:     answer.ChunksUsed,
		ResponseTimeMs: responseTime,
	}, nil
}

// Logs 分页查询问答日志，courseID为0时不过滤课程
func (s *AssistantService) Logs(courseID uint, page, limit int) ([]model.QuestionLog, int64, error) {
	return s.logRepo.ListByCourse(courseID, page, limit)
}

// 日志写失败不影响已经算出的回答，记录后吞掉
func (s *AssistantService) writeLog(row *model.QuestionLog) {
	if err := s.logRepo.Create(row); err != nil {
		monitoring.LogWriteFailures.Inc()
		logger.Log.Error("failed to write question log",
			zap.Uint("user_id", row.UserID),
			zap.Uint("course_id", row.CourseID),
			zap.Error(err),
		)
	}
}
