package controller

import (
	"course_assistant_backend/internal/service"
	"course_assistant_backend/internal/util"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// AssistantController 处理课程问答组件的HTTP请求
type AssistantController struct {
	assistantService *service.AssistantService
	authorizer       service.Authorizer
}

func NewAssistantController(assistantService *service.AssistantService, authorizer service.Authorizer) *AssistantController {
	return &AssistantController{
		assistantService: assistantService,
		authorizer:       authorizer,
	}
}

// AskRequest 组件提交的问题
type AskRequest struct {
	CourseID uint   `json:"courseid" form:"courseid" binding:"required" example:"12"`
	Question string `json:"question" form:"question" binding:"required" example:"作业截止日期是什么时候？"`
}

// AskResponse 组件约定的响应结构，status为success或error
type AskResponse struct {
	Status         string             `json:"status"`
	Answer         string             `json:"answer,omitempty"`
	ChunksUsed     []service.RAGChunk `json:"chunks_used,omitempty"`
	ResponseTimeMs *int64             `json:"response_time_ms,omitempty"`
	Error          string             `json:"error,omitempty"`
}

// Ask godoc
// @Summary 课程AI问答
// @Description 将问题转发给RAG服务并返回回答和引用来源
// @Tags 助手
// @Accept json
// @Produce json
// @Param request body AskRequest true "课程ID和问题"
// @Success 200 {object} AskResponse
// @Security ApiKeyAuth
// @Router /assistant/ask [post]
func (c *AssistantController) Ask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AskRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// 课程权限由可插拔的Authorizer校验
	if err := c.authorizer.Check(claims, req.CourseID); err != nil {
		util.Forbidden(ctx)
		return
	}

	result, err := c.assistantService.Ask(ctx.Request.Context(), claims.UserID, req.CourseID, req.Question)
	if err != nil {
		var tooLong *service.QuestionTooLongError
		if errors.As(err, &tooLong) {
			ctx.JSON(http.StatusOK, AskResponse{
				Status: "error",
				Error:  fmt.Sprintf(util.MsgQuestionTooLongFmt, tooLong.Max),
			})
			return
		}

		// 内部错误种类不外露，统一降级为通用文案
		ctx.JSON(http.StatusOK, AskResponse{
			Status: "error",
			Error:  util.MsgServiceUnavailable,
		})
		return
	}

	ctx.JSON(http.StatusOK, AskResponse{
		Status:         "success",
		Answer:         result.Answer,
		ChunksUsed:     result.ChunksUsed,
		ResponseTimeMs: result.ResponseTimeMs,
	})
}

// Logs godoc
// @Summary 问答日志
// @Description 分页查询问答审计日志，可按课程过滤
// @Tags 助手
// @Produce json
// @Param courseid query int false "课程ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Security ApiKeyAuth
// @Router /admin/assistant/logs [get]
func (c *AssistantController) Logs(ctx *gin.Context) {
	// courseid缺省表示不过滤，写错了要报错而不是静默查全量
	var courseID uint
	if raw := ctx.Query("courseid"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			util.BadRequest(ctx, "invalid courseid")
			return
		}
		courseID = uint(id)
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	logs, total, err := c.assistantService.Logs(courseID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  logs,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
