package controller

import (
	"course_assistant_backend/internal/assets"
	"course_assistant_backend/internal/service"
	"course_assistant_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// WidgetController 下发课程页聊天组件的HTML片段和脚本
type WidgetController struct {
	cfg service.ConfigProvider
}

func NewWidgetController(cfg service.ConfigProvider) *WidgetController {
	return &WidgetController{cfg: cfg}
}

// Render godoc
// @Summary 渲染聊天组件
// @Description 返回绑定到指定课程的聊天组件HTML片段，未配置服务时返回提示
// @Tags 助手
// @Produce html
// @Param courseid path int true "课程ID"
// @Success 200 {string} string "HTML片段"
// @Security ApiKeyAuth
// @Router /assistant/widget/{courseid} [get]
func (c *WidgetController) Render(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseid"))
	if courseID == 0 {
		util.BadRequest(ctx, "invalid courseid")
		return
	}

	cfg := c.cfg()

	if !cfg.Configured() {
		html, err := assets.RenderNotConfigured(util.MsgNotConfigured)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, "text/html; charset=utf-8", html)
		return
	}

	html, err := assets.RenderChatWidget(assets.WidgetData{
		CourseID:          courseID,
		AskLabel:          util.WidgetAskLabel,
		Placeholder:       util.WidgetPlaceholder,
		SubmitLabel:       util.WidgetSubmitLabel,
		LoadingLabel:      util.WidgetLoadingLabel,
		SourcesLabel:      util.WidgetSourcesLabel,
		ErrorMessage:      util.MsgServiceUnavailable,
		Endpoint:          "/api/assistant/ask",
		ScriptURL:         "/assets/assistant/chat.js",
		Token:             util.GetTokenFromContext(ctx),
		MaxQuestionLength: cfg.MaxQuestionLength,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// Script 组件脚本
func (c *WidgetController) Script(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "application/javascript; charset=utf-8", assets.ChatScript())
}
