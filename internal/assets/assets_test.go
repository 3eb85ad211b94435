package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderChatWidget(t *testing.T) {
	html, err := RenderChatWidget(WidgetData{
		CourseID:          42,
		AskLabel:          "向AI助教提问",
		Placeholder:       "请输入你的问题...",
		SubmitLabel:       "提问",
		LoadingLabel:      "正在思考...",
		SourcesLabel:      "来源",
		ErrorMessage:      "服务暂时不可用",
		Endpoint:          "/api/assistant/ask",
		ScriptURL:         "/assets/assistant/chat.js",
		Token:             "session-token",
		MaxQuestionLength: 500,
	})
	require.NoError(t, err)

	body := string(html)
	assert.Contains(t, body, `data-courseid="42"`)
	assert.Contains(t, body, `id="assistant-question-42"`)
	assert.Contains(t, body, `id="assistant-answer-42"`)
	assert.Contains(t, body, `id="assistant-error-42"`)
	assert.Contains(t, body, "请输入你的问题...")
	assert.Contains(t, body, "提问")
	assert.Contains(t, body, `maxlength="500"`)
	assert.Contains(t, body, "CourseAssistant.init")
	assert.Contains(t, body, "courseid: 42")
	assert.Contains(t, body, `<script src="/assets/assistant/chat.js"></script>`)
	assert.Contains(t, body, `token: "session-token"`)
}

func TestRenderChatWidgetEscapesLabels(t *testing.T) {
	html, err := RenderChatWidget(WidgetData{
		CourseID:    1,
		AskLabel:    `<script>alert("x")</script>`,
		Placeholder: "ok",
	})
	require.NoError(t, err)
	assert.NotContains(t, string(html), `<script>alert("x")</script>`)
}

func TestRenderNotConfigured(t *testing.T) {
	html, err := RenderNotConfigured("AI助教尚未配置")
	require.NoError(t, err)
	assert.Contains(t, string(html), "AI助教尚未配置")
	assert.Contains(t, string(html), "assistant-notconfigured")
}

func TestChatScript(t *testing.T) {
	script := string(ChatScript())
	assert.Contains(t, script, "CourseAssistant")
	// 状态机的关键动作：禁用按钮、Ctrl+Enter 提交、换行转<br>
	assert.Contains(t, script, "submitBtn.disabled = true")
	assert.Contains(t, script, "e.ctrlKey")
	assert.Contains(t, script, "replace(/\\n/g, '<br>')")
	// 会话令牌随请求头回传后端
	assert.Contains(t, script, "headers['Authorization'] = 'Bearer ' + token")
}
