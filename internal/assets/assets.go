package assets

import (
	"bytes"
	_ "embed"
	"html/template"
)

//go:embed templates/chat_widget.html.tmpl
var chatWidgetTemplate string

//go:embed templates/not_configured.html.tmpl
var notConfiguredTemplate string

//go:embed static/chat.js
var chatScript []byte

// WidgetData 服务端渲染聊天组件所需的数据契约
type WidgetData struct {
	CourseID          uint
	AskLabel          string
	Placeholder       string
	SubmitLabel       string
	LoadingLabel      string
	SourcesLabel      string
	ErrorMessage      string
	Endpoint          string
	ScriptURL         string
	Token             string
	MaxQuestionLength int
}

var (
	widgetTmpl        = template.Must(template.New("chat_widget").Parse(chatWidgetTemplate))
	notConfiguredTmpl = template.Must(template.New("not_configured").Parse(notConfiguredTemplate))
)

// RenderChatWidget 渲染绑定到某门课程的聊天组件HTML片段
func RenderChatWidget(data WidgetData) ([]byte, error) {
	var buf bytes.Buffer
	if err := widgetTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderNotConfigured 服务地址或令牌未配置时的占位提示
func RenderNotConfigured(message string) ([]byte, error) {
	var buf bytes.Buffer
	if err := notConfiguredTmpl.Execute(&buf, map[string]string{"Message": message}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ChatScript 组件脚本，由路由静态下发
func ChatScript() []byte {
	return chatScript
}
