package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// 问答组件面向用户的文案，内部错误细节一律不外露
const (
	MsgServiceUnavailable = "AI助教服务暂时不可用，请稍后再试"
	MsgQuestionTooLongFmt = "问题过长，最多允许 %d 个字符"
	MsgNotConfigured      = "AI助教尚未配置，请联系管理员"
	WidgetAskLabel        = "向AI助教提问课程相关的问题"
	WidgetPlaceholder     = "请输入你的问题..."
	WidgetSubmitLabel     = "提问"
	WidgetLoadingLabel    = "正在思考..."
	WidgetSourcesLabel    = "来源"
)
