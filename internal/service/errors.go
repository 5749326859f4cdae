package service

import "errors"

var (
	ErrUploadInFlight    = errors.New("已有图片正在识别中，请稍候")
	ErrWorkspaceClosed   = errors.New("工作区已关闭")
	ErrWorkspaceNotFound = errors.New("工作区不存在或已过期")
	ErrNoProblemLoaded   = errors.New("尚未加载题目")
	ErrNotEditing        = errors.New("当前不在编辑状态")
	ErrArchived          = errors.New("已归档的题目不能再变更状态")
	ErrSuperseded        = errors.New("请求已被更新的请求取代")
)

// ValidationError 在发出任何网络请求之前产生。
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
