package service

import (
	"course_assistant_backend/internal/model"
	"course_assistant_backend/internal/util"
)

// Authorizer 在问答核心流程前执行课程访问校验。
// 选课关系由宿主平台维护，部署方可注入自己的实现。
type Authorizer interface {
	Check(user *util.Claims, courseID uint) error
}

// RoleAuthorizer 默认实现：已登录且角色在允许集合内即放行
type RoleAuthorizer struct {
	allowed map[model.UserRole]bool
}

func NewRoleAuthorizer(roles ...model.UserRole) *RoleAuthorizer {
	allowed := make(map[model.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return &RoleAuthorizer{allowed: allowed}
}

func (a *RoleAuthorizer) Check(user *util.Claims, courseID uint) error {
	if user == nil || user.UserID == 0 || courseID == 0 {
		return util.ErrPermissionDenied
	}
	if !a.allowed[user.Role] {
		return util.ErrPermissionDenied
	}
	return nil
}
