package service

import (
	"course_assistant_backend/internal/model"
	"course_assistant_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAuthorizer(t *testing.T) {
	authorizer := NewRoleAuthorizer(model.Student, model.Teacher)

	student := &util.Claims{UserID: 7, Role: model.Student}
	assert.NoError(t, authorizer.Check(student, 12))

	admin := &util.Claims{UserID: 1, Role: model.Admin}
	assert.ErrorIs(t, authorizer.Check(admin, 12), util.ErrPermissionDenied)

	assert.ErrorIs(t, authorizer.Check(nil, 12), util.ErrPermissionDenied)
	assert.ErrorIs(t, authorizer.Check(student, 0), util.ErrPermissionDenied)
	assert.ErrorIs(t, authorizer.Check(&util.Claims{UserID: 0, Role: model.Student}, 12), util.ErrPermissionDenied)
}
