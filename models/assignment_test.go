package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTaskAssignment(t *testing.T) {
	none := ParseTaskAssignment("")
	assert.Equal(t, AssignmentNone, none.Kind)

	// "staff"是历史数据中的角色标签，不是用户ID
	tag := ParseTaskAssignment("staff")
	assert.Equal(t, AssignmentRoleTag, tag.Kind)
	assert.Equal(t, UserRoleSTAFF, tag.RoleTag)

	user := ParseTaskAssignment("665f1c2e8b3a4d5e6f7a8b9c")
	assert.Equal(t, AssignmentUser, user.Kind)
	assert.Equal(t, "665f1c2e8b3a4d5e6f7a8b9c", user.UserID)
}

func TestTaskAssignmentAppliesTo(t *testing.T) {
	userID := "665f1c2e8b3a4d5e6f7a8b9c"
	otherID := "665f1c2e8b3a4d5e6f7a8b9d"

	assert.False(t, ParseTaskAssignment("").AppliesTo(userID))

	assert.True(t, ParseTaskAssignment(userID).AppliesTo(userID))
	assert.False(t, ParseTaskAssignment(userID).AppliesTo(otherID))

	// 角色标签分配对报告中的每个员工都生效
	assert.True(t, ParseTaskAssignment("staff").AppliesTo(userID))
	assert.True(t, ParseTaskAssignment("staff").AppliesTo(otherID))
}
