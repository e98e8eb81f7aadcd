package models

// TaskAssignmentKind 任务分配类型
type TaskAssignmentKind int

const (
	// AssignmentNone 未分配
	AssignmentNone TaskAssignmentKind = iota
	// AssignmentUser 分配给具体用户（assignedTo为用户ID）
	AssignmentUser
	// AssignmentRoleTag 分配给角色标签（assignedTo为角色字面量，历史数据遗留）
	AssignmentRoleTag
)

// TaskAssignment 任务分配的显式变体。
// 历史数据中assignedTo字段既可能是用户ID，也可能是字面量角色标签"staff"，
// 角色标签任务在绩效统计中计入每一个员工名下。此处保留该匹配语义，
// 但用显式变体替代ID与字符串标签之间的类型混用。
type TaskAssignment struct {
	Kind    TaskAssignmentKind
	UserID  string
	RoleTag UserRole
}

// 可作为分配目标的角色标签集合
var assignableRoleTags = map[string]UserRole{
	string(UserRoleSTAFF): UserRoleSTAFF,
}

// ParseTaskAssignment 解析assignedTo原始值为显式分配变体
func ParseTaskAssignment(raw string) TaskAssignment {
	if raw == "" {
		return TaskAssignment{Kind: AssignmentNone}
	}
	if tag, ok := assignableRoleTags[raw]; ok {
		return TaskAssignment{Kind: AssignmentRoleTag, RoleTag: tag}
	}
	return TaskAssignment{Kind: AssignmentUser, UserID: raw}
}

// AppliesTo 判断分配是否落在指定员工名下。
// 角色标签分配对报告范围内的所有员工都成立。
func (a TaskAssignment) AppliesTo(userID string) bool {
	switch a.Kind {
	case AssignmentUser:
		return a.UserID == userID
	case AssignmentRoleTag:
		return true
	default:
		return false
	}
}
