package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole 用户角色枚举
type UserRole string

const (
	UserRoleADVISOR UserRole = "advisor" // 顾问
	UserRoleSTAFF   UserRole = "staff"   // 员工
	UserRoleCLIENT  UserRole = "client"  // 客户
	UserRolePARTNER UserRole = "partner" // 合作伙伴
)

// UserStatus 用户状态枚举
type UserStatus string

const (
	UserStatusPENDING  UserStatus = "pending"
	UserStatusAPPROVED UserStatus = "approved"
	UserStatusREJECTED UserStatus = "rejected"
)

// ClientStatus 客户状态枚举
type ClientStatus string

const (
	ClientStatusACTIVE   ClientStatus = "active"   // 活跃客户
	ClientStatusPROSPECT ClientStatus = "prospect" // 潜在客户
	ClientStatusINACTIVE ClientStatus = "inactive" // 非活跃客户
)

// LoanFileStatus 贷款文件状态枚举，draft到funded构成顺序管道，declined/cancelled为终止状态
type LoanFileStatus string

const (
	LoanFileStatusDRAFT        LoanFileStatus = "draft"
	LoanFileStatusIN_PROGRESS  LoanFileStatus = "in_progress"
	LoanFileStatusUNDER_REVIEW LoanFileStatus = "under_review"
	LoanFileStatusAPPROVED     LoanFileStatus = "approved"
	LoanFileStatusFUNDED       LoanFileStatus = "funded"
	LoanFileStatusDECLINED     LoanFileStatus = "declined"
	LoanFileStatusCANCELLED    LoanFileStatus = "cancelled"
)

// LoanFilePriority 贷款文件优先级枚举
type LoanFilePriority string

const (
	LoanFilePriorityLOW    LoanFilePriority = "low"
	LoanFilePriorityMEDIUM LoanFilePriority = "medium"
	LoanFilePriorityHIGH   LoanFilePriority = "high"
	LoanFilePriorityURGENT LoanFilePriority = "urgent"
)

// TaskStatus 任务状态枚举
type TaskStatus string

const (
	TaskStatusPENDING     TaskStatus = "pending"
	TaskStatusIN_PROGRESS TaskStatus = "in_progress"
	TaskStatusCOMPLETED   TaskStatus = "completed"
	TaskStatusCANCELLED   TaskStatus = "cancelled"
)

// TaskUrgency 任务紧急程度枚举
type TaskUrgency string

const (
	TaskUrgencyLOW    TaskUrgency = "low"
	TaskUrgencyMEDIUM TaskUrgency = "medium"
	TaskUrgencyHIGH   TaskUrgency = "high"
)

// InvitationStatus 邀请状态枚举
type InvitationStatus string

const (
	InvitationStatusPENDING  InvitationStatus = "pending"
	InvitationStatusACCEPTED InvitationStatus = "accepted"
	InvitationStatusEXPIRED  InvitationStatus = "expired"
)

// Workspace 工作区（租户边界），所有业务实体都按workspaceId隔离
type Workspace struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Plan      string             `bson:"plan" json:"plan"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// User 用户类型
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"` // 不返回密码
	Role         UserRole           `bson:"role" json:"role"`
	Status       UserStatus         `bson:"status" json:"status"`
	WorkspaceID  string             `bson:"workspaceId" json:"workspaceId"`
	LastActiveAt time.Time          `bson:"lastActiveAt,omitempty" json:"lastActiveAt,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Client 客户模型
type Client struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	WorkspaceID       string             `bson:"workspaceId" json:"workspaceId"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Phone             string             `bson:"phone" json:"phone"`
	Status            ClientStatus       `bson:"status" json:"status"`
	Source            string             `bson:"source" json:"source"`
	AssignedAdvisorID string             `bson:"assignedAdvisorId,omitempty" json:"assignedAdvisorId,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LoanFile 贷款文件模型
type LoanFile struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	WorkspaceID string             `bson:"workspaceId" json:"workspaceId"`
	ClientID    string             `bson:"clientId" json:"clientId"`
	LoanType    string             `bson:"loanType" json:"loanType"`
	Status      LoanFileStatus     `bson:"status" json:"status"`
	Priority    LoanFilePriority   `bson:"priority" json:"priority"`
	Amount      float64            `bson:"amount" json:"amount"`
	Progress    int                `bson:"progress" json:"progress"` // 0-100
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Task 任务模型
type Task struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	WorkspaceID  string             `bson:"workspaceId" json:"workspaceId"`
	Title        string             `bson:"title" json:"title"`
	ClientID     string             `bson:"clientId,omitempty" json:"clientId,omitempty"`
	LoanFileID   string             `bson:"loanFileId,omitempty" json:"loanFileId,omitempty"`
	Status       TaskStatus         `bson:"status" json:"status"`
	Urgency      TaskUrgency        `bson:"urgency" json:"urgency"`
	DueDate      time.Time          `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	CompletedAt  *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	AssignedTo   string             `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"` // 用户ID或角色标签
	IsClientTask bool               `bson:"isClientTask" json:"isClientTask"`
	IsStaffTask  bool               `bson:"isStaffTask" json:"isStaffTask"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Document 文档元数据模型，文件内容存储在外部服务
type Document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	WorkspaceID string             `bson:"workspaceId" json:"workspaceId"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	FileType    string             `bson:"fileType" json:"fileType"`
	Size        int64              `bson:"size" json:"size"`
	ClientID    string             `bson:"clientId,omitempty" json:"clientId,omitempty"`
	UploadedBy  string             `bson:"uploadedBy,omitempty" json:"uploadedBy,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Invitation 邀请模型
type Invitation struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	WorkspaceID    string             `bson:"workspaceId" json:"workspaceId"`
	Email          string             `bson:"email" json:"email"`
	InvitationType string             `bson:"invitationType" json:"invitationType"`
	Status         InvitationStatus   `bson:"status" json:"status"`
	Token          string             `bson:"token" json:"token"`
	InvitedBy      string             `bson:"invitedBy,omitempty" json:"invitedBy,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	AcceptedAt     *time.Time         `bson:"acceptedAt,omitempty" json:"acceptedAt,omitempty"`
}

// 各种请求和响应结构
type (
	// LoginRequest 登录请求
	LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	// LoginResponse 登录响应
	LoginResponse struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}

	// RegisterRequest 注册请求
	RegisterRequest struct {
		Name        string   `json:"name" binding:"required,min=2"`
		Email       string   `json:"email" binding:"required,email"`
		Password    string   `json:"password" binding:"required,min=6"`
		Role        UserRole `json:"role" binding:"required"`
		WorkspaceID string   `json:"workspaceId"`
	}

	// ClientCreateRequest 创建客户请求
	ClientCreateRequest struct {
		Name   string       `json:"name" binding:"required,min=2"`
		Email  string       `json:"email" binding:"omitempty,email"`
		Phone  string       `json:"phone"`
		Status ClientStatus `json:"status"`
		Source string       `json:"source"`
	}

	// LoanFileCreateRequest 创建贷款文件请求
	LoanFileCreateRequest struct {
		ClientID string           `json:"clientId" binding:"required"`
		LoanType string           `json:"loanType" binding:"required"`
		Priority LoanFilePriority `json:"priority"`
		Amount   float64          `json:"amount"`
	}

	// LoanFileStatusRequest 更新贷款文件状态请求
	LoanFileStatusRequest struct {
		Status   LoanFileStatus `json:"status" binding:"required"`
		Progress *int           `json:"progress"`
	}

	// TaskCreateRequest 创建任务请求
	TaskCreateRequest struct {
		Title        string      `json:"title" binding:"required"`
		ClientID     string      `json:"clientId"`
		LoanFileID   string      `json:"loanFileId"`
		Urgency      TaskUrgency `json:"urgency"`
		DueDate      time.Time   `json:"dueDate"`
		AssignedTo   string      `json:"assignedTo"`
		IsClientTask bool        `json:"isClientTask"`
		IsStaffTask  bool        `json:"isStaffTask"`
	}

	// DocumentCreateRequest 登记文档元数据请求
	DocumentCreateRequest struct {
		Name     string `json:"name" binding:"required"`
		Category string `json:"category"`
		FileType string `json:"fileType"`
		Size     int64  `json:"size"`
		ClientID string `json:"clientId"`
	}

	// InvitationCreateRequest 创建邀请请求
	InvitationCreateRequest struct {
		Email          string `json:"email" binding:"required,email"`
		InvitationType string `json:"invitationType" binding:"required,oneof=client staff advisor"`
	}
)
