package models

import "time"

// ClientStats 客户统计
type ClientStats struct {
	Total         int            `json:"total"`         // 客户总数
	Active        int            `json:"active"`        // 活跃客户数
	Prospects     int            `json:"prospects"`     // 潜在客户数
	Inactive      int            `json:"inactive"`      // 非活跃客户数
	BySource      map[string]int `json:"bySource"`      // 按来源分布
	NewLast30Days int            `json:"newLast30Days"` // 近30天新增
}

// LoanFileStats 贷款文件统计
type LoanFileStats struct {
	Total           int            `json:"total"`           // 文件总数
	ByStatus        map[string]int `json:"byStatus"`        // 按状态分布
	ByPriority      map[string]int `json:"byPriority"`      // 按优先级分布
	TotalAmount     float64        `json:"totalAmount"`     // 贷款总金额
	AverageAmount   float64        `json:"averageAmount"`   // 平均贷款金额
	AverageProgress float64        `json:"averageProgress"` // 平均进度
	NewLast30Days   int            `json:"newLast30Days"`   // 近30天新增
}

// TaskStats 任务统计
type TaskStats struct {
	Total          int            `json:"total"`          // 任务总数
	ByStatus       map[string]int `json:"byStatus"`       // 按状态分布
	ByUrgency      map[string]int `json:"byUrgency"`      // 按紧急程度分布
	Completed      int            `json:"completed"`      // 已完成数
	Overdue        int            `json:"overdue"`        // 逾期数
	CompletionRate float64        `json:"completionRate"` // 完成率 0-100
	NewLast30Days  int            `json:"newLast30Days"`  // 近30天新增
}

// DocumentStats 文档统计
type DocumentStats struct {
	Total         int            `json:"total"`         // 文档总数
	ByCategory    map[string]int `json:"byCategory"`    // 按类别分布
	ByType        map[string]int `json:"byType"`        // 按文件类型分布
	TotalSize     int64          `json:"totalSize"`     // 总大小（字节）
	AverageSize   float64        `json:"averageSize"`   // 平均大小（字节）
	NewLast30Days int            `json:"newLast30Days"` // 近30天新增
}

// UserStats 用户统计
type UserStats struct {
	Total    int            `json:"total"`    // 用户总数
	ByRole   map[string]int `json:"byRole"`   // 按角色分布
	ByStatus map[string]int `json:"byStatus"` // 按状态分布
}

// InvitationStats 邀请统计
type InvitationStats struct {
	Total          int            `json:"total"`          // 邀请总数
	Pending        int            `json:"pending"`        // 待接受数
	Accepted       int            `json:"accepted"`       // 已接受数
	Expired        int            `json:"expired"`        // 已过期数
	ByType         map[string]int `json:"byType"`         // 按邀请类型分布
	AcceptanceRate float64        `json:"acceptanceRate"` // 接受率 0-100
}

// WorkspaceOverviewReport 工作区总览报告
type WorkspaceOverviewReport struct {
	WorkspaceID string          `json:"workspaceId"`
	ClientStats ClientStats     `json:"clientStats"`
	LoanFiles   LoanFileStats   `json:"loanFileStats"`
	Tasks       TaskStats       `json:"taskStats"`
	Documents   DocumentStats   `json:"documentStats"`
	Users       UserStats       `json:"userStats"`
	Invitations InvitationStats `json:"invitationStats"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// StaffPerformanceItem 单个员工绩效
type StaffPerformanceItem struct {
	UserID                  string   `json:"userId"`
	Name                    string   `json:"name"`
	Role                    UserRole `json:"role"`
	TotalAssigned           int      `json:"totalAssigned"`           // 分配任务总数
	Completed               int      `json:"completed"`               // 已完成数
	Overdue                 int      `json:"overdue"`                 // 逾期数
	CompletionRate          float64  `json:"completionRate"`          // 完成率 0-100
	AverageCompletionTimeMs float64  `json:"averageCompletionTimeMs"` // 平均完成耗时（毫秒）
}

// StaffPerformanceReport 员工绩效报告
type StaffPerformanceReport struct {
	WorkspaceID string                 `json:"workspaceId"`
	Staff       []StaffPerformanceItem `json:"staff"`
	GeneratedAt time.Time              `json:"generatedAt"`
}

// PipelineFunnelReport 贷款管道漏斗报告
type PipelineFunnelReport struct {
	WorkspaceID     string             `json:"workspaceId"`
	TotalFiles      int                `json:"totalFiles"`       // 文件总数
	DraftCount      int                `json:"draftCount"`       // 草稿数
	InProgress      int                `json:"inProgressCount"`  // 进行中数
	UnderReview     int                `json:"underReviewCount"` // 审核中数
	Approved        int                `json:"approvedCount"`    // 已批准数
	Funded          int                `json:"fundedCount"`      // 已放款数
	Declined        int                `json:"declinedCount"`    // 已拒绝数
	Cancelled       int                `json:"cancelledCount"`   // 已取消数
	TotalProcessed  int                `json:"totalProcessed"`   // 已离开草稿状态的文件数
	ConversionRates map[string]float64 `json:"conversionRates"`  // 各状态转化率 0-100
	StageTimes      map[string]float64 `json:"stageTimesMs"`     // 各阶段平均耗时估计（毫秒）
	GeneratedAt     time.Time          `json:"generatedAt"`
}

// ClientEngagementItem 单个客户参与度
type ClientEngagementItem struct {
	ClientID        string       `json:"clientId"`
	Name            string       `json:"name"`
	Status          ClientStatus `json:"status"`
	EngagementScore float64      `json:"engagementScore"` // 0-100
	LoanFileCount   int          `json:"loanFileCount"`
	TotalTasks      int          `json:"totalTasks"`
	CompletedTasks  int          `json:"completedTasks"`
	LastActivity    time.Time    `json:"lastActivity"`
}

// ClientEngagementReport 客户参与度报告
type ClientEngagementReport struct {
	WorkspaceID    string                 `json:"workspaceId"`
	Clients        []ClientEngagementItem `json:"clients"`
	Total          int                    `json:"total"`
	AverageScore   float64                `json:"averageScore"`
	HighEngagement int                    `json:"highEngagement"` // 得分>=70的客户数
	LowEngagement  int                    `json:"lowEngagement"`  // 得分<30的客户数
	GeneratedAt    time.Time              `json:"generatedAt"`
}
