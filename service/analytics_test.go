package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/models"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/repository"
)

// 测试用固定时间点，所有计算都注入now而不是读取系统时钟
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newClient(status models.ClientStatus, source string, createdAt, updatedAt time.Time) models.Client {
	return models.Client{
		ID:        primitive.NewObjectID(),
		Status:    status,
		Source:    source,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

func TestComputeWorkspaceOverview_ClientStats(t *testing.T) {
	old := testNow.Add(-60 * 24 * time.Hour)
	snapshot := &repository.WorkspaceSnapshot{WorkspaceID: "ws1"}
	for i := 0; i < 6; i++ {
		snapshot.Clients = append(snapshot.Clients, newClient(models.ClientStatusACTIVE, "referral", old, old))
	}
	for i := 0; i < 2; i++ {
		snapshot.Clients = append(snapshot.Clients, newClient(models.ClientStatusPROSPECT, "website", old, old))
	}
	for i := 0; i < 2; i++ {
		snapshot.Clients = append(snapshot.Clients, newClient(models.ClientStatusINACTIVE, "website", old, old))
	}

	report := ComputeWorkspaceOverview(snapshot, testNow)

	assert.Equal(t, 10, report.ClientStats.Total)
	assert.Equal(t, 6, report.ClientStats.Active)
	assert.Equal(t, 2, report.ClientStats.Prospects)
	assert.Equal(t, 2, report.ClientStats.Inactive)
	assert.Equal(t, map[string]int{"referral": 6, "website": 4}, report.ClientStats.BySource)
	assert.Equal(t, 0, report.ClientStats.NewLast30Days)
}

func TestComputeWorkspaceOverview_GroupByTotalsMatch(t *testing.T) {
	old := testNow.Add(-45 * 24 * time.Hour)
	recent := testNow.Add(-2 * 24 * time.Hour)

	snapshot := &repository.WorkspaceSnapshot{
		WorkspaceID: "ws1",
		LoanFiles: []models.LoanFile{
			{Status: models.LoanFileStatusDRAFT, Priority: models.LoanFilePriorityLOW, Amount: 100000, Progress: 0, CreatedAt: recent},
			{Status: models.LoanFileStatusIN_PROGRESS, Priority: models.LoanFilePriorityHIGH, Amount: 250000, Progress: 40, CreatedAt: old},
			{Status: models.LoanFileStatusFUNDED, Priority: models.LoanFilePriorityHIGH, Amount: 400000, Progress: 100, CreatedAt: old},
		},
		Tasks: []models.Task{
			{Status: models.TaskStatusPENDING, Urgency: models.TaskUrgencyLOW, DueDate: testNow.Add(24 * time.Hour), CreatedAt: recent},
			{Status: models.TaskStatusCOMPLETED, Urgency: models.TaskUrgencyHIGH, DueDate: testNow.Add(-24 * time.Hour), CreatedAt: old},
			{Status: models.TaskStatusIN_PROGRESS, Urgency: models.TaskUrgencyHIGH, DueDate: testNow.Add(-24 * time.Hour), CreatedAt: old},
		},
		Documents: []models.Document{
			{Category: "income", FileType: "pdf", Size: 1000, CreatedAt: recent},
			{Category: "identity", FileType: "pdf", Size: 3000, CreatedAt: old},
		},
		Users: []models.User{
			{Role: models.UserRoleADVISOR, Status: models.UserStatusAPPROVED},
			{Role: models.UserRoleCLIENT, Status: models.UserStatusPENDING},
		},
	}

	report := ComputeWorkspaceOverview(snapshot, testNow)

	// 每个分组输出的桶计数之和都等于实体总数
	sumValues := func(m map[string]int) int {
		total := 0
		for _, v := range m {
			total += v
		}
		return total
	}

	assert.Equal(t, report.LoanFiles.Total, sumValues(report.LoanFiles.ByStatus))
	assert.Equal(t, report.LoanFiles.Total, sumValues(report.LoanFiles.ByPriority))
	assert.Equal(t, report.Tasks.Total, sumValues(report.Tasks.ByStatus))
	assert.Equal(t, report.Tasks.Total, sumValues(report.Tasks.ByUrgency))
	assert.Equal(t, report.Documents.Total, sumValues(report.Documents.ByCategory))
	assert.Equal(t, report.Documents.Total, sumValues(report.Documents.ByType))
	assert.Equal(t, report.Users.Total, sumValues(report.Users.ByRole))
	assert.Equal(t, report.Users.Total, sumValues(report.Users.ByStatus))

	// 未出现的枚举值不出现在分组里
	assert.NotContains(t, report.LoanFiles.ByStatus, string(models.LoanFileStatusDECLINED))
	assert.NotContains(t, report.Users.ByRole, string(models.UserRolePARTNER))

	// 金额与进度
	assert.InDelta(t, 750000.0, report.LoanFiles.TotalAmount, 0.001)
	assert.InDelta(t, 250000.0, report.LoanFiles.AverageAmount, 0.001)
	assert.InDelta(t, 140.0/3.0, report.LoanFiles.AverageProgress, 0.001)

	// 逾期：截止时间已过且未完成，已完成的不算
	assert.Equal(t, 1, report.Tasks.Overdue)
	assert.Equal(t, 1, report.Tasks.Completed)

	// 近30天新增
	assert.Equal(t, 1, report.LoanFiles.NewLast30Days)
	assert.Equal(t, 1, report.Tasks.NewLast30Days)
	assert.Equal(t, 1, report.Documents.NewLast30Days)
}

func TestComputeWorkspaceOverview_EmptyWorkspace(t *testing.T) {
	snapshot := &repository.WorkspaceSnapshot{WorkspaceID: "unknown"}

	report := ComputeWorkspaceOverview(snapshot, testNow)

	// 未知工作区得到结构完整的全零报告，平均值精确为0而不是NaN
	assert.Equal(t, 0, report.ClientStats.Total)
	assert.Equal(t, 0, report.LoanFiles.Total)
	assert.Zero(t, report.LoanFiles.AverageAmount)
	assert.Zero(t, report.LoanFiles.AverageProgress)
	assert.Zero(t, report.Documents.AverageSize)
	assert.Zero(t, report.Tasks.CompletionRate)
	assert.Zero(t, report.Invitations.AcceptanceRate)
	assert.Empty(t, report.ClientStats.BySource)
	assert.Empty(t, report.LoanFiles.ByStatus)
}

func TestComputeWorkspaceOverview_InvitationAcceptanceRate(t *testing.T) {
	snapshot := &repository.WorkspaceSnapshot{
		WorkspaceID: "ws1",
		Invitations: []models.Invitation{
			{InvitationType: "client", Status: models.InvitationStatusACCEPTED},
			{InvitationType: "client", Status: models.InvitationStatusPENDING},
			{InvitationType: "staff", Status: models.InvitationStatusEXPIRED},
			{InvitationType: "staff", Status: models.InvitationStatusACCEPTED},
		},
	}

	report := ComputeWorkspaceOverview(snapshot, testNow)

	assert.Equal(t, 4, report.Invitations.Total)
	assert.Equal(t, 2, report.Invitations.Accepted)
	assert.Equal(t, 1, report.Invitations.Pending)
	assert.Equal(t, 1, report.Invitations.Expired)
	assert.InDelta(t, 50.0, report.Invitations.AcceptanceRate, 0.001)
	assert.Equal(t, map[string]int{"client": 2, "staff": 2}, report.Invitations.ByType)
}

func TestSafeHelpers(t *testing.T) {
	// 空集合短路为0，不产生NaN或除零
	assert.Zero(t, safeMean(nil))
	assert.Zero(t, safeMean([]float64{}))
	assert.Zero(t, safeRate(0, 0))
	assert.Zero(t, safeRate(5, 0))
	assert.InDelta(t, 2.0, safeMean([]float64{1, 2, 3}), 0.001)
	assert.InDelta(t, 50.0, safeRate(1, 2), 0.001)
}

func TestIsTaskOverdue(t *testing.T) {
	overdue := models.Task{Status: models.TaskStatusPENDING, DueDate: testNow.Add(-time.Hour)}
	assert.True(t, IsTaskOverdue(overdue, testNow))

	completedLate := models.Task{Status: models.TaskStatusCOMPLETED, DueDate: testNow.Add(-time.Hour)}
	assert.False(t, IsTaskOverdue(completedLate, testNow))

	future := models.Task{Status: models.TaskStatusPENDING, DueDate: testNow.Add(time.Hour)}
	assert.False(t, IsTaskOverdue(future, testNow))

	// 没有截止时间的任务不算逾期
	noDue := models.Task{Status: models.TaskStatusPENDING}
	assert.False(t, IsTaskOverdue(noDue, testNow))
}
