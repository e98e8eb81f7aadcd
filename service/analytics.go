package service

import (
	"time"

	"github.com/montanaflynn/stats"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/models"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/repository"
)

// 分析报表均为只读纯函数：对同一份快照和同一个now时间戳，输出完全确定。
// now由调用方统一注入，计算过程中不再读取系统时钟。

// ComputeWorkspaceOverview 计算工作区总览报告
func ComputeWorkspaceOverview(snapshot *repository.WorkspaceSnapshot, now time.Time) models.WorkspaceOverviewReport {
	thirtyDaysAgo := now.Add(-30 * 24 * time.Hour)

	return models.WorkspaceOverviewReport{
		WorkspaceID: snapshot.WorkspaceID,
		ClientStats: computeClientStats(snapshot.Clients, thirtyDaysAgo),
		LoanFiles:   computeLoanFileStats(snapshot.LoanFiles, thirtyDaysAgo),
		Tasks:       computeTaskStats(snapshot.Tasks, now, thirtyDaysAgo),
		Documents:   computeDocumentStats(snapshot.Documents, thirtyDaysAgo),
		Users:       computeUserStats(snapshot.Users),
		Invitations: computeInvitationStats(snapshot.Invitations),
		GeneratedAt: now,
	}
}

// computeClientStats 计算客户统计
func computeClientStats(clients []models.Client, thirtyDaysAgo time.Time) models.ClientStats {
	result := models.ClientStats{
		Total:    len(clients),
		BySource: map[string]int{},
	}

	for _, client := range clients {
		switch client.Status {
		case models.ClientStatusACTIVE:
			result.Active++
		case models.ClientStatusPROSPECT:
			result.Prospects++
		case models.ClientStatusINACTIVE:
			result.Inactive++
		}

		// 分组桶按需创建，未出现的来源不占位
		result.BySource[client.Source]++

		if !client.CreatedAt.Before(thirtyDaysAgo) {
			result.NewLast30Days++
		}
	}

	return result
}

// computeLoanFileStats 计算贷款文件统计
func computeLoanFileStats(files []models.LoanFile, thirtyDaysAgo time.Time) models.LoanFileStats {
	result := models.LoanFileStats{
		Total:      len(files),
		ByStatus:   map[string]int{},
		ByPriority: map[string]int{},
	}

	amounts := make([]float64, 0, len(files))
	progresses := make([]float64, 0, len(files))

	for _, file := range files {
		result.ByStatus[string(file.Status)]++
		result.ByPriority[string(file.Priority)]++
		result.TotalAmount += file.Amount
		amounts = append(amounts, file.Amount)
		progresses = append(progresses, float64(file.Progress))

		if !file.CreatedAt.Before(thirtyDaysAgo) {
			result.NewLast30Days++
		}
	}

	result.AverageAmount = safeMean(amounts)
	result.AverageProgress = safeMean(progresses)

	return result
}

// computeTaskStats 计算任务统计
func computeTaskStats(tasks []models.Task, now, thirtyDaysAgo time.Time) models.TaskStats {
	result := models.TaskStats{
		Total:     len(tasks),
		ByStatus:  map[string]int{},
		ByUrgency: map[string]int{},
	}

	for _, task := range tasks {
		result.ByStatus[string(task.Status)]++
		result.ByUrgency[string(task.Urgency)]++

		if task.Status == models.TaskStatusCOMPLETED {
			result.Completed++
		}
		if IsTaskOverdue(task, now) {
			result.Overdue++
		}
		if !task.CreatedAt.Before(thirtyDaysAgo) {
			result.NewLast30Days++
		}
	}

	result.CompletionRate = safeRate(result.Completed, result.Total)

	return result
}

// computeDocumentStats 计算文档统计
func computeDocumentStats(documents []models.Document, thirtyDaysAgo time.Time) models.DocumentStats {
	result := models.DocumentStats{
		Total:      len(documents),
		ByCategory: map[string]int{},
		ByType:     map[string]int{},
	}

	sizes := make([]float64, 0, len(documents))

	for _, doc := range documents {
		result.ByCategory[doc.Category]++
		result.ByType[doc.FileType]++
		result.TotalSize += doc.Size
		sizes = append(sizes, float64(doc.Size))

		if !doc.CreatedAt.Before(thirtyDaysAgo) {
			result.NewLast30Days++
		}
	}

	result.AverageSize = safeMean(sizes)

	return result
}

// computeUserStats 计算用户统计
func computeUserStats(users []models.User) models.UserStats {
	result := models.UserStats{
		Total:    len(users),
		ByRole:   map[string]int{},
		ByStatus: map[string]int{},
	}

	for _, user := range users {
		result.ByRole[string(user.Role)]++
		result.ByStatus[string(user.Status)]++
	}

	return result
}

// computeInvitationStats 计算邀请统计
func computeInvitationStats(invitations []models.Invitation) models.InvitationStats {
	result := models.InvitationStats{
		Total:  len(invitations),
		ByType: map[string]int{},
	}

	for _, inv := range invitations {
		switch inv.Status {
		case models.InvitationStatusPENDING:
			result.Pending++
		case models.InvitationStatusACCEPTED:
			result.Accepted++
		case models.InvitationStatusEXPIRED:
			result.Expired++
		}
		result.ByType[inv.InvitationType]++
	}

	result.AcceptanceRate = safeRate(result.Accepted, result.Total)

	return result
}

// IsTaskOverdue 任务逾期判定：截止时间已过且未完成
func IsTaskOverdue(task models.Task, now time.Time) bool {
	return !task.DueDate.IsZero() &&
		task.DueDate.Before(now) &&
		task.Status != models.TaskStatusCOMPLETED
}

// safeMean 平均值，空集返回0而不是NaN
func safeMean(values []float64) float64 {
	mean, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return mean
}

// safeRate 百分比，分母为0时返回0
func safeRate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
