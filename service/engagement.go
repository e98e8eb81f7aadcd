package service

import (
	"sort"
	"time"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/models"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/repository"
)

// 参与度评分权重
const (
	engagementStatusActive   = 30.0 // 活跃客户基础分
	engagementStatusProspect = 15.0 // 潜在客户基础分
	engagementPerLoanFile    = 10.0 // 每个贷款文件
	engagementLoanFileCap    = 30.0 // 贷款文件数量分上限
	engagementRecentFile     = 5.0  // 每个近30天有更新的贷款文件，不设上限
	engagementTaskWeight     = 25.0 // 任务完成率权重
	engagementMaxScore       = 100.0
)

// ComputeClientEngagement 计算客户参与度报告。
// 每个客户的综合得分由状态、贷款文件活跃度、任务完成率、最近活动时间组成，
// 最终截断到[0,100]。结果按得分降序排列，同分保持拉取顺序。
func ComputeClientEngagement(snapshot *repository.WorkspaceSnapshot, now time.Time) models.ClientEngagementReport {
	report := models.ClientEngagementReport{
		WorkspaceID: snapshot.WorkspaceID,
		Clients:     []models.ClientEngagementItem{},
		Total:       len(snapshot.Clients),
		GeneratedAt: now,
	}

	// 按客户索引贷款文件和任务
	filesByClient := map[string][]models.LoanFile{}
	for _, file := range snapshot.LoanFiles {
		filesByClient[file.ClientID] = append(filesByClient[file.ClientID], file)
	}
	tasksByClient := map[string][]models.Task{}
	for _, task := range snapshot.Tasks {
		if task.ClientID != "" {
			tasksByClient[task.ClientID] = append(tasksByClient[task.ClientID], task)
		}
	}

	scores := make([]float64, 0, len(snapshot.Clients))
	for _, client := range snapshot.Clients {
		clientID := client.ID.Hex()
		item := scoreClient(client, filesByClient[clientID], tasksByClient[clientID], now)
		scores = append(scores, item.EngagementScore)

		if item.EngagementScore >= 70 {
			report.HighEngagement++
		}
		if item.EngagementScore < 30 {
			report.LowEngagement++
		}

		report.Clients = append(report.Clients, item)
	}

	// 降序排列，同分保持原有顺序
	sort.SliceStable(report.Clients, func(i, j int) bool {
		return report.Clients[i].EngagementScore > report.Clients[j].EngagementScore
	})

	report.AverageScore = safeMean(scores)

	return report
}

// scoreClient 计算单个客户的参与度得分
func scoreClient(client models.Client, files []models.LoanFile, tasks []models.Task, now time.Time) models.ClientEngagementItem {
	thirtyDaysAgo := now.Add(-30 * 24 * time.Hour)

	score := 0.0

	// 状态分
	switch client.Status {
	case models.ClientStatusACTIVE:
		score += engagementStatusActive
	case models.ClientStatusPROSPECT:
		score += engagementStatusProspect
	}

	// 贷款文件活跃度：数量分有上限，近期更新分不设上限
	fileScore := float64(len(files)) * engagementPerLoanFile
	if fileScore > engagementLoanFileCap {
		fileScore = engagementLoanFileCap
	}
	score += fileScore

	lastActivity := client.UpdatedAt
	for _, file := range files {
		if !file.UpdatedAt.Before(thirtyDaysAgo) {
			score += engagementRecentFile
		}
		if file.UpdatedAt.After(lastActivity) {
			lastActivity = file.UpdatedAt
		}
	}

	// 任务完成率分
	completed := 0
	for _, task := range tasks {
		if task.Status == models.TaskStatusCOMPLETED {
			completed++
		}
		if task.UpdatedAt.After(lastActivity) {
			lastActivity = task.UpdatedAt
		}
	}
	if len(tasks) > 0 {
		score += engagementTaskWeight * float64(completed) / float64(len(tasks))
	}

	// 最近活动加分
	score += recencyBonus(lastActivity, now)

	// 截断到上限
	if score > engagementMaxScore {
		score = engagementMaxScore
	}

	return models.ClientEngagementItem{
		ClientID:        client.ID.Hex(),
		Name:            client.Name,
		Status:          client.Status,
		EngagementScore: score,
		LoanFileCount:   len(files),
		TotalTasks:      len(tasks),
		CompletedTasks:  completed,
		LastActivity:    lastActivity,
	}
}

// recencyBonus 最近活动时间加分
func recencyBonus(lastActivity, now time.Time) float64 {
	age := now.Sub(lastActivity)
	switch {
	case age < 7*24*time.Hour:
		return 15
	case age < 30*24*time.Hour:
		return 10
	case age < 90*24*time.Hour:
		return 5
	default:
		return 0
	}
}
