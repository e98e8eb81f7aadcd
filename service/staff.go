package service

import (
	"time"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/models"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/repository"
)

// ComputeStaffPerformance 计算员工绩效报告。
// 统计范围：角色为advisor/staff的用户，以及isStaffTask=true的任务。
// 任务归属通过models.TaskAssignment显式变体判定：按用户ID分配的任务只计入对应用户，
// 按角色标签分配的任务计入报告内的每一个员工（历史数据语义，改动会影响已上线指标）。
func ComputeStaffPerformance(snapshot *repository.WorkspaceSnapshot, now time.Time) models.StaffPerformanceReport {
	report := models.StaffPerformanceReport{
		WorkspaceID: snapshot.WorkspaceID,
		Staff:       []models.StaffPerformanceItem{},
		GeneratedAt: now,
	}

	// 预先解析一次分配变体，避免对每个用户重复解析
	type staffTask struct {
		task       models.Task
		assignment models.TaskAssignment
	}
	staffTasks := make([]staffTask, 0, len(snapshot.Tasks))
	for _, task := range snapshot.Tasks {
		if !task.IsStaffTask {
			continue
		}
		staffTasks = append(staffTasks, staffTask{
			task:       task,
			assignment: models.ParseTaskAssignment(task.AssignedTo),
		})
	}

	for _, user := range snapshot.Users {
		if user.Role != models.UserRoleADVISOR && user.Role != models.UserRoleSTAFF {
			continue
		}

		item := models.StaffPerformanceItem{
			UserID: user.ID.Hex(),
			Name:   user.Name,
			Role:   user.Role,
		}

		completionTimes := []float64{}
		for _, st := range staffTasks {
			if !st.assignment.AppliesTo(item.UserID) {
				continue
			}

			item.TotalAssigned++

			if st.task.Status == models.TaskStatusCOMPLETED {
				item.Completed++
				// 平均完成耗时只统计有完成时间的已完成任务
				if st.task.CompletedAt != nil {
					completionTimes = append(completionTimes,
						float64(st.task.CompletedAt.Sub(st.task.CreatedAt).Milliseconds()))
				}
			}
			if IsTaskOverdue(st.task, now) {
				item.Overdue++
			}
		}

		item.CompletionRate = safeRate(item.Completed, item.TotalAssigned)
		item.AverageCompletionTimeMs = safeMean(completionTimes)

		report.Staff = append(report.Staff, item)
	}

	return report
}
